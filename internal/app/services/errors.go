package services

import (
	"fmt"

	"github.com/yigit/creditbridge/internal/pkg/apperrors"
)

// storeError classifies an error raised by the store. Not-found and
// validation errors pass through; anything else means the store failed and
// whatever transaction was open has been rolled back.
func storeError(err error) error {
	if err == nil {
		return nil
	}

	if apperrors.Is(err, apperrors.ErrResourceNotFound,
		apperrors.ErrValidationFailed,
		apperrors.ErrConflict,
		apperrors.ErrPersistenceFailure) {
		return err
	}

	return fmt.Errorf("%w: %w", apperrors.ErrPersistenceFailure, err)
}
