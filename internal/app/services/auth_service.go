package services

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/creditbridge/internal/app/repositories"
	"github.com/yigit/creditbridge/internal/pkg/apperrors"
	"github.com/yigit/creditbridge/internal/pkg/auth"
	"github.com/yigit/creditbridge/internal/pkg/logger"
)

// LoginResult is what a successful administrator login returns
type LoginResult struct {
	AccessToken string
	ExpiresIn   int
	AdminID     int64
	Email       string
}

// AuthService defines the interface for administrator authentication
type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type authServiceImpl struct {
	store      repositories.Store
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(store repositories.Store, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		store:      store,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login checks the administrator's password and issues an access token.
// Unknown emails and wrong passwords fail the same way.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	admin, err := s.store.Admins().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, storeError(err)
	}

	if !auth.CheckPassword(admin.PasswordHash, password) {
		logger.FromContext(ctx, s.logger).Warn().Str("email", email).Msg("Failed administrator login")
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(admin)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken: token,
		ExpiresIn:   expiresIn,
		AdminID:     admin.ID,
		Email:       admin.Email,
	}, nil
}
