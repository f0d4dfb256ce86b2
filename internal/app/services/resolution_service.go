package services

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/creditbridge/internal/app/models"
	"github.com/yigit/creditbridge/internal/app/repositories"
	"github.com/yigit/creditbridge/internal/pkg/apperrors"
	"github.com/yigit/creditbridge/internal/pkg/helpers"
	"github.com/yigit/creditbridge/internal/pkg/logger"
	"github.com/yigit/creditbridge/internal/pkg/validation"
)

// ResolutionService decides transfer credit requests: it classifies new
// submissions and applies administrator decisions to queued ones.
type ResolutionService interface {
	Classify(ctx context.Context, submission *models.Submission) (*models.Outcome, error)
	Approve(ctx context.Context, pendingRequestID int64) (*models.TransferRequest, error)
	Disapprove(ctx context.Context, pendingRequestID int64, reasons string) error
	ListPending(ctx context.Context) ([]*models.PendingRequest, error)
	GetPending(ctx context.Context, pendingRequestID int64) (*models.PendingRequest, error)
	ListPrecedents(ctx context.Context, page, pageSize int) ([]*models.TransferRequest, int64, error)
}

// ResolutionConfig holds the institution settings the engine depends on
type ResolutionConfig struct {
	HomeSchoolID         int64
	PrecedentMaxAgeYears int
}

type resolutionServiceImpl struct {
	store    repositories.Store
	notifier Notifier
	config   ResolutionConfig
	logger   zerolog.Logger
	now      func() time.Time
}

// NewResolutionService creates a new resolution engine
func NewResolutionService(
	store repositories.Store,
	notifier Notifier,
	config ResolutionConfig,
	logger zerolog.Logger,
) ResolutionService {
	return newResolutionService(store, notifier, config, logger, time.Now)
}

func newResolutionService(
	store repositories.Store,
	notifier Notifier,
	config ResolutionConfig,
	logger zerolog.Logger,
	now func() time.Time,
) *resolutionServiceImpl {
	return &resolutionServiceImpl{
		store:    store,
		notifier: notifier,
		config:   config,
		logger:   logger,
		now:      now,
	}
}

// Classify rejects online courses, auto-resolves submissions with a fresh
// precedent and queues everything else for an administrator.
func (s *resolutionServiceImpl) Classify(ctx context.Context, submission *models.Submission) (*models.Outcome, error) {
	if submission == nil {
		return nil, apperrors.NewValidationError(map[string]string{"submission": "submission is required"})
	}

	sub := *submission
	sub.Normalize()
	if err := s.validateSubmission(&sub); err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx, s.logger)

	if sub.Online {
		outcome := &models.Outcome{
			Kind:     models.OutcomeRejected,
			Approved: false,
			Reasons:  models.OnlineRejectionReason,
		}
		log.Info().Str("outcome", string(outcome.Kind)).Msg("Rejected online course submission")
		s.notifyOutcome(ctx, sub.Snapshot(), outcome)
		return outcome, nil
	}

	if precedentEligible(&sub) {
		precedent, err := s.store.TransferRequests().FindLatestMatch(ctx, sub.PrecedentKey())
		if err != nil {
			return nil, storeError(err)
		}

		if precedent != nil && precedent.IsFresh(s.precedentCutoff()) {
			outcome := &models.Outcome{
				Kind:        models.OutcomeAutoResolved,
				Approved:    precedent.Approved,
				Reasons:     precedent.Reasons,
				PrecedentID: precedent.ID,
			}
			log.Info().
				Str("outcome", string(outcome.Kind)).
				Int64("precedentId", precedent.ID).
				Bool("approved", precedent.Approved).
				Msg("Resolved submission from precedent")
			s.notifyOutcome(ctx, sub.Snapshot(), outcome)
			return outcome, nil
		}
	}

	pending := sub.ToPendingRequest()
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		if err := s.checkReferences(ctx, tx, &sub); err != nil {
			return err
		}
		return tx.PendingRequests().Create(ctx, pending)
	})
	if err != nil {
		return nil, storeError(err)
	}

	log.Info().
		Str("outcome", string(models.OutcomeQueued)).
		Int64("pendingRequestId", pending.ID).
		Msg("Queued submission for administrator review")

	if err := s.notifier.SendAdminPendingNotice(ctx, pending.Snapshot()); err != nil {
		s.logNotificationFailure(ctx, err, pending.ID, "admin pending notice")
	}

	return &models.Outcome{Kind: models.OutcomeQueued, PendingRequestID: pending.ID}, nil
}

// Approve turns a queued request into an approved precedent, adding any
// manually entered school or course to the catalog on the way.
func (s *resolutionServiceImpl) Approve(ctx context.Context, pendingRequestID int64) (*models.TransferRequest, error) {
	var snapshot models.RequestSnapshot
	var precedent *models.TransferRequest

	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		pending, err := tx.PendingRequests().GetByID(ctx, pendingRequestID)
		if err != nil {
			return err
		}

		school, err := s.resolveSchool(ctx, tx, pending)
		if err != nil {
			return err
		}

		course, err := s.resolveCourse(ctx, tx, school.ID, pending)
		if err != nil {
			return err
		}

		precedent = &models.TransferRequest{
			TransferSchoolID: school.ID,
			TransferCourseID: course.ID,
			TargetCourseID:   pending.TargetCourseID,
			Approved:         true,
			Reasons:          "",
			DecidedAt:        s.now(),
		}
		if err := tx.TransferRequests().Create(ctx, precedent); err != nil {
			return err
		}

		snapshot = pending.Snapshot()
		return tx.PendingRequests().Delete(ctx, pendingRequestID)
	})
	if err != nil {
		return nil, storeError(err)
	}

	logger.FromContext(ctx, s.logger).Info().
		Int64("pendingRequestId", pendingRequestID).
		Int64("precedentId", precedent.ID).
		Msg("Approved pending request")

	s.notifyDecision(ctx, snapshot, models.Decision{Approved: true, Reasons: ""})
	return precedent, nil
}

// Disapprove removes a queued request and tells the requester why. No
// precedent is recorded. Reasons are free text and may be empty.
func (s *resolutionServiceImpl) Disapprove(ctx context.Context, pendingRequestID int64, reasons string) error {
	reasons = strings.TrimSpace(reasons)

	var snapshot models.RequestSnapshot
	err := s.store.WithTransaction(ctx, func(ctx context.Context, tx repositories.Store) error {
		pending, err := tx.PendingRequests().GetByID(ctx, pendingRequestID)
		if err != nil {
			return err
		}

		snapshot = pending.Snapshot()
		return tx.PendingRequests().Delete(ctx, pendingRequestID)
	})
	if err != nil {
		return storeError(err)
	}

	logger.FromContext(ctx, s.logger).Info().
		Int64("pendingRequestId", pendingRequestID).
		Msg("Disapproved pending request")

	s.notifyDecision(ctx, snapshot, models.Decision{Approved: false, Reasons: reasons})
	return nil
}

// ListPending returns the queue oldest first
func (s *resolutionServiceImpl) ListPending(ctx context.Context) ([]*models.PendingRequest, error) {
	requests, err := s.store.PendingRequests().List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return requests, nil
}

// GetPending returns one queued request
func (s *resolutionServiceImpl) GetPending(ctx context.Context, pendingRequestID int64) (*models.PendingRequest, error) {
	request, err := s.store.PendingRequests().GetByID(ctx, pendingRequestID)
	if err != nil {
		return nil, storeError(err)
	}
	return request, nil
}

// ListPrecedents returns one page of decided requests, newest first
func (s *resolutionServiceImpl) ListPrecedents(ctx context.Context, page, pageSize int) ([]*models.TransferRequest, int64, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	precedents, total, err := s.store.TransferRequests().List(ctx, offset, limit)
	if err != nil {
		return nil, 0, storeError(err)
	}
	return precedents, total, nil
}

// validateSubmission runs the tag rules plus the checks that depend on the
// other flags and on the home institution.
func (s *resolutionServiceImpl) validateSubmission(sub *models.Submission) error {
	errs := validation.Errors{}
	errs.Merge(validation.Struct(sub))

	if sub.TransferSchoolOther {
		if !sub.TransferCourseOther {
			errs.Add("transferCourseOther", "a course at an unlisted school must be entered manually")
		}
	} else if sub.TransferSchoolID <= 0 {
		errs.Add("transferSchoolId", "transferSchoolId is required")
	} else if sub.TransferSchoolID == s.config.HomeSchoolID {
		errs.Add("transferSchoolId", "transferSchoolId must reference a transfer school")
	}

	if !sub.TransferCourseOther && sub.TransferCourseID <= 0 {
		errs.Add("transferCourseId", "transferCourseId is required")
	}

	return errs.Err()
}

// checkReferences verifies every catalog id the submission points at. The
// course must belong to the chosen school and the target course to the home
// institution.
func (s *resolutionServiceImpl) checkReferences(ctx context.Context, tx repositories.Store, sub *models.Submission) error {
	if !sub.TransferSchoolOther {
		if _, err := tx.Schools().GetByID(ctx, sub.TransferSchoolID); err != nil {
			return err
		}
		if !sub.TransferCourseOther {
			if _, err := tx.Courses().GetBySchoolAndID(ctx, sub.TransferSchoolID, sub.TransferCourseID); err != nil {
				return err
			}
		}
	}

	if _, err := tx.Courses().GetBySchoolAndID(ctx, s.config.HomeSchoolID, sub.TargetCourseID); err != nil {
		return err
	}
	return nil
}

func (s *resolutionServiceImpl) resolveSchool(ctx context.Context, tx repositories.Store, pending *models.PendingRequest) (*models.School, error) {
	if pending.TransferSchoolOther {
		return tx.Schools().ResolveOrCreate(ctx, pending.SchoolIdentity())
	}
	if pending.TransferSchoolID == nil {
		return nil, apperrors.ErrSchoolNotFound
	}
	return tx.Schools().GetByID(ctx, *pending.TransferSchoolID)
}

func (s *resolutionServiceImpl) resolveCourse(ctx context.Context, tx repositories.Store, schoolID int64, pending *models.PendingRequest) (*models.Course, error) {
	if pending.TransferCourseOther {
		return tx.Courses().ResolveOrCreate(ctx, schoolID, pending.CourseIdentity())
	}
	if pending.TransferCourseID == nil {
		return nil, apperrors.ErrCourseNotFound
	}
	return tx.Courses().GetBySchoolAndID(ctx, schoolID, *pending.TransferCourseID)
}

// precedentCutoff is the oldest decision time still considered usable
func (s *resolutionServiceImpl) precedentCutoff() time.Time {
	return s.now().AddDate(-s.config.PrecedentMaxAgeYears, 0, 0)
}

// precedentEligible reports whether a submission may be matched against
// precedents at all. Dual enrollment and manually entered schools or
// courses always need a person.
func precedentEligible(sub *models.Submission) bool {
	return !sub.DualEnrollment && !sub.TransferSchoolOther && !sub.TransferCourseOther
}

func (s *resolutionServiceImpl) notifyOutcome(ctx context.Context, snapshot models.RequestSnapshot, outcome *models.Outcome) {
	decision, ok := outcome.Decision()
	if !ok {
		return
	}
	s.notifyDecision(ctx, snapshot, decision)
}

func (s *resolutionServiceImpl) notifyDecision(ctx context.Context, snapshot models.RequestSnapshot, decision models.Decision) {
	if err := s.notifier.SendOutcomeEmail(ctx, snapshot.Contact(), snapshot, decision); err != nil {
		s.logNotificationFailure(ctx, err, snapshot.ID, "outcome email")
	}
}

func (s *resolutionServiceImpl) logNotificationFailure(ctx context.Context, err error, requestID int64, kind string) {
	logger.FromContext(ctx, s.logger).Error().
		Err(err).
		Bool("notificationFailure", apperrors.Is(err, apperrors.ErrNotificationFailure)).
		Int64("requestId", requestID).
		Str("notification", kind).
		Msg("Notification failed; committed changes are kept")
}
