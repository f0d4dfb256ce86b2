package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/creditbridge/internal/app/models"
	"github.com/yigit/creditbridge/internal/pkg/apperrors"
	"github.com/yigit/creditbridge/internal/pkg/websocket"
)

// Mailer sends requester and administrator emails
type Mailer interface {
	SendOutcomeEmail(ctx context.Context, contact models.Contact, snapshot models.RequestSnapshot, decision models.Decision) error
	SendAdminPendingNotice(ctx context.Context, snapshot models.RequestSnapshot) error
}

// Publisher pushes queue events to connected administrators
type Publisher interface {
	Publish(ctx context.Context, event *websocket.Event) error
}

// Fanout delivers every notification to the mailer and, when configured,
// the live feed. Every sink is attempted even if an earlier one fails.
type Fanout struct {
	mailer Mailer
	feed   Publisher
	logger zerolog.Logger
}

// NewFanout creates a notifier. feed may be nil when the live feed is disabled.
func NewFanout(mailer Mailer, feed Publisher, logger zerolog.Logger) *Fanout {
	return &Fanout{
		mailer: mailer,
		feed:   feed,
		logger: logger,
	}
}

// SendOutcomeEmail emails the requester. Decisions on queued requests are
// also published so other administrators see the item leave the queue.
func (f *Fanout) SendOutcomeEmail(ctx context.Context, contact models.Contact, snapshot models.RequestSnapshot, decision models.Decision) error {
	var errs []error

	if err := f.mailer.SendOutcomeEmail(ctx, contact, snapshot, decision); err != nil {
		errs = append(errs, fmt.Errorf("outcome email: %w", err))
	}

	// Rejected and auto-resolved submissions were never queued.
	if f.feed != nil && snapshot.ID > 0 {
		eventType := websocket.EventDisapproved
		if decision.Approved {
			eventType = websocket.EventApproved
		}

		event := newEvent(eventType, snapshot)
		event.Reasons = decision.Reasons
		if err := f.publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	return wrap(errs)
}

// SendAdminPendingNotice emails the administrators and publishes the new queue item
func (f *Fanout) SendAdminPendingNotice(ctx context.Context, snapshot models.RequestSnapshot) error {
	var errs []error

	if err := f.mailer.SendAdminPendingNotice(ctx, snapshot); err != nil {
		errs = append(errs, fmt.Errorf("admin email: %w", err))
	}

	if f.feed != nil {
		if err := f.publish(ctx, newEvent(websocket.EventQueued, snapshot)); err != nil {
			errs = append(errs, err)
		}
	}

	return wrap(errs)
}

func (f *Fanout) publish(ctx context.Context, event *websocket.Event) error {
	if err := f.feed.Publish(ctx, event); err != nil {
		return fmt.Errorf("live feed: %w", err)
	}
	f.logger.Debug().
		Str("type", string(event.Type)).
		Int64("pendingRequestId", event.PendingRequestID).
		Msg("Published live feed event")
	return nil
}

func newEvent(eventType websocket.EventType, snapshot models.RequestSnapshot) *websocket.Event {
	return &websocket.Event{
		Type:             eventType,
		PendingRequestID: snapshot.ID,
		RequesterName:    snapshot.RequesterName,
		RequesterEmail:   snapshot.RequesterEmail,
		DualEnrollment:   snapshot.DualEnrollment,
	}
}

func wrap(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", apperrors.ErrNotificationFailure, errors.Join(errs...))
}
