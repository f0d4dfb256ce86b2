package services

import (
	"context"

	"github.com/yigit/creditbridge/internal/app/models"
)

// Notifier delivers the messages produced by the resolution engine. Every
// call happens after the related store changes are committed; a failure is
// logged by the caller and never undoes those changes.
type Notifier interface {
	// SendOutcomeEmail tells the requester how their request was decided.
	SendOutcomeEmail(ctx context.Context, contact models.Contact, snapshot models.RequestSnapshot, decision models.Decision) error
	// SendAdminPendingNotice tells administrators a request joined the queue.
	SendAdminPendingNotice(ctx context.Context, snapshot models.RequestSnapshot) error
}
