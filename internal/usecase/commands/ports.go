package commands

import (
	"context"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/resource"
	"roombook/internal/domain/user"
	"roombook/internal/infra/db"

	"github.com/google/uuid"
)

// RequestRepository is the write side of booking request persistence. All
// mutating calls run against the transaction handle the command opened.
type RequestRepository interface {
	Create(ctx context.Context, tx db.DBTX, req *booking.Request) error
	// FindByIDForUpdate locks the request row so concurrent lane actions
	// serialize; the loser of a race observes the committed state.
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Request, error)
	Update(ctx context.Context, tx db.DBTX, req *booking.Request) error
	// HasApprovedOverlap reports whether another request already holds the
	// resource with an approved lane for an overlapping window on the date.
	HasApprovedOverlap(ctx context.Context, tx db.DBTX, resourceID uuid.UUID, lane booking.Lane, date time.Time, window booking.TimeWindow, excludeRequestID uuid.UUID) (bool, error)
}

type ResourceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
}

type AuditRepository interface {
	Append(ctx context.Context, tx db.DBTX, entry booking.AuditEntry) error
}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

// Notifier delivers a best-effort user notification after a committed
// transition. Failures are logged by the caller and never surfaced.
type Notifier interface {
	Notify(ctx context.Context, userID, requestID uuid.UUID, message, category string) error
}
