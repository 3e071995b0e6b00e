package queries

import (
	"context"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/resource"

	"github.com/google/uuid"
)

// ResourceView is the read-model projection of a bookable resource.
type ResourceView struct {
	ID       uuid.UUID
	Kind     resource.Kind
	Name     string
	Capacity int32
	Active   bool
}

// SlotOption pairs an alternative time window with the resource free in it.
type SlotOption struct {
	Window   booking.TimeWindow
	Resource ResourceView
}

// RequestView is the read-model projection of a booking request.
type RequestView struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Date        time.Time
	Start       booking.TimeOfDay
	End         booking.TimeOfDay
	Capacity    int32
	Kind        booking.RequestKind
	RoomStatus  booking.LaneStatus
	ZoomStatus  booking.LaneStatus
	Status      booking.Status
	RoomID      *uuid.UUID
	RoomName    *string
	ZoomID      *uuid.UUID
	ZoomName    *string
	Note        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// AuditView is one immutable transition record.
type AuditView struct {
	ID         uuid.UUID
	RequestID  uuid.UUID
	Actor      uuid.UUID
	Lane       booking.Lane
	PrevStatus string
	NewStatus  string
	Note       string
	RecordedAt time.Time
}

// ResourceReadStore lists active resources of one kind with at least the
// requested capacity, ordered capacity asc then name asc. The ordering is
// part of the contract: selection must be reproducible.
type ResourceReadStore interface {
	FindActiveByKind(ctx context.Context, kind resource.Kind, minCapacity int32) ([]ResourceView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
}

// ReservationReadStore fetches the blocking windows already held against one
// resource on one date. Blocking means the owning lane is pending or
// approved and the request as a whole is not rejected or cancelled.
type ReservationReadStore interface {
	FindBlockingWindows(ctx context.Context, resourceID uuid.UUID, kind resource.Kind, date time.Time) ([]booking.TimeWindow, error)
}

// RequestReadStore serves request detail and list views.
type RequestReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RequestView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*RequestView, error)
	FindAuditTrail(ctx context.Context, requestID uuid.UUID) ([]*AuditView, error)
}
