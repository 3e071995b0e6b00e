package queries

import (
	"context"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/resource"
	"roombook/internal/pkg/errs"
)

// Alternative slot search envelope: working hours, fixed step, bounded
// result count. This is a first-N report in time order, not an optimizer.
const (
	workdayStartMinute = 8 * 60  // 08:00
	workdayEndMinute   = 17 * 60 // 17:00
	slotStepMinutes    = 30
	maxAlternatives    = 3
)

// AvailabilitySpec describes one availability question. All lookups are
// read-only snapshots; they are not serialized against in-flight approvals.
type AvailabilitySpec struct {
	Kind     resource.Kind
	Date     time.Time
	Window   booking.TimeWindow
	Capacity int32
}

type AvailabilityQueries interface {
	// FindAvailable returns every fitting resource with no blocking overlap,
	// ordered capacity asc then name asc.
	FindAvailable(ctx context.Context, spec AvailabilitySpec) ([]ResourceView, error)
	// FindOptimal returns the least-capacity sufficient resource, or nil
	// when nothing is free. Absence is not an error.
	FindOptimal(ctx context.Context, spec AvailabilitySpec) (*ResourceView, error)
	// FindAlternativeSlots reports up to three same-duration windows inside
	// working hours where a resource is free, in chronological order.
	FindAlternativeSlots(ctx context.Context, spec AvailabilitySpec) ([]SlotOption, error)
}

type availabilityQueriesImpl struct {
	resources    ResourceReadStore
	reservations ReservationReadStore
}

func NewAvailabilityQueries(resources ResourceReadStore, reservations ReservationReadStore) AvailabilityQueries {
	return &availabilityQueriesImpl{
		resources:    resources,
		reservations: reservations,
	}
}

func (q *availabilityQueriesImpl) FindAvailable(ctx context.Context, spec AvailabilitySpec) ([]ResourceView, error) {
	if err := validateSpec(spec); err != nil {
		return nil, err
	}

	candidates, err := q.resources.FindActiveByKind(ctx, spec.Kind, spec.Capacity)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	available := make([]ResourceView, 0, len(candidates))
	for _, candidate := range candidates {
		free, err := q.isFree(ctx, candidate, spec)
		if err != nil {
			return nil, err
		}
		if free {
			available = append(available, candidate)
		}
	}

	return available, nil
}

func (q *availabilityQueriesImpl) FindOptimal(ctx context.Context, spec AvailabilitySpec) (*ResourceView, error) {
	if err := validateSpec(spec); err != nil {
		return nil, err
	}

	// The store orders by capacity then name, so the first free candidate
	// is the least-capacity fit and ties break deterministically.
	candidates, err := q.resources.FindActiveByKind(ctx, spec.Kind, spec.Capacity)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	for _, candidate := range candidates {
		free, err := q.isFree(ctx, candidate, spec)
		if err != nil {
			return nil, err
		}
		if free {
			found := candidate
			return &found, nil
		}
	}

	return nil, nil
}

func (q *availabilityQueriesImpl) FindAlternativeSlots(ctx context.Context, spec AvailabilitySpec) ([]SlotOption, error) {
	if err := validateSpec(spec); err != nil {
		return nil, err
	}

	duration := spec.Window.Duration()
	options := make([]SlotOption, 0, maxAlternatives)

	for startMin := workdayStartMinute; startMin+int(duration.Minutes()) <= workdayEndMinute; startMin += slotStepMinutes {
		start := booking.TimeOfDay(startMin)
		end, ok := start.Add(duration)
		if !ok {
			break
		}
		window, err := booking.NewTimeWindow(start, end)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrInvalidTimeWindow)
		}
		if window == spec.Window {
			// the requested window is known unavailable when the finder runs
			continue
		}

		candidate := spec
		candidate.Window = window
		found, err := q.FindOptimal(ctx, candidate)
		if err != nil {
			return nil, err
		}
		if found == nil {
			continue
		}

		options = append(options, SlotOption{Window: window, Resource: *found})
		if len(options) == maxAlternatives {
			break
		}
	}

	return options, nil
}

func (q *availabilityQueriesImpl) isFree(ctx context.Context, candidate ResourceView, spec AvailabilitySpec) (bool, error) {
	blocking, err := q.reservations.FindBlockingWindows(ctx, candidate.ID, spec.Kind, spec.Date)
	if err != nil {
		return false, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	for _, held := range blocking {
		if spec.Window.Overlaps(held) {
			return false, nil
		}
	}
	return true, nil
}

func validateSpec(spec AvailabilitySpec) error {
	if !spec.Kind.IsValid() {
		return errs.ErrInvalidResourceKind
	}
	if spec.Date.IsZero() {
		return errs.ErrInvalidTimeWindow
	}
	if spec.Capacity <= 0 {
		return errs.ErrInvalidCapacity
	}
	if !spec.Window.Start().Before(spec.Window.End()) {
		return errs.ErrInvalidTimeWindow
	}
	return nil
}
