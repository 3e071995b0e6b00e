package queries

import (
	"context"
	"fmt"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/resource"
	"roombook/internal/pkg/errs"
)

// EvaluationSpec is a candidate request before it is filed.
type EvaluationSpec struct {
	Kind     booking.RequestKind
	Date     time.Time
	Window   booking.TimeWindow
	Capacity int32
}

// Decision is pure decision support: the caller chooses whether to act on it.
type Decision struct {
	CanAutoApprove  bool
	Room            *ResourceView
	Zoom            *ResourceView
	Alternatives    map[resource.Kind][]SlotOption
	Recommendations []string
}

type EvaluationQueries interface {
	// Evaluate runs the optimal selector for every resource kind the request
	// needs. Auto-approval qualifies only when every required kind found a
	// resource; partial availability never qualifies.
	Evaluate(ctx context.Context, spec EvaluationSpec) (*Decision, error)
}

type evaluationQueriesImpl struct {
	availability AvailabilityQueries
}

func NewEvaluationQueries(availability AvailabilityQueries) EvaluationQueries {
	return &evaluationQueriesImpl{availability: availability}
}

func (q *evaluationQueriesImpl) Evaluate(ctx context.Context, spec EvaluationSpec) (*Decision, error) {
	if !spec.Kind.IsValid() {
		return nil, errs.ErrInvalidRequestKind
	}

	decision := &Decision{
		CanAutoApprove: true,
		Alternatives:   make(map[resource.Kind][]SlotOption),
	}

	if spec.Kind.NeedsRoom() {
		if err := q.evaluateKind(ctx, spec, resource.KindRoom, decision); err != nil {
			return nil, err
		}
	}
	if spec.Kind.NeedsZoom() {
		if err := q.evaluateKind(ctx, spec, resource.KindZoom, decision); err != nil {
			return nil, err
		}
	}

	return decision, nil
}

func (q *evaluationQueriesImpl) evaluateKind(ctx context.Context, spec EvaluationSpec, kind resource.Kind, decision *Decision) error {
	availSpec := AvailabilitySpec{
		Kind:     kind,
		Date:     spec.Date,
		Window:   spec.Window,
		Capacity: spec.Capacity,
	}

	found, err := q.availability.FindOptimal(ctx, availSpec)
	if err != nil {
		return err
	}

	if found != nil {
		switch kind {
		case resource.KindRoom:
			decision.Room = found
		case resource.KindZoom:
			decision.Zoom = found
		}
		decision.Recommendations = append(decision.Recommendations,
			fmt.Sprintf("%s %q (capacity %d) is free %s", kind, found.Name, found.Capacity, spec.Window))
		return nil
	}

	decision.CanAutoApprove = false

	alternatives, err := q.availability.FindAlternativeSlots(ctx, availSpec)
	if err != nil {
		return err
	}
	decision.Alternatives[kind] = alternatives

	if len(alternatives) == 0 {
		decision.Recommendations = append(decision.Recommendations,
			fmt.Sprintf("no %s is free %s and no alternative slot was found", kind, spec.Window))
		return nil
	}

	first := alternatives[0]
	decision.Recommendations = append(decision.Recommendations,
		fmt.Sprintf("no %s is free %s; nearest alternative is %s in %q", kind, spec.Window, first.Window, first.Resource.Name))
	return nil
}
