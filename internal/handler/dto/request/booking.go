package request

import (
	"strings"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/resource"
	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type CreateBookingRequest struct {
	Date     string `json:"date" binding:"required"`
	Start    string `json:"start" binding:"required"`
	End      string `json:"end" binding:"required"`
	Capacity int32  `json:"capacity" binding:"required"`
	Kind     string `json:"kind" binding:"required,oneof=room zoom both"`
	Note     string `json:"note"`
}

func (r CreateBookingRequest) ParseDate() (time.Time, error) {
	return time.Parse(dateLayout, r.Date)
}

func (r CreateBookingRequest) ParseWindow() (booking.TimeWindow, error) {
	start, err := booking.ParseTimeOfDay(r.Start)
	if err != nil {
		return booking.TimeWindow{}, err
	}
	end, err := booking.ParseTimeOfDay(r.End)
	if err != nil {
		return booking.TimeWindow{}, err
	}
	return booking.NewTimeWindow(start, end)
}

func (r CreateBookingRequest) ParsedKind() booking.RequestKind {
	return booking.RequestKind(r.Kind)
}

func (r CreateBookingRequest) TrimmedNote() string {
	return strings.TrimSpace(r.Note)
}

type ApproveLaneRequest struct {
	// ResourceID pins a specific resource; omitted means auto-select.
	ResourceID *uuid.UUID `json:"resource_id,omitempty"`
	Note       string     `json:"note"`
}

type RejectLaneRequest struct {
	Note string `json:"note"`
}

// AvailabilityQuery carries the shared query-string shape of the three
// availability endpoints.
type AvailabilityQuery struct {
	Kind     string `form:"kind" binding:"required,oneof=room zoom"`
	Date     string `form:"date" binding:"required"`
	Start    string `form:"start" binding:"required"`
	End      string `form:"end" binding:"required"`
	Capacity int32  `form:"capacity" binding:"required"`
}

func (q AvailabilityQuery) ToSpec() (queries.AvailabilitySpec, error) {
	date, err := time.Parse(dateLayout, q.Date)
	if err != nil {
		return queries.AvailabilitySpec{}, err
	}
	start, err := booking.ParseTimeOfDay(q.Start)
	if err != nil {
		return queries.AvailabilitySpec{}, err
	}
	end, err := booking.ParseTimeOfDay(q.End)
	if err != nil {
		return queries.AvailabilitySpec{}, err
	}
	window, err := booking.NewTimeWindow(start, end)
	if err != nil {
		return queries.AvailabilitySpec{}, err
	}
	return queries.AvailabilitySpec{
		Kind:     resource.Kind(q.Kind),
		Date:     date,
		Window:   window,
		Capacity: q.Capacity,
	}, nil
}

// EvaluateRequest mirrors CreateBookingRequest without filing anything.
type EvaluateRequest struct {
	Date     string `json:"date" binding:"required"`
	Start    string `json:"start" binding:"required"`
	End      string `json:"end" binding:"required"`
	Capacity int32  `json:"capacity" binding:"required"`
	Kind     string `json:"kind" binding:"required,oneof=room zoom both"`
}

func (r EvaluateRequest) ToSpec() (queries.EvaluationSpec, error) {
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return queries.EvaluationSpec{}, err
	}
	start, err := booking.ParseTimeOfDay(r.Start)
	if err != nil {
		return queries.EvaluationSpec{}, err
	}
	end, err := booking.ParseTimeOfDay(r.End)
	if err != nil {
		return queries.EvaluationSpec{}, err
	}
	window, err := booking.NewTimeWindow(start, end)
	if err != nil {
		return queries.EvaluationSpec{}, err
	}
	return queries.EvaluationSpec{
		Kind:     booking.RequestKind(r.Kind),
		Date:     date,
		Window:   window,
		Capacity: r.Capacity,
	}, nil
}
