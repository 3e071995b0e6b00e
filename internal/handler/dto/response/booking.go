package response

import (
	"time"

	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"userId"`
	Date       string     `json:"date"`
	Start      string     `json:"start"`
	End        string     `json:"end"`
	Capacity   int32      `json:"capacity"`
	Kind       string     `json:"kind"`
	RoomStatus string     `json:"roomStatus"`
	ZoomStatus string     `json:"zoomStatus"`
	Status     string     `json:"status"`
	RoomID     *uuid.UUID `json:"roomId,omitempty"`
	RoomName   *string    `json:"roomName,omitempty"`
	ZoomID     *uuid.UUID `json:"zoomId,omitempty"`
	ZoomName   *string    `json:"zoomName,omitempty"`
	Note       string     `json:"note,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

func FromRequestView(view *queries.RequestView) *BookingResponse {
	return &BookingResponse{
		ID:         view.ID,
		UserID:     view.UserID,
		Date:       view.Date.Format("2006-01-02"),
		Start:      view.Start.String(),
		End:        view.End.String(),
		Capacity:   view.Capacity,
		Kind:       view.Kind.String(),
		RoomStatus: view.RoomStatus.String(),
		ZoomStatus: view.ZoomStatus.String(),
		Status:     view.Status.String(),
		RoomID:     view.RoomID,
		RoomName:   view.RoomName,
		ZoomID:     view.ZoomID,
		ZoomName:   view.ZoomName,
		Note:       view.Note,
		CreatedAt:  view.CreatedAt,
		UpdatedAt:  view.UpdatedAt,
	}
}

type AuditEntryResponse struct {
	ID         uuid.UUID `json:"id"`
	Actor      uuid.UUID `json:"actor"`
	Lane       string    `json:"lane,omitempty"`
	PrevStatus string    `json:"prevStatus,omitempty"`
	NewStatus  string    `json:"newStatus"`
	Note       string    `json:"note,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
}

func FromAuditView(view *queries.AuditView) *AuditEntryResponse {
	return &AuditEntryResponse{
		ID:         view.ID,
		Actor:      view.Actor,
		Lane:       view.Lane.String(),
		PrevStatus: view.PrevStatus,
		NewStatus:  view.NewStatus,
		Note:       view.Note,
		RecordedAt: view.RecordedAt,
	}
}

type ResourceResponse struct {
	ID       uuid.UUID `json:"id"`
	Kind     string    `json:"kind"`
	Name     string    `json:"name"`
	Capacity int32     `json:"capacity"`
}

func FromResourceView(view queries.ResourceView) ResourceResponse {
	return ResourceResponse{
		ID:       view.ID,
		Kind:     view.Kind.String(),
		Name:     view.Name,
		Capacity: view.Capacity,
	}
}

type SlotOptionResponse struct {
	Start    string           `json:"start"`
	End      string           `json:"end"`
	Resource ResourceResponse `json:"resource"`
}

func FromSlotOption(option queries.SlotOption) SlotOptionResponse {
	return SlotOptionResponse{
		Start:    option.Window.Start().String(),
		End:      option.Window.End().String(),
		Resource: FromResourceView(option.Resource),
	}
}

type DecisionResponse struct {
	CanAutoApprove  bool                            `json:"canAutoApprove"`
	Room            *ResourceResponse               `json:"room,omitempty"`
	Zoom            *ResourceResponse               `json:"zoom,omitempty"`
	Alternatives    map[string][]SlotOptionResponse `json:"alternatives,omitempty"`
	Recommendations []string                        `json:"recommendations,omitempty"`
}

func FromDecision(decision *queries.Decision) *DecisionResponse {
	resp := &DecisionResponse{
		CanAutoApprove:  decision.CanAutoApprove,
		Recommendations: decision.Recommendations,
	}
	if decision.Room != nil {
		room := FromResourceView(*decision.Room)
		resp.Room = &room
	}
	if decision.Zoom != nil {
		zoom := FromResourceView(*decision.Zoom)
		resp.Zoom = &zoom
	}
	if len(decision.Alternatives) > 0 {
		resp.Alternatives = make(map[string][]SlotOptionResponse, len(decision.Alternatives))
		for kind, options := range decision.Alternatives {
			converted := make([]SlotOptionResponse, len(options))
			for i, option := range options {
				converted[i] = FromSlotOption(option)
			}
			resp.Alternatives[kind.String()] = converted
		}
	}
	return resp
}

type CreateBookingResponse struct {
	Request  *BookingResponse  `json:"request"`
	Decision *DecisionResponse `json:"decision"`
}

type AvailabilityResponse struct {
	Resources []ResourceResponse `json:"resources"`
}

func FromResourceViews(views []queries.ResourceView) AvailabilityResponse {
	resources := make([]ResourceResponse, len(views))
	for i, view := range views {
		resources[i] = FromResourceView(view)
	}
	return AvailabilityResponse{Resources: resources}
}

type AlternativesResponse struct {
	Alternatives []SlotOptionResponse `json:"alternatives"`
}

func FromSlotOptions(options []queries.SlotOption) AlternativesResponse {
	converted := make([]SlotOptionResponse, len(options))
	for i, option := range options {
		converted[i] = FromSlotOption(option)
	}
	return AlternativesResponse{Alternatives: converted}
}
