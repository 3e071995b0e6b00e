package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCapacity    = errors.New("capacity must be positive")
	ErrInvalidRequestKind = errors.New("unknown request kind")
	ErrLaneNotRequired    = errors.New("lane not required for this request")
	ErrLaneFinalized      = errors.New("request already finalized for this lane")
	ErrNotCancellable     = errors.New("request can no longer be cancelled")
	ErrNotOwner           = errors.New("only the owner may cancel a request")
	ErrMissingResource    = errors.New("approval requires a resource assignment")
)

// Request is a room/zoom booking request moving through two independent
// approval lanes. All lane mutations go through ApproveLane / RejectLane /
// Cancel so the derived overall status can never drift from the sub-statuses.
type Request struct {
	id         uuid.UUID
	userID     uuid.UUID
	date       time.Time
	window     TimeWindow
	capacity   int32
	kind       RequestKind
	roomStatus LaneStatus
	zoomStatus LaneStatus
	status     Status
	roomID     *uuid.UUID
	zoomID     *uuid.UUID
	note       string

	roomActedBy *uuid.UUID
	roomActedAt *time.Time
	zoomActedBy *uuid.UUID
	zoomActedAt *time.Time

	createdAt time.Time
	updatedAt time.Time
}

func NewRequest(userID uuid.UUID, date time.Time, window TimeWindow, capacity int32, kind RequestKind, note string) (*Request, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if !kind.IsValid() {
		return nil, ErrInvalidRequestKind
	}

	roomStatus := LaneNotRequired
	if kind.NeedsRoom() {
		roomStatus = LanePending
	}
	zoomStatus := LaneNotRequired
	if kind.NeedsZoom() {
		zoomStatus = LanePending
	}

	return &Request{
		id:         uuid.New(),
		userID:     userID,
		date:       NormalizeDate(date),
		window:     window,
		capacity:   capacity,
		kind:       kind,
		roomStatus: roomStatus,
		zoomStatus: zoomStatus,
		status:     StatusPending,
		note:       note,
	}, nil
}

func ReconstructRequest(
	id, userID uuid.UUID,
	date time.Time,
	window TimeWindow,
	capacity int32,
	kind RequestKind,
	roomStatus, zoomStatus LaneStatus,
	status Status,
	roomID, zoomID *uuid.UUID,
	note string,
	roomActedBy *uuid.UUID, roomActedAt *time.Time,
	zoomActedBy *uuid.UUID, zoomActedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Request {
	return &Request{
		id:          id,
		userID:      userID,
		date:        NormalizeDate(date),
		window:      window,
		capacity:    capacity,
		kind:        kind,
		roomStatus:  roomStatus,
		zoomStatus:  zoomStatus,
		status:      status,
		roomID:      roomID,
		zoomID:      zoomID,
		note:        note,
		roomActedBy: roomActedBy,
		roomActedAt: roomActedAt,
		zoomActedBy: zoomActedBy,
		zoomActedAt: zoomActedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// NormalizeDate truncates to the calendar day in UTC.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (r *Request) LaneStatus(lane Lane) LaneStatus {
	if lane == LaneRoom {
		return r.roomStatus
	}
	return r.zoomStatus
}

// ApproveLane marks one lane approved and records the resource won by the
// request. The lane must still be pending; the first actor to commit wins
// and every later attempt observes ErrLaneFinalized.
func (r *Request) ApproveLane(lane Lane, actor uuid.UUID, resourceID uuid.UUID, now time.Time) error {
	if resourceID == uuid.Nil {
		return ErrMissingResource
	}
	if err := r.checkLaneActable(lane); err != nil {
		return err
	}

	id := resourceID
	switch lane {
	case LaneRoom:
		r.roomStatus = LaneApproved
		r.roomID = &id
		r.roomActedBy = &actor
		r.roomActedAt = &now
	case LaneZoom:
		r.zoomStatus = LaneApproved
		r.zoomID = &id
		r.zoomActedBy = &actor
		r.zoomActedAt = &now
	}
	r.deriveStatus()
	r.updatedAt = now
	return nil
}

// RejectLane marks one lane rejected. A rejection by either lane forces the
// overall status to rejected, also for "both" requests.
func (r *Request) RejectLane(lane Lane, actor uuid.UUID, now time.Time) error {
	if err := r.checkLaneActable(lane); err != nil {
		return err
	}

	switch lane {
	case LaneRoom:
		r.roomStatus = LaneRejected
		r.roomID = nil
		r.roomActedBy = &actor
		r.roomActedAt = &now
	case LaneZoom:
		r.zoomStatus = LaneRejected
		r.zoomID = nil
		r.zoomActedBy = &actor
		r.zoomActedAt = &now
	}
	r.deriveStatus()
	r.updatedAt = now
	return nil
}

// Cancel is reachable only from overall pending and only by the owner.
func (r *Request) Cancel(actor uuid.UUID, now time.Time) error {
	if actor != r.userID {
		return ErrNotOwner
	}
	if r.status != StatusPending {
		return ErrNotCancellable
	}
	// Lane sub-statuses stay as filed; the overall cancelled status stops
	// them from blocking and from being acted on.
	r.roomID = nil
	r.zoomID = nil
	r.status = StatusCancelled
	r.updatedAt = now
	return nil
}

func (r *Request) checkLaneActable(lane Lane) error {
	status := r.LaneStatus(lane)
	if status == LaneNotRequired {
		return ErrLaneNotRequired
	}
	if status != LanePending {
		return ErrLaneFinalized
	}
	if r.status == StatusCancelled || r.status == StatusRejected {
		return ErrLaneFinalized
	}
	return nil
}

func (r *Request) deriveStatus() {
	switch r.kind {
	case KindRoom:
		r.status = laneTerminal(r.roomStatus)
	case KindZoom:
		r.status = laneTerminal(r.zoomStatus)
	case KindBoth:
		switch {
		case r.roomStatus == LaneRejected || r.zoomStatus == LaneRejected:
			r.status = StatusRejected
		case r.roomStatus == LaneApproved && r.zoomStatus == LaneApproved:
			r.status = StatusApproved
		case r.roomStatus == LaneApproved || r.zoomStatus == LaneApproved:
			r.status = StatusPartialApproved
		default:
			r.status = StatusPending
		}
	}
}

func laneTerminal(s LaneStatus) Status {
	switch s {
	case LaneApproved:
		return StatusApproved
	case LaneRejected:
		return StatusRejected
	default:
		return StatusPending
	}
}

// SetTentativeAssignment records the resource a pending request is expected
// to win. Pending assignments participate in conflict detection as a soft
// constraint; the approval transaction re-validates against approved holders.
func (r *Request) SetTentativeAssignment(lane Lane, resourceID uuid.UUID) {
	id := resourceID
	switch lane {
	case LaneRoom:
		if r.roomStatus == LanePending {
			r.roomID = &id
		}
	case LaneZoom:
		if r.zoomStatus == LanePending {
			r.zoomID = &id
		}
	}
}

func (r *Request) ID() uuid.UUID          { return r.id }
func (r *Request) UserID() uuid.UUID      { return r.userID }
func (r *Request) Date() time.Time        { return r.date }
func (r *Request) Window() TimeWindow     { return r.window }
func (r *Request) Capacity() int32        { return r.capacity }
func (r *Request) Kind() RequestKind      { return r.kind }
func (r *Request) RoomStatus() LaneStatus { return r.roomStatus }
func (r *Request) ZoomStatus() LaneStatus { return r.zoomStatus }
func (r *Request) Status() Status         { return r.status }
func (r *Request) RoomID() *uuid.UUID     { return r.roomID }
func (r *Request) ZoomID() *uuid.UUID     { return r.zoomID }
func (r *Request) Note() string           { return r.note }
func (r *Request) RoomActedBy() *uuid.UUID { return r.roomActedBy }
func (r *Request) RoomActedAt() *time.Time { return r.roomActedAt }
func (r *Request) ZoomActedBy() *uuid.UUID { return r.zoomActedBy }
func (r *Request) ZoomActedAt() *time.Time { return r.zoomActedAt }
func (r *Request) CreatedAt() time.Time   { return r.createdAt }
func (r *Request) UpdatedAt() time.Time   { return r.updatedAt }

// AssignedID returns the assignment slot for a lane.
func (r *Request) AssignedID(lane Lane) *uuid.UUID {
	if lane == LaneRoom {
		return r.roomID
	}
	return r.zoomID
}
