package booking

// RequestKind is the resource combination a request needs.
type RequestKind string

const (
	KindRoom RequestKind = "room"
	KindZoom RequestKind = "zoom"
	KindBoth RequestKind = "both"
)

func (k RequestKind) String() string {
	return string(k)
}

func (k RequestKind) IsValid() bool {
	switch k {
	case KindRoom, KindZoom, KindBoth:
		return true
	default:
		return false
	}
}

func (k RequestKind) NeedsRoom() bool {
	return k == KindRoom || k == KindBoth
}

func (k RequestKind) NeedsZoom() bool {
	return k == KindZoom || k == KindBoth
}

// Lane is an independent approval track with its own actor role.
type Lane string

const (
	LaneRoom Lane = "room"
	LaneZoom Lane = "zoom"
)

func (l Lane) String() string {
	return string(l)
}

// LaneStatus is the per-lane approval sub-status.
type LaneStatus string

const (
	LaneNotRequired LaneStatus = "not_required"
	LanePending     LaneStatus = "pending"
	LaneApproved    LaneStatus = "approved"
	LaneRejected    LaneStatus = "rejected"
)

func (s LaneStatus) String() string {
	return string(s)
}

func (s LaneStatus) IsValid() bool {
	switch s {
	case LaneNotRequired, LanePending, LaneApproved, LaneRejected:
		return true
	default:
		return false
	}
}

// Blocking sub-statuses count toward conflict detection; rejected and
// cancelled requests never block a resource.
func (s LaneStatus) IsBlocking() bool {
	return s == LanePending || s == LaneApproved
}

// Status is the overall request status derived from the two lanes.
type Status string

const (
	StatusPending         Status = "pending"
	StatusPartialApproved Status = "partial_approved"
	StatusApproved        Status = "approved"
	StatusRejected        Status = "rejected"
	StatusCancelled       Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPartialApproved, StatusApproved, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}
