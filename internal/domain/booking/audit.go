package booking

import (
	"time"

	"github.com/google/uuid"
)

// AuditEntry is an immutable record of one status transition. Entries are
// append-only; finalized requests change only by audit appends. Lane is
// empty for whole-request events (filing, cancellation), and the status
// fields carry either lane or overall statuses accordingly.
type AuditEntry struct {
	ID         uuid.UUID
	RequestID  uuid.UUID
	Actor      uuid.UUID
	Lane       Lane
	PrevStatus string
	NewStatus  string
	Note       string
	RecordedAt time.Time
}

func NewAuditEntry(requestID, actor uuid.UUID, lane Lane, prev, next string, note string, at time.Time) AuditEntry {
	return AuditEntry{
		ID:         uuid.New(),
		RequestID:  requestID,
		Actor:      actor,
		Lane:       lane,
		PrevStatus: prev,
		NewStatus:  next,
		Note:       note,
		RecordedAt: at,
	}
}
