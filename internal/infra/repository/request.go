package repository

import (
	"context"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/infra"
	"roombook/internal/infra/db"
	"roombook/internal/pkg/pgconv"
	"roombook/internal/usecase/commands"

	"github.com/google/uuid"
)

const requestColumns = `
	id, user_id, date, start_min, end_min, capacity, kind,
	room_status, zoom_status, status, room_id, zoom_id, note,
	room_acted_by, room_acted_at, zoom_acted_by, zoom_acted_at,
	created_at, updated_at`

type RequestRepository struct{}

func NewRequestRepository() commands.RequestRepository {
	return &RequestRepository{}
}

func (r *RequestRepository) Create(ctx context.Context, tx db.DBTX, req *booking.Request) error {
	const query = `
		INSERT INTO booking_requests (
			id, user_id, date, start_min, end_min, capacity, kind,
			room_status, zoom_status, status, room_id, zoom_id, note,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now(), now())`

	_, err := tx.Exec(ctx, query,
		req.ID(), req.UserID(), req.Date(),
		int32(req.Window().Start()), int32(req.Window().End()),
		req.Capacity(), req.Kind().String(),
		req.RoomStatus().String(), req.ZoomStatus().String(), req.Status().String(),
		req.AssignedID(booking.LaneRoom), req.AssignedID(booking.LaneZoom),
		req.Note(),
	)
	if err != nil {
		if pgconv.IsForeignKeyViolation(err) {
			return infra.WrapRepoErr("request references unknown row", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to create request", err)
	}
	return nil
}

func (r *RequestRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Request, error) {
	query := `SELECT ` + requestColumns + ` FROM booking_requests WHERE id = $1 FOR UPDATE`

	req, err := scanRequest(tx.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock request", err)
	}
	return req, nil
}

func (r *RequestRepository) Update(ctx context.Context, tx db.DBTX, req *booking.Request) error {
	const query = `
		UPDATE booking_requests SET
			room_status = $2, zoom_status = $3, status = $4,
			room_id = $5, zoom_id = $6,
			room_acted_by = $7, room_acted_at = $8,
			zoom_acted_by = $9, zoom_acted_at = $10,
			updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query,
		req.ID(),
		req.RoomStatus().String(), req.ZoomStatus().String(), req.Status().String(),
		req.RoomID(), req.ZoomID(),
		req.RoomActedBy(), req.RoomActedAt(),
		req.ZoomActedBy(), req.ZoomActedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update request", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("request not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RequestRepository) HasApprovedOverlap(
	ctx context.Context,
	tx db.DBTX,
	resourceID uuid.UUID,
	lane booking.Lane,
	date time.Time,
	window booking.TimeWindow,
	excludeRequestID uuid.UUID,
) (bool, error) {
	// Half-open interval intersection; back-to-back windows never match.
	// Only approved lanes of live requests count here: the pending tier of
	// blocking is the availability reader's concern, this guards the hard
	// invariant that approved holders never double-book.
	query := `
		SELECT EXISTS (
			SELECT 1 FROM booking_requests
			WHERE date = $1
			  AND room_id = $2
			  AND room_status = 'approved'
			  AND status NOT IN ('rejected', 'cancelled')
			  AND id <> $3
			  AND start_min < $5 AND $4 < end_min
		)`
	if lane == booking.LaneZoom {
		query = `
		SELECT EXISTS (
			SELECT 1 FROM booking_requests
			WHERE date = $1
			  AND zoom_id = $2
			  AND zoom_status = 'approved'
			  AND status NOT IN ('rejected', 'cancelled')
			  AND id <> $3
			  AND start_min < $5 AND $4 < end_min
		)`
	}

	var exists bool
	err := tx.QueryRow(ctx, query,
		booking.NormalizeDate(date), resourceID, excludeRequestID,
		int32(window.Start()), int32(window.End()),
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check approved overlap", err)
	}
	return exists, nil
}

// rowScanner is the subset of pgx.Row/pgx.Rows both scan paths share.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*booking.Request, error) {
	var (
		id, userID         uuid.UUID
		date               time.Time
		startMin, endMin   int32
		capacity           int32
		kind               string
		roomStatus         string
		zoomStatus         string
		status             string
		roomID, zoomID     *uuid.UUID
		note               string
		roomActedBy        *uuid.UUID
		roomActedAt        *time.Time
		zoomActedBy        *uuid.UUID
		zoomActedAt        *time.Time
		createdAt, updated time.Time
	)

	err := row.Scan(
		&id, &userID, &date, &startMin, &endMin, &capacity, &kind,
		&roomStatus, &zoomStatus, &status, &roomID, &zoomID, &note,
		&roomActedBy, &roomActedAt, &zoomActedBy, &zoomActedAt,
		&createdAt, &updated,
	)
	if err != nil {
		return nil, err
	}

	window, err := booking.NewTimeWindow(booking.TimeOfDay(startMin), booking.TimeOfDay(endMin))
	if err != nil {
		return nil, err
	}

	return booking.ReconstructRequest(
		id, userID, date, window, capacity,
		booking.RequestKind(kind),
		booking.LaneStatus(roomStatus), booking.LaneStatus(zoomStatus),
		booking.Status(status),
		roomID, zoomID, note,
		roomActedBy, roomActedAt, zoomActedBy, zoomActedAt,
		createdAt, updated,
	), nil
}
