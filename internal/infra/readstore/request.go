package readstore

import (
	"context"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/infra"
	"roombook/internal/infra/db"
	"roombook/internal/pkg/pgconv"
	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
)

const requestViewColumns = `
	r.id, r.user_id, r.date, r.start_min, r.end_min, r.capacity, r.kind,
	r.room_status, r.zoom_status, r.status, r.room_id, room_res.name,
	r.zoom_id, zoom_res.name, r.note, r.created_at, r.updated_at`

const requestViewJoins = `
	FROM booking_requests r
	LEFT JOIN resources room_res ON room_res.id = r.room_id
	LEFT JOIN resources zoom_res ON zoom_res.id = r.zoom_id`

type RequestReadStore struct {
	db db.DBTX
}

func NewRequestReadStore(db db.DBTX) queries.RequestReadStore {
	return &RequestReadStore{db: db}
}

func (r *RequestReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RequestView, error) {
	query := `SELECT` + requestViewColumns + requestViewJoins + ` WHERE r.id = $1`

	view, err := scanRequestView(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find request by ID", err)
	}
	return view, nil
}

func (r *RequestReadStore) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*queries.RequestView, error) {
	query := `SELECT` + requestViewColumns + requestViewJoins + `
	WHERE r.user_id = $1
	ORDER BY r.date DESC, r.start_min DESC, r.created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list requests by user", err)
	}
	defer rows.Close()

	var result []*queries.RequestView
	for rows.Next() {
		view, err := scanRequestView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan request row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate request rows", err)
	}
	return result, nil
}

func (r *RequestReadStore) FindAuditTrail(ctx context.Context, requestID uuid.UUID) ([]*queries.AuditView, error) {
	const query = `
		SELECT id, request_id, actor, lane, prev_status, new_status, note, recorded_at
		FROM audit_logs
		WHERE request_id = $1
		ORDER BY recorded_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query, requestID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load audit trail", err)
	}
	defer rows.Close()

	var result []*queries.AuditView
	for rows.Next() {
		var (
			view queries.AuditView
			lane string
		)
		if err := rows.Scan(&view.ID, &view.RequestID, &view.Actor, &lane,
			&view.PrevStatus, &view.NewStatus, &view.Note, &view.RecordedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan audit row", err)
		}
		view.Lane = booking.Lane(lane)
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate audit rows", err)
	}
	return result, nil
}

func scanRequestView(row rowScanner) (*queries.RequestView, error) {
	var (
		view               queries.RequestView
		date               time.Time
		startMin, endMin   int32
		kind               string
		roomStatus         string
		zoomStatus         string
		status             string
		roomName, zoomName *string
	)

	err := row.Scan(
		&view.ID, &view.UserID, &date, &startMin, &endMin, &view.Capacity, &kind,
		&roomStatus, &zoomStatus, &status, &view.RoomID, &roomName,
		&view.ZoomID, &zoomName, &view.Note, &view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.Date = date
	view.Start = booking.TimeOfDay(startMin)
	view.End = booking.TimeOfDay(endMin)
	view.Kind = booking.RequestKind(kind)
	view.RoomStatus = booking.LaneStatus(roomStatus)
	view.ZoomStatus = booking.LaneStatus(zoomStatus)
	view.Status = booking.Status(status)
	view.RoomName = roomName
	view.ZoomName = zoomName
	return &view, nil
}
