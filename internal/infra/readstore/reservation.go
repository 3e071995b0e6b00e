package readstore

import (
	"context"
	"time"

	"roombook/internal/domain/booking"
	"roombook/internal/domain/resource"
	"roombook/internal/infra"
	"roombook/internal/infra/db"
	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(db db.DBTX) queries.ReservationReadStore {
	return &ReservationReadStore{db: db}
}

// FindBlockingWindows returns the held windows on one resource for one day.
// A hold blocks while its lane is pending or approved and the request as a
// whole is neither rejected nor cancelled; pending holds come from the
// tentative assignment recorded at filing time.
func (r *ReservationReadStore) FindBlockingWindows(ctx context.Context, resourceID uuid.UUID, kind resource.Kind, date time.Time) ([]booking.TimeWindow, error) {
	query := `
		SELECT start_min, end_min
		FROM booking_requests
		WHERE date = $1
		  AND room_id = $2
		  AND room_status IN ('pending', 'approved')
		  AND status NOT IN ('rejected', 'cancelled')`
	if kind == resource.KindZoom {
		query = `
		SELECT start_min, end_min
		FROM booking_requests
		WHERE date = $1
		  AND zoom_id = $2
		  AND zoom_status IN ('pending', 'approved')
		  AND status NOT IN ('rejected', 'cancelled')`
	}

	rows, err := r.db.Query(ctx, query, booking.NormalizeDate(date), resourceID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load blocking windows", err)
	}
	defer rows.Close()

	var result []booking.TimeWindow
	for rows.Next() {
		var startMin, endMin int32
		if err := rows.Scan(&startMin, &endMin); err != nil {
			return nil, infra.WrapRepoErr("failed to scan window row", err)
		}
		window, err := booking.NewTimeWindow(booking.TimeOfDay(startMin), booking.TimeOfDay(endMin))
		if err != nil {
			return nil, infra.WrapRepoErr("stored window is malformed", err)
		}
		result = append(result, window)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate window rows", err)
	}
	return result, nil
}
