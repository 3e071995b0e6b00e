package repository

import (
	"context"

	"roombook/internal/domain/booking"
	"roombook/internal/infra"
	"roombook/internal/infra/db"
	"roombook/internal/usecase/commands"
)

type AuditRepository struct{}

func NewAuditRepository() commands.AuditRepository {
	return &AuditRepository{}
}

func (r *AuditRepository) Append(ctx context.Context, tx db.DBTX, entry booking.AuditEntry) error {
	const query = `
		INSERT INTO audit_logs (
			id, request_id, actor, lane, prev_status, new_status, note, recorded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := tx.Exec(ctx, query,
		entry.ID, entry.RequestID, entry.Actor,
		entry.Lane.String(), entry.PrevStatus, entry.NewStatus,
		entry.Note, entry.RecordedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to append audit entry", err)
	}
	return nil
}
