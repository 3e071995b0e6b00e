package repository

import (
	"context"

	"roombook/internal/domain/resource"
	"roombook/internal/infra"
	"roombook/internal/infra/db"
	"roombook/internal/pkg/pgconv"
	"roombook/internal/usecase/commands"

	"github.com/google/uuid"
)

type ResourceRepository struct {
	db db.DBTX
}

func NewResourceRepository(db db.DBTX) commands.ResourceRepository {
	return &ResourceRepository{db: db}
}

func (r *ResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	const query = `SELECT id, kind, name, capacity, is_active FROM resources WHERE id = $1`

	var (
		resID    uuid.UUID
		kind     string
		name     string
		capacity int32
		active   bool
	)
	err := r.db.QueryRow(ctx, query, id).Scan(&resID, &kind, &name, &capacity, &active)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource by ID", err)
	}

	return resource.ReconstructResource(resID, resource.Kind(kind), name, capacity, active), nil
}
