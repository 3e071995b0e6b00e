package readstore

import (
	"context"

	"roombook/internal/domain/resource"
	"roombook/internal/infra"
	"roombook/internal/infra/db"
	"roombook/internal/pkg/pgconv"
	"roombook/internal/usecase/queries"

	"github.com/google/uuid"
)

type ResourceReadStore struct {
	db db.DBTX
}

func NewResourceReadStore(db db.DBTX) queries.ResourceReadStore {
	return &ResourceReadStore{db: db}
}

// FindActiveByKind returns candidates in selection order: capacity asc so
// the optimal pick wastes the least capacity, name asc to break ties
// deterministically.
func (r *ResourceReadStore) FindActiveByKind(ctx context.Context, kind resource.Kind, minCapacity int32) ([]queries.ResourceView, error) {
	const query = `
		SELECT id, kind, name, capacity, is_active
		FROM resources
		WHERE kind = $1 AND is_active AND capacity >= $2
		ORDER BY capacity ASC, name ASC`

	rows, err := r.db.Query(ctx, query, kind.String(), minCapacity)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list resources by kind", err)
	}
	defer rows.Close()

	var result []queries.ResourceView
	for rows.Next() {
		view, err := scanResourceView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan resource row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate resource rows", err)
	}
	return result, nil
}

func (r *ResourceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	const query = `SELECT id, kind, name, capacity, is_active FROM resources WHERE id = $1`

	view, err := scanResourceView(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource by ID", err)
	}
	return &view, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResourceView(row rowScanner) (queries.ResourceView, error) {
	var (
		view queries.ResourceView
		kind string
	)
	if err := row.Scan(&view.ID, &kind, &view.Name, &view.Capacity, &view.Active); err != nil {
		return queries.ResourceView{}, err
	}
	view.Kind = resource.Kind(kind)
	return view, nil
}
