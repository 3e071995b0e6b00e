package queries

import (
	"context"

	"roombook/internal/infra"
	"roombook/internal/pkg/errs"

	"github.com/google/uuid"
)

type RequestQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*RequestView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*RequestView, error)
	AuditTrail(ctx context.Context, requestID uuid.UUID) ([]*AuditView, error)
}

type requestQueriesImpl struct {
	store RequestReadStore
}

func NewRequestQueries(store RequestReadStore) RequestQueries {
	return &requestQueriesImpl{store: store}
}

func (q *requestQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RequestView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrRequestNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (q *requestQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*RequestView, error) {
	views, err := q.store.FindByUserID(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}

func (q *requestQueriesImpl) AuditTrail(ctx context.Context, requestID uuid.UUID) ([]*AuditView, error) {
	if _, err := q.GetByID(ctx, requestID); err != nil {
		return nil, err
	}
	views, err := q.store.FindAuditTrail(ctx, requestID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return views, nil
}
