package shared

import (
	"context"

	"roombook/internal/infra/db"
)

// UnitOfWork runs a function inside one atomic transaction. Everything the
// function writes commits together or not at all.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error
}
