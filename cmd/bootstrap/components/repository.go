package components

import (
	"roombook/internal/infra/db"
	"roombook/internal/infra/readstore"
	"roombook/internal/infra/repository"
	"roombook/internal/infra/uow"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		repository.NewRequestRepository,
		repository.NewResourceRepository,
		repository.NewAuditRepository,
		repository.NewUserRepository,
		readstore.NewResourceReadStore,
		readstore.NewReservationReadStore,
		readstore.NewRequestReadStore,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
