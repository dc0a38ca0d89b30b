package components

import (
	"context"

	"licoreria-api/internal/infra"
	"licoreria-api/internal/infra/audit"
	"licoreria-api/internal/infra/lookup"
	"licoreria-api/internal/infra/readstore"
	"licoreria-api/internal/infra/uow"
	"licoreria-api/internal/pkg/config"
	"licoreria-api/internal/usecase/commands"
	"licoreria-api/internal/usecase/queries"
	"licoreria-api/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		fx.Annotate(
			readstore.NewCatalogReadStore,
			fx.As(new(queries.CatalogReadStore)),
		),
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderReadStore)),
		),
		fx.Annotate(
			readstore.NewRewardReadStore,
			fx.As(new(queries.RewardReadStore)),
		),
		fx.Annotate(
			readstore.NewFineReadStore,
			fx.As(new(queries.FineReadStore)),
		),
		fx.Annotate(
			readstore.NewLoyaltyReadStore,
			fx.As(new(queries.LoyaltyReadStore)),
		),
		NewAuditRecorder,
		NewCatalogLookup,
	),
)

func NewDBTX(pool *pgxpool.Pool) infra.DBTX {
	return pool
}

func NewAuditRecorder(lc fx.Lifecycle, db infra.DBTX) commands.AuditRecorder {
	recorder := audit.NewRecorder(db)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			recorder.Close()
			return nil
		},
	})
	return recorder
}

func NewCatalogLookup(cfg config.Config) commands.CatalogLookup {
	return lookup.NewClient(cfg.Lookup)
}
