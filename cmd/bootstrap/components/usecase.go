package components

import (
	"licoreria-api/internal/pkg/clock"
	"licoreria-api/internal/usecase"
	"licoreria-api/internal/usecase/commands"
	"licoreria-api/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCatalogQueries,
		queries.NewOrderQueries,
		queries.NewRewardQueries,
		queries.NewFineQueries,
		queries.NewLoyaltyQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewCustomerCommands,
		commands.NewCatalogCommands,
		commands.NewOrderCommands,
		commands.NewRewardCommands,
		commands.NewFineCommands,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
