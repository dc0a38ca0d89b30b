package bootstrap

import (
	"licoreria-api/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	LoyaltyModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
