package components

import (
	"time"

	"licoreria-api/internal/handler"
	"licoreria-api/internal/handler/api"
	"licoreria-api/internal/handler/middleware"
	"licoreria-api/internal/handler/session"
	"licoreria-api/internal/pkg/config"
	"licoreria-api/internal/usecase/commands"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		session.NewCartStore,
		NewAuthHandler,
		api.NewCustomerHandler,
		api.NewCatalogHandler,
		NewCartHandler,
		api.NewOrderHandler,
		api.NewRewardHandler,
		api.NewFineHandler,
		NewHandlers,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewAuthHandler(authCommands commands.AuthCommands, cfg config.Config) *api.AuthHandler {
	tokenDuration, err := time.ParseDuration(cfg.JWT.Duration)
	if err != nil {
		panic("invalid JWT_DURATION: " + err.Error())
	}
	return api.NewAuthHandler(authCommands, cfg.Cookie, tokenDuration)
}

func NewCartHandler(store *session.CartStore, orderCommands commands.OrderCommands, cfg config.Config) *api.CartHandler {
	return api.NewCartHandler(store, orderCommands, cfg.Cookie)
}

func NewHandlers(
	auth *api.AuthHandler,
	customer *api.CustomerHandler,
	catalog *api.CatalogHandler,
	cart *api.CartHandler,
	order *api.OrderHandler,
	reward *api.RewardHandler,
	fine *api.FineHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:     auth,
		Customer: customer,
		Catalog:  catalog,
		Cart:     cart,
		Order:    order,
		Reward:   reward,
		Fine:     fine,
	}
}
