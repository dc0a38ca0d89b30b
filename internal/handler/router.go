package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"licoreria-api/internal/domain/user"
	"licoreria-api/internal/handler/api"
	"licoreria-api/internal/handler/middleware"
	"licoreria-api/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

type Handlers struct {
	Auth     *api.AuthHandler
	Customer *api.CustomerHandler
	Catalog  *api.CatalogHandler
	Cart     *api.CartHandler
	Order    *api.OrderHandler
	Reward   *api.RewardHandler
	Fine     *api.FineHandler
}

func NewRouter(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.LoggingMiddleware(nil, cfg.Log))
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	staff := authMiddleware.RequireRoleAtLeast(user.RoleStockkeeper)
	supervisor := authMiddleware.RequireRoleAtLeast(user.RoleSupervisor)

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		customers := apiGroup.Group("/customers")
		{
			addRoutes(customers, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Customer.Register},
			})

			customerRequired := customers.Group("")
			customerRequired.Use(authMiddleware.RequireAuth())
			addRoutes(customerRequired, []route{
				{Method: http.MethodGet, Path: "/me/loyalty", Handler: h.Customer.MyLoyalty},
			})
		}

		catalog := apiGroup.Group("/catalog")
		{
			addRoutes(catalog, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Catalog.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Catalog.Get},
			})

			catalogStaff := catalog.Group("")
			catalogStaff.Use(authMiddleware.RequireAuth())
			addRoutes(catalogStaff, []route{
				{Method: http.MethodPost, Path: "", Handler: h.Catalog.Create, Mw: []gin.HandlerFunc{staff}},
				{Method: http.MethodPost, Path: "/:kind/:id/restock", Handler: h.Catalog.Restock, Mw: []gin.HandlerFunc{staff}},
			})
		}

		cart := apiGroup.Group("/cart")
		cart.Use(authMiddleware.RequireAuth())
		{
			addRoutes(cart, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Cart.Get},
				{Method: http.MethodDelete, Path: "", Handler: h.Cart.Clear},
				{Method: http.MethodPost, Path: "/items", Handler: h.Cart.Add},
				{Method: http.MethodPost, Path: "/items/remove", Handler: h.Cart.Remove},
				{Method: http.MethodPost, Path: "/checkout", Handler: h.Cart.Checkout, Mw: []gin.HandlerFunc{authMiddleware.RequireCustomer()}},
			})
		}

		orders := apiGroup.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			addRoutes(orders, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Order.ListMine},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Order.Get},
				{Method: http.MethodDelete, Path: "/:id", Handler: h.Order.Cancel},
				{Method: http.MethodPost, Path: "/:id/approve", Handler: h.Order.Approve, Mw: []gin.HandlerFunc{supervisor}},
				{Method: http.MethodPost, Path: "/:id/pay", Handler: h.Order.MarkPaid, Mw: []gin.HandlerFunc{staff}},
				{Method: http.MethodPost, Path: "/:id/fines", Handler: h.Order.ApplyFine, Mw: []gin.HandlerFunc{supervisor}},
				{Method: http.MethodPost, Path: "/:id/lines", Handler: h.Order.AddLine, Mw: []gin.HandlerFunc{staff}},
				{Method: http.MethodDelete, Path: "/:id/lines/:lineId", Handler: h.Order.RemoveLine, Mw: []gin.HandlerFunc{staff}},
			})
		}

		rewards := apiGroup.Group("/rewards")
		rewards.Use(authMiddleware.RequireAuth())
		{
			addRoutes(rewards, []route{
				{Method: http.MethodGet, Path: "/catalog", Handler: h.Reward.Catalog},
				{Method: http.MethodGet, Path: "", Handler: h.Reward.ListMine},
				{Method: http.MethodPost, Path: "", Handler: h.Reward.Request, Mw: []gin.HandlerFunc{authMiddleware.RequireCustomer()}},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Reward.Get},
				{Method: http.MethodPost, Path: "/:id/approve", Handler: h.Reward.Approve, Mw: []gin.HandlerFunc{supervisor}},
				{Method: http.MethodPost, Path: "/:id/reject", Handler: h.Reward.Reject, Mw: []gin.HandlerFunc{supervisor}},
				{Method: http.MethodPost, Path: "/:id/confirm", Handler: h.Reward.ConfirmDelivery},
			})
		}

		fines := apiGroup.Group("/fines")
		fines.Use(authMiddleware.RequireAuth())
		{
			addRoutes(fines, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Fine.ListMine},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Fine.Get},
				{Method: http.MethodPost, Path: "", Handler: h.Fine.Impose, Mw: []gin.HandlerFunc{supervisor}},
				{Method: http.MethodPost, Path: "/:id/pay", Handler: h.Fine.Pay, Mw: []gin.HandlerFunc{staff}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
