package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/motormarket/backend/internal/domain/identity"
	"github.com/motormarket/backend/internal/infrastructure/auth"
	"github.com/motormarket/backend/internal/infrastructure/config"
	"github.com/motormarket/backend/internal/infrastructure/logger"
	"github.com/motormarket/backend/internal/interfaces/http/handler"
	"github.com/motormarket/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Handlers bundles every HTTP handler the router mounts
type Handlers struct {
	System   *handler.SystemHandler
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler
	Order    *handler.OrderHandler
	Show     *handler.ShowHandler
	User     *handler.UserHandler
}

// Router assembles the gin engine from config, middleware and handlers
type Router struct {
	cfg        *config.Config
	log        *zap.Logger
	jwtService *auth.JWTService
	handlers   Handlers
}

// New creates a new Router
func New(cfg *config.Config, log *zap.Logger, jwtService *auth.JWTService, handlers Handlers) *Router {
	return &Router{cfg: cfg, log: log, jwtService: jwtService, handlers: handlers}
}

// Setup builds the gin engine with all middleware and routes mounted
func (r *Router) Setup() *gin.Engine {
	if r.cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(r.cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(r.cfg.HTTP.TrustedProxies)
	}

	engine.Use(middleware.RequestID(r.log))
	engine.Use(logger.GinMiddleware(r.log))
	engine.Use(logger.Recovery(r.log))
	engine.Use(middleware.CORS(middleware.CORSConfig{AllowOrigins: r.cfg.HTTP.CORSAllowOrigins}))
	engine.Use(middleware.BodyLimit(r.cfg.HTTP.MaxBodySize))

	if r.cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(r.cfg.HTTP.RateLimitRequests, r.cfg.HTTP.RateLimitWindow)
		engine.Use(limiter.Middleware())
	}

	engine.GET("/health", r.handlers.System.Health)
	engine.GET("/ready", r.handlers.System.Ready)

	api := engine.Group("/api/v1")
	api.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.mountPublic(api)
	r.mountAuthenticated(api)
	r.mountSeller(api)
	r.mountAdmin(api)

	return engine
}

func (r *Router) mountPublic(api *gin.RouterGroup) {
	authGroup := api.Group("/auth")
	if r.cfg.HTTP.AuthRateLimitEnabled {
		// tighter window for credential endpoints
		limiter := middleware.NewRateLimiter(r.cfg.HTTP.AuthRateLimitRequests, r.cfg.HTTP.AuthRateLimitWindow)
		authGroup.Use(limiter.Middleware())
	}
	authGroup.POST("/register", r.handlers.Auth.Register)
	authGroup.POST("/login", r.handlers.Auth.Login)
	authGroup.POST("/refresh", r.handlers.Auth.Refresh)

	products := api.Group("/products")
	products.GET("", r.handlers.Product.List)
	products.GET("/categories", r.handlers.Product.Categories)
	products.GET("/:id", r.handlers.Product.Get)

	showsGroup := api.Group("/shows")
	showsGroup.GET("", r.handlers.Show.List)
	showsGroup.GET("/:id", r.handlers.Show.Get)
}

func (r *Router) mountAuthenticated(api *gin.RouterGroup) {
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(r.jwtService))

	me := authed.Group("/me")
	me.GET("", r.handlers.Auth.Me)
	me.PUT("", r.handlers.Auth.UpdateProfile)
	me.PUT("/password", r.handlers.Auth.ChangePassword)
	me.GET("/registrations", r.handlers.Show.MyRegistrations)

	cartGroup := authed.Group("/cart")
	cartGroup.GET("", r.handlers.Cart.Get)
	cartGroup.DELETE("", r.handlers.Cart.Clear)
	cartGroup.POST("/items", r.handlers.Cart.AddItem)
	cartGroup.PUT("/items/:id", r.handlers.Cart.UpdateItem)
	cartGroup.DELETE("/items/:id", r.handlers.Cart.RemoveItem)

	checkoutGroup := authed.Group("/checkout")
	checkoutGroup.POST("", r.handlers.Checkout.Checkout)
	checkoutGroup.GET("/quote", r.handlers.Checkout.Quote)
	checkoutGroup.GET("/payment-methods", r.handlers.Checkout.PaymentMethods)

	ordersGroup := authed.Group("/orders")
	ordersGroup.GET("", r.handlers.Order.ListMine)
	ordersGroup.GET("/:id", r.handlers.Order.Get)
	ordersGroup.POST("/:id/cancel", r.handlers.Order.Cancel)

	authed.POST("/shows/:id/register", r.handlers.Show.Register)
}

func (r *Router) mountSeller(api *gin.RouterGroup) {
	seller := api.Group("/seller")
	seller.Use(middleware.RequireAuth(r.jwtService))
	seller.Use(middleware.RequireRole(identity.RoleSeller, identity.RoleAdmin))

	seller.GET("/products", r.handlers.Product.ListMine)
	seller.POST("/products", r.handlers.Product.Create)
	seller.PUT("/products/:id", r.handlers.Product.Update)
	seller.DELETE("/products/:id", r.handlers.Product.Delete)
	seller.POST("/products/:id/stock", r.handlers.Product.AdjustStock)
}

func (r *Router) mountAdmin(api *gin.RouterGroup) {
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(r.jwtService))
	admin.Use(middleware.RequireRole(identity.RoleAdmin))

	admin.GET("/orders", r.handlers.Order.ListAll)
	admin.POST("/orders/:id/ship", r.handlers.Order.Ship)
	admin.POST("/orders/:id/deliver", r.handlers.Order.Deliver)

	admin.GET("/users", r.handlers.User.List)
	admin.GET("/users/:id", r.handlers.User.Get)
	admin.PUT("/users/:id/role", r.handlers.User.UpdateRole)
	admin.POST("/users/:id/verify", r.handlers.User.Verify)
	admin.DELETE("/users/:id", r.handlers.User.Delete)

	admin.POST("/shows", r.handlers.Show.Create)
	admin.POST("/shows/:id/open", r.handlers.Show.Open)
	admin.POST("/shows/:id/close", r.handlers.Show.Close)
	admin.POST("/shows/:id/cancel", r.handlers.Show.Cancel)
}
