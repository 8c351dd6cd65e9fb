// Package integration exercises the MotorMarket backend end to end:
// real router, real services and repositories, in-memory SQLite.
package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	cartapp "github.com/motormarket/backend/internal/application/cart"
	catalogapp "github.com/motormarket/backend/internal/application/catalog"
	checkoutapp "github.com/motormarket/backend/internal/application/checkout"
	identityapp "github.com/motormarket/backend/internal/application/identity"
	orderapp "github.com/motormarket/backend/internal/application/order"
	showsapp "github.com/motormarket/backend/internal/application/shows"
	"github.com/motormarket/backend/internal/domain/identity"
	"github.com/motormarket/backend/internal/domain/order"
	"github.com/motormarket/backend/internal/infrastructure/auth"
	"github.com/motormarket/backend/internal/infrastructure/cache"
	"github.com/motormarket/backend/internal/infrastructure/config"
	"github.com/motormarket/backend/internal/infrastructure/payment"
	"github.com/motormarket/backend/internal/infrastructure/persistence"
	"github.com/motormarket/backend/internal/interfaces/http/handler"
	"github.com/motormarket/backend/internal/interfaces/http/router"
	"github.com/motormarket/backend/tests/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestServer bundles the engine with the repositories tests need for
// direct fixture setup.
type TestServer struct {
	Engine      *gin.Engine
	DB          *persistence.Database
	UserRepo    *persistence.GormUserRepository
	ProductRepo *persistence.GormProductRepository
	OrderRepo   *persistence.GormOrderRepository
	ShowRepo    *persistence.GormShowRepository
	JWT         *auth.JWTService
}

// ServerOption tweaks the test server wiring
type ServerOption func(*serverOptions)

type serverOptions struct {
	gateway payment.Gateway
}

// WithGateway substitutes the payment gateway, e.g. one that always
// declines.
func WithGateway(g payment.Gateway) ServerOption {
	return func(o *serverOptions) { o.gateway = g }
}

// NewTestServer builds the full HTTP stack against a fresh database
func NewTestServer(t *testing.T, opts ...ServerOption) *TestServer {
	t.Helper()

	options := serverOptions{
		gateway: payment.NewSimulatedGateway(1.0, payment.WithLatency(0)),
	}
	for _, opt := range opts {
		opt(&options)
	}

	db := testutil.NewSQLiteDB(t)

	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	showRepo := persistence.NewGormShowRepository(db.DB)
	cartStore := cache.NewMemoryCartStore()

	jwtService := auth.NewJWTService(testutil.TestJWTConfig())

	cfg := &config.Config{
		App: config.AppConfig{Name: "motormarket", Env: "test", Port: "0"},
		JWT: testutil.TestJWTConfig(),
	}

	handlers := router.Handlers{
		System:  handler.NewSystemHandler("test", map[string]handler.Pinger{"database": db}),
		Auth:    handler.NewAuthHandler(identityapp.NewAuthService(userRepo, jwtService)),
		Product: handler.NewProductHandler(catalogapp.NewProductService(productRepo)),
		Cart:    handler.NewCartHandler(cartapp.NewCartService(cartStore, productRepo)),
		Checkout: handler.NewCheckoutHandler(checkoutapp.NewCheckoutService(
			cartStore, productRepo, orderRepo, options.gateway,
			order.DefaultPricingPolicy(), time.Second)),
		Order: handler.NewOrderHandler(orderapp.NewOrderService(orderRepo)),
		Show:  handler.NewShowHandler(showsapp.NewShowService(showRepo)),
		User:  handler.NewUserHandler(identityapp.NewUserService(userRepo)),
	}

	return &TestServer{
		Engine:      router.New(cfg, zap.NewNop(), jwtService, handlers).Setup(),
		DB:          db,
		UserRepo:    userRepo,
		ProductRepo: productRepo,
		OrderRepo:   orderRepo,
		ShowRepo:    showRepo,
		JWT:         jwtService,
	}
}

// Register creates an account over HTTP and returns its access token
// and user id.
func (s *TestServer) Register(t *testing.T, name, role string) (token, userID string) {
	t.Helper()

	w, env := testutil.DoJSON(t, s.Engine, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name":     name,
		"email":    testutil.UniqueEmail(role),
		"password": "s3cret-pass",
		"role":     role,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		User struct {
			ID string `json:"id"`
		} `json:"user"`
		Tokens struct {
			AccessToken string `json:"access_token"`
		} `json:"tokens"`
	}
	testutil.DecodeData(t, env, &resp)
	return resp.Tokens.AccessToken, resp.User.ID
}

// RegisterAdmin seeds an admin account directly (self-registration as
// admin is blocked) and logs it in over HTTP.
func (s *TestServer) RegisterAdmin(t *testing.T) (token string) {
	t.Helper()

	email := testutil.UniqueEmail("admin")
	admin, err := identity.NewUser("Site Admin", email, "s3cret-pass", identity.RoleAdmin)
	require.NoError(t, err)
	require.NoError(t, s.UserRepo.Save(context.Background(), admin))

	w, env := testutil.DoJSON(t, s.Engine, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    email,
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Tokens struct {
			AccessToken string `json:"access_token"`
		} `json:"tokens"`
	}
	testutil.DecodeData(t, env, &resp)
	return resp.Tokens.AccessToken
}

// CreateProduct lists a product through the seller surface and returns
// its id.
func (s *TestServer) CreateProduct(t *testing.T, sellerToken, title, price string, stock int) string {
	t.Helper()

	w, env := testutil.DoJSON(t, s.Engine, http.MethodPost, "/api/v1/seller/products", sellerToken, gin.H{
		"title":    title,
		"price":    price,
		"category": "parts",
		"stock":    stock,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var product struct {
		ID string `json:"id"`
	}
	testutil.DecodeData(t, env, &product)
	return product.ID
}

// AddToCart puts quantity units of a product in the caller's cart
func (s *TestServer) AddToCart(t *testing.T, token, productID string, quantity int) {
	t.Helper()

	w, _ := testutil.DoJSON(t, s.Engine, http.MethodPost, "/api/v1/cart/items", token, gin.H{
		"product_id": productID,
		"quantity":   quantity,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

// shippingPayload is a valid checkout body with the given method
func shippingPayload(method string) gin.H {
	return gin.H{
		"payment_method": method,
		"address":        "12 Canal Road",
		"city":           "Lahore",
		"postal_code":    "54000",
		"phone":          "+92-300-1234567",
	}
}
