package persistence

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/cart"
	"github.com/motormarket/backend/internal/domain/catalog"
	"github.com/motormarket/backend/internal/domain/identity"
	"github.com/motormarket/backend/internal/domain/order"
	"github.com/motormarket/backend/internal/domain/shared"
	"github.com/motormarket/backend/internal/domain/shared/valueobject"
	"github.com/motormarket/backend/internal/domain/shows"
	"github.com/motormarket/backend/internal/infrastructure/config"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func timeIn(days int) time.Time {
	return time.Now().AddDate(0, 0, days)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDatabase(&config.DatabaseConfig{
		Driver:       "sqlite",
		SQLitePath:   ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.DB.AutoMigrate(
		&catalog.Product{},
		&order.Order{},
		&order.Item{},
		&identity.User{},
		&shows.AutoShow{},
		&shows.Registration{},
	))
	return db.DB
}

func seedProduct(t *testing.T, db *gorm.DB, title string, price float64, stock int, category string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(title, "", category, valueobject.NewMoneyPKRFromFloat(price), stock, catalog.ConditionNew, uuid.New(), "AutoParts Hub")
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(db).Save(context.Background(), p))
	return p
}

func TestProductRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormProductRepository(db)
	ctx := context.Background()

	oilFilter := seedProduct(t, db, "Oil Filter", 45.99, 10, "parts")
	seedProduct(t, db, "Brake Pads", 89.99, 50, "parts")
	seedProduct(t, db, "Leather Seat Covers", 599.99, 8, "interior")

	t.Run("finds by id", func(t *testing.T) {
		found, err := repo.FindByID(ctx, oilFilter.ID)
		require.NoError(t, err)
		assert.Equal(t, "Oil Filter", found.Title)
		assert.True(t, found.Price.Equal(decimal.NewFromFloat(45.99)))
	})

	t.Run("missing id returns ErrNotFound", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("search filters by category", func(t *testing.T) {
		page, err := repo.Search(ctx, catalog.ProductQuery{Category: "parts"})
		require.NoError(t, err)
		assert.EqualValues(t, 2, page.Total)
	})

	t.Run("search filters by text", func(t *testing.T) {
		page, err := repo.Search(ctx, catalog.ProductQuery{Search: "brake"})
		require.NoError(t, err)
		require.EqualValues(t, 1, page.Total)
		assert.Equal(t, "Brake Pads", page.Items[0].Title)
	})

	t.Run("search filters by price range", func(t *testing.T) {
		minPrice := decimal.NewFromInt(50)
		maxPrice := decimal.NewFromInt(100)
		page, err := repo.Search(ctx, catalog.ProductQuery{MinPrice: &minPrice, MaxPrice: &maxPrice})
		require.NoError(t, err)
		require.EqualValues(t, 1, page.Total)
		assert.Equal(t, "Brake Pads", page.Items[0].Title)
	})

	t.Run("sorts by price", func(t *testing.T) {
		page, err := repo.Search(ctx, catalog.ProductQuery{Sort: "price_asc"})
		require.NoError(t, err)
		require.Len(t, page.Items, 3)
		assert.Equal(t, "Oil Filter", page.Items[0].Title)
		assert.Equal(t, "Leather Seat Covers", page.Items[2].Title)
	})

	t.Run("lists categories", func(t *testing.T) {
		cats, err := repo.Categories(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"interior", "parts"}, cats)
	})

	t.Run("delete", func(t *testing.T) {
		victim := seedProduct(t, db, "Scratch Remover", 15.00, 5, "care")
		require.NoError(t, repo.Delete(ctx, victim.ID))
		assert.ErrorIs(t, repo.Delete(ctx, victim.ID), shared.ErrNotFound)
	})
}

func TestOrderRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "Turbocharger", 1299.99, 4, "parts")
	c := cart.New(uuid.New())
	require.NoError(t, c.AddItem(product, 2))

	quote := order.DefaultPricingPolicy().Quote(c.Subtotal().Amount())
	o, err := order.NewFromCart(c, quote, "Ali Raza", "easypaisa", order.ShippingDetails{
		Address: "12 Canal Road", City: "Lahore", PostalCode: "54000", Phone: "+92-300-1234567",
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, o))

	t.Run("finds by id with items", func(t *testing.T) {
		found, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		require.Len(t, found.Items, 1)
		assert.Equal(t, 2, found.Items[0].Quantity)
		assert.Equal(t, o.OrderNumber, found.OrderNumber)
	})

	t.Run("finds by order number", func(t *testing.T) {
		found, err := repo.FindByOrderNumber(ctx, o.OrderNumber)
		require.NoError(t, err)
		assert.Equal(t, o.ID, found.ID)
	})

	t.Run("lists buyer orders", func(t *testing.T) {
		page, err := repo.FindByBuyer(ctx, c.UserID, shared.DefaultFilter())
		require.NoError(t, err)
		assert.EqualValues(t, 1, page.Total)

		empty, err := repo.FindByBuyer(ctx, uuid.New(), shared.DefaultFilter())
		require.NoError(t, err)
		assert.EqualValues(t, 0, empty.Total)
	})

	t.Run("persists status transition", func(t *testing.T) {
		require.NoError(t, o.MarkPaid("txn-1"))
		require.NoError(t, repo.Save(ctx, o))

		found, err := repo.FindByID(ctx, o.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusPaid, found.Status)
		assert.Equal(t, order.PaymentStatusCompleted, found.PaymentStatus)
	})
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	u, err := identity.NewUser("Ali Raza", "ali@example.com", "s3cret-pass", identity.RoleBuyer)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, u))

	found, err := repo.FindByEmail(ctx, "  ALI@example.com ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = repo.FindByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, u.ID))
	_, err = repo.FindByID(ctx, u.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestShowRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormShowRepository(db)
	ctx := context.Background()

	show, err := shows.NewAutoShow("Lahore Auto Expo", "Lahore", "Expo Centre", timeIn(30), valueobject.NewMoneyPKRFromFloat(1500), 100)
	require.NoError(t, err)
	require.NoError(t, show.Open())
	require.NoError(t, repo.Save(ctx, show))

	userID := uuid.New()
	reg, err := show.Register(userID)
	require.NoError(t, err)
	require.NoError(t, repo.SaveRegistration(ctx, reg))

	t.Run("duplicate registration rejected", func(t *testing.T) {
		dup := &shows.Registration{ID: uuid.New(), ShowID: show.ID, UserID: userID}
		assert.ErrorIs(t, repo.SaveRegistration(ctx, dup), shared.ErrAlreadyExists)

		// the rejected duplicate must not leave a phantom admission
		found, err := repo.FindByID(ctx, show.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, found.Registered)
	})

	t.Run("finds registration", func(t *testing.T) {
		found, err := repo.FindRegistration(ctx, show.ID, userID)
		require.NoError(t, err)
		assert.Equal(t, reg.ID, found.ID)

		list, err := repo.FindRegistrationsByUser(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("unknown show rejected", func(t *testing.T) {
		ghost := &shows.Registration{ID: uuid.New(), ShowID: uuid.New(), UserID: uuid.New()}
		assert.ErrorIs(t, repo.SaveRegistration(ctx, ghost), shared.ErrNotFound)
	})

	t.Run("closed show rejected", func(t *testing.T) {
		require.NoError(t, show.Close())
		require.NoError(t, repo.Save(ctx, show))

		late := &shows.Registration{ID: uuid.New(), ShowID: show.ID, UserID: uuid.New()}
		assert.ErrorIs(t, repo.SaveRegistration(ctx, late), shows.ErrRegistrationClosed)
	})
}

func TestShowRepositoryAdmissionUnderContention(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormShowRepository(db)
	ctx := context.Background()

	show, err := shows.NewAutoShow("Faisalabad Auto Day", "Faisalabad", "Clock Tower Grounds", timeIn(14), valueobject.NewMoneyPKRFromFloat(500), 1)
	require.NoError(t, err)
	require.NoError(t, show.Open())
	require.NoError(t, repo.Save(ctx, show))

	const attempts = 5
	start := make(chan struct{})
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			reg := &shows.Registration{ID: uuid.New(), ShowID: show.ID, UserID: uuid.New(), CreatedAt: time.Now()}
			results <- repo.SaveRegistration(ctx, reg)
		}()
	}
	close(start)
	wg.Wait()
	close(results)

	admitted, full := 0, 0
	for err := range results {
		switch {
		case err == nil:
			admitted++
		case errors.Is(err, shows.ErrShowFull):
			full++
		default:
			t.Fatalf("unexpected registration error: %v", err)
		}
	}
	assert.Equal(t, 1, admitted)
	assert.Equal(t, attempts-1, full)

	found, err := repo.FindByID(ctx, show.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, found.Registered)

	var count int64
	require.NoError(t, db.Model(&shows.Registration{}).Where("show_id = ?", show.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
