package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/motormarket/backend/internal/domain/catalog"
	"github.com/motormarket/backend/internal/domain/identity"
	"github.com/motormarket/backend/internal/domain/order"
	"github.com/motormarket/backend/internal/domain/shared"
	"github.com/motormarket/backend/internal/domain/shared/valueobject"
	"github.com/motormarket/backend/internal/domain/shows"
	"github.com/motormarket/backend/internal/infrastructure/config"
	"github.com/motormarket/backend/internal/infrastructure/logger"
	"github.com/motormarket/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	switch command {
	case "up":
		if err := migrateUp(db); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		log.Info("Schema is up to date")
	case "seed":
		if err := migrateUp(db); err != nil {
			log.Fatal("Migration failed", zap.Error(err))
		}
		if err := seed(context.Background(), db, log); err != nil {
			log.Fatal("Seeding failed", zap.Error(err))
		}
		log.Info("Seed data applied")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Usage: migrate [flags] <command>

Commands:
  up      Create or update the database schema
  seed    Migrate, then load demo users, products and auto shows

Flags:
  -log-level string   Log level (default "info")`)
}

// migrateUp syncs the schema for every persisted aggregate.
func migrateUp(db *persistence.Database) error {
	return db.DB.AutoMigrate(
		&identity.User{},
		&catalog.Product{},
		&order.Order{},
		&order.Item{},
		&shows.AutoShow{},
		&shows.Registration{},
	)
}

// seed loads a demo data set for local development. Running it twice is
// safe: it backs off as soon as the admin account already exists.
func seed(ctx context.Context, db *persistence.Database, log *zap.Logger) error {
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	showRepo := persistence.NewGormShowRepository(db.DB)

	const adminEmail = "admin@motormarket.pk"
	if _, err := userRepo.FindByEmail(ctx, adminEmail); err == nil {
		log.Info("Seed data already present, skipping", zap.String("admin", adminEmail))
		return nil
	} else if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	admin, err := identity.NewUser("Admin", adminEmail, "admin-dev-password", identity.RoleAdmin)
	if err != nil {
		return err
	}
	seller, err := identity.NewUser("AutoParts Hub", "hub@motormarket.pk", "seller-dev-password", identity.RoleSeller)
	if err != nil {
		return err
	}
	buyer, err := identity.NewUser("Ali Raza", "ali@motormarket.pk", "buyer-dev-password", identity.RoleBuyer)
	if err != nil {
		return err
	}
	for _, u := range []*identity.User{admin, seller, buyer} {
		if err := userRepo.Save(ctx, u); err != nil {
			return err
		}
	}
	log.Info("Seeded users", zap.Int("count", 3))

	type listing struct {
		title       string
		description string
		category    string
		price       float64
		stock       int
		condition   catalog.Condition
	}
	listings := []listing{
		{"Oil Filter", "OEM-grade oil filter for most sedans", "parts", 45.99, 120, catalog.ConditionNew},
		{"Brake Pads", "Ceramic front brake pad set", "parts", 89.99, 50, catalog.ConditionNew},
		{"Alloy Wheels 17\"", "Set of four 17-inch alloy rims", "wheels", 1299.99, 8, catalog.ConditionRefurbished},
		{"Car Battery 12V", "Maintenance-free 12V 60Ah battery", "electrical", 599.99, 25, catalog.ConditionNew},
	}
	for _, l := range listings {
		p, err := catalog.NewProduct(l.title, l.description, l.category,
			valueobject.NewMoneyPKRFromFloat(l.price), l.stock, l.condition,
			seller.ID, seller.Name)
		if err != nil {
			return err
		}
		if err := productRepo.Save(ctx, p); err != nil {
			return err
		}
	}
	log.Info("Seeded products", zap.Int("count", len(listings)))

	lahore, err := shows.NewAutoShow("Lahore Auto Expo", "Lahore", "Expo Centre, Johar Town",
		time.Now().AddDate(0, 1, 0), valueobject.NewMoneyPKRFromFloat(1500), 500)
	if err != nil {
		return err
	}
	lahore.Description = "Annual showcase of classic and modified cars."
	if err := lahore.Open(); err != nil {
		return err
	}

	karachi, err := shows.NewAutoShow("Karachi Motor Show", "Karachi", "Expo Centre, University Road",
		time.Now().AddDate(0, 2, 0), valueobject.NewMoneyPKRFromFloat(2000), 800)
	if err != nil {
		return err
	}
	karachi.Description = "New model launches and dealer exhibitions."

	for _, s := range []*shows.AutoShow{lahore, karachi} {
		if err := showRepo.Save(ctx, s); err != nil {
			return err
		}
	}
	log.Info("Seeded auto shows", zap.Int("count", 2))

	return nil
}
