// Package testutil provides common test utilities for the MotorMarket
// backend: in-memory database setup, HTTP request helpers and fixture
// builders shared by the integration suite.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/catalog"
	"github.com/motormarket/backend/internal/domain/identity"
	"github.com/motormarket/backend/internal/domain/order"
	"github.com/motormarket/backend/internal/domain/shows"
	"github.com/motormarket/backend/internal/infrastructure/config"
	"github.com/motormarket/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// NewSQLiteDB opens an in-memory SQLite database with the full schema
// migrated. Each call returns an isolated database; the connection is
// closed when the test finishes.
func NewSQLiteDB(t *testing.T) *persistence.Database {
	t.Helper()

	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:       "sqlite",
		SQLitePath:   ":memory:",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	})
	require.NoError(t, err, "failed to open sqlite database")
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.DB.AutoMigrate(
		&identity.User{},
		&catalog.Product{},
		&order.Order{},
		&order.Item{},
		&shows.AutoShow{},
		&shows.Registration{},
	), "failed to migrate schema")

	return db
}

// UniqueEmail returns an email address that will not collide with any
// other fixture in the same test run.
func UniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%s@example.com", prefix, uuid.NewString()[:8])
}

// TestJWTConfig returns JWT settings suitable for tests
func TestJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "integration-test-secret-key-0123456789",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "motormarket-test",
	}
}
