package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"MM_APP_NAME":                os.Getenv("MM_APP_NAME"),
		"MM_APP_ENV":                 os.Getenv("MM_APP_ENV"),
		"MM_APP_PORT":                os.Getenv("MM_APP_PORT"),
		"MM_DATABASE_DRIVER":         os.Getenv("MM_DATABASE_DRIVER"),
		"MM_DATABASE_HOST":           os.Getenv("MM_DATABASE_HOST"),
		"MM_DATABASE_PORT":           os.Getenv("MM_DATABASE_PORT"),
		"MM_DATABASE_USER":           os.Getenv("MM_DATABASE_USER"),
		"MM_DATABASE_PASSWORD":       os.Getenv("MM_DATABASE_PASSWORD"),
		"MM_DATABASE_DBNAME":         os.Getenv("MM_DATABASE_DBNAME"),
		"MM_DATABASE_SSLMODE":        os.Getenv("MM_DATABASE_SSLMODE"),
		"MM_DATABASE_MAX_OPEN_CONNS": os.Getenv("MM_DATABASE_MAX_OPEN_CONNS"),
		"MM_DATABASE_MAX_IDLE_CONNS": os.Getenv("MM_DATABASE_MAX_IDLE_CONNS"),
		"MM_JWT_SECRET":              os.Getenv("MM_JWT_SECRET"),
		"MM_PRICING_TAX_RATE":        os.Getenv("MM_PRICING_TAX_RATE"),
		"MM_PAYMENT_SUCCESS_RATE":    os.Getenv("MM_PAYMENT_SUCCESS_RATE"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "motormarket-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "motormarket", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	})

	t.Run("applies pricing and payment defaults", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 0.08, cfg.Pricing.TaxRate)
		assert.Equal(t, float64(10000), cfg.Pricing.FreeShippingThreshold)
		assert.Equal(t, float64(500), cfg.Pricing.FlatShippingFee)
		assert.Equal(t, "PKR", cfg.Pricing.Currency)
		assert.Equal(t, 0.90, cfg.Payment.SuccessRate)
		assert.Positive(t, cfg.Payment.Timeout)
		assert.Equal(t, "memory", cfg.Cart.Store)
	})

	t.Run("rejects unknown cart store", func(t *testing.T) {
		clearEnv()
		os.Setenv("MM_CART_STORE", "memcached")
		defer os.Unsetenv("MM_CART_STORE")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cart.store")
	})

	t.Run("loads values from environment variables with MM prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("MM_APP_NAME", "test-app")
		os.Setenv("MM_APP_ENV", "testing")
		os.Setenv("MM_APP_PORT", "9000")
		os.Setenv("MM_DATABASE_DRIVER", "sqlite")
		os.Setenv("MM_DATABASE_MAX_OPEN_CONNS", "50")
		os.Setenv("MM_DATABASE_MAX_IDLE_CONNS", "10")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
	})

	t.Run("rejects unknown database driver", func(t *testing.T) {
		clearEnv()
		os.Setenv("MM_DATABASE_DRIVER", "oracle")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.driver")
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("MM_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("MM_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("validates payment success rate range", func(t *testing.T) {
		clearEnv()
		os.Setenv("MM_PAYMENT_SUCCESS_RATE", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "payment.success_rate")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"MM_APP_ENV":                 os.Getenv("MM_APP_ENV"),
		"MM_JWT_SECRET":              os.Getenv("MM_JWT_SECRET"),
		"MM_DATABASE_DRIVER":         os.Getenv("MM_DATABASE_DRIVER"),
		"MM_DATABASE_PASSWORD":       os.Getenv("MM_DATABASE_PASSWORD"),
		"MM_DATABASE_SSLMODE":        os.Getenv("MM_DATABASE_SSLMODE"),
		"MM_HTTP_CORS_ALLOW_ORIGINS": os.Getenv("MM_HTTP_CORS_ALLOW_ORIGINS"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	setValidProductionBase := func() {
		os.Setenv("MM_APP_ENV", "production")
		os.Setenv("MM_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("MM_DATABASE_PASSWORD", "secure-password")
		os.Setenv("MM_DATABASE_SSLMODE", "require")
	}

	t.Run("requires jwt.secret in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("MM_APP_ENV", "production")
		os.Setenv("MM_DATABASE_PASSWORD", "secure-password")
		os.Setenv("MM_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret is required in production")
	})

	t.Run("requires jwt.secret at least 32 characters in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("MM_APP_ENV", "production")
		os.Setenv("MM_JWT_SECRET", "short-secret")
		os.Setenv("MM_DATABASE_PASSWORD", "secure-password")
		os.Setenv("MM_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret must be at least 32 characters")
	})

	t.Run("requires database.password in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("MM_APP_ENV", "production")
		os.Setenv("MM_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("MM_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("MM_APP_ENV", "production")
		os.Setenv("MM_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("MM_DATABASE_PASSWORD", "secure-password")
		os.Setenv("MM_DATABASE_SSLMODE", "disable")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("sqlite skips postgres production checks", func(t *testing.T) {
		clearEnv()
		os.Setenv("MM_APP_ENV", "production")
		os.Setenv("MM_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		os.Setenv("MM_DATABASE_DRIVER", "sqlite")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		setValidProductionBase()

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid postgres DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Driver:   "postgres",
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost")
		assert.Contains(t, dsn, "5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Driver:   "postgres",
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		// URL-encoded password should be in the DSN
		assert.Contains(t, dsn, "pass%40word%23123")
	})

	t.Run("sqlite DSN is the file path", func(t *testing.T) {
		cfg := DatabaseConfig{
			Driver:     "sqlite",
			SQLitePath: "motormarket.db",
		}
		assert.Equal(t, "motormarket.db", cfg.DSN())
	})
}
