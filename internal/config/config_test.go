package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/authkit/internal/errors"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		validate func(t *testing.T, cfg *Config)
	}{
		{
			name:    "load default configuration",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "0.0.0.0", cfg.ServerHost)
				assert.Equal(t, 8080, cfg.ServerPort)
				assert.Equal(t, "postgres", cfg.DBDriver)
				assert.Equal(t, 5*time.Minute, cfg.DBConnMaxLifetime)
				assert.Equal(t, "info", cfg.LogLevel)
				assert.Equal(t, "HS256", cfg.TokenSigningAlgorithm)
				assert.Equal(t, "default", cfg.TokenSigningKeyID)
				assert.Equal(t, 30*time.Minute, cfg.TokenExpiration)
				assert.Equal(t, "access", cfg.TokenPurpose)
				assert.Equal(t, time.Duration(0), cfg.TokenClockSkew)
				assert.Equal(t, "argon2id", cfg.PasswordHashAlgorithm)
				assert.Equal(t, "interactive", cfg.PasswordHashPolicy)
				assert.Equal(t, 128, cfg.PasswordMaxBytes)
				assert.True(t, cfg.RateLimitTokenEnabled)
				assert.Equal(t, "authkit", cfg.MetricsNamespace)
			},
		},
		{
			name: "load custom database configuration",
			envVars: map[string]string{
				"DB_DRIVER":               "mysql",
				"DB_CONNECTION_STRING":    "user:password@tcp(localhost:3306)/testdb",
				"DB_MAX_OPEN_CONNECTIONS": "50",
				"DB_CONN_MAX_LIFETIME":    "10",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "mysql", cfg.DBDriver)
				assert.Equal(t, "user:password@tcp(localhost:3306)/testdb", cfg.DBConnectionString)
				assert.Equal(t, 50, cfg.DBMaxOpenConnections)
				assert.Equal(t, 10*time.Minute, cfg.DBConnMaxLifetime)
			},
		},
		{
			name: "load custom token configuration",
			envVars: map[string]string{
				"TOKEN_SIGNING_ALGORITHM":  "HS512",
				"TOKEN_SIGNING_KEY_ID":     "k-2026",
				"TOKEN_EXPIRATION_SECONDS": "60",
				"TOKEN_ISSUER":             "authkit-test",
				"TOKEN_CLOCK_SKEW_SECONDS": "5",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "HS512", cfg.TokenSigningAlgorithm)
				assert.Equal(t, "k-2026", cfg.TokenSigningKeyID)
				assert.Equal(t, time.Minute, cfg.TokenExpiration)
				assert.Equal(t, "authkit-test", cfg.TokenIssuer)
				assert.Equal(t, 5*time.Second, cfg.TokenClockSkew)
			},
		},
		{
			name: "load custom password configuration",
			envVars: map[string]string{
				"PASSWORD_HASH_ALGORITHM": "bcrypt",
				"PASSWORD_BCRYPT_COST":    "10",
			},
			validate: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "bcrypt", cfg.PasswordHashAlgorithm)
				assert.Equal(t, 10, cfg.PasswordBcryptCost)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()

			for key, value := range tt.envVars {
				require.NoError(t, os.Setenv(key, value))
			}

			tt.validate(t, Load())
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	validConfig := func() *Config {
		os.Clearenv()
		cfg := Load()
		cfg.DBDriver = DriverMemory
		return cfg
	}

	t.Run("Success_Defaults", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("Error_UnsupportedDriver", func(t *testing.T) {
		cfg := validConfig()
		cfg.DBDriver = "sqlite"
		err := cfg.Validate()
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("Error_UnsupportedAlgorithm", func(t *testing.T) {
		cfg := validConfig()
		cfg.TokenSigningAlgorithm = "RS256"
		assert.Error(t, cfg.Validate())
	})

	t.Run("Error_NonPositiveExpiration", func(t *testing.T) {
		cfg := validConfig()
		cfg.TokenExpiration = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("Error_UnsupportedHashAlgorithm", func(t *testing.T) {
		cfg := validConfig()
		cfg.PasswordHashAlgorithm = "md5"
		assert.Error(t, cfg.Validate())
	})

	t.Run("Error_KMSProviderWithoutURI", func(t *testing.T) {
		cfg := validConfig()
		cfg.KMSProvider = "awskms"
		assert.Error(t, cfg.Validate())
	})

	t.Run("Error_DatabaseDriverWithoutConnectionString", func(t *testing.T) {
		cfg := validConfig()
		cfg.DBDriver = DriverPostgres
		cfg.DBConnectionString = ""
		assert.Error(t, cfg.Validate())
	})
}

func TestConfig_GetGinMode(t *testing.T) {
	assert.Equal(t, "debug", (&Config{LogLevel: "debug"}).GetGinMode())
	assert.Equal(t, "release", (&Config{LogLevel: "info"}).GetGinMode())
	assert.Equal(t, "release", (&Config{LogLevel: "bogus"}).GetGinMode())
}
