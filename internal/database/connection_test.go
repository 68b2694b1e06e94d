package database

import (
	"os"
	"testing"

	"github.com/franciscosanchezn/store-rating-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDSN(t *testing.T) {
	testCases := []struct {
		name     string
		cfg      DatabaseConfig
		expected string
	}{
		{
			name:     "postgres",
			cfg:      DatabaseConfig{Driver: "postgres", Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"},
			expected: "host=db user=u password=p dbname=n port=5432 sslmode=disable",
		},
		{
			name:     "mysql",
			cfg:      DatabaseConfig{Driver: "MySQL", Host: "db", Port: "3306", User: "u", Password: "p", Name: "n"},
			expected: "u:p@tcp(db:3306)/n?charset=utf8mb4&parseTime=True&loc=UTC",
		},
		{
			name:     "sqlite",
			cfg:      DatabaseConfig{Driver: "sqlite", Path: "ratings.db"},
			expected: "ratings.db",
		},
		{
			name:     "unknown driver",
			cfg:      DatabaseConfig{Driver: "oracle"},
			expected: "",
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.cfg.DSN())
		})
	}
}

func TestStringMasksPassword(t *testing.T) {
	cfg := DatabaseConfig{Driver: "postgres", Password: "hunter2"}
	assert.NotContains(t, cfg.String(), "hunter2")
	assert.Contains(t, cfg.String(), "[REDACTED]")
}

func TestLoadConfigFromEnv(t *testing.T) {
	for _, key := range []string{"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE", "DB_PATH"} {
		os.Unsetenv(key)
	}

	t.Run("defaults to sqlite", func(t *testing.T) {
		cfg, err := LoadConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.Driver)
		assert.Equal(t, "store_rating.sqlite", cfg.Path)
		assert.Empty(t, cfg.Port)
	})

	t.Run("fills driver default port", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "MYSQL")
		t.Setenv("DB_HOST", "mysql.internal")
		cfg, err := LoadConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "mysql", cfg.Driver)
		assert.Equal(t, "3306", cfg.Port)
		assert.Equal(t, "mysql.internal", cfg.Host)
	})

	t.Run("explicit port wins", func(t *testing.T) {
		t.Setenv("DB_DRIVER", "postgres")
		t.Setenv("DB_PORT", "6543")
		cfg, err := LoadConfigFromEnv()
		require.NoError(t, err)
		assert.Equal(t, "6543", cfg.Port)
	})
}

func TestInitDatabaseSQLiteInMemory(t *testing.T) {
	cfg := DatabaseConfig{Driver: "sqlite", Path: ":memory:"}
	assert.True(t, cfg.InMemory())

	db, err := InitDatabase(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.Store{}))
	assert.True(t, db.Migrator().HasTable(&models.Rating{}))
	assert.True(t, db.Migrator().HasIndex(&models.Rating{}, "idx_ratings_store_user"))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestDuplicateKeyIsTranslated(t *testing.T) {
	db, err := InitDatabase(DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })
	require.NoError(t, Migrate(db))

	first := models.User{ID: "u1", Name: "First User With Long Name", Email: "dup@example.com", PasswordHash: "x", Role: models.RoleNormal}
	second := models.User{ID: "u2", Name: "Second User With Long Name", Email: "dup@example.com", PasswordHash: "x", Role: models.RoleNormal}
	require.NoError(t, db.Create(&first).Error)

	err = db.Create(&second).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestInitDatabaseUnsupportedDriver(t *testing.T) {
	_, err := InitDatabase(DatabaseConfig{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}
