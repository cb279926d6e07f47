package config

import (
	"path/filepath"
	"testing"

	"github.com/farellandr/fyyur-trivia/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"DB_DRIVER", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_PATH",
		"PORT", "GIN_MODE", "LOG_FILE", "LOG_LEVEL", "JWT_SECRET", "CORS_ORIGINS", "UPLOAD_DIR", "SEED_DATA",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("trivia")
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "trivia", cfg.DBName)
	assert.Equal(t, "5001", cfg.Port)
	assert.Equal(t, []string{"*"}, cfg.Origins)
	assert.False(t, cfg.SeedData)
	assert.True(t, cfg.Debug())
	assert.Equal(t, "host=localhost user=postgres password= dbname=trivia port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())

	cfg, err = LoadConfig("fyyur")
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "./uploads", cfg.UploadDir)
}

func TestLoadConfigFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_PATH", "/tmp/trivia.db")
	t.Setenv("PORT", "9000")
	t.Setenv("GIN_MODE", "release")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://trivia.example.com,")
	t.Setenv("SEED_DATA", "true")

	cfg, err := LoadConfig("trivia")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "/tmp/trivia.db", cfg.DSN())
	assert.Equal(t, "sqlite", cfg.Dialector().Name())
	assert.Equal(t, "9000", cfg.Port)
	assert.False(t, cfg.Debug())
	assert.Equal(t, []string{"http://localhost:3000", "https://trivia.example.com"}, cfg.Origins)
	assert.True(t, cfg.SeedData)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "mysql")
	_, err := LoadConfig("fyyur")
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("SEED_DATA", "sometimes")
	_, err = LoadConfig("trivia")
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	_, _, err := NewLogger(&Config{App: "trivia", LogLevel: "loud"})
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "trivia.log")
	logger, closeLog, err := NewLogger(&Config{App: "trivia", LogLevel: "info", LogFile: path})
	require.NoError(t, err)
	logger.Info("hello")
	require.NoError(t, closeLog())
	assert.FileExists(t, path)
}

func TestSeedTrivia(t *testing.T) {
	cfg := &Config{App: "trivia", DBDriver: "sqlite", DBPath: filepath.Join(t.TempDir(), "trivia.db"), GinMode: "release"}
	db, err := InitDatabase(cfg, &models.Category{}, &models.Question{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, SeedTrivia(db, false))
	var questions int64
	db.Model(&models.Question{}).Count(&questions)
	assert.Zero(t, questions)

	require.NoError(t, SeedTrivia(db, true))
	require.NoError(t, SeedTrivia(db, true))

	var categories []models.Category
	require.NoError(t, db.Order("id").Find(&categories).Error)
	require.Len(t, categories, 6)
	assert.Equal(t, "Science", categories[0].Type)
	assert.Equal(t, "Sports", categories[5].Type)

	db.Model(&models.Question{}).Count(&questions)
	assert.Equal(t, int64(len(triviaQuestions)), questions)

	var science int64
	db.Model(&models.Question{}).Where("category = ?", 1).Count(&science)
	assert.Equal(t, int64(3), science)
}
