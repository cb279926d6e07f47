package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	App        string
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string
	Port       string
	GinMode    string
	LogFile    string
	LogLevel   string
	JWTSecret  string
	Origins    []string
	UploadDir  string
	SeedData   bool
}

var defaultPorts = map[string]string{
	"fyyur":  "5000",
	"trivia": "5001",
}

// LoadConfig reads the environment for the named app. The app name doubles as
// the default database name.
func LoadConfig(app string) (*Config, error) {
	port := defaultPorts[app]
	if port == "" {
		port = "8080"
	}

	seed, err := strconv.ParseBool(getEnv("SEED_DATA", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_DATA: %w", err)
	}

	cfg := &Config{
		App:        app,
		DBDriver:   strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", app),
		DBPath:     getEnv("DB_PATH", app+".db"),
		Port:       getEnv("PORT", port),
		GinMode:    getEnv("GIN_MODE", "debug"),
		LogFile:    os.Getenv("LOG_FILE"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		Origins:    splitList(getEnv("CORS_ORIGINS", "*")),
		UploadDir:  getEnv("UPLOAD_DIR", "./uploads"),
		SeedData:   seed,
	}

	if cfg.DBDriver != "postgres" && cfg.DBDriver != "sqlite" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	return cfg, nil
}

func (cfg *Config) Debug() bool {
	return cfg.GinMode == "debug"
}

func (cfg *Config) DSN() string {
	if cfg.DBDriver == "sqlite" {
		return cfg.DBPath
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)
}

func (cfg *Config) Dialector() gorm.Dialector {
	if cfg.DBDriver == "sqlite" {
		return sqlite.Open(cfg.DSN())
	}
	return postgres.Open(cfg.DSN())
}

// InitDatabase opens the configured database and migrates the given models.
func InitDatabase(cfg *Config, models ...interface{}) (*gorm.DB, error) {
	level := logger.Error
	if cfg.Debug() {
		level = logger.Info
	}

	db, err := gorm.Open(cfg.Dialector(), &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(models...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	slog.Info("database ready", "driver", cfg.DBDriver, "models", len(models))
	return db, nil
}

// NewLogger writes text to stdout, or JSON to LOG_FILE when it is set.
func NewLogger(cfg *Config) (*slog.Logger, func() error, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.LogFile == "" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts)).With("app", cfg.App), func() error { return nil }, nil
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(file, opts)).With("app", cfg.App), file.Close, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
