package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/farellandr/fyyur-trivia/config"
	"github.com/farellandr/fyyur-trivia/internal/models"
	"github.com/gin-gonic/gin"
)

// StartFyyur serves the venue/artist/show site until SIGINT or SIGTERM.
func StartFyyur() error {
	cfg, logger, closeLog, err := setup("fyyur")
	if err != nil {
		return err
	}
	defer closeLog()

	db, err := config.InitDatabase(cfg, &models.Venue{}, &models.Artist{}, &models.Show{})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	r, err := NewFyyurRouter(db, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}

	return run(r, cfg, logger)
}

// StartTrivia serves the trivia JSON API until SIGINT or SIGTERM.
func StartTrivia() error {
	cfg, logger, closeLog, err := setup("trivia")
	if err != nil {
		return err
	}
	defer closeLog()

	db, err := config.InitDatabase(cfg, &models.Category{}, &models.Question{})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := config.SeedTrivia(db, cfg.SeedData); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	return run(NewTriviaRouter(db, cfg, logger), cfg, logger)
}

func setup(app string) (*config.Config, *slog.Logger, func() error, error) {
	cfg, err := config.LoadConfig(app)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, closeLog, err := config.NewLogger(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	slog.SetDefault(logger)
	gin.SetMode(cfg.GinMode)

	return cfg, logger, closeLog, nil
}

func run(handler http.Handler, cfg *config.Config, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	logger.Info("server exited")
	return nil
}
