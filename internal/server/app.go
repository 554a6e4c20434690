// Package server initializes and runs the pastelog API server: it wires the
// PostgreSQL-backed log store, applies migrations, and serves the HTTP API
// until interrupted.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pastelog/pastelog/internal/logging"
	"github.com/pastelog/pastelog/internal/server/config"
	"github.com/pastelog/pastelog/internal/server/db"
	"github.com/pastelog/pastelog/internal/server/httpapi"
	"github.com/pastelog/pastelog/internal/server/services"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	logService *services.LogService
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	repos, err := db.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	ls := services.NewLogService(repos.Logs)

	return &App{config: c, logger: logger, logService: ls}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app")

	app.initSignalHandler(cancelFunc)

	s := httpapi.NewServer(app.config.EndpointAddr, app.logger, app.logService)
	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
	}
}
