package sweeper

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pastelog/pastelog/internal/logging"
	serverdb "github.com/pastelog/pastelog/internal/server/db"
	"github.com/pastelog/pastelog/internal/sweeper/config"
)

// App wires the sweeper against the authoritative store and runs it either
// once or on an interval, depending on configuration.
type App struct {
	config  *config.Config
	logger  logging.Logger
	sweeper *Sweeper
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	repos, err := serverdb.InitDatabase(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	policy := Policy(c.Policy)
	if policy != PolicyMark && policy != PolicyDelete {
		return nil, fmt.Errorf("unknown sweep policy %q", c.Policy)
	}

	var archiver Archiver
	if policy == PolicyDelete && c.S3Bucket != "" {
		a, err := NewS3Archiver(ctx, S3Options{
			Region:       c.S3Region,
			Bucket:       c.S3Bucket,
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
			BaseEndpoint: c.S3BaseEndpoint,
			Prefix:       "purged/",
		})
		if err != nil {
			return nil, fmt.Errorf("archiver init error: %w", err)
		}
		archiver = a
	}

	return &App{
		config:  c,
		logger:  logger,
		sweeper: New(repos.Logs, logger, policy, archiver),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run performs one sweep, then keeps sweeping on the configured interval
// until the context is cancelled. A zero interval means one-shot.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	app.sweep(ctx)

	if app.config.Interval <= 0 {
		return
	}

	ticker := time.NewTicker(app.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			app.sweep(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (app *App) sweep(ctx context.Context) {
	if _, err := app.sweeper.Run(ctx); err != nil {
		app.logger.Error(ctx, "sweep error", "error", err.Error())
	}
}
