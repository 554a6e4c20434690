package cli

import (
	"bufio"
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/pastelog/pastelog/internal/client/config"
	"github.com/pastelog/pastelog/internal/client/db"
	"github.com/pastelog/pastelog/internal/client/gist"
	"github.com/pastelog/pastelog/internal/client/remote"
	"github.com/pastelog/pastelog/internal/client/services"
	"github.com/pastelog/pastelog/internal/client/summary"
	"github.com/pastelog/pastelog/internal/logging"

	_ "modernc.org/sqlite"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config     *config.Config
	logService services.LogService
	importer   *gist.Importer
	summarizer *summary.Summarizer
	Mode       Mode
	reader     *bufio.Reader
	closeDB    func() error
}

func NewApp(c *config.Config) (*App, error) {

	ctx := context.Background()

	repos, err := db.InitDatabase(ctx, c.MirrorPath)
	if err != nil {
		log.Printf("error initializing mirror database: %s", err.Error())
		return nil, err
	}

	gateway := remote.NewHTTPGateway(c.ServerEndpointAddr, c.RequestTimeout)
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	ls := services.NewLogService(gateway, repos.Logs, logger)

	// Without a configured key the summarizer stays nil; the summary
	// command prompts for one on first use.
	var summarizer *summary.Summarizer
	if c.SummaryAPIKey != "" {
		summarizer = summary.NewSummarizer(c.SummaryAPIKey)
	}

	return &App{
		config:     c,
		logService: ls,
		importer:   gist.NewImporter(c.GistToken),
		summarizer: summarizer,
		Mode:       ModeOffline,
		reader:     bufio.NewReader(os.Stdin),
		closeDB:    repos.DB.Close,
	}, nil
}

func (a *App) setMode(mode Mode) {
	if a.Mode != mode {
		a.Mode = mode
		log.Printf("Switched to %s mode\n", mode)
	}
}

func (a *App) isOnline() bool {
	return a.Mode == ModeOnline
}

func (a *App) Run(ctx context.Context) {
	defer a.closeDB()
	a.Root(ctx)
}

func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.logService.Ping(pingCtx)
			cancel()

			if err != nil {
				if a.Mode == ModeOnline {
					a.setMode(ModeOffline)
				}
			} else {
				if a.Mode != ModeOnline {
					a.setMode(ModeOnline)
				}
			}

		case <-ctx.Done():
			return
		}
	}
}
