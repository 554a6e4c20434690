// Package httpapi exposes the authoritative log store over an HTTP JSON API.
// This is the remote-store boundary clients talk to: a document store
// addressed by collection and identifier, with server-assigned ids on create.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/pastelog/pastelog/internal/logging"
	"github.com/pastelog/pastelog/internal/models"
)

// LogService is the store-side service consumed by the handlers.
type LogService interface {
	Create(ctx context.Context, log *models.Log) (string, error)
	Put(ctx context.Context, id string, log *models.Log) error
	GetByID(ctx context.Context, id string) (*models.Log, error)
	Update(ctx context.Context, id string, patch *models.Patch) error
	Delete(ctx context.Context, id string) error
	ScanAll(ctx context.Context) ([]models.Log, error)
	MarkExpired(ctx context.Context, id string) error
}

type Server struct {
	svc        LogService
	logger     logging.Logger
	httpServer *http.Server
	router     *mux.Router
}

func NewServer(addr string, logger logging.Logger, svc LogService) *Server {
	server := &Server{
		svc:    svc,
		logger: logger,
	}

	router := mux.NewRouter()
	router.HandleFunc("/ping", server.handlePing).Methods(http.MethodGet)
	router.HandleFunc("/api/logs", server.handleScanAll).Methods(http.MethodGet)
	router.HandleFunc("/api/logs", server.handleCreate).Methods(http.MethodPost)
	router.HandleFunc("/api/logs/{id}", server.handleGet).Methods(http.MethodGet)
	router.HandleFunc("/api/logs/{id}", server.handlePut).Methods(http.MethodPut)
	router.HandleFunc("/api/logs/{id}", server.handlePatch).Methods(http.MethodPatch)
	router.HandleFunc("/api/logs/{id}", server.handleDelete).Methods(http.MethodDelete)
	router.HandleFunc("/api/logs/{id}/expire", server.handleMarkExpired).Methods(http.MethodPost)

	server.httpServer = &http.Server{
		Addr:    addr,
		Handler: router,

		// Guards against slow-header connection exhaustion.
		ReadHeaderTimeout: 5 * time.Second,
	}
	server.router = router

	return server
}

// Run starts the HTTP listener and blocks until ctx is cancelled, then shuts
// the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
