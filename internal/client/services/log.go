// Package services contains the client-side coordinator that orchestrates
// reads and writes across the remote store and the local mirror, applying
// expiry filtering on every read path.
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/pastelog/pastelog/internal/client/remote"
	"github.com/pastelog/pastelog/internal/client/repositories/logs"
	"github.com/pastelog/pastelog/internal/common"
	"github.com/pastelog/pastelog/internal/logging"
	"github.com/pastelog/pastelog/internal/models"
)

// LogService is the coordinator clients interact with. Reads that must
// reflect true expiry status always go to the remote store first; the mirror
// is consulted only for presence checks and offline listings, never as the
// sole source of truth for a single-record fetch.
type LogService interface {
	// FetchAll reads all records from the remote store, drops logically
	// expired ones, resynchronizes the mirror wholesale with the result,
	// and returns it ordered by created date descending.
	FetchAll(ctx context.Context) ([]models.Log, error)

	// FetchByID reads a record from the remote store for a fresh expiry
	// status. A logically expired record is treated as absent and pruned
	// from the mirror.
	FetchByID(ctx context.Context, id string) (*models.Log, error)

	// Publish writes a new record. On any store failure it returns the
	// empty-identifier sentinel with a nil error and leaves the mirror
	// untouched; callers must check for "".
	Publish(ctx context.Context, log *models.Log) (string, error)

	// PublishWithID writes a record at a caller-supplied identifier,
	// overwriting any existing record there.
	PublishWithID(ctx context.Context, log *models.Log, id string) (string, error)

	// Update writes changed fields through to the remote store, then
	// refreshes the mirror copy. A nil ExpiryDate leaves the stored
	// deadline unchanged; an expiry cannot be cleared back to
	// "never expires" here, use PublishWithID to rewrite the record.
	Update(ctx context.Context, id string, log *models.Log) error

	// MarkExpiredByID sets the remote expired marker and removes the
	// mirror entry so it cannot linger even transiently.
	MarkExpiredByID(ctx context.Context, id string) error

	// DeleteByID deletes remotely and removes the mirror entry.
	DeleteByID(ctx context.Context, id string) error

	// IsPresentLocally is a mirror-only existence check, used as a fast
	// pre-check before attempting a remote fetch.
	IsPresentLocally(ctx context.Context, id string) (bool, error)

	// ListLocal serves the last fetched listing from the mirror,
	// re-filtered by expiry. Works offline.
	ListLocal(ctx context.Context) ([]models.Log, error)

	// Ping probes remote store reachability.
	Ping(ctx context.Context) error
}

type logService struct {
	gateway remote.Gateway
	mirror  logs.Repository
	logger  logging.Logger
	timeNow func() time.Time
}

func NewLogService(gateway remote.Gateway, mirror logs.Repository, logger logging.Logger) LogService {
	return &logService{gateway: gateway, mirror: mirror, logger: logger, timeNow: time.Now}
}

// absorbMirrorError logs a mirror failure and swallows it: the mirror is an
// optimization layer and must never affect the outcome of a remote operation.
func (s *logService) absorbMirrorError(ctx context.Context, op string, err error) {
	if err != nil {
		s.logger.Warn(ctx, "mirror update failed", "op", op, "error", err.Error())
	}
}

func (s *logService) FetchAll(ctx context.Context) ([]models.Log, error) {
	records, err := s.gateway.ScanAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching logs: %w", err)
	}

	now := s.timeNow()
	live := make([]models.Log, 0, len(records))
	for _, r := range records {
		if r.IsLive(now) {
			live = append(live, r)
		}
	}
	sort.Slice(live, func(i, j int) bool {
		return live[i].CreatedDate.After(live[j].CreatedDate)
	})

	// Full resynchronization: the mirror content is replaced wholesale,
	// not merged, so stale and already-expired entries disappear together.
	s.absorbMirrorError(ctx, "replace", s.mirror.ReplaceAll(ctx, live))

	return live, nil
}

func (s *logService) FetchByID(ctx context.Context, id string) (*models.Log, error) {
	log, err := s.gateway.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !log.IsLive(s.timeNow()) {
		// Logically expired records are indistinguishable from absent
		// ones to callers, and must not linger in the mirror.
		s.absorbMirrorError(ctx, "remove", s.mirror.Remove(ctx, id))
		return nil, common.ErrorNotFound
	}

	s.absorbMirrorError(ctx, "upsert", s.mirror.Upsert(ctx, log))
	return log, nil
}

func (s *logService) Publish(ctx context.Context, log *models.Log) (string, error) {
	if log.CreatedDate.IsZero() {
		log.CreatedDate = s.timeNow().UTC()
	}

	id, err := s.gateway.Create(ctx, log)
	if err != nil || id == "" {
		// Publish failures surface as the empty-identifier sentinel, and
		// the mirror is left untouched.
		if err != nil {
			s.logger.Warn(ctx, "publish failed", "error", err.Error())
		}
		return "", nil
	}

	log.ID = id
	s.absorbMirrorError(ctx, "upsert", s.mirror.Upsert(ctx, log))
	return id, nil
}

func (s *logService) PublishWithID(ctx context.Context, log *models.Log, id string) (string, error) {
	if log.CreatedDate.IsZero() {
		log.CreatedDate = s.timeNow().UTC()
	}

	if err := s.gateway.Put(ctx, id, log); err != nil {
		return "", fmt.Errorf("error publishing log: %w", err)
	}

	log.ID = id
	s.absorbMirrorError(ctx, "upsert", s.mirror.Upsert(ctx, log))
	return id, nil
}

func (s *logService) Update(ctx context.Context, id string, log *models.Log) error {
	patch := &models.Patch{
		Data:        &log.Data,
		Title:       &log.Title,
		ExpiryDate:  log.ExpiryDate,
		Type:        &log.Type,
		IsExpired:   &log.IsExpired,
		IsEncrypted: &log.IsEncrypted,
	}
	if err := s.gateway.Update(ctx, id, patch); err != nil {
		return fmt.Errorf("error updating log: %w", err)
	}

	log.ID = id
	s.absorbMirrorError(ctx, "upsert", s.mirror.Upsert(ctx, log))
	return nil
}

func (s *logService) MarkExpiredByID(ctx context.Context, id string) error {
	if err := s.gateway.MarkExpired(ctx, id); err != nil {
		return fmt.Errorf("error marking log expired: %w", err)
	}
	s.absorbMirrorError(ctx, "remove", s.mirror.Remove(ctx, id))
	return nil
}

func (s *logService) DeleteByID(ctx context.Context, id string) error {
	if err := s.gateway.Delete(ctx, id); err != nil {
		return fmt.Errorf("error deleting log: %w", err)
	}
	s.absorbMirrorError(ctx, "remove", s.mirror.Remove(ctx, id))
	return nil
}

func (s *logService) IsPresentLocally(ctx context.Context, id string) (bool, error) {
	ok, err := s.mirror.Exists(ctx, id)
	if err != nil {
		// Degrade to "not cached": a broken mirror only costs a remote
		// round-trip, never correctness.
		s.absorbMirrorError(ctx, "exists", err)
		return false, nil
	}
	return ok, nil
}

func (s *logService) ListLocal(ctx context.Context) ([]models.Log, error) {
	records, err := s.mirror.ListLive(ctx, s.timeNow())
	if err != nil {
		s.absorbMirrorError(ctx, "list", err)
		return nil, nil
	}
	return records, nil
}

func (s *logService) Ping(ctx context.Context) error {
	err := s.gateway.Ping(ctx)
	if err != nil && !errors.Is(err, common.ErrorStoreUnavailable) {
		return fmt.Errorf("%w: %v", common.ErrorStoreUnavailable, err)
	}
	return err
}
