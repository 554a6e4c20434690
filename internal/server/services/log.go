// Package services contains the server-side service layer sitting between
// the HTTP handlers and the log repository.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pastelog/pastelog/internal/models"
	"github.com/pastelog/pastelog/internal/server/repositories/logs"
)

// LogService implements the store-side half of the remote gateway contract:
// it assigns identifiers on create, stamps the immutable created date, and
// delegates persistence to the repository.
type LogService struct {
	repo    logs.Repository
	timeNow func() time.Time
}

func NewLogService(repo logs.Repository) *LogService {
	return &LogService{repo: repo, timeNow: time.Now}
}

// Create persists a new record, assigning the identifier. Callers must not
// supply one; a supplied id is discarded.
func (s *LogService) Create(ctx context.Context, log *models.Log) (string, error) {
	log.ID = uuid.NewString()
	if log.CreatedDate.IsZero() {
		log.CreatedDate = s.timeNow().UTC()
	}
	if err := s.repo.Create(ctx, log); err != nil {
		return "", fmt.Errorf("create error: %w", err)
	}
	return log.ID, nil
}

// Put inserts or overwrites the record at the caller-supplied identifier,
// used by deterministic/import flows.
func (s *LogService) Put(ctx context.Context, id string, log *models.Log) error {
	log.ID = id
	if log.CreatedDate.IsZero() {
		log.CreatedDate = s.timeNow().UTC()
	}
	return s.repo.Put(ctx, log)
}

func (s *LogService) GetByID(ctx context.Context, id string) (*models.Log, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *LogService) Update(ctx context.Context, id string, patch *models.Patch) error {
	return s.repo.Update(ctx, id, patch)
}

func (s *LogService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *LogService) ScanAll(ctx context.Context) ([]models.Log, error) {
	return s.repo.ScanAll(ctx)
}

func (s *LogService) MarkExpired(ctx context.Context, id string) error {
	return s.repo.MarkExpired(ctx, id)
}
