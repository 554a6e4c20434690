// Package sweeper implements the expiry sweep over the authoritative store.
// A sweep scans every record, finds those whose deadline has elapsed, and
// either marks them expired or purges them, depending on policy. Single
// record failures are collected and do not stop the sweep.
package sweeper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/pastelog/pastelog/internal/logging"
	"github.com/pastelog/pastelog/internal/models"
	"github.com/pastelog/pastelog/internal/server/repositories/logs"
)

// Policy selects what a sweep does with dead records.
type Policy string

const (
	// PolicyMark flips the expired marker on records whose deadline has
	// elapsed. Records stay in the store for later inspection or purge.
	PolicyMark Policy = "mark"

	// PolicyDelete purges records that are marked expired or whose
	// deadline has elapsed, archiving each one first when an archiver
	// is configured.
	PolicyDelete Policy = "delete"
)

// Stats summarizes one sweep run.
type Stats struct {
	Scanned  int
	Marked   int
	Purged   int
	Archived int
	Failed   int
}

type Sweeper struct {
	repo      logs.Repository
	logger    logging.Logger
	policy    Policy
	archiver  Archiver
	timeNow   func() time.Time
	retryBase time.Duration
}

// New creates a Sweeper. The archiver may be nil, in which case purged
// records are not archived.
func New(repo logs.Repository, logger logging.Logger, policy Policy, archiver Archiver) *Sweeper {
	return &Sweeper{
		repo:      repo,
		logger:    logger,
		policy:    policy,
		archiver:  archiver,
		timeNow:   time.Now,
		retryBase: time.Second,
	}
}

// scanWithRetry reads the full record set, retrying transient store errors
// with fibonacci backoff before giving up.
func (s *Sweeper) scanWithRetry(ctx context.Context) ([]models.Log, error) {
	var records []models.Log

	backoff := retry.WithMaxRetries(3, retry.NewFibonacci(s.retryBase))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		records, err = s.repo.ScanAll(ctx)
		if err != nil {
			s.logger.Warn(ctx, "scan failed, retrying", "error", err.Error())
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning store: %w", err)
	}
	return records, nil
}

// dead reports whether a record is past its useful life for the current
// policy. Records with no deadline never die on their own.
func (s *Sweeper) dead(l *models.Log, now time.Time) bool {
	if s.policy == PolicyDelete {
		return l.IsExpired || l.Elapsed(now)
	}
	return !l.IsExpired && l.Elapsed(now)
}

// Run executes one sweep. Per-record failures are counted and joined into
// the returned error; the sweep itself continues past them, so re-running
// after a partial failure converges. Run is idempotent: a second sweep over
// the same data finds nothing left to do.
func (s *Sweeper) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	records, err := s.scanWithRetry(ctx)
	if err != nil {
		return stats, err
	}
	stats.Scanned = len(records)

	now := s.timeNow()
	var errs []error

	for i := range records {
		record := &records[i]
		if !s.dead(record, now) {
			continue
		}

		switch s.policy {
		case PolicyDelete:
			if s.archiver != nil {
				if err := s.archiver.Archive(ctx, record); err != nil {
					// Archiving is best effort; the purge proceeds.
					s.logger.Warn(ctx, "archive failed", "id", record.ID, "error", err.Error())
				} else {
					stats.Archived++
				}
			}
			if err := s.repo.Delete(ctx, record.ID); err != nil {
				stats.Failed++
				errs = append(errs, fmt.Errorf("delete %s: %w", record.ID, err))
				continue
			}
			stats.Purged++

		default:
			if err := s.repo.MarkExpired(ctx, record.ID); err != nil {
				stats.Failed++
				errs = append(errs, fmt.Errorf("mark %s: %w", record.ID, err))
				continue
			}
			stats.Marked++
		}
	}

	s.logger.Info(ctx, "sweep finished",
		"scanned", stats.Scanned,
		"marked", stats.Marked,
		"purged", stats.Purged,
		"archived", stats.Archived,
		"failed", stats.Failed,
	)

	return stats, errors.Join(errs...)
}
