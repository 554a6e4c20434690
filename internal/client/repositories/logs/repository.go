package logs

import (
	"context"
	"time"

	"github.com/pastelog/pastelog/internal/models"
)

// Repository describes the local mirror of records this client has seen.
// The mirror is never the system of record: it may be empty, stale or
// entirely absent without affecting correctness of the remote path.
// Persistence failures are reported as common.ErrorMirrorUnavailable.
type Repository interface {
	// ListLive returns all mirrored records that are live at the given
	// instant, most recent first. The expiry timestamp is re-evaluated on
	// every call, so a logically expired record is never returned even if
	// the remote store has not been swept yet.
	ListLive(ctx context.Context, now time.Time) ([]models.Log, error)

	// Upsert inserts or replaces a record by id. A record without an id
	// has not been persisted remotely and is rejected with
	// common.ErrorMissingID.
	Upsert(ctx context.Context, log *models.Log) error

	// Remove deletes the mirrored entry. Absence is not an error.
	Remove(ctx context.Context, id string) error

	// GetByID returns a mirrored record or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Log, error)

	// Exists reports whether a record is mirrored, live or not.
	Exists(ctx context.Context, id string) (bool, error)

	// ReplaceAll atomically replaces the entire mirror content. This is
	// the single reconciliation entry point used by full resynchronization.
	ReplaceAll(ctx context.Context, records []models.Log) error
}
