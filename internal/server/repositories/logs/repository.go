package logs

import (
	"context"

	"github.com/pastelog/pastelog/internal/models"
)

// Repository describes the authoritative-store operations for Log records.
// Every operation is individually atomic; there is no multi-record
// transaction guarantee.
type Repository interface {
	// Create inserts a new record. The caller must have assigned the id.
	Create(ctx context.Context, log *models.Log) error

	// GetByID returns a record by its identifier, or common.ErrorNotFound.
	GetByID(ctx context.Context, id string) (*models.Log, error)

	// Put inserts or fully overwrites the record at log.ID.
	Put(ctx context.Context, log *models.Log) error

	// Update merges the non-nil patch fields into an existing record.
	// Returns common.ErrorNotFound if no record exists at id.
	Update(ctx context.Context, id string, patch *models.Patch) error

	// Delete removes a record. Absence is not an error.
	Delete(ctx context.Context, id string) error

	// ScanAll returns every record in the store, unfiltered.
	ScanAll(ctx context.Context) ([]models.Log, error)

	// MarkExpired flips the terminal is_expired marker. Re-marking an
	// already expired record is a no-op, which keeps the sweep idempotent.
	MarkExpired(ctx context.Context, id string) error
}
