// Package remote implements the client half of the remote store gateway:
// CRUD and scan operations against the authoritative store over its HTTP
// JSON API. All operations are durable and individually atomic at the store;
// this layer adds no retries, callers decide retry policy.
package remote

import (
	"context"

	"github.com/pastelog/pastelog/internal/models"
)

// Gateway describes the operations of the authoritative store.
//
// Get returns common.ErrorNotFound for an absent id. Transport and
// availability failures surface as common.ErrorStoreUnavailable.
type Gateway interface {
	// Create writes a new record and returns the store-assigned id.
	// Callers must not supply one.
	Create(ctx context.Context, log *models.Log) (string, error)

	// Get performs a point read.
	Get(ctx context.Context, id string) (*models.Log, error)

	// Put writes a record at a caller-supplied id, overwriting any
	// existing record.
	Put(ctx context.Context, id string, log *models.Log) error

	// Update merges non-nil patch fields into the record at id.
	Update(ctx context.Context, id string, patch *models.Patch) error

	// Delete removes the record at id.
	Delete(ctx context.Context, id string) error

	// ScanAll returns every record in the store, unfiltered.
	ScanAll(ctx context.Context) ([]models.Log, error)

	// MarkExpired flips the terminal expired marker on the record at id.
	MarkExpired(ctx context.Context, id string) error

	// Ping probes store reachability.
	Ping(ctx context.Context) error
}
