// Package logs provides the PostgreSQL-backed repository for the
// authoritative log store.
package logs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pastelog/pastelog/internal/common"
	"github.com/pastelog/pastelog/internal/dbx"
	"github.com/pastelog/pastelog/internal/models"
)

// PostgresRepository implements Repository over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new record. The id must already be assigned.
func (r *PostgresRepository) Create(ctx context.Context, log *models.Log) error {
	if log.ID == "" {
		return common.ErrorMissingID
	}
	query := `
		INSERT INTO logs (id, data, title, created_date, expiry_date, type, is_expired, is_encrypted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		log.ID, log.Data, log.Title, log.CreatedDate, log.ExpiryDate, int(log.Type), log.IsExpired, log.IsEncrypted)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// GetByID returns a single record or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Log, error) {
	query := `
		SELECT id, data, title, created_date, expiry_date, type, is_expired, is_encrypted
		FROM logs WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, id)

	l := &models.Log{}
	var typ int
	if err := row.Scan(&l.ID, &l.Data, &l.Title, &l.CreatedDate, &l.ExpiryDate, &typ, &l.IsExpired, &l.IsEncrypted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	l.Type = models.LogType(typ)
	return l, nil
}

// Put inserts or fully overwrites the record at log.ID. The created date of
// an existing row is kept; everything else is replaced.
func (r *PostgresRepository) Put(ctx context.Context, log *models.Log) error {
	if log.ID == "" {
		return common.ErrorMissingID
	}
	query := `
		INSERT INTO logs (id, data, title, created_date, expiry_date, type, is_expired, is_encrypted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id)
		DO UPDATE SET
			data = EXCLUDED.data,
			title = EXCLUDED.title,
			expiry_date = EXCLUDED.expiry_date,
			type = EXCLUDED.type,
			is_expired = EXCLUDED.is_expired,
			is_encrypted = EXCLUDED.is_encrypted
	`
	_, err := r.db.ExecContext(ctx, query,
		log.ID, log.Data, log.Title, log.CreatedDate, log.ExpiryDate, int(log.Type), log.IsExpired, log.IsEncrypted)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Update merges the non-nil patch fields into an existing record.
// created_date is immutable and never part of the merge.
func (r *PostgresRepository) Update(ctx context.Context, id string, patch *models.Patch) error {
	query := `
		UPDATE logs SET
			data = COALESCE($2, data),
			title = COALESCE($3, title),
			expiry_date = COALESCE($4, expiry_date),
			type = COALESCE($5, type),
			is_expired = COALESCE($6, is_expired),
			is_encrypted = COALESCE($7, is_encrypted)
		WHERE id = $1
	`
	var typ *int
	if patch.Type != nil {
		t := int(*patch.Type)
		typ = &t
	}
	res, err := r.db.ExecContext(ctx, query,
		id, patch.Data, patch.Title, patch.ExpiryDate, typ, patch.IsExpired, patch.IsEncrypted)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// Delete removes a record by id. Deleting an absent record is not an error.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM logs WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ScanAll returns every record in the store, newest first.
func (r *PostgresRepository) ScanAll(ctx context.Context) ([]models.Log, error) {
	query := `
		SELECT id, data, title, created_date, expiry_date, type, is_expired, is_encrypted
		FROM logs ORDER BY created_date DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select logs: %w", err)
	}
	defer rows.Close()

	var result []models.Log
	for rows.Next() {
		var item models.Log
		var typ int
		if err := rows.Scan(
			&item.ID, &item.Data, &item.Title, &item.CreatedDate, &item.ExpiryDate,
			&typ, &item.IsExpired, &item.IsEncrypted,
		); err != nil {
			return nil, err
		}
		item.Type = models.LogType(typ)
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// MarkExpired flips the terminal marker. The where-clause guard makes a
// repeat call affect zero rows, which is treated as success.
func (r *PostgresRepository) MarkExpired(ctx context.Context, id string) error {
	query := `UPDATE logs SET is_expired = true WHERE id = $1 AND is_expired = false`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
