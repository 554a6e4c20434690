// Package logs provides the SQLite-backed local mirror repository.
package logs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/pastelog/pastelog/internal/common"
	"github.com/pastelog/pastelog/internal/dbx"
	"github.com/pastelog/pastelog/internal/models"
)

// SQLiteRepository implements Repository over a local SQLite database.
// Timestamps are stored as unix nanoseconds.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a repository bound to the given database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func upsertOne(ctx context.Context, db dbx.DBTX, log *models.Log) error {
	query := ` INSERT INTO logs (id, data, title, created_date, expiry_date, type, is_expired, is_encrypted)
			values (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET data = excluded.data,
				title = excluded.title,
				created_date = excluded.created_date,
				expiry_date = excluded.expiry_date,
				type = excluded.type,
				is_expired = excluded.is_expired,
				is_encrypted = excluded.is_encrypted
	`
	var expiry *int64
	if log.ExpiryDate != nil {
		v := log.ExpiryDate.UnixNano()
		expiry = &v
	}
	_, err := db.ExecContext(ctx, query,
		log.ID, log.Data, log.Title, log.CreatedDate.UnixNano(), expiry,
		int(log.Type), log.IsExpired, log.IsEncrypted)
	if err != nil {
		return fmt.Errorf("%w: upsert: %v", common.ErrorMirrorUnavailable, err)
	}
	return nil
}

func scanLog(scan func(dest ...any) error) (*models.Log, error) {
	l := &models.Log{}
	var created int64
	var expiry sql.NullInt64
	var typ int
	if err := scan(&l.ID, &l.Data, &l.Title, &created, &expiry, &typ, &l.IsExpired, &l.IsEncrypted); err != nil {
		return nil, err
	}
	l.CreatedDate = time.Unix(0, created).UTC()
	if expiry.Valid {
		t := time.Unix(0, expiry.Int64).UTC()
		l.ExpiryDate = &t
	}
	l.Type = models.LogType(typ)
	return l, nil
}

// Upsert inserts or replaces a record by id.
func (r *SQLiteRepository) Upsert(ctx context.Context, log *models.Log) error {
	if log.ID == "" {
		return common.ErrorMissingID
	}
	return upsertOne(ctx, r.db, log)
}

// ListLive returns live records ordered by created date descending.
// Expiry is re-evaluated against now on every call.
func (r *SQLiteRepository) ListLive(ctx context.Context, now time.Time) ([]models.Log, error) {
	query := `select id, data, title, created_date, expiry_date, type, is_expired, is_encrypted
		from logs
		where is_expired = 0 and (expiry_date is null or expiry_date >= ?)
		order by created_date desc`
	rows, err := r.db.QueryContext(ctx, query, now.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("%w: select: %v", common.ErrorMirrorUnavailable, err)
	}
	defer rows.Close()

	var result []models.Log
	for rows.Next() {
		item, err := scanLog(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scan: %v", common.ErrorMirrorUnavailable, err)
		}
		result = append(result, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows: %v", common.ErrorMirrorUnavailable, err)
	}
	return result, nil
}

// Remove deletes the mirrored entry if present.
func (r *SQLiteRepository) Remove(ctx context.Context, id string) error {
	query := `delete from logs where id=?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%w: delete: %v", common.ErrorMirrorUnavailable, err)
	}
	return nil
}

// GetByID returns a single mirrored record.
func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Log, error) {
	query := `select id, data, title, created_date, expiry_date, type, is_expired, is_encrypted
		from logs where id=?`
	row := r.db.QueryRowContext(ctx, query, id)

	l, err := scanLog(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: scan: %v", common.ErrorMirrorUnavailable, err)
	}
	return l, nil
}

// Exists reports whether a record with the given id is mirrored.
func (r *SQLiteRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := `select count(*) from logs where id=?`
	var n int
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&n); err != nil {
		return false, fmt.Errorf("%w: scan: %v", common.ErrorMirrorUnavailable, err)
	}
	return n > 0, nil
}

// ReplaceAll wipes the mirror and writes the given records in one
// transaction, so readers never observe a half-replaced mirror.
func (r *SQLiteRepository) ReplaceAll(ctx context.Context, records []models.Log) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `delete from logs`); err != nil {
			return fmt.Errorf("%w: clear: %v", common.ErrorMirrorUnavailable, err)
		}
		for i := range records {
			if records[i].ID == "" {
				return common.ErrorMissingID
			}
			if err := upsertOne(ctx, tx, &records[i]); err != nil {
				return err
			}
		}
		return nil
	})
}
