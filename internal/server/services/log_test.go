package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pastelog/pastelog/internal/models"
)

type fakeRepo struct {
	created *models.Log
	put     *models.Log
	err     error
}

func (f *fakeRepo) Create(ctx context.Context, log *models.Log) error {
	f.created = log
	return f.err
}
func (f *fakeRepo) GetByID(ctx context.Context, id string) (*models.Log, error) { return nil, f.err }
func (f *fakeRepo) Put(ctx context.Context, log *models.Log) error {
	f.put = log
	return f.err
}
func (f *fakeRepo) Update(ctx context.Context, id string, patch *models.Patch) error { return f.err }
func (f *fakeRepo) Delete(ctx context.Context, id string) error                      { return f.err }
func (f *fakeRepo) ScanAll(ctx context.Context) ([]models.Log, error)                { return nil, f.err }
func (f *fakeRepo) MarkExpired(ctx context.Context, id string) error                 { return f.err }

func TestCreate_AssignsIDAndCreatedDate(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewLogService(repo)
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	svc.timeNow = func() time.Time { return now }

	id, err := svc.Create(context.Background(), &models.Log{Data: "hello"})
	require.NoError(t, err)
	require.NotEmpty(t, id)
	require.Equal(t, id, repo.created.ID)
	require.Equal(t, now, repo.created.CreatedDate)
}

func TestCreate_DiscardsCallerSuppliedID(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewLogService(repo)

	id, err := svc.Create(context.Background(), &models.Log{ID: "caller-picked", Data: "x"})
	require.NoError(t, err)
	require.NotEqual(t, "caller-picked", id)
}

func TestCreate_KeepsCallerCreatedDate(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewLogService(repo)

	created := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), &models.Log{Data: "x", CreatedDate: created})
	require.NoError(t, err)
	require.Equal(t, created, repo.created.CreatedDate)
}

func TestCreate_RepoErrorReturnsEmptyID(t *testing.T) {
	repo := &fakeRepo{err: errors.New("down")}
	svc := NewLogService(repo)

	id, err := svc.Create(context.Background(), &models.Log{Data: "x"})
	require.Error(t, err)
	require.Empty(t, id)
}

func TestPut_UsesCallerID(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewLogService(repo)

	err := svc.Put(context.Background(), "fixed-id", &models.Log{Data: "x"})
	require.NoError(t, err)
	require.Equal(t, "fixed-id", repo.put.ID)
	require.False(t, repo.put.CreatedDate.IsZero())
}
