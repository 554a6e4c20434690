package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pastelog/pastelog/internal/common"
	"github.com/pastelog/pastelog/internal/models"
)

// fakeLogService records which coordinator methods the commands invoke.
type fakeLogService struct {
	remote    []models.Log
	local     []models.Log
	published []models.Log
	calls     []string
	publishID string
	err       error
}

func (f *fakeLogService) FetchAll(ctx context.Context) ([]models.Log, error) {
	f.calls = append(f.calls, "fetchAll")
	return f.remote, f.err
}

func (f *fakeLogService) FetchByID(ctx context.Context, id string) (*models.Log, error) {
	f.calls = append(f.calls, "fetchByID")
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.remote {
		if f.remote[i].ID == id {
			return &f.remote[i], nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeLogService) Publish(ctx context.Context, log *models.Log) (string, error) {
	f.calls = append(f.calls, "publish")
	if f.publishID != "" {
		f.published = append(f.published, *log)
	}
	return f.publishID, nil
}

func (f *fakeLogService) PublishWithID(ctx context.Context, log *models.Log, id string) (string, error) {
	f.calls = append(f.calls, "publishWithID")
	if f.err != nil {
		return "", f.err
	}
	f.published = append(f.published, *log)
	return id, nil
}

func (f *fakeLogService) Update(ctx context.Context, id string, log *models.Log) error {
	f.calls = append(f.calls, "update")
	return f.err
}

func (f *fakeLogService) MarkExpiredByID(ctx context.Context, id string) error {
	f.calls = append(f.calls, "markExpired")
	return f.err
}

func (f *fakeLogService) DeleteByID(ctx context.Context, id string) error {
	f.calls = append(f.calls, "delete")
	return f.err
}

func (f *fakeLogService) IsPresentLocally(ctx context.Context, id string) (bool, error) {
	f.calls = append(f.calls, "isPresent")
	return false, nil
}

func (f *fakeLogService) ListLocal(ctx context.Context) ([]models.Log, error) {
	f.calls = append(f.calls, "listLocal")
	return f.local, f.err
}

func (f *fakeLogService) Ping(ctx context.Context) error { return f.err }

func newTestApp(svc *fakeLogService, mode Mode, input string) *App {
	return &App{
		logService: svc,
		Mode:       mode,
		reader:     bufio.NewReader(strings.NewReader(input)),
	}
}

func TestList_OnlineUsesRemote(t *testing.T) {
	svc := &fakeLogService{remote: []models.Log{{ID: "r1", Data: "x", CreatedDate: time.Now()}}}
	app := newTestApp(svc, ModeOnline, "")

	require.NoError(t, app.List(context.Background()))
	require.Equal(t, []string{"fetchAll"}, svc.calls)
}

func TestList_OfflineUsesMirror(t *testing.T) {
	svc := &fakeLogService{local: []models.Log{{ID: "c1", Data: "x", CreatedDate: time.Now()}}}
	app := newTestApp(svc, ModeOffline, "")

	require.NoError(t, app.List(context.Background()))
	require.Equal(t, []string{"listLocal"}, svc.calls)
}

func TestPublish_InteractiveFlow(t *testing.T) {
	svc := &fakeLogService{publishID: "new-id"}
	// title, body (double enter), type, ttl
	app := newTestApp(svc, ModeOnline, "my title\nline one\nline two\n\nmarkdown\n24h\n")

	require.NoError(t, app.Publish(context.Background()))
	require.Equal(t, []string{"publish"}, svc.calls)
	require.Len(t, svc.published, 1)

	got := svc.published[0]
	require.Equal(t, "my title", got.Title)
	require.Equal(t, "line one\nline two", got.Data)
	require.Equal(t, models.LogTypeMarkdown, got.Type)
	require.NotNil(t, got.ExpiryDate)
	require.True(t, got.ExpiryDate.After(time.Now()))
}

func TestPublish_EmptyBodyRejected(t *testing.T) {
	svc := &fakeLogService{}
	app := newTestApp(svc, ModeOnline, "title\n\n")

	require.Error(t, app.Publish(context.Background()))
	require.Empty(t, svc.calls)
}

func TestPublish_FailureSentinelIsNotAnError(t *testing.T) {
	svc := &fakeLogService{publishID: ""}
	app := newTestApp(svc, ModeOnline, "title\nbody\n\ntext\n\n")

	require.NoError(t, app.Publish(context.Background()))
	require.Equal(t, []string{"publish"}, svc.calls)
	require.Empty(t, svc.published)
}

func TestExpireAndDelete(t *testing.T) {
	svc := &fakeLogService{}
	app := newTestApp(svc, ModeOnline, "")

	require.NoError(t, app.Expire(context.Background(), "l1"))
	require.NoError(t, app.Delete(context.Background(), "l1"))
	require.Equal(t, []string{"markExpired", "delete"}, svc.calls)
}

func TestShow_NotFound(t *testing.T) {
	svc := &fakeLogService{}
	app := newTestApp(svc, ModeOnline, "")

	err := app.Show(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSummarize_PromptsForMissingKey(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	prompted := false
	readPassword = func(int) ([]byte, error) {
		prompted = true
		return []byte("session-key"), nil
	}

	svc := &fakeLogService{}
	app := newTestApp(svc, ModeOnline, "")
	require.Nil(t, app.summarizer)

	// The key is collected before the record fetch, so a not-found record
	// still proves the prompt ran and the summarizer was retained.
	err := app.Summarize(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.True(t, prompted)
	require.NotNil(t, app.summarizer)
}

func TestSummarize_EmptyKeyRejected(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })
	readPassword = func(int) ([]byte, error) { return nil, nil }

	svc := &fakeLogService{}
	app := newTestApp(svc, ModeOnline, "")

	err := app.Summarize(context.Background(), "l1")
	require.Error(t, err)
	require.Nil(t, app.summarizer)
	require.Empty(t, svc.calls)
}
