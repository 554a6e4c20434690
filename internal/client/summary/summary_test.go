package summary

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestSummarizer(t *testing.T, handler http.HandlerFunc) *Summarizer {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	s := NewSummarizer("test-key")
	s.baseURL = srv.URL
	return s
}

func TestSummarize_Success(t *testing.T) {
	s := newTestSummarizer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Contains(t, r.URL.Path, ":generateContent")
		require.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"  A short summary.  "}]}}]}`)
	})

	got, err := s.Summarize(context.Background(), "a very long text")
	require.NoError(t, err)
	require.Equal(t, "A short summary.", got)
}

func TestSummarize_APIError(t *testing.T) {
	s := newTestSummarizer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"invalid key"}}`)
	})

	_, err := s.Summarize(context.Background(), "text")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid key")
}

func TestSummarize_NoCandidates(t *testing.T) {
	s := newTestSummarizer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[]}`)
	})

	_, err := s.Summarize(context.Background(), "text")
	require.Error(t, err)
}

func TestSummarize_MissingKeyOrText(t *testing.T) {
	s := NewSummarizer("")
	_, err := s.Summarize(context.Background(), "text")
	require.Error(t, err)

	s = NewSummarizer("key")
	_, err = s.Summarize(context.Background(), "   ")
	require.Error(t, err)
}
