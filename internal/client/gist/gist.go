// Package gist imports GitHub gists as draft log records. The importer
// fetches gist metadata and file contents over the GitHub REST API and maps
// each file to an unpublished record the caller can publish afterwards.
package gist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pastelog/pastelog/internal/models"
)

const defaultBaseURL = "https://api.github.com"

// Importer fetches gists and converts them to log records.
type Importer struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewImporter creates an Importer. The token is optional; without it only
// public gists can be fetched, subject to stricter rate limits.
func NewImporter(token string) *Importer {
	return &Importer{
		baseURL:    defaultBaseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type gistFile struct {
	Filename  string `json:"filename"`
	Language  string `json:"language"`
	Content   string `json:"content"`
	Truncated bool   `json:"truncated"`
	RawURL    string `json:"raw_url"`
}

type gistResponse struct {
	ID          string              `json:"id"`
	Description string              `json:"description"`
	Files       map[string]gistFile `json:"files"`
	CreatedAt   time.Time           `json:"created_at"`
}

// ParseRef extracts a gist identifier from either a bare id or a gist URL
// like https://gist.github.com/user/abc123.
func ParseRef(ref string) string {
	ref = strings.TrimSpace(ref)
	if i := strings.LastIndex(ref, "/"); i >= 0 {
		ref = ref[i+1:]
	}
	return ref
}

// Import fetches the gist and returns one draft record per file. Records
// have no identifier and no expiry; the caller decides where to publish
// them. Markdown files map to the markdown content type, files with a
// detected language to code, everything else to plain text.
func (im *Importer) Import(ctx context.Context, ref string) ([]models.Log, error) {
	id := ParseRef(ref)
	if id == "" {
		return nil, fmt.Errorf("empty gist reference")
	}

	g, err := im.fetch(ctx, id)
	if err != nil {
		return nil, err
	}

	records := make([]models.Log, 0, len(g.Files))
	for _, f := range g.Files {
		content := f.Content
		if f.Truncated {
			content, err = im.fetchRaw(ctx, f.RawURL)
			if err != nil {
				return nil, fmt.Errorf("error fetching gist file %s: %w", f.Filename, err)
			}
		}

		title := g.Description
		if title == "" || len(g.Files) > 1 {
			title = f.Filename
		}

		records = append(records, models.Log{
			Data:        content,
			Title:       title,
			CreatedDate: g.CreatedAt,
			Type:        typeForFile(f),
		})
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("gist %s has no files", id)
	}
	return records, nil
}

func typeForFile(f gistFile) models.LogType {
	switch {
	case strings.EqualFold(f.Language, "markdown"),
		strings.HasSuffix(strings.ToLower(f.Filename), ".md"):
		return models.LogTypeMarkdown
	case f.Language != "" && !strings.EqualFold(f.Language, "text"):
		return models.LogTypeCode
	default:
		return models.LogTypeText
	}
}

func (im *Importer) fetch(ctx context.Context, id string) (*gistResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, im.baseURL+"/gists/"+id, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if im.token != "" {
		req.Header.Set("Authorization", "Bearer "+im.token)
	}

	resp, err := im.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching gist: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("gist %s not found", id)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected gist api status %d", resp.StatusCode)
	}

	var g gistResponse
	if err := json.NewDecoder(resp.Body).Decode(&g); err != nil {
		return nil, fmt.Errorf("error decoding gist response: %w", err)
	}
	return &g, nil
}

func (im *Importer) fetchRaw(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := im.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected raw status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
