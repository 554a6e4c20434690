package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pastelog/pastelog/internal/common"
	"github.com/pastelog/pastelog/internal/models"
)

// HTTPGateway talks to the pastelog server's JSON API.
type HTTPGateway struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPGateway constructs a gateway for the server at baseURL
// (e.g. "http://127.0.0.1:8080"). Individual calls time out after the
// client timeout; the coordinator surfaces that as store-unavailable.
func NewHTTPGateway(baseURL string, timeout time.Duration) *HTTPGateway {
	return &HTTPGateway{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (g *HTTPGateway) do(ctx context.Context, method, path string, body any, out any) error {
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("request error: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorStoreUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return common.ErrorNotFound
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: server returned %d", common.ErrorStoreUnavailable, resp.StatusCode)
	case resp.StatusCode >= 400:
		return fmt.Errorf("request rejected: %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode error: %w", err)
		}
	}
	return nil
}

type createResponse struct {
	ID string `json:"id"`
}

func (g *HTTPGateway) Create(ctx context.Context, log *models.Log) (string, error) {
	var resp createResponse
	if err := g.do(ctx, http.MethodPost, "/api/logs", log, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (g *HTTPGateway) Get(ctx context.Context, id string) (*models.Log, error) {
	var log models.Log
	if err := g.do(ctx, http.MethodGet, "/api/logs/"+id, nil, &log); err != nil {
		return nil, err
	}
	return &log, nil
}

func (g *HTTPGateway) Put(ctx context.Context, id string, log *models.Log) error {
	return g.do(ctx, http.MethodPut, "/api/logs/"+id, log, nil)
}

func (g *HTTPGateway) Update(ctx context.Context, id string, patch *models.Patch) error {
	return g.do(ctx, http.MethodPatch, "/api/logs/"+id, patch, nil)
}

func (g *HTTPGateway) Delete(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/api/logs/"+id, nil, nil)
}

func (g *HTTPGateway) ScanAll(ctx context.Context) ([]models.Log, error) {
	var result []models.Log
	if err := g.do(ctx, http.MethodGet, "/api/logs", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (g *HTTPGateway) MarkExpired(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodPost, "/api/logs/"+id+"/expire", nil, nil)
}

func (g *HTTPGateway) Ping(ctx context.Context) error {
	return g.do(ctx, http.MethodGet, "/ping", nil, nil)
}
