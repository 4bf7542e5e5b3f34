package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fitfuel/fitfuel-server/pkg/domain/planner"
	apperrors "github.com/fitfuel/fitfuel-server/pkg/errors"
	"github.com/fitfuel/fitfuel-server/pkg/oauth"
)

// Source loads the exercise catalog a plan is generated from.
type Source interface {
	ListExercises(ctx context.Context) ([]planner.Exercise, error)
}

// maxCatalogBytes bounds the response body read from the catalog API.
const maxCatalogBytes = 16 << 20

// HTTPSource fetches the catalog from the REST backend's /exercises endpoint.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSource builds a source whose requests carry the bearer token from ts.
func NewHTTPSource(baseURL string, ts oauth.TokenSource) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: &oauth.Transport{Source: ts},
		},
	}
}

func (s *HTTPSource) ListExercises(ctx context.Context) ([]planner.Exercise, error) {
	url := s.BaseURL + "/exercises"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeCatalogInvalid, "failed to build catalog request")
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, apperrors.WrapRetryable(err, apperrors.CodeCatalogUnavailable,
			"cannot connect to exercise catalog").WithMetadata("url", url)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes))
	if err != nil {
		return nil, apperrors.WrapRetryable(err, apperrors.CodeCatalogUnavailable, "failed to read catalog response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, body)
	}

	exercises, err := DecodeJSON(body)
	if err != nil {
		return nil, err
	}
	slog.Info("Fetched exercise catalog", "url", url, "count", len(exercises))
	return exercises, nil
}

// statusError reads the backend's {"error": "..."} body when present.
func statusError(status int, body []byte) error {
	msg := fmt.Sprintf("HTTP %d", status)
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Error != "" {
		msg = payload.Error
	}

	code := fmt.Sprintf("%d", status)
	if status >= 500 || status == http.StatusTooManyRequests || status == http.StatusRequestTimeout {
		return apperrors.NewRetryable(apperrors.CodeCatalogUnavailable, msg).WithMetadata("status", code)
	}
	return apperrors.New(apperrors.CodeCatalogInvalid, msg).WithMetadata("status", code)
}

// FileSource reads a JSON catalog from disk.
type FileSource struct {
	Path string
}

func (s FileSource) ListExercises(ctx context.Context) ([]planner.Exercise, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeCatalogUnavailable, "failed to read catalog file").
			WithMetadata("path", s.Path)
	}
	return DecodeJSON(data)
}

// CachedSource memoizes the first successful load of Source. Failures are
// not cached. A zero TTL keeps the result for the life of the process.
type CachedSource struct {
	Source Source
	TTL    time.Duration

	now func() time.Time

	mu        sync.Mutex
	cached    []planner.Exercise
	fetchedAt time.Time
}

func NewCachedSource(src Source, ttl time.Duration) *CachedSource {
	return &CachedSource{Source: src, TTL: ttl, now: time.Now}
}

func (c *CachedSource) ListExercises(ctx context.Context) ([]planner.Exercise, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now
	if c.now != nil {
		now = c.now
	}

	if c.cached != nil && (c.TTL <= 0 || now().Sub(c.fetchedAt) < c.TTL) {
		return c.cached, nil
	}

	exercises, err := c.Source.ListExercises(ctx)
	if err != nil {
		return nil, err
	}
	if exercises == nil {
		exercises = []planner.Exercise{}
	}
	c.cached = exercises
	c.fetchedAt = now()
	return exercises, nil
}

// Invalidate drops the cached catalog.
func (c *CachedSource) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = nil
}
