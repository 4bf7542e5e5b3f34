package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fitfuel/fitfuel-server/pkg/domain/planner"
	apperrors "github.com/fitfuel/fitfuel-server/pkg/errors"
	"github.com/fitfuel/fitfuel-server/pkg/oauth"
)

func TestHTTPSource_ListExercises(t *testing.T) {
	var gotAuth, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"1","name":"Bench Press","primary_muscle":"chest"},{"name":"Squat"}]`))
	}))
	defer server.Close()

	src := NewHTTPSource(server.URL+"/", oauth.StaticTokenSource("secret-token"))
	exercises, err := src.ListExercises(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/exercises" {
		t.Errorf("expected /exercises, got %s", gotPath)
	}
	if gotAuth != "Bearer secret-token" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if len(exercises) != 2 {
		t.Fatalf("expected 2 exercises, got %d", len(exercises))
	}
	if exercises[0].PrimaryMuscle != "chest" {
		t.Errorf("expected chest, got %q", exercises[0].PrimaryMuscle)
	}
}

func TestHTTPSource_Errors(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		wantCode      apperrors.ErrorCode
		wantRetryable bool
		wantMessage   string
	}{
		{
			name:          "server error is retryable",
			status:        http.StatusBadGateway,
			body:          `{"error":"upstream down"}`,
			wantCode:      apperrors.CodeCatalogUnavailable,
			wantRetryable: true,
			wantMessage:   "upstream down",
		},
		{
			name:          "rate limited is retryable",
			status:        http.StatusTooManyRequests,
			body:          ``,
			wantCode:      apperrors.CodeCatalogUnavailable,
			wantRetryable: true,
			wantMessage:   "HTTP 429",
		},
		{
			name:          "client error is not retryable",
			status:        http.StatusForbidden,
			body:          `{"error":"forbidden"}`,
			wantCode:      apperrors.CodeCatalogInvalid,
			wantRetryable: false,
			wantMessage:   "forbidden",
		},
		{
			name:          "non-json error body uses status",
			status:        http.StatusNotFound,
			body:          `not found`,
			wantCode:      apperrors.CodeCatalogInvalid,
			wantRetryable: false,
			wantMessage:   "HTTP 404",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			src := NewHTTPSource(server.URL, oauth.StaticTokenSource(""))
			_, err := src.ListExercises(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if code := apperrors.GetCode(err); code != tt.wantCode {
				t.Errorf("code = %s, want %s", code, tt.wantCode)
			}
			if apperrors.IsRetryable(err) != tt.wantRetryable {
				t.Errorf("retryable = %v, want %v", apperrors.IsRetryable(err), tt.wantRetryable)
			}
			var fe *apperrors.FitFuelError
			if errors.As(err, &fe) && fe.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", fe.Message, tt.wantMessage)
			}
		})
	}
}

func TestHTTPSource_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewHTTPSource(url, oauth.StaticTokenSource("")).ListExercises(context.Background())
	if !errors.Is(err, apperrors.ErrCatalogUnavailable) {
		t.Fatalf("expected catalog unavailable, got %v", err)
	}
	if !apperrors.IsRetryable(err) {
		t.Error("expected transport failure to be retryable")
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	if err := os.WriteFile(path, []byte(`{"items":[{"name":"Plank","muscle":"core"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FileSource{Path: path}.ListExercises(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Plank" {
		t.Errorf("unexpected catalog %+v", got)
	}

	_, err = FileSource{Path: filepath.Join(dir, "missing.json")}.ListExercises(context.Background())
	if !errors.Is(err, apperrors.ErrCatalogUnavailable) {
		t.Errorf("expected catalog unavailable for missing file, got %v", err)
	}
}

type countingSource struct {
	calls int
	err   error
	out   []planner.Exercise
}

func (c *countingSource) ListExercises(ctx context.Context) ([]planner.Exercise, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.out, nil
}

func TestCachedSource(t *testing.T) {
	ctx := context.Background()
	inner := &countingSource{out: []planner.Exercise{{Name: "Squat"}}}

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewCachedSource(inner, time.Minute)
	cache.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if _, err := cache.ListExercises(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 upstream call within TTL, got %d", inner.calls)
	}

	now = now.Add(2 * time.Minute)
	if _, err := cache.ListExercises(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("expected refetch after TTL, got %d calls", inner.calls)
	}

	cache.Invalidate()
	if _, err := cache.ListExercises(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 3 {
		t.Errorf("expected refetch after Invalidate, got %d calls", inner.calls)
	}
}

func TestCachedSource_FailuresNotCached(t *testing.T) {
	ctx := context.Background()
	inner := &countingSource{err: apperrors.ErrCatalogUnavailable}
	cache := NewCachedSource(inner, 0)

	if _, err := cache.ListExercises(ctx); err == nil {
		t.Fatal("expected error")
	}

	inner.err = nil
	inner.out = []planner.Exercise{{Name: "Dip"}}
	got, err := cache.ListExercises(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected recovered catalog, got %+v", got)
	}
	if inner.calls != 2 {
		t.Errorf("expected 2 upstream calls, got %d", inner.calls)
	}

	// zero TTL keeps the result
	if _, err := cache.ListExercises(ctx); err != nil {
		t.Fatal(err)
	}
	if inner.calls != 2 {
		t.Errorf("expected cached result with zero TTL, got %d calls", inner.calls)
	}
}
