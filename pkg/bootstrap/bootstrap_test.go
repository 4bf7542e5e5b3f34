package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/fitfuel/fitfuel-server/pkg/catalog"
	"github.com/fitfuel/fitfuel-server/pkg/testing/mocks"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		wantSource string
		wantTTL    time.Duration
		wantProj   string
	}{
		{
			name:       "defaults",
			env:        map[string]string{},
			wantSource: CatalogSourceFirestore,
			wantTTL:    defaultCatalogCacheTTL,
			wantProj:   "fitfuel-dev",
		},
		{
			name: "api inferred from url",
			env: map[string]string{
				"CATALOG_API_URL":      "https://api.example.com",
				"GOOGLE_CLOUD_PROJECT": "prod",
			},
			wantSource: CatalogSourceAPI,
			wantTTL:    defaultCatalogCacheTTL,
			wantProj:   "prod",
		},
		{
			name: "explicit source and ttl",
			env: map[string]string{
				"CATALOG_API_URL":   "https://api.example.com",
				"CATALOG_SOURCE":    "Firestore",
				"CATALOG_CACHE_TTL": "90s",
			},
			wantSource: CatalogSourceFirestore,
			wantTTL:    90 * time.Second,
			wantProj:   "fitfuel-dev",
		},
		{
			name:       "invalid ttl keeps default",
			env:        map[string]string{"CATALOG_CACHE_TTL": "soon"},
			wantSource: CatalogSourceFirestore,
			wantTTL:    defaultCatalogCacheTTL,
			wantProj:   "fitfuel-dev",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"GOOGLE_CLOUD_PROJECT", "CATALOG_API_URL", "CATALOG_SOURCE", "CATALOG_CACHE_TTL", "ENABLE_PUBLISH"} {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg := LoadConfig()
			if cfg.CatalogSource != tt.wantSource {
				t.Errorf("CatalogSource = %q, want %q", cfg.CatalogSource, tt.wantSource)
			}
			if cfg.CatalogCacheTTL != tt.wantTTL {
				t.Errorf("CatalogCacheTTL = %v, want %v", cfg.CatalogCacheTTL, tt.wantTTL)
			}
			if cfg.ProjectID != tt.wantProj {
				t.Errorf("ProjectID = %q, want %q", cfg.ProjectID, tt.wantProj)
			}
			if cfg.EnablePublish {
				t.Error("Expected publishing disabled")
			}
		})
	}
}

func TestNewCatalogSource(t *testing.T) {
	db := &mocks.MockDatabase{}
	secrets := &mocks.MockSecretStore{}

	src, err := NewCatalogSource(&Config{CatalogSource: CatalogSourceFirestore}, db, secrets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cached, ok := src.(*catalog.CachedSource)
	if !ok {
		t.Fatalf("expected cached source, got %T", src)
	}
	if cached.Source != db {
		t.Error("expected firestore source to be the database")
	}

	src, err = NewCatalogSource(&Config{CatalogSource: CatalogSourceAPI, CatalogAPIURL: "https://api.example.com/"}, db, secrets)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	httpSrc, ok := src.(*catalog.CachedSource).Source.(*catalog.HTTPSource)
	if !ok {
		t.Fatalf("expected HTTP source, got %T", src.(*catalog.CachedSource).Source)
	}
	if httpSrc.BaseURL != "https://api.example.com" {
		t.Errorf("unexpected base URL %q", httpSrc.BaseURL)
	}

	if _, err := NewCatalogSource(&Config{CatalogSource: CatalogSourceAPI}, db, secrets); err == nil {
		t.Error("expected error for api source without URL")
	}
	if _, err := NewCatalogSource(&Config{CatalogSource: "ftp"}, db, secrets); err == nil {
		t.Error("expected error for unknown source")
	}
}

func TestComponentHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, slog.LevelInfo)).With("service", "planner")

	logger.InfoContext(context.Background(), "Fetched catalog", "component", "catalog", "count", 3)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["message"] != "[catalog] Fetched catalog" {
		t.Errorf("unexpected message %v", entry["message"])
	}
	if entry["severity"] != "INFO" {
		t.Errorf("unexpected severity %v", entry["severity"])
	}
	if _, ok := entry["component"]; ok {
		t.Error("component attribute should be folded into the message")
	}
	if entry["service"] != "planner" {
		t.Errorf("expected service attribute, got %v", entry["service"])
	}

	buf.Reset()
	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected debug to be filtered, got %s", buf.String())
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"loud":  slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
