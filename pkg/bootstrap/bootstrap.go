package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/storage"

	shared "github.com/fitfuel/fitfuel-server/pkg"
	"github.com/fitfuel/fitfuel-server/pkg/catalog"
	"github.com/fitfuel/fitfuel-server/pkg/domain/planner"
	"github.com/fitfuel/fitfuel-server/pkg/infrastructure/database"
	infrapubsub "github.com/fitfuel/fitfuel-server/pkg/infrastructure/pubsub"
	"github.com/fitfuel/fitfuel-server/pkg/infrastructure/secrets"
	infrastorage "github.com/fitfuel/fitfuel-server/pkg/infrastructure/storage"
	"github.com/fitfuel/fitfuel-server/pkg/oauth"
)

// Catalog source names accepted in CATALOG_SOURCE.
const (
	CatalogSourceAPI       = "api"
	CatalogSourceFirestore = "firestore"
)

const defaultCatalogCacheTTL = 10 * time.Minute

// Config holds standard configuration for all services
type Config struct {
	ProjectID         string
	EnablePublish     bool
	GCSArtifactBucket string

	// Exercise catalog
	CatalogAPIURL   string
	CatalogSource   string
	CatalogCacheTTL time.Duration

	// PlannerConfigPath points at an optional YAML program file.
	PlannerConfigPath string
}

// Service holds initialized dependencies
type Service struct {
	DB      shared.Database
	Store   shared.BlobStore
	Pub     shared.Publisher
	Secrets shared.SecretStore
	Catalog catalog.Source
	Planner planner.Config
	Config  *Config
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = shared.ProjectID // Fallback
	}

	apiURL := os.Getenv("CATALOG_API_URL")

	source := strings.ToLower(os.Getenv("CATALOG_SOURCE"))
	if source == "" {
		source = CatalogSourceFirestore
		if apiURL != "" {
			source = CatalogSourceAPI
		}
	}

	ttl := defaultCatalogCacheTTL
	if raw := os.Getenv("CATALOG_CACHE_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed < 0 {
			slog.Warn("Ignoring invalid CATALOG_CACHE_TTL", "value", raw)
		} else {
			ttl = parsed
		}
	}

	return &Config{
		ProjectID:         projectID,
		EnablePublish:     os.Getenv("ENABLE_PUBLISH") == "true",
		GCSArtifactBucket: os.Getenv("GCS_ARTIFACT_BUCKET"),
		CatalogAPIURL:     apiURL,
		CatalogSource:     source,
		CatalogCacheTTL:   ttl,
		PlannerConfigPath: os.Getenv("PLANNER_CONFIG_PATH"),
	}
}

// GetSlogHandlerOptions returns standard handler options for GCP
func GetSlogHandlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Map standard keys to Cloud Logging keys
			if a.Key == slog.MessageKey {
				return slog.Attr{Key: "message", Value: a.Value}
			}
			if a.Key == slog.LevelKey {
				return slog.Attr{Key: "severity", Value: a.Value}
			}
			return a
		},
	}
}

// ComponentHandler wraps a slog.Handler to prepend [component] to the message
type ComponentHandler struct {
	slog.Handler
}

// Handle implements slog.Handler
func (h *ComponentHandler) Handle(ctx context.Context, r slog.Record) error {
	var component string

	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "component" {
			component = a.Value.String()
			return false // stop
		}
		return true
	})

	if component != "" {
		newRecord := slog.NewRecord(r.Time, r.Level, fmt.Sprintf("[%s] %s", component, r.Message), r.PC)

		// Copy attributes, excluding "component"
		r.Attrs(func(a slog.Attr) bool {
			if a.Key != "component" {
				newRecord.AddAttrs(a)
			}
			return true
		})
		r = newRecord
	}

	return h.Handler.Handle(ctx, r)
}

// WithAttrs keeps the wrapper when attributes are bound with Logger.With.
func (h *ComponentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ComponentHandler{Handler: h.Handler.WithAttrs(attrs)}
}

// WithGroup keeps the wrapper when a group is opened.
func (h *ComponentHandler) WithGroup(name string) slog.Handler {
	return &ComponentHandler{Handler: h.Handler.WithGroup(name)}
}

// ParseLogLevel maps LOG_LEVEL values to slog levels, defaulting to info.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newHandler builds the Cloud Logging JSON handler writing to w.
func newHandler(w io.Writer, level slog.Level) slog.Handler {
	return &ComponentHandler{Handler: slog.NewJSONHandler(w, GetSlogHandlerOptions(level))}
}

// InitLogger configures structured logging with Cloud Logging compatible keys
func InitLogger() {
	slog.SetDefault(slog.New(newHandler(os.Stdout, ParseLogLevel(os.Getenv("LOG_LEVEL")))))
}

// NewLogger creates a configured logger instance
func NewLogger(serviceName string) *slog.Logger {
	return slog.New(newHandler(os.Stdout, ParseLogLevel(os.Getenv("LOG_LEVEL")))).With("service", serviceName)
}

// NewCatalogSource builds the cached exercise source selected by cfg.
func NewCatalogSource(cfg *Config, db shared.Database, secretStore shared.SecretStore) (catalog.Source, error) {
	var src catalog.Source
	switch cfg.CatalogSource {
	case CatalogSourceAPI:
		if cfg.CatalogAPIURL == "" {
			return nil, fmt.Errorf("CATALOG_SOURCE=api requires CATALOG_API_URL")
		}
		ts := oauth.NewSecretTokenSource(secretStore, cfg.ProjectID, shared.SecretCatalogAPIToken)
		src = catalog.NewHTTPSource(cfg.CatalogAPIURL, ts)
	case CatalogSourceFirestore:
		src = db
	default:
		return nil, fmt.Errorf("unknown CATALOG_SOURCE %q", cfg.CatalogSource)
	}
	return catalog.NewCachedSource(src, cfg.CatalogCacheTTL), nil
}

// NewService initializes all standard dependencies
func NewService(ctx context.Context) (*Service, error) {
	InitLogger()
	cfg := LoadConfig()

	slog.Info("Initializing service", "project_id", cfg.ProjectID, "catalog_source", cfg.CatalogSource)

	plannerCfg, err := planner.LoadConfig(cfg.PlannerConfigPath)
	if err != nil {
		slog.Error("Planner config load failed", "path", cfg.PlannerConfigPath, "error", err)
		return nil, fmt.Errorf("planner config: %w", err)
	}

	// Firestore
	fsClient, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		slog.Error("Firestore init failed", "error", err)
		return nil, fmt.Errorf("firestore init: %w", err)
	}
	db := database.NewFirestoreAdapter(fsClient)

	// Pub/Sub
	var pubAdapter shared.Publisher
	if cfg.EnablePublish {
		psClient, err := pubsub.NewClient(ctx, cfg.ProjectID)
		if err != nil {
			slog.Error("PubSub init failed", "error", err)
			return nil, fmt.Errorf("pubsub init: %w", err)
		}
		pubAdapter = &infrapubsub.PubSubAdapter{Client: psClient}
		slog.Info("Pub/Sub: REAL (ENABLE_PUBLISH=true)")
	} else {
		pubAdapter = &infrapubsub.LogPublisher{}
		slog.Info("Pub/Sub: MOCK (LogPublisher)")
	}

	// Storage
	gcsClient, err := storage.NewClient(ctx)
	if err != nil {
		slog.Error("Storage init failed", "error", err)
		return nil, fmt.Errorf("storage init: %w", err)
	}

	secretStore := &secrets.SecretsAdapter{}

	src, err := NewCatalogSource(cfg, db, secretStore)
	if err != nil {
		slog.Error("Catalog source init failed", "error", err)
		return nil, fmt.Errorf("catalog init: %w", err)
	}

	return &Service{
		DB:      db,
		Pub:     pubAdapter,
		Store:   &infrastorage.StorageAdapter{Client: gcsClient},
		Secrets: secretStore,
		Catalog: src,
		Planner: plannerCfg,
		Config:  cfg,
	}, nil
}
