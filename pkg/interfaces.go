package shared

import (
	"context"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/fitfuel/fitfuel-server/pkg/domain/planner"
	"github.com/fitfuel/fitfuel-server/pkg/types"
)

// --- Persistence Interfaces ---

type Database interface {
	SetExecution(ctx context.Context, record *types.ExecutionRecord) error
	UpdateExecution(ctx context.Context, id string, data map[string]interface{}) error

	// Plans
	SavePlan(ctx context.Context, plan *types.StoredPlan) error
	GetPlan(ctx context.Context, id string) (*types.StoredPlan, error)
	UpdatePlan(ctx context.Context, id string, data map[string]interface{}) error

	// Exercise catalog mirror
	ListExercises(ctx context.Context) ([]planner.Exercise, error)
}

// --- Messaging Interfaces ---

type Publisher interface {
	PublishCloudEvent(ctx context.Context, topic string, e event.Event) (string, error)
}

// --- Storage Interfaces ---

type BlobStore interface {
	Write(ctx context.Context, bucket, object string, data []byte) error
	Read(ctx context.Context, bucket, object string) ([]byte, error)
}

// --- Secrets Interface ---

type SecretStore interface {
	GetSecret(ctx context.Context, projectID, name string) (string, error)
}
