package mocks

import (
	"context"
	"fmt"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/fitfuel/fitfuel-server/pkg/domain/planner"
	apperrors "github.com/fitfuel/fitfuel-server/pkg/errors"
	"github.com/fitfuel/fitfuel-server/pkg/types"
)

// --- Mock Database ---
type MockDatabase struct {
	SetExecutionFunc    func(ctx context.Context, record *types.ExecutionRecord) error
	UpdateExecutionFunc func(ctx context.Context, id string, data map[string]interface{}) error

	SavePlanFunc   func(ctx context.Context, plan *types.StoredPlan) error
	GetPlanFunc    func(ctx context.Context, id string) (*types.StoredPlan, error)
	UpdatePlanFunc func(ctx context.Context, id string, data map[string]interface{}) error

	ListExercisesFunc func(ctx context.Context) ([]planner.Exercise, error)
}

func (m *MockDatabase) SetExecution(ctx context.Context, record *types.ExecutionRecord) error {
	if m.SetExecutionFunc != nil {
		return m.SetExecutionFunc(ctx, record)
	}
	return nil
}

func (m *MockDatabase) UpdateExecution(ctx context.Context, id string, data map[string]interface{}) error {
	if m.UpdateExecutionFunc != nil {
		return m.UpdateExecutionFunc(ctx, id, data)
	}
	return nil
}

func (m *MockDatabase) SavePlan(ctx context.Context, plan *types.StoredPlan) error {
	if m.SavePlanFunc != nil {
		return m.SavePlanFunc(ctx, plan)
	}
	return nil
}

func (m *MockDatabase) GetPlan(ctx context.Context, id string) (*types.StoredPlan, error) {
	if m.GetPlanFunc != nil {
		return m.GetPlanFunc(ctx, id)
	}
	return nil, apperrors.ErrPlanNotFound.WithMetadata("plan_id", id)
}

func (m *MockDatabase) UpdatePlan(ctx context.Context, id string, data map[string]interface{}) error {
	if m.UpdatePlanFunc != nil {
		return m.UpdatePlanFunc(ctx, id, data)
	}
	return nil
}

func (m *MockDatabase) ListExercises(ctx context.Context) ([]planner.Exercise, error) {
	if m.ListExercisesFunc != nil {
		return m.ListExercisesFunc(ctx)
	}
	return nil, nil
}

// --- Mock Publisher ---
type MockPublisher struct {
	PublishCloudEventFunc func(ctx context.Context, topic string, e event.Event) (string, error)
}

func (m *MockPublisher) PublishCloudEvent(ctx context.Context, topic string, e event.Event) (string, error) {
	if m.PublishCloudEventFunc != nil {
		return m.PublishCloudEventFunc(ctx, topic, e)
	}
	return "mock-msg-id", nil
}

// --- Mock Blob Store ---
type MockBlobStore struct {
	WriteFunc func(ctx context.Context, bucket, object string, data []byte) error
	ReadFunc  func(ctx context.Context, bucket, object string) ([]byte, error)
}

func (m *MockBlobStore) Write(ctx context.Context, bucket, object string, data []byte) error {
	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, bucket, object, data)
	}
	return nil
}

func (m *MockBlobStore) Read(ctx context.Context, bucket, object string) ([]byte, error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(ctx, bucket, object)
	}
	return nil, fmt.Errorf("object not found")
}

// --- Mock Secret Store ---
type MockSecretStore struct {
	GetSecretFunc func(ctx context.Context, projectID, name string) (string, error)
}

func (m *MockSecretStore) GetSecret(ctx context.Context, projectID, name string) (string, error) {
	if m.GetSecretFunc != nil {
		return m.GetSecretFunc(ctx, projectID, name)
	}
	return "mock-secret", nil
}

// --- Mock Catalog Source ---
type MockCatalog struct {
	ListExercisesFunc func(ctx context.Context) ([]planner.Exercise, error)
}

func (m *MockCatalog) ListExercises(ctx context.Context) ([]planner.Exercise, error) {
	if m.ListExercisesFunc != nil {
		return m.ListExercisesFunc(ctx)
	}
	return nil, nil
}
