package framework

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/fitfuel/fitfuel-server/pkg/bootstrap"
	apperrors "github.com/fitfuel/fitfuel-server/pkg/errors"
	"github.com/fitfuel/fitfuel-server/pkg/testing/mocks"
	"github.com/fitfuel/fitfuel-server/pkg/types"
)

// statusRecorder collects the status transitions written for an execution.
type statusRecorder struct {
	mu       sync.Mutex
	pending  int
	statuses []string
}

func (r *statusRecorder) db() *mocks.MockDatabase {
	return &mocks.MockDatabase{
		SetExecutionFunc: func(ctx context.Context, record *types.ExecutionRecord) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			if record.Status == types.ExecutionStatusPending {
				r.pending++
			}
			return nil
		},
		UpdateExecutionFunc: func(ctx context.Context, id string, data map[string]interface{}) error {
			r.mu.Lock()
			defer r.mu.Unlock()
			if s, ok := data["status"].(string); ok {
				r.statuses = append(r.statuses, s)
			}
			return nil
		},
	}
}

func (r *statusRecorder) assert(t *testing.T, want ...string) {
	t.Helper()
	if r.pending != 1 {
		t.Errorf("Expected 1 pending record, got %d", r.pending)
	}
	if len(r.statuses) != len(want) {
		t.Fatalf("Expected statuses %v, got %v", want, r.statuses)
	}
	for i := range want {
		if r.statuses[i] != want[i] {
			t.Errorf("Expected statuses %v, got %v", want, r.statuses)
		}
	}
}

func TestWrapCloudEvent(t *testing.T) {
	rec := &statusRecorder{}
	svc := &bootstrap.Service{DB: rec.db()}

	handler := func(ctx context.Context, e event.Event, fwCtx *FrameworkContext) (interface{}, error) {
		if fwCtx.Service != svc {
			t.Error("Service not injected correctly")
		}
		if fwCtx.ExecutionID == "" {
			t.Error("ExecutionID not generated")
		}
		return "ok", nil
	}

	e := event.New()
	e.SetID("evt-1")
	e.SetType("google.cloud.pubsub.topic.v1.messagePublished")
	e.SetSource("test-source")

	if err := WrapCloudEvent("test-service", svc, handler)(context.Background(), e); err != nil {
		t.Fatalf("Handler failed: %v", err)
	}
	rec.assert(t, "STATUS_STARTED", "STATUS_SUCCESS")
}

func TestWrapCloudEvent_Failures(t *testing.T) {
	tests := []struct {
		name       string
		handlerErr error
		wantErr    bool
	}{
		{
			name:       "retryable error is returned for redelivery",
			handlerErr: apperrors.NewRetryable(apperrors.CodeStorageError, "firestore unavailable"),
			wantErr:    true,
		},
		{
			name:       "non-retryable error is acknowledged",
			handlerErr: apperrors.ErrPlanNotFound,
			wantErr:    false,
		},
		{
			name:       "plain error is acknowledged",
			handlerErr: errors.New("simulated error"),
			wantErr:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &statusRecorder{}
			svc := &bootstrap.Service{DB: rec.db()}

			handler := func(ctx context.Context, e event.Event, fwCtx *FrameworkContext) (interface{}, error) {
				return nil, tt.handlerErr
			}

			e := event.New()
			e.SetID("evt-1")
			err := WrapCloudEvent("test-service", svc, handler)(context.Background(), e)
			if (err != nil) != tt.wantErr {
				t.Errorf("Expected error=%v, got %v", tt.wantErr, err)
			}
			rec.assert(t, "STATUS_STARTED", "STATUS_FAILED")
		})
	}
}

func TestWrapCloudEvent_UnwrapsNestedEvent(t *testing.T) {
	svc := &bootstrap.Service{DB: &mocks.MockDatabase{}}

	expectedID := "inner-event-123"
	expectedType := "com.fitfuel.plan.generated"

	handler := func(ctx context.Context, e event.Event, fwCtx *FrameworkContext) (interface{}, error) {
		if e.ID() != expectedID {
			t.Errorf("Expected event ID %s, got %s", expectedID, e.ID())
		}
		if e.Type() != expectedType {
			t.Errorf("Expected event type %s, got %s", expectedType, e.Type())
		}
		return "ok", nil
	}

	inner := event.New()
	inner.SetID(expectedID)
	inner.SetType(expectedType)
	inner.SetSource("/test/source")
	inner.SetData(event.ApplicationJSON, map[string]string{"plan_id": "p1"})
	innerBytes, _ := json.Marshal(inner)

	var psMsg types.PubSubMessage
	psMsg.Message.Data = innerBytes

	outer := event.New()
	outer.SetID("outer-msg-id")
	outer.SetType("google.cloud.pubsub.topic.v1.messagePublished")
	outer.SetSource("//pubsub")
	outer.SetData(event.ApplicationJSON, psMsg)

	if err := WrapCloudEvent("test-service", svc, handler)(context.Background(), outer); err != nil {
		t.Fatalf("Handler failed: %v", err)
	}
}

func TestWrapHTTP(t *testing.T) {
	tests := []struct {
		name       string
		handlerErr error
		outputs    interface{}
		wantStatus int
		wantBody   string
		wantFinal  string
	}{
		{
			name:       "success writes outputs",
			outputs:    map[string]string{"plan_id": "p1"},
			wantStatus: http.StatusOK,
			wantBody:   `{"plan_id":"p1"}`,
			wantFinal:  "STATUS_SUCCESS",
		},
		{
			name:       "validation error is 400",
			handlerErr: apperrors.New(apperrors.CodeValidationError, "days_per_week is required"),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"days_per_week is required"}`,
			wantFinal:  "STATUS_FAILED",
		},
		{
			name:       "not found is 404",
			handlerErr: apperrors.ErrPlanNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"plan not found"}`,
			wantFinal:  "STATUS_FAILED",
		},
		{
			name:       "other errors are 500 without detail",
			handlerErr: apperrors.Wrap(errors.New("dial tcp: refused"), apperrors.CodeCatalogUnavailable, "cannot connect"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"internal error"}`,
			wantFinal:  "STATUS_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &statusRecorder{}
			svc := &bootstrap.Service{DB: rec.db()}

			handler := func(r *http.Request, fwCtx *FrameworkContext) (interface{}, error) {
				return tt.outputs, tt.handlerErr
			}

			req := httptest.NewRequest(http.MethodGet, "/?days_per_week=3", nil)
			w := httptest.NewRecorder()
			WrapHTTP("test-service", svc, handler)(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if got := w.Body.String(); got != tt.wantBody+"\n" {
				t.Errorf("Expected body %s, got %s", tt.wantBody, got)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Expected JSON content type, got %q", ct)
			}
			rec.assert(t, "STATUS_STARTED", tt.wantFinal)
		})
	}
}
