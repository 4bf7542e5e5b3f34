package framework

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/fitfuel/fitfuel-server/pkg/bootstrap"
	apperrors "github.com/fitfuel/fitfuel-server/pkg/errors"
	"github.com/fitfuel/fitfuel-server/pkg/execution"
	infrapubsub "github.com/fitfuel/fitfuel-server/pkg/infrastructure/pubsub"
)

// FrameworkContext is handed to every wrapped handler.
type FrameworkContext struct {
	Service     *bootstrap.Service
	Logger      *slog.Logger
	ExecutionID string
}

// HandlerFunc is the signature for a CloudEvent function handler.
// It returns outputs (for execution logging) and an error.
type HandlerFunc func(ctx context.Context, e event.Event, fwCtx *FrameworkContext) (interface{}, error)

// HTTPHandlerFunc is the signature for an HTTP function handler. The
// returned value is written as the JSON response body.
type HTTPHandlerFunc func(r *http.Request, fwCtx *FrameworkContext) (interface{}, error)

// begin logs the pending and started execution records. Logging failures
// never fail the function.
func begin(ctx context.Context, serviceName string, svc *bootstrap.Service, trigger string, inputs interface{}) *FrameworkContext {
	logger := bootstrap.NewLogger(serviceName)

	execID, err := execution.LogPending(ctx, svc.DB, serviceName, execution.ExecutionOptions{
		TriggerType: trigger,
	})
	if err != nil {
		logger.Error("Failed to log execution pending", "error", err)
	}

	logger = logger.With("execution_id", execID)

	if err := execution.LogStart(ctx, svc.DB, execID, inputs, nil); err != nil {
		logger.Warn("Failed to log execution start", "error", err)
	}
	logger.Info("Function started", "trigger", trigger)

	return &FrameworkContext{Service: svc, Logger: logger, ExecutionID: execID}
}

func finish(ctx context.Context, fwCtx *FrameworkContext, outputs interface{}, handlerErr error) {
	if handlerErr != nil {
		fwCtx.Logger.Error("Function failed", "error", handlerErr, "code", apperrors.GetCode(handlerErr))
		if logErr := execution.LogFailure(ctx, fwCtx.Service.DB, fwCtx.ExecutionID, handlerErr, outputs); logErr != nil {
			fwCtx.Logger.Warn("Failed to log execution failure", "error", logErr)
		}
		return
	}

	fwCtx.Logger.Info("Function completed successfully")
	if logErr := execution.LogSuccess(ctx, fwCtx.Service.DB, fwCtx.ExecutionID, outputs); logErr != nil {
		fwCtx.Logger.Warn("Failed to log execution success", "error", logErr)
	}
}

// WrapCloudEvent wraps a handler with automatic execution logging. A
// CloudEvent nested in a Pub/Sub envelope is unwrapped before the handler
// sees it. Non-retryable failures are acknowledged so Pub/Sub does not
// redeliver a message that can never succeed.
func WrapCloudEvent(serviceName string, svc *bootstrap.Service, handler HandlerFunc) func(context.Context, event.Event) error {
	return func(ctx context.Context, e event.Event) error {
		if inner, ok := infrapubsub.UnwrapPubSubEvent(e); ok {
			e = inner
		}

		fwCtx := begin(ctx, serviceName, svc, "pubsub", map[string]string{
			"event_id":   e.ID(),
			"event_type": e.Type(),
			"source":     e.Source(),
		})

		outputs, handlerErr := handler(ctx, e, fwCtx)
		finish(ctx, fwCtx, outputs, handlerErr)

		if handlerErr != nil {
			if !apperrors.IsRetryable(handlerErr) {
				fwCtx.Logger.Warn("Acknowledging non-retryable failure", "error", handlerErr)
				return nil
			}
			return handlerErr
		}
		return nil
	}
}

// WrapHTTP wraps an HTTP handler with execution logging and JSON responses.
func WrapHTTP(serviceName string, svc *bootstrap.Service, handler HTTPHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		fwCtx := begin(ctx, serviceName, svc, "http", map[string]string{
			"method": r.Method,
			"path":   r.URL.Path,
			"query":  r.URL.RawQuery,
		})

		outputs, handlerErr := handler(r, fwCtx)
		finish(ctx, fwCtx, outputs, handlerErr)

		if handlerErr != nil {
			writeJSON(w, HTTPStatus(handlerErr), map[string]string{"error": errorMessage(handlerErr)})
			return
		}
		writeJSON(w, http.StatusOK, outputs)
	}
}

// HTTPStatus maps an error to the status code returned to HTTP callers.
func HTTPStatus(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.CodeValidationError, apperrors.CodePlanInvalid:
		return http.StatusBadRequest
	case apperrors.CodePlanNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage hides internal detail from 5xx responses.
func errorMessage(err error) string {
	if HTTPStatus(err) == http.StatusInternalServerError {
		return "internal error"
	}
	var fe *apperrors.FitFuelError
	if errors.As(err, &fe) {
		return fe.Message
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("Failed to write response", "error", err)
	}
}
