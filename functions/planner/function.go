package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/cloudevents/sdk-go/v2/event"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	shared "github.com/fitfuel/fitfuel-server/pkg"
	"github.com/fitfuel/fitfuel-server/pkg/bootstrap"
	domain "github.com/fitfuel/fitfuel-server/pkg/domain/planner"
	apperrors "github.com/fitfuel/fitfuel-server/pkg/errors"
	"github.com/fitfuel/fitfuel-server/pkg/framework"
	infrapubsub "github.com/fitfuel/fitfuel-server/pkg/infrastructure/pubsub"
	"github.com/fitfuel/fitfuel-server/pkg/types"
)

const serviceName = "planner"

// maxRequestBytes bounds POST bodies.
const maxRequestBytes = 64 << 10

var (
	svc     *bootstrap.Service
	svcOnce sync.Once
	svcErr  error
)

func init() {
	functions.HTTP("GenerateWorkoutPlan", GenerateWorkoutPlan)
	functions.CloudEvent("GenerateWorkoutPlanEvent", GenerateWorkoutPlanEvent)
}

func initService(ctx context.Context) (*bootstrap.Service, error) {
	if svc != nil {
		return svc, nil
	}
	svcOnce.Do(func() {
		svc, svcErr = bootstrap.NewService(ctx)
		if svcErr != nil {
			slog.Error("Failed to initialize service", "error", svcErr)
		}
	})
	return svc, svcErr
}

// GenerateWorkoutPlan is the HTTP entry point.
//
//	GET  ?days_per_week=N&goal=G[&user_id=U][&seed=S]
//	GET  ?options=true
//	POST {"days_per_week": N, "goal": G, "user_id": U, "seed": S}
func GenerateWorkoutPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	svc, err := initService(r.Context())
	if err != nil {
		http.Error(w, "service unavailable", http.StatusInternalServerError)
		return
	}
	framework.WrapHTTP(serviceName, svc, httpHandler)(w, r)
}

// GenerateWorkoutPlanEvent consumes plan requests from topic-plan-request.
func GenerateWorkoutPlanEvent(ctx context.Context, e event.Event) error {
	svc, err := initService(ctx)
	if err != nil {
		return fmt.Errorf("service init failed: %v", err)
	}
	return framework.WrapCloudEvent(serviceName, svc, eventHandler)(ctx, e)
}

func httpHandler(r *http.Request, fwCtx *framework.FrameworkContext) (interface{}, error) {
	var req types.PlanRequest

	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()

		var options bool
		if err := runtime.BindQueryParameter("form", true, false, "options", q, &options); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeValidationError, "options must be a boolean")
		}
		if options {
			return generator(fwCtx.Service, 0).Options(), nil
		}

		if err := runtime.BindQueryParameter("form", true, true, "days_per_week", q, &req.DaysPerWeek); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeValidationError, "days_per_week must be an integer")
		}
		if err := runtime.BindQueryParameter("form", true, false, "goal", q, &req.Goal); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeValidationError, "invalid goal")
		}
		if err := runtime.BindQueryParameter("form", true, false, "user_id", q, &req.UserID); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeValidationError, "invalid user_id")
		}
		if err := runtime.BindQueryParameter("form", true, false, "seed", q, &req.Seed); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeValidationError, "seed must be an unsigned integer")
		}

	case http.MethodPost:
		body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeValidationError, "failed to read request body")
		}
		req, err = decodePlanRequest(body)
		if err != nil {
			return nil, err
		}
	}

	return generatePlan(r.Context(), fwCtx, req)
}

func eventHandler(ctx context.Context, e event.Event, fwCtx *framework.FrameworkContext) (interface{}, error) {
	var body json.RawMessage
	if err := infrapubsub.DecodeEventData(e, &body); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeValidationError, "invalid plan request event")
	}
	req, err := decodePlanRequest(body)
	if err != nil {
		return nil, err
	}

	stored, err := generatePlan(ctx, fwCtx, req)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"plan_id":   stored.PlanID,
		"exercises": stored.Plan.ExerciseCount(),
	}, nil
}

// decodePlanRequest accepts days_per_week as a JSON number or a numeric
// string; anything else is a validation error.
func decodePlanRequest(body []byte) (types.PlanRequest, error) {
	var raw struct {
		DaysPerWeek json.RawMessage `json:"days_per_week"`
		Goal        string          `json:"goal"`
		UserID      string          `json:"user_id"`
		Seed        *uint64         `json:"seed"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return types.PlanRequest{}, apperrors.Wrap(err, apperrors.CodeValidationError, "request body must be a JSON object")
	}

	if len(raw.DaysPerWeek) == 0 || string(raw.DaysPerWeek) == "null" {
		return types.PlanRequest{}, apperrors.New(apperrors.CodeValidationError, "days_per_week is required")
	}
	days, err := parseDays(raw.DaysPerWeek)
	if err != nil {
		return types.PlanRequest{}, apperrors.Wrap(err, apperrors.CodeValidationError, "days_per_week must be an integer")
	}

	return types.PlanRequest{
		DaysPerWeek: days,
		Goal:        raw.Goal,
		UserID:      raw.UserID,
		Seed:        raw.Seed,
	}, nil
}

func parseDays(raw json.RawMessage) (int, error) {
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(s))
}

// generator builds a generator over the service's program tables.
func generator(svc *bootstrap.Service, seed uint64) *domain.Generator {
	cfg := svc.Planner
	if cfg.Splits == nil {
		cfg = domain.DefaultConfig()
	}
	return domain.NewGenerator(cfg, domain.NewSeededSource(seed))
}

// generatePlan loads the catalog, generates, stores and announces a plan.
func generatePlan(ctx context.Context, fwCtx *framework.FrameworkContext, req types.PlanRequest) (*types.StoredPlan, error) {
	svc := fwCtx.Service

	exercises, err := svc.Catalog.ListExercises(ctx)
	if err != nil {
		return nil, err
	}

	seed := rand.Uint64()
	if req.Seed != nil {
		seed = *req.Seed
	}

	gen := generator(svc, seed)
	goal := req.Goal
	if goal == "" {
		goal = gen.Options().DefaultGoal
	}
	plan := gen.Generate(req.DaysPerWeek, goal, exercises)

	stored := &types.StoredPlan{
		PlanID:    uuid.NewString(),
		UserID:    req.UserID,
		CreatedAt: time.Now().UTC(),
		Seed:      seed,
		Plan:      plan,
	}

	fwCtx.Logger.Info("Generated workout plan",
		"plan_id", stored.PlanID,
		"days_per_week", req.DaysPerWeek,
		"goal", goal,
		"catalog_size", len(exercises),
		"exercises", plan.ExerciseCount())

	if err := svc.DB.SavePlan(ctx, stored); err != nil {
		return nil, err
	}

	evt, err := infrapubsub.NewCloudEvent(shared.EventSourcePlanner, shared.EventTypePlanGenerated, stored.PlanID, types.PlanGeneratedEvent{
		PlanID:      stored.PlanID,
		UserID:      stored.UserID,
		DaysPerWeek: plan.DaysPerWeek,
		Goal:        plan.Goal,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to build plan event")
	}

	// The plan is already stored; a lost event only delays artifact export.
	if msgID, err := svc.Pub.PublishCloudEvent(ctx, shared.TopicPlanGenerated, evt); err != nil {
		fwCtx.Logger.Warn("Failed to publish plan event", "plan_id", stored.PlanID, "error", err)
	} else {
		fwCtx.Logger.Info("Published plan event", "plan_id", stored.PlanID, "message_id", msgID)
	}

	return stored, nil
}
