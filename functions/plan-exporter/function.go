package planexporter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"
	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/fitfuel/fitfuel-server/pkg/bootstrap"
	"github.com/fitfuel/fitfuel-server/pkg/domain/file_generators"
	apperrors "github.com/fitfuel/fitfuel-server/pkg/errors"
	"github.com/fitfuel/fitfuel-server/pkg/execution"
	"github.com/fitfuel/fitfuel-server/pkg/framework"
	infrapubsub "github.com/fitfuel/fitfuel-server/pkg/infrastructure/pubsub"
	"github.com/fitfuel/fitfuel-server/pkg/infrastructure/storage"
	"github.com/fitfuel/fitfuel-server/pkg/types"
)

const serviceName = "plan-exporter"

var (
	svc     *bootstrap.Service
	svcOnce sync.Once
	svcErr  error
)

func init() {
	functions.CloudEvent("ExportWorkoutPlan", ExportWorkoutPlan)
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

// ExportWorkoutPlan writes FIT and workbook artifacts for a generated plan.
func ExportWorkoutPlan(ctx context.Context, e event.Event) error {
	svc, err := initService(ctx)
	if err != nil {
		return fmt.Errorf("service init failed: %v", err)
	}
	return framework.WrapCloudEvent(serviceName, svc, exportHandler)(ctx, e)
}

// artifact is one rendered file bound for the artifact bucket.
type artifact struct {
	kind   string
	object string
	data   []byte
}

func exportHandler(ctx context.Context, e event.Event, fwCtx *framework.FrameworkContext) (interface{}, error) {
	svc := fwCtx.Service

	bucket := svc.Config.GCSArtifactBucket
	if bucket == "" {
		return nil, apperrors.New(apperrors.CodeValidationError, "GCS_ARTIFACT_BUCKET is not configured")
	}

	var evt types.PlanGeneratedEvent
	if err := infrapubsub.DecodeEventData(e, &evt); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeValidationError, "invalid plan event")
	}
	if evt.PlanID == "" {
		return nil, apperrors.New(apperrors.CodeValidationError, "plan_id is required")
	}
	logger := fwCtx.Logger.With("plan_id", evt.PlanID)

	stored, err := svc.DB.GetPlan(ctx, evt.PlanID)
	if err != nil {
		return nil, err
	}

	artifacts, err := render(stored)
	if err != nil {
		return nil, err
	}

	uris := make(map[string]string, len(artifacts))
	for _, a := range artifacts {
		childID, logErr := execution.LogChildExecutionStart(ctx, svc.DB, serviceName+"-upload", fwCtx.ExecutionID, execution.ExecutionOptions{
			UserID:      stored.UserID,
			TriggerType: "parent",
			Inputs:      map[string]string{"plan_id": stored.PlanID, "object": a.object},
		})
		if logErr != nil {
			logger.Warn("Failed to log upload start", "error", logErr)
		}

		if err := svc.Store.Write(ctx, bucket, a.object, a.data); err != nil {
			if logErr := execution.LogFailure(ctx, svc.DB, childID, err, nil); logErr != nil {
				logger.Warn("Failed to log upload failure", "error", logErr)
			}
			return nil, err
		}

		uri := storage.URI(bucket, a.object)
		uris[a.kind] = uri
		if logErr := execution.LogSuccess(ctx, svc.DB, childID, map[string]string{"uri": uri}); logErr != nil {
			logger.Warn("Failed to log upload success", "error", logErr)
		}
		logger.Info("Uploaded artifact", "kind", a.kind, "uri", uri, "size_bytes", len(a.data))
	}

	if err := svc.DB.UpdatePlan(ctx, stored.PlanID, map[string]interface{}{"artifacts": uris}); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"plan_id":   stored.PlanID,
		"artifacts": uris,
	}, nil
}

// render builds one FIT workout per non-empty day plus the workbook.
func render(stored *types.StoredPlan) ([]artifact, error) {
	var out []artifact
	for i, day := range stored.Plan.Plan {
		if len(day.Exercises) == 0 {
			continue
		}
		data, err := file_generators.GenerateWorkoutFit(stored.Plan, i, stored.CreatedAt)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodePlanInvalid, "failed to encode FIT workout").
				WithMetadata("day", fmt.Sprint(day.Day))
		}
		out = append(out, artifact{
			kind:   types.FitArtifactKey(day.Day),
			object: fmt.Sprintf("plans/%s/day-%d.fit", stored.PlanID, day.Day),
			data:   data,
		})
	}

	data, err := file_generators.GenerateWorkbook(stored.Plan)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeInternalError, "failed to build workbook")
	}
	out = append(out, artifact{
		kind:   types.ArtifactWorkbook,
		object: fmt.Sprintf("plans/%s/plan.xlsx", stored.PlanID),
		data:   data,
	})
	return out, nil
}
