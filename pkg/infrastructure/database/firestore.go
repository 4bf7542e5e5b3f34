package database

import (
	"context"
	"log/slog"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	shared "github.com/fitfuel/fitfuel-server/pkg"
	"github.com/fitfuel/fitfuel-server/pkg/domain/planner"
	apperrors "github.com/fitfuel/fitfuel-server/pkg/errors"
	storage "github.com/fitfuel/fitfuel-server/pkg/storage/firestore"
	"github.com/fitfuel/fitfuel-server/pkg/types"
)

// FirestoreAdapter provides database operations using Firestore
type FirestoreAdapter struct {
	Client *firestore.Client
}

func NewFirestoreAdapter(client *firestore.Client) *FirestoreAdapter {
	return &FirestoreAdapter{Client: client}
}

func (a *FirestoreAdapter) executions() *firestore.CollectionRef {
	return a.Client.Collection(shared.CollectionExecutions)
}

func (a *FirestoreAdapter) plans() *firestore.CollectionRef {
	return a.Client.Collection(shared.CollectionPlans)
}

// --- Executions ---

func (a *FirestoreAdapter) SetExecution(ctx context.Context, record *types.ExecutionRecord) error {
	_, err := a.executions().Doc(record.ExecutionID).Set(ctx, storage.ExecutionToFirestore(record))
	if err != nil {
		return apperrors.WrapRetryable(err, apperrors.CodeStorageError, "failed to write execution")
	}
	return nil
}

func (a *FirestoreAdapter) UpdateExecution(ctx context.Context, id string, data map[string]interface{}) error {
	_, err := a.executions().Doc(id).Set(ctx, data, firestore.MergeAll)
	if err != nil {
		return apperrors.WrapRetryable(err, apperrors.CodeStorageError, "failed to update execution")
	}
	return nil
}

// --- Plans ---

func (a *FirestoreAdapter) SavePlan(ctx context.Context, plan *types.StoredPlan) error {
	_, err := a.plans().Doc(plan.PlanID).Set(ctx, storage.PlanToFirestore(plan))
	if err != nil {
		return apperrors.WrapRetryable(err, apperrors.CodeStorageError, "failed to save plan").
			WithMetadata("plan_id", plan.PlanID)
	}
	return nil
}

func (a *FirestoreAdapter) GetPlan(ctx context.Context, id string) (*types.StoredPlan, error) {
	snap, err := a.plans().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperrors.ErrPlanNotFound.WithCause(err).WithMetadata("plan_id", id)
		}
		return nil, apperrors.WrapRetryable(err, apperrors.CodeStorageError, "failed to read plan").
			WithMetadata("plan_id", id)
	}
	plan := storage.FirestoreToPlan(snap.Data())
	// Manually populate ID since it's the doc key
	plan.PlanID = id
	return plan, nil
}

func (a *FirestoreAdapter) UpdatePlan(ctx context.Context, id string, data map[string]interface{}) error {
	_, err := a.plans().Doc(id).Set(ctx, data, firestore.MergeAll)
	if err != nil {
		return apperrors.WrapRetryable(err, apperrors.CodeStorageError, "failed to update plan").
			WithMetadata("plan_id", id)
	}
	return nil
}

// --- Exercises ---

func (a *FirestoreAdapter) ListExercises(ctx context.Context) ([]planner.Exercise, error) {
	iter := a.Client.Collection(shared.CollectionExercises).Documents(ctx)
	defer iter.Stop()

	var results []planner.Exercise
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, apperrors.WrapRetryable(err, apperrors.CodeCatalogUnavailable, "failed to list exercises")
		}
		ex, ok := storage.FirestoreToExercise(doc.Ref.ID, doc.Data())
		if !ok {
			continue
		}
		results = append(results, ex)
	}

	slog.Debug("Loaded exercises from Firestore", "count", len(results))
	return results, nil
}
