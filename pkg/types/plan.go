package types

import (
	"strconv"
	"time"

	"github.com/fitfuel/fitfuel-server/pkg/domain/planner"
)

// Artifact kinds recorded on a StoredPlan.
const (
	ArtifactWorkbook = "xlsx"
)

// FitArtifactKey is the artifact kind for the FIT workout of day (1-based).
func FitArtifactKey(day int) string {
	return "fit_day_" + strconv.Itoa(day)
}

// StoredPlan is a generated plan as persisted in the workout_plans collection.
type StoredPlan struct {
	PlanID    string              `json:"plan_id"`
	UserID    string              `json:"user_id,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	Seed      uint64              `json:"seed"`
	Plan      planner.WorkoutPlan `json:"plan"`
	// Artifacts maps an artifact kind to its gs:// URI.
	Artifacts map[string]string `json:"artifacts,omitempty"`
}

// PlanRequest asks for a plan to be generated. A nil Seed picks one at random.
type PlanRequest struct {
	DaysPerWeek int     `json:"days_per_week"`
	Goal        string  `json:"goal,omitempty"`
	UserID      string  `json:"user_id,omitempty"`
	Seed        *uint64 `json:"seed,omitempty"`
}

// PlanGeneratedEvent is published once a plan has been stored.
type PlanGeneratedEvent struct {
	PlanID      string `json:"plan_id"`
	UserID      string `json:"user_id,omitempty"`
	DaysPerWeek int    `json:"days_per_week"`
	Goal        string `json:"goal"`
}

