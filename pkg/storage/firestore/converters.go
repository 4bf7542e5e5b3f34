package firestore

import (
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/fitfuel/fitfuel-server/pkg/catalog"
	"github.com/fitfuel/fitfuel-server/pkg/domain/planner"
	"github.com/fitfuel/fitfuel-server/pkg/types"
)

// Helper to safely get string from map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Helper to safely get an integer from map (Firestore returns int64)
func getInt(m map[string]interface{}, key string) int64 {
	switch n := m[key].(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

// Helper to safely get time from map (handles time.Time from Firestore)
func getTime(m map[string]interface{}, key string) *timestamppb.Timestamp {
	if v, ok := m[key]; ok {
		if t, ok := v.(time.Time); ok {
			return timestamppb.New(t)
		}
	}
	return nil
}

func getList(m map[string]interface{}, key string) []interface{} {
	if l, ok := m[key].([]interface{}); ok {
		return l
	}
	return nil
}

func asTime(ts *timestamppb.Timestamp) interface{} {
	if ts == nil {
		return nil
	}
	return ts.AsTime()
}

// --- Execution Record ---

func ExecutionToFirestore(e *types.ExecutionRecord) map[string]interface{} {
	m := map[string]interface{}{
		"execution_id": e.ExecutionID,
		"service":      e.Service,
		"status":       e.Status.String(),
		"timestamp":    asTime(e.Timestamp),
		"trigger_type": e.TriggerType,
		"start_time":   asTime(e.StartTime),
	}
	if e.EndTime != nil {
		m["end_time"] = e.EndTime.AsTime()
	}
	if e.UserID != "" {
		m["user_id"] = e.UserID
	}
	if e.ErrorMessage != "" {
		m["error_message"] = e.ErrorMessage
	}
	if e.InputsJSON != "" {
		m["inputs_json"] = e.InputsJSON
	}
	if e.OutputsJSON != "" {
		m["outputs_json"] = e.OutputsJSON
	}
	if e.ParentExecutionID != "" {
		m["parent_execution_id"] = e.ParentExecutionID
	}
	return m
}

func FirestoreToExecution(m map[string]interface{}) *types.ExecutionRecord {
	e := &types.ExecutionRecord{
		ExecutionID:       getString(m, "execution_id"),
		Service:           getString(m, "service"),
		Timestamp:         getTime(m, "timestamp"),
		TriggerType:       getString(m, "trigger_type"),
		UserID:            getString(m, "user_id"),
		StartTime:         getTime(m, "start_time"),
		EndTime:           getTime(m, "end_time"),
		ErrorMessage:      getString(m, "error_message"),
		InputsJSON:        getString(m, "inputs_json"),
		OutputsJSON:       getString(m, "outputs_json"),
		ParentExecutionID: getString(m, "parent_execution_id"),
	}

	// Handle int or string legacy
	switch val := m["status"].(type) {
	case int64:
		e.Status = types.ExecutionStatus(val)
	case int:
		e.Status = types.ExecutionStatus(int32(val))
	case string:
		e.Status = types.ParseExecutionStatus(val)
	}

	return e
}

// --- Stored Plan ---

func PlanToFirestore(p *types.StoredPlan) map[string]interface{} {
	days := make([]interface{}, len(p.Plan.Plan))
	for i, d := range p.Plan.Plan {
		exercises := make([]interface{}, len(d.Exercises))
		for j, ex := range d.Exercises {
			exercises[j] = map[string]interface{}{
				"name": ex.Name,
				"sets": int64(ex.Sets),
				"reps": int64(ex.Reps),
			}
		}
		days[i] = map[string]interface{}{
			"day":       int64(d.Day),
			"day_name":  d.DayName,
			"exercises": exercises,
		}
	}

	artifacts := make(map[string]interface{}, len(p.Artifacts))
	for k, v := range p.Artifacts {
		artifacts[k] = v
	}

	// Firestore integers are signed; the seed round-trips through int64.
	m := map[string]interface{}{
		"plan_id":       p.PlanID,
		"created_at":    p.CreatedAt,
		"seed":          int64(p.Seed),
		"days_per_week": int64(p.Plan.DaysPerWeek),
		"goal":          p.Plan.Goal,
		"plan":          days,
		"artifacts":     artifacts,
	}
	if p.UserID != "" {
		m["user_id"] = p.UserID
	}
	return m
}

func FirestoreToPlan(m map[string]interface{}) *types.StoredPlan {
	p := &types.StoredPlan{
		PlanID: getString(m, "plan_id"),
		UserID: getString(m, "user_id"),
		Seed:   uint64(getInt(m, "seed")),
		Plan: planner.WorkoutPlan{
			DaysPerWeek: int(getInt(m, "days_per_week")),
			Goal:        getString(m, "goal"),
			Plan:        []planner.PlanDay{},
		},
	}
	if ts := getTime(m, "created_at"); ts != nil {
		p.CreatedAt = ts.AsTime()
	}

	for _, item := range getList(m, "plan") {
		dm, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		day := planner.PlanDay{
			Day:       int(getInt(dm, "day")),
			DayName:   getString(dm, "day_name"),
			Exercises: []planner.PlanExercise{},
		}
		for _, exItem := range getList(dm, "exercises") {
			em, ok := exItem.(map[string]interface{})
			if !ok {
				continue
			}
			day.Exercises = append(day.Exercises, planner.PlanExercise{
				Name: getString(em, "name"),
				Sets: int(getInt(em, "sets")),
				Reps: int(getInt(em, "reps")),
			})
		}
		p.Plan.Plan = append(p.Plan.Plan, day)
	}

	if am, ok := m["artifacts"].(map[string]interface{}); ok && len(am) > 0 {
		p.Artifacts = make(map[string]string, len(am))
		for k, v := range am {
			if s, ok := v.(string); ok {
				p.Artifacts[k] = s
			}
		}
	}

	return p
}

// --- Exercises ---

// FirestoreToExercise maps a catalog document through the same alias
// handling the REST catalog uses. The document ID backs a missing id field.
func FirestoreToExercise(docID string, m map[string]interface{}) (planner.Exercise, bool) {
	ex, ok := catalog.Normalize(m)
	if !ok {
		return ex, false
	}
	if ex.ID == "" {
		ex.ID = docID
	}
	return ex, true
}
