// Package render reads loosely-shaped workout plans and writes them out as
// plain text.
package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/fitfuel/fitfuel-server/pkg/domain/planner"
	apperrors "github.com/fitfuel/fitfuel-server/pkg/errors"
)

// ErrEmptyPlan is returned when a plan carries no days.
var ErrEmptyPlan = errors.New("plan has no days")

const (
	defaultDaysPerWeek = 3
	defaultGoal        = "balanced"
)

var (
	dayListFields      = []string{"plan", "workout_plan", "days", "workout_days"}
	dayIndexFields     = []string{"day", "day_number"}
	exerciseListFields = []string{"exercises", "exercise_list"}
	exerciseNameFields = []string{"name", "exercise_name", "exercise"}
)

// ReadPlan decodes a plan produced by this service or by older clients that
// used alternate field names.
func ReadPlan(data []byte) (planner.WorkoutPlan, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return planner.WorkoutPlan{}, apperrors.Wrap(err, apperrors.CodePlanInvalid, "failed to decode plan")
	}

	plan := planner.WorkoutPlan{
		DaysPerWeek: defaultDaysPerWeek,
		Goal:        defaultGoal,
	}
	if n, ok := intValue(raw["days_per_week"]); ok && n > 0 {
		plan.DaysPerWeek = n
	}
	if g, ok := raw["goal"].(string); ok && strings.TrimSpace(g) != "" {
		plan.Goal = g
	}

	days := firstList(raw, dayListFields)
	if len(days) == 0 {
		return plan, ErrEmptyPlan
	}

	plan.Plan = make([]planner.PlanDay, 0, len(days))
	for i, item := range days {
		d, _ := item.(map[string]interface{})
		plan.Plan = append(plan.Plan, readDay(d, i))
	}
	return plan, nil
}

func readDay(d map[string]interface{}, pos int) planner.PlanDay {
	day := planner.PlanDay{Day: pos + 1, Exercises: []planner.PlanExercise{}}
	if d == nil {
		return day
	}

	for _, k := range dayIndexFields {
		if n, ok := intValue(d[k]); ok && n > 0 {
			day.Day = n
			break
		}
	}
	if name, ok := d["day_name"].(string); ok {
		day.DayName = name
	}

	for _, item := range firstList(d, exerciseListFields) {
		ex, _ := item.(map[string]interface{})
		day.Exercises = append(day.Exercises, readExercise(ex))
	}
	return day
}

func readExercise(ex map[string]interface{}) planner.PlanExercise {
	out := planner.PlanExercise{Name: planner.DefaultExerciseName}
	if ex == nil {
		return out
	}
	for _, k := range exerciseNameFields {
		if s, ok := ex[k].(string); ok && strings.TrimSpace(s) != "" {
			out.Name = s
			break
		}
	}
	out.Sets, _ = intValue(ex["sets"])
	out.Reps, _ = intValue(ex["reps"])
	return out
}

func firstList(m map[string]interface{}, keys []string) []interface{} {
	for _, k := range keys {
		if l, ok := m[k].([]interface{}); ok {
			return l
		}
	}
	return nil
}

func intValue(v interface{}) (int, bool) {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return int(n), true
		}
		if f, err := t.Float64(); err == nil {
			return int(f), true
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return n, true
		}
	}
	return 0, false
}
