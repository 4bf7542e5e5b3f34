package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fitfuel/fitfuel-server/pkg/domain/planner"
	apperrors "github.com/fitfuel/fitfuel-server/pkg/errors"
)

func TestReadPlan_Aliases(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantDays  int
		wantGoal  string
		firstDay  int
		firstName string
		exercises int
	}{
		{
			name:      "canonical",
			input:     `{"days_per_week":4,"goal":"strength","plan":[{"day":1,"day_name":"Legs","exercises":[{"name":"Squat","sets":4,"reps":6}]}]}`,
			wantDays:  4,
			wantGoal:  "strength",
			firstDay:  1,
			firstName: "Squat",
			exercises: 1,
		},
		{
			name:      "workout_plan and day_number",
			input:     `{"workout_plan":[{"day_number":2,"exercise_list":[{"exercise_name":"Row"},{"exercise":"Curl"}]}]}`,
			wantDays:  3,
			wantGoal:  "balanced",
			firstDay:  2,
			firstName: "Row",
			exercises: 2,
		},
		{
			name:      "days without index uses position",
			input:     `{"days":[{"exercises":[{}]}]}`,
			wantDays:  3,
			wantGoal:  "balanced",
			firstDay:  1,
			firstName: planner.DefaultExerciseName,
			exercises: 1,
		},
		{
			name:      "workout_days with no exercises",
			input:     `{"goal":"endurance","workout_days":[{"day_name":"Rest"}]}`,
			wantDays:  3,
			wantGoal:  "endurance",
			firstDay:  1,
			exercises: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := ReadPlan([]byte(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if plan.DaysPerWeek != tt.wantDays {
				t.Errorf("days_per_week = %d, want %d", plan.DaysPerWeek, tt.wantDays)
			}
			if plan.Goal != tt.wantGoal {
				t.Errorf("goal = %q, want %q", plan.Goal, tt.wantGoal)
			}
			if len(plan.Plan) != 1 {
				t.Fatalf("expected 1 day, got %d", len(plan.Plan))
			}
			day := plan.Plan[0]
			if day.Day != tt.firstDay {
				t.Errorf("day = %d, want %d", day.Day, tt.firstDay)
			}
			if len(day.Exercises) != tt.exercises {
				t.Fatalf("exercises = %d, want %d", len(day.Exercises), tt.exercises)
			}
			if tt.exercises > 0 && day.Exercises[0].Name != tt.firstName {
				t.Errorf("first exercise = %q, want %q", day.Exercises[0].Name, tt.firstName)
			}
		})
	}
}

func TestReadPlan_Errors(t *testing.T) {
	if _, err := ReadPlan([]byte(`{"plan":[]}`)); !errors.Is(err, ErrEmptyPlan) {
		t.Errorf("expected ErrEmptyPlan, got %v", err)
	}
	if _, err := ReadPlan([]byte(`{"goal":"strength"}`)); !errors.Is(err, ErrEmptyPlan) {
		t.Errorf("expected ErrEmptyPlan for missing list, got %v", err)
	}
	if _, err := ReadPlan([]byte(`not json`)); !errors.Is(err, apperrors.ErrPlanInvalid) {
		t.Errorf("expected plan invalid, got %v", err)
	}
}

func TestText(t *testing.T) {
	plan := planner.WorkoutPlan{
		DaysPerWeek: 3,
		Goal:        "balanced",
		Plan: []planner.PlanDay{
			{Day: 1, DayName: "Chest & Triceps", Exercises: []planner.PlanExercise{{Name: "Bench Press", Sets: 3, Reps: 10}}},
			{Day: 2, DayName: "Back & Biceps", Exercises: []planner.PlanExercise{}},
		},
	}

	var buf bytes.Buffer
	if err := Text(&buf, plan); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := strings.Join([]string{
		"Your 3-Day Workout Plan (balanced)",
		"",
		"Day 1 - Chest & Triceps",
		"  Bench Press: 3 sets x 10 reps",
		"",
		"Day 2 - Back & Biceps",
		"  No exercises for this day",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestText_RoundTripsGeneratedPlan(t *testing.T) {
	plan := planner.NewGenerator(planner.DefaultConfig(), planner.NewSeededSource(7)).Generate(4, "strength", []planner.Exercise{
		{Name: "Bench Press"}, {Name: "Squat"}, {Name: "Barbell Row"}, {Name: "Plank"},
	})

	var buf bytes.Buffer
	if err := Text(&buf, plan); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "Your 4-Day Workout Plan (strength)") {
		t.Errorf("unexpected header: %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}
	if !strings.Contains(buf.String(), "Squat: 4 sets x 6 reps") {
		t.Errorf("expected squat line in output:\n%s", buf.String())
	}
}

func TestText_DayWithoutName(t *testing.T) {
	plan, err := ReadPlan([]byte(`{"days_per_week": 3, "plan": [
		{"day": 1, "day_name": "Legs", "exercises": [{"name": "Squat", "sets": 3}]},
		{"day": 2, "exercises": [{"name": "Squat", "sets": 3}]}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := Text(&buf, plan); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "\nDay 1 - Legs\n") {
		t.Errorf("expected named day heading, got:\n%s", out)
	}
	if !strings.Contains(out, "\nDay 2\n  Squat: 3 sets x 0 reps\n") {
		t.Errorf("expected bare day heading, got:\n%q", out)
	}
	if strings.Contains(out, "Day 2 -") {
		t.Errorf("unnamed day must not carry a separator:\n%q", out)
	}
}
