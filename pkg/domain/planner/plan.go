package planner

// Exercise is the canonical catalog entry the generator works on.
// Upstream records are mapped to it by the catalog package.
type Exercise struct {
	ID            string `json:"id,omitempty" firestore:"id,omitempty"`
	Name          string `json:"name" firestore:"name"`
	PrimaryMuscle string `json:"primary_muscle,omitempty" firestore:"primary_muscle,omitempty"`
}

// WorkoutPlan is the generated multi-day plan.
type WorkoutPlan struct {
	DaysPerWeek int       `json:"days_per_week" firestore:"days_per_week"`
	Goal        string    `json:"goal" firestore:"goal"`
	Plan        []PlanDay `json:"plan" firestore:"plan"`
}

// PlanDay is a single training day. Day is 1-based.
type PlanDay struct {
	Day       int            `json:"day" firestore:"day"`
	DayName   string         `json:"day_name" firestore:"day_name"`
	Exercises []PlanExercise `json:"exercises" firestore:"exercises"`
}

type PlanExercise struct {
	Name string `json:"name" firestore:"name"`
	Sets int    `json:"sets" firestore:"sets"`
	Reps int    `json:"reps" firestore:"reps"`
}

// ExerciseCount returns the total number of exercises across all days.
func (p WorkoutPlan) ExerciseCount() int {
	n := 0
	for _, d := range p.Plan {
		n += len(d.Exercises)
	}
	return n
}
