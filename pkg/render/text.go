package render

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fitfuel/fitfuel-server/pkg/domain/planner"
)

// Text writes a human-readable rendition of plan to w.
func Text(w io.Writer, plan planner.WorkoutPlan) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Your %d-Day Workout Plan (%s)\n", plan.DaysPerWeek, plan.Goal)
	for _, day := range plan.Plan {
		if day.DayName != "" {
			fmt.Fprintf(bw, "\nDay %d - %s\n", day.Day, day.DayName)
		} else {
			fmt.Fprintf(bw, "\nDay %d\n", day.Day)
		}
		if len(day.Exercises) == 0 {
			fmt.Fprintln(bw, "  No exercises for this day")
			continue
		}
		for _, ex := range day.Exercises {
			fmt.Fprintf(bw, "  %s: %d sets x %d reps\n", ex.Name, ex.Sets, ex.Reps)
		}
	}
	return bw.Flush()
}
