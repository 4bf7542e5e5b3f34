package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/muktihari/fit/decoder"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"
)

// workoutSummary is what a FIT workout file says about itself.
type workoutSummary struct {
	Name     string
	Sport    typedef.Sport
	SubSport typedef.SubSport
	Steps    []*mesgdef.WorkoutStep
}

func main() {
	inputPath := flag.String("input", "", "Path to FIT workout file")
	verbose := flag.Bool("detailed-dump", false, "Print every field of every message")
	flag.Parse()

	if *inputPath == "" {
		fmt.Println("Please provide input file with -input")
		os.Exit(1)
	}

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		fmt.Printf("Failed to read file: %v\n", err)
		os.Exit(1)
	}

	if err := inspect(os.Stdout, data, *verbose); err != nil {
		fmt.Printf("Failed to inspect FIT file: %v\n", err)
		os.Exit(1)
	}
}

func inspect(out io.Writer, data []byte, verbose bool) error {
	fitDec := decoder.New(bytes.NewReader(data))
	fitData, err := fitDec.Decode()
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	var summary workoutSummary
	for i := range fitData.Messages {
		msg := fitData.Messages[i]
		if verbose {
			for _, field := range msg.Fields {
				fmt.Fprintf(out, "%s: %q (Num: %d) = %v\n", msg.Num, field.Name, field.Num, field.Value)
			}
		}
		switch msg.Num {
		case typedef.MesgNumWorkout:
			w := mesgdef.NewWorkout(&msg)
			summary.Name = w.WktName
			summary.Sport = w.Sport
			summary.SubSport = w.SubSport
		case typedef.MesgNumWorkoutStep:
			summary.Steps = append(summary.Steps, mesgdef.NewWorkoutStep(&msg))
		}
	}

	if summary.Name == "" && len(summary.Steps) == 0 {
		return fmt.Errorf("no workout messages found")
	}

	fmt.Fprintf(out, "Workout: %s (%s/%s)\n", summary.Name, summary.Sport, summary.SubSport)
	fmt.Fprintf(out, "Steps: %d\n\n", len(summary.Steps))

	w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "#\tStep\tDuration\tCategory")
	fmt.Fprintln(w, "-\t----\t--------\t--------")
	for _, s := range summary.Steps {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", s.MessageIndex, stepName(s), describeDuration(s), s.ExerciseCategory)
	}
	return w.Flush()
}

func stepName(s *mesgdef.WorkoutStep) string {
	if s.WktStepName != "" {
		return s.WktStepName
	}
	if s.DurationType == typedef.WktStepDurationRepeatUntilStepsCmplt {
		return "(repeat)"
	}
	return "-"
}

func describeDuration(s *mesgdef.WorkoutStep) string {
	switch s.DurationType {
	case typedef.WktStepDurationReps:
		return fmt.Sprintf("%d reps", s.DurationValue)
	case typedef.WktStepDurationRepeatUntilStepsCmplt:
		return fmt.Sprintf("repeat from #%d x%d", s.DurationValue, s.TargetValue)
	default:
		return fmt.Sprintf("%s %d", s.DurationType, s.DurationValue)
	}
}
