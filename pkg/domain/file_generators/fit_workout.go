package file_generators

import (
	"bytes"
	"fmt"
	"time"

	"github.com/muktihari/fit/encoder"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"
	"github.com/muktihari/fit/proto"

	"github.com/fitfuel/fitfuel-server/pkg/domain/planner"
)

// fitProductID identifies files written by this service.
const fitProductID = 1

// GenerateWorkoutFit creates a FIT workout file for one day of plan.
// dayIndex is zero-based into plan.Plan.
//
// Every exercise becomes two steps: an active step lasting the rep count,
// then a repeat step looping back to it until the set count is reached.
func GenerateWorkoutFit(plan planner.WorkoutPlan, dayIndex int, createdAt time.Time) ([]byte, error) {
	if dayIndex < 0 || dayIndex >= len(plan.Plan) {
		return nil, fmt.Errorf("day index %d out of range for %d-day plan", dayIndex, len(plan.Plan))
	}
	day := plan.Plan[dayIndex]
	if len(day.Exercises) == 0 {
		return nil, fmt.Errorf("day %d has no exercises", day.Day)
	}

	fit := &proto.FIT{
		Messages: []proto.Message{},
	}

	// 1. FileId message
	fileId := mesgdef.NewFileId(nil).
		SetType(typedef.FileWorkout).
		SetManufacturer(typedef.ManufacturerDevelopment).
		SetProduct(fitProductID).
		SetTimeCreated(createdAt)
	fit.Messages = append(fit.Messages, fileId.ToMesg(nil))

	// 2. Workout message
	workout := mesgdef.NewWorkout(nil).
		SetWktName(fmt.Sprintf("Day %d - %s", day.Day, day.DayName)).
		SetSport(typedef.SportTraining).
		SetSubSport(typedef.SubSportStrengthTraining).
		SetNumValidSteps(uint16(len(day.Exercises) * 2))
	fit.Messages = append(fit.Messages, workout.ToMesg(nil))

	// 3. Steps: reps step followed by its repeat
	dayGroups := categoryTables.DayGroups(day.DayName)
	for i, ex := range day.Exercises {
		activeIndex := uint16(i * 2)

		step := mesgdef.NewWorkoutStep(nil).
			SetMessageIndex(typedef.MessageIndex(activeIndex)).
			SetWktStepName(ex.Name).
			SetDurationType(typedef.WktStepDurationReps).
			SetDurationValue(uint32(ex.Reps)).
			SetTargetType(typedef.WktStepTargetOpen).
			SetIntensity(typedef.IntensityActive).
			SetExerciseCategory(MapExerciseToCategory(ex.Name, dayGroups))
		fit.Messages = append(fit.Messages, step.ToMesg(nil))

		repeat := mesgdef.NewWorkoutStep(nil).
			SetMessageIndex(typedef.MessageIndex(activeIndex + 1)).
			SetDurationType(typedef.WktStepDurationRepeatUntilStepsCmplt).
			SetDurationValue(uint32(activeIndex)).
			SetTargetValue(uint32(ex.Sets))
		fit.Messages = append(fit.Messages, repeat.ToMesg(nil))
	}

	var buf bytes.Buffer
	enc := encoder.New(&buf)

	if err := enc.Encode(fit); err != nil {
		return nil, fmt.Errorf("failed to encode FIT file: %w", err)
	}

	return buf.Bytes(), nil
}
