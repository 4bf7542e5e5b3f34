package file_generators

import (
	"github.com/muktihari/fit/profile/typedef"

	"github.com/fitfuel/fitfuel-server/pkg/domain/planner"
)

var groupCategories = map[planner.MuscleGroup]typedef.ExerciseCategory{
	planner.MuscleGroupChest:     typedef.ExerciseCategoryBenchPress,
	planner.MuscleGroupTriceps:   typedef.ExerciseCategoryTricepsExtension,
	planner.MuscleGroupBack:      typedef.ExerciseCategoryRow,
	planner.MuscleGroupBiceps:    typedef.ExerciseCategoryCurl,
	planner.MuscleGroupLegs:      typedef.ExerciseCategorySquat,
	planner.MuscleGroupShoulders: typedef.ExerciseCategoryShoulderPress,
	planner.MuscleGroupCore:      typedef.ExerciseCategoryCore,
}

var categoryTables = planner.DefaultConfig()

// MapExerciseToCategory picks the FIT exercise category for a plan entry
// trained on a day covering dayGroups (nil when unknown).
//
// A single-group day decides the category outright. Otherwise the name's
// keywords must point at one of the day's groups; anything else is
// ExerciseCategoryUnknown.
func MapExerciseToCategory(name string, dayGroups []planner.MuscleGroup) typedef.ExerciseCategory {
	if len(dayGroups) == 1 {
		return categoryFor(dayGroups[0])
	}

	group, ok := categoryTables.MatchKeyword(name)
	if !ok {
		return typedef.ExerciseCategoryUnknown
	}
	if len(dayGroups) > 0 && !containsGroup(dayGroups, group) {
		return typedef.ExerciseCategoryUnknown
	}
	return categoryFor(group)
}

func categoryFor(group planner.MuscleGroup) typedef.ExerciseCategory {
	if cat, found := groupCategories[group]; found {
		return cat
	}
	return typedef.ExerciseCategoryUnknown
}

func containsGroup(groups []planner.MuscleGroup, g planner.MuscleGroup) bool {
	for _, candidate := range groups {
		if candidate == g {
			return true
		}
	}
	return false
}
