package planner

// MuscleGroup is one of the canonical training categories a split is built from.
type MuscleGroup string

const (
	MuscleGroupChest     MuscleGroup = "chest"
	MuscleGroupTriceps   MuscleGroup = "triceps"
	MuscleGroupBack      MuscleGroup = "back"
	MuscleGroupBiceps    MuscleGroup = "biceps"
	MuscleGroupLegs      MuscleGroup = "legs"
	MuscleGroupShoulders MuscleGroup = "shoulders"
	MuscleGroupCore      MuscleGroup = "core"

	// Excluded marks synonyms (cardio, full body) whose exercises are
	// dropped from every pool.
	Excluded MuscleGroup = "excluded"
)

// MuscleGroups lists the canonical groups in table order. Keyword
// matching walks groups in this order, so it doubles as the tie-break.
func MuscleGroups() []MuscleGroup {
	return []MuscleGroup{
		MuscleGroupChest,
		MuscleGroupTriceps,
		MuscleGroupBack,
		MuscleGroupBiceps,
		MuscleGroupLegs,
		MuscleGroupShoulders,
		MuscleGroupCore,
	}
}

// Valid reports whether g is one of the canonical groups.
func (g MuscleGroup) Valid() bool {
	for _, known := range MuscleGroups() {
		if g == known {
			return true
		}
	}
	return false
}
