package planner

import (
	"sort"
)

// SplitDay is one named day of a split template.
type SplitDay struct {
	Name   string        `yaml:"name" json:"name"`
	Groups []MuscleGroup `yaml:"groups" json:"groups"`
}

// RepScheme is the sets x reps pairing for a training goal.
type RepScheme struct {
	Sets int `yaml:"sets" json:"sets"`
	Reps int `yaml:"reps" json:"reps"`
}

// GroupKeywords are the name substrings that place an exercise into Group
// when it carries no usable muscle field.
type GroupKeywords struct {
	Group    MuscleGroup `yaml:"group" json:"group"`
	Keywords []string    `yaml:"keywords" json:"keywords"`
}

// Config holds every lookup table the generator uses. A Generator takes
// its own copy, so callers may not change tables under a running generator.
type Config struct {
	// Synonyms maps a normalized muscle field value to its group.
	Synonyms map[string]MuscleGroup
	// Keywords is ordered; the first group with a matching keyword wins.
	Keywords []GroupKeywords
	// FallbackGroup receives exercises nothing else matched.
	FallbackGroup MuscleGroup

	Splits      map[int][]SplitDay
	DefaultDays int

	RepSchemes  map[string]RepScheme
	DefaultGoal string

	// GroupCaps limits how many exercises one group contributes to a day.
	GroupCaps  map[MuscleGroup]int
	DefaultCap int
}

// DefaultConfig returns a fresh copy of the built-in tables.
func DefaultConfig() Config {
	return Config{
		Synonyms: map[string]MuscleGroup{
			"chest":      MuscleGroupChest,
			"pectorals":  MuscleGroupChest,
			"pecs":       MuscleGroupChest,
			"pectoral":   MuscleGroupChest,
			"triceps":    MuscleGroupTriceps,
			"tricep":     MuscleGroupTriceps,
			"back":       MuscleGroupBack,
			"lats":       MuscleGroupBack,
			"latissimus": MuscleGroupBack,
			"lats dorsi": MuscleGroupBack,
			"rear delts": MuscleGroupBack,
			"biceps":     MuscleGroupBiceps,
			"bicep":      MuscleGroupBiceps,
			"legs":       MuscleGroupLegs,
			"leg":        MuscleGroupLegs,
			"quadriceps": MuscleGroupLegs,
			"quads":      MuscleGroupLegs,
			"hamstrings": MuscleGroupLegs,
			"hamstring":  MuscleGroupLegs,
			"glutes":     MuscleGroupLegs,
			"glute":      MuscleGroupLegs,
			"calves":     MuscleGroupLegs,
			"calf":       MuscleGroupLegs,
			"shoulders":  MuscleGroupShoulders,
			"shoulder":   MuscleGroupShoulders,
			"deltoids":   MuscleGroupShoulders,
			"delts":      MuscleGroupShoulders,
			"deltoid":    MuscleGroupShoulders,
			"core":       MuscleGroupCore,
			"abs":        MuscleGroupCore,
			"abdominals": MuscleGroupCore,
			"abdominal":  MuscleGroupCore,
			"cardio":     Excluded,
			"full body":  Excluded,
		},
		Keywords: []GroupKeywords{
			{Group: MuscleGroupChest, Keywords: []string{"chest", "pectoral", "bench", "push-up", "dumbbell press", "chest press", "fly", "pec"}},
			{Group: MuscleGroupTriceps, Keywords: []string{"tricep", "triceps", "dip", "extension", "pushdown"}},
			{Group: MuscleGroupBack, Keywords: []string{"back", "lat", "pull", "row", "pull-up", "chin-up", "lat pulldown", "barbell row"}},
			{Group: MuscleGroupBiceps, Keywords: []string{"bicep", "biceps", "curl", "hammer"}},
			{Group: MuscleGroupLegs, Keywords: []string{"leg", "squat", "lunge", "leg press", "calf", "quad", "hamstring", "glute"}},
			{Group: MuscleGroupShoulders, Keywords: []string{"shoulder", "deltoid", "lateral raise", "front raise", "rear delt"}},
			{Group: MuscleGroupCore, Keywords: []string{"core", "ab", "crunch", "plank", "sit-up", "russian twist"}},
		},
		FallbackGroup: MuscleGroupLegs,
		Splits: map[int][]SplitDay{
			3: {
				{Name: "Chest & Triceps", Groups: []MuscleGroup{MuscleGroupChest, MuscleGroupTriceps}},
				{Name: "Back & Biceps", Groups: []MuscleGroup{MuscleGroupBack, MuscleGroupBiceps}},
				{Name: "Legs & Shoulders", Groups: []MuscleGroup{MuscleGroupLegs, MuscleGroupShoulders}},
			},
			4: {
				{Name: "Chest & Triceps", Groups: []MuscleGroup{MuscleGroupChest, MuscleGroupTriceps}},
				{Name: "Back & Biceps", Groups: []MuscleGroup{MuscleGroupBack, MuscleGroupBiceps}},
				{Name: "Legs", Groups: []MuscleGroup{MuscleGroupLegs}},
				{Name: "Shoulders & Core", Groups: []MuscleGroup{MuscleGroupShoulders, MuscleGroupCore}},
			},
			5: {
				{Name: "Chest & Triceps", Groups: []MuscleGroup{MuscleGroupChest, MuscleGroupTriceps}},
				{Name: "Back & Biceps", Groups: []MuscleGroup{MuscleGroupBack, MuscleGroupBiceps}},
				{Name: "Legs", Groups: []MuscleGroup{MuscleGroupLegs}},
				{Name: "Shoulders", Groups: []MuscleGroup{MuscleGroupShoulders}},
				{Name: "Full Body", Groups: []MuscleGroup{MuscleGroupChest, MuscleGroupBack, MuscleGroupLegs, MuscleGroupShoulders}},
			},
			6: {
				{Name: "Chest & Triceps", Groups: []MuscleGroup{MuscleGroupChest, MuscleGroupTriceps}},
				{Name: "Back & Biceps", Groups: []MuscleGroup{MuscleGroupBack, MuscleGroupBiceps}},
				{Name: "Legs", Groups: []MuscleGroup{MuscleGroupLegs}},
				{Name: "Shoulders & Core", Groups: []MuscleGroup{MuscleGroupShoulders, MuscleGroupCore}},
				{Name: "Upper Body", Groups: []MuscleGroup{MuscleGroupChest, MuscleGroupBack, MuscleGroupShoulders}},
				{Name: "Lower Body & Core", Groups: []MuscleGroup{MuscleGroupLegs, MuscleGroupCore}},
			},
		},
		DefaultDays: 3,
		RepSchemes: map[string]RepScheme{
			"strength":  {Sets: 4, Reps: 6},
			"endurance": {Sets: 3, Reps: 15},
			"balanced":  {Sets: 3, Reps: 10},
		},
		DefaultGoal: "balanced",
		GroupCaps: map[MuscleGroup]int{
			MuscleGroupLegs: 4,
		},
		DefaultCap: 3,
	}
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := Config{
		FallbackGroup: c.FallbackGroup,
		DefaultDays:   c.DefaultDays,
		DefaultGoal:   c.DefaultGoal,
		DefaultCap:    c.DefaultCap,
	}

	out.Synonyms = make(map[string]MuscleGroup, len(c.Synonyms))
	for k, v := range c.Synonyms {
		out.Synonyms[k] = v
	}

	out.Keywords = make([]GroupKeywords, len(c.Keywords))
	for i, gk := range c.Keywords {
		out.Keywords[i] = GroupKeywords{
			Group:    gk.Group,
			Keywords: append([]string(nil), gk.Keywords...),
		}
	}

	out.Splits = make(map[int][]SplitDay, len(c.Splits))
	for days, split := range c.Splits {
		copied := make([]SplitDay, len(split))
		for i, d := range split {
			copied[i] = SplitDay{Name: d.Name, Groups: append([]MuscleGroup(nil), d.Groups...)}
		}
		out.Splits[days] = copied
	}

	out.RepSchemes = make(map[string]RepScheme, len(c.RepSchemes))
	for k, v := range c.RepSchemes {
		out.RepSchemes[k] = v
	}

	out.GroupCaps = make(map[MuscleGroup]int, len(c.GroupCaps))
	for k, v := range c.GroupCaps {
		out.GroupCaps[k] = v
	}

	return out
}

// split returns the template for days, falling back to DefaultDays.
func (c Config) split(days int) []SplitDay {
	if s, ok := c.Splits[days]; ok {
		return s
	}
	return c.Splits[c.DefaultDays]
}

// scheme returns the rep scheme for goal, falling back to DefaultGoal.
func (c Config) scheme(goal string) RepScheme {
	if s, ok := c.RepSchemes[goal]; ok {
		return s
	}
	return c.RepSchemes[c.DefaultGoal]
}

func (c Config) capFor(g MuscleGroup) int {
	if n, ok := c.GroupCaps[g]; ok {
		return n
	}
	return c.DefaultCap
}

// Options describes the inputs a generator understands.
type Options struct {
	DaysPerWeek []int    `json:"days_per_week"`
	Goals       []string `json:"goals"`
	DefaultDays int      `json:"default_days"`
	DefaultGoal string   `json:"default_goal"`
}

func (c Config) options() Options {
	opts := Options{DefaultDays: c.DefaultDays, DefaultGoal: c.DefaultGoal}
	for d := range c.Splits {
		opts.DaysPerWeek = append(opts.DaysPerWeek, d)
	}
	sort.Ints(opts.DaysPerWeek)
	for g := range c.RepSchemes {
		opts.Goals = append(opts.Goals, g)
	}
	sort.Strings(opts.Goals)
	return opts
}
