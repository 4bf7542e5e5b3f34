// Package planner builds structured multi-day workout plans from an
// exercise catalog.
//
// Exercises are bucketed into muscle groups, a day-split template is picked
// by the requested day count, and each day samples a capped number of
// exercises per group from a shuffled pool. Sampling is randomized but the
// random source is injected, so a fixed seed reproduces a plan exactly.
package planner

import (
	"math/rand/v2"
)

// DefaultExerciseName is used for catalog entries that carry no name.
const DefaultExerciseName = "Exercise"

// Source is the randomness the generator consumes. *rand.Rand satisfies it.
type Source interface {
	Shuffle(n int, swap func(i, j int))
}

// NewSeededSource returns a deterministic Source for the given seed.
func NewSeededSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewRandomSource returns a Source seeded from the runtime's entropy.
func NewRandomSource() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Generator turns (days, goal, catalog) into a WorkoutPlan.
// It is not safe for concurrent use when its Source is not.
type Generator struct {
	cfg Config
	src Source
}

// NewGenerator creates a generator over a private copy of cfg.
// A nil src uses NewRandomSource.
func NewGenerator(cfg Config, src Source) *Generator {
	if src == nil {
		src = NewRandomSource()
	}
	return &Generator{cfg: cfg.Clone(), src: src}
}

// Generate builds a plan using the default tables and a fresh random source.
func Generate(daysPerWeek int, goal string, exercises []Exercise) WorkoutPlan {
	return NewGenerator(DefaultConfig(), nil).Generate(daysPerWeek, goal, exercises)
}

// Options lists the day counts and goals this generator has tables for.
func (g *Generator) Options() Options {
	return g.cfg.options()
}

// Categorize exposes the deterministic bucketing step.
func (g *Generator) Categorize(exercises []Exercise) Pools {
	return categorize(g.cfg, exercises)
}

// Generate never fails: an empty or unusable catalog yields days with no
// exercises.
func (g *Generator) Generate(daysPerWeek int, goal string, exercises []Exercise) WorkoutPlan {
	pools := categorize(g.cfg, exercises)
	split := g.cfg.split(daysPerWeek)
	scheme := g.cfg.scheme(goal)

	plan := WorkoutPlan{
		DaysPerWeek: daysPerWeek,
		Goal:        goal,
		Plan:        make([]PlanDay, 0, len(split)),
	}

	for i, sd := range split {
		plan.Plan = append(plan.Plan, PlanDay{
			Day:       i + 1,
			DayName:   sd.Name,
			Exercises: g.buildDay(sd, pools, scheme),
		})
	}

	return plan
}

func (g *Generator) buildDay(sd SplitDay, pools Pools, scheme RepScheme) []PlanExercise {
	exercises := []PlanExercise{}
	usedIDs := make(map[string]bool)
	usedNames := make(map[string]bool)

	for _, group := range sd.Groups {
		shuffled := append([]Exercise(nil), pools[group]...)
		g.src.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		limit := g.cfg.capFor(group)
		added := 0
		for _, ex := range shuffled {
			if added >= limit {
				break
			}

			name := ex.Name
			if name == "" {
				name = DefaultExerciseName
			}
			key := normalizeKey(name)

			if usedNames[key] || (ex.ID != "" && usedIDs[ex.ID]) {
				continue
			}
			if ex.ID != "" {
				usedIDs[ex.ID] = true
			}
			usedNames[key] = true

			exercises = append(exercises, PlanExercise{
				Name: name,
				Sets: scheme.Sets,
				Reps: scheme.Reps,
			})
			added++
		}
	}

	return exercises
}
