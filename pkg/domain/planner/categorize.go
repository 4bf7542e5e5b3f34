package planner

import (
	"sort"
	"strings"
)

// Pools holds the exercises assigned to each muscle group, in catalog order.
type Pools map[MuscleGroup][]Exercise

// Categorize assigns every exercise to at most one group using the
// default tables.
func Categorize(exercises []Exercise) Pools {
	return categorize(DefaultConfig(), exercises)
}

func categorize(cfg Config, exercises []Exercise) Pools {
	pools := make(Pools, len(MuscleGroups()))
	for _, ex := range exercises {
		group, ok := cfg.classify(ex)
		if !ok {
			continue
		}
		pools[group] = append(pools[group], ex)
	}
	return pools
}

// classify resolves the group for ex. ok is false when the exercise is
// excluded from group-based pools entirely.
func (c Config) classify(ex Exercise) (MuscleGroup, bool) {
	if field := normalizeKey(ex.PrimaryMuscle); field != "" {
		if group, known := c.Synonyms[field]; known {
			if group == Excluded {
				return "", false
			}
			return group, true
		}
	}

	if group, ok := c.matchKeyword(ex.Name); ok {
		return group, true
	}

	return c.FallbackGroup, true
}

func (c Config) matchKeyword(name string) (MuscleGroup, bool) {
	lower := strings.ToLower(name)
	if lower == "" {
		return "", false
	}
	for _, gk := range c.Keywords {
		for _, kw := range gk.Keywords {
			if strings.Contains(lower, kw) {
				return gk.Group, true
			}
		}
	}
	return "", false
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// MatchKeyword resolves a group from name keywords alone, without the
// muscle field or the fallback group.
func (c Config) MatchKeyword(name string) (MuscleGroup, bool) {
	return c.matchKeyword(name)
}

// DayGroups returns the groups of the first split day called name, or nil
// when no template has such a day.
func (c Config) DayGroups(name string) []MuscleGroup {
	days := make([]int, 0, len(c.Splits))
	for d := range c.Splits {
		days = append(days, d)
	}
	sort.Ints(days)
	for _, d := range days {
		for _, sd := range c.Splits[d] {
			if sd.Name == name {
				return append([]MuscleGroup(nil), sd.Groups...)
			}
		}
	}
	return nil
}
