package planner

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	apperrors "github.com/fitfuel/fitfuel-server/pkg/errors"
)

// programFile is the YAML shape of a program override file. Every section
// is optional; absent sections keep the defaults.
type programFile struct {
	Synonyms      map[string]MuscleGroup `yaml:"synonyms"`
	Keywords      []GroupKeywords        `yaml:"keywords"`
	FallbackGroup MuscleGroup            `yaml:"fallback_group"`
	Splits        map[int][]SplitDay     `yaml:"splits"`
	DefaultDays   int                    `yaml:"default_days"`
	RepSchemes    map[string]RepScheme   `yaml:"rep_schemes"`
	DefaultGoal   string                 `yaml:"default_goal"`
	GroupCaps     map[MuscleGroup]int    `yaml:"group_caps"`
	DefaultCap    int                    `yaml:"default_cap"`
}

// LoadConfig reads a YAML program file and layers it over DefaultConfig.
// An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, apperrors.Wrap(err, apperrors.CodeValidationError, "failed to read program file").
			WithMetadata("path", path)
	}
	return ParseConfig(data)
}

// ParseConfig layers YAML program data over DefaultConfig and validates it.
func ParseConfig(data []byte) (Config, error) {
	var pf programFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return Config{}, apperrors.Wrap(err, apperrors.CodeValidationError, "failed to parse program file")
	}

	cfg := DefaultConfig()
	if pf.Synonyms != nil {
		cfg.Synonyms = make(map[string]MuscleGroup, len(pf.Synonyms))
		for k, v := range pf.Synonyms {
			cfg.Synonyms[normalizeKey(k)] = v
		}
	}
	if pf.Keywords != nil {
		cfg.Keywords = pf.Keywords
	}
	if pf.FallbackGroup != "" {
		cfg.FallbackGroup = pf.FallbackGroup
	}
	if pf.Splits != nil {
		cfg.Splits = pf.Splits
	}
	if pf.DefaultDays != 0 {
		cfg.DefaultDays = pf.DefaultDays
	}
	if pf.RepSchemes != nil {
		cfg.RepSchemes = pf.RepSchemes
	}
	if pf.DefaultGoal != "" {
		cfg.DefaultGoal = pf.DefaultGoal
	}
	for g, n := range pf.GroupCaps {
		cfg.GroupCaps[g] = n
	}
	if pf.DefaultCap != 0 {
		cfg.DefaultCap = pf.DefaultCap
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every table references known groups and that the
// fallbacks resolve.
func (c Config) Validate() error {
	invalid := func(format string, args ...interface{}) error {
		return apperrors.New(apperrors.CodeValidationError, fmt.Sprintf(format, args...))
	}

	for k, g := range c.Synonyms {
		if g != Excluded && !g.Valid() {
			return invalid("synonym %q maps to unknown group %q", k, g)
		}
	}
	for _, gk := range c.Keywords {
		if !gk.Group.Valid() {
			return invalid("keywords reference unknown group %q", gk.Group)
		}
	}
	if !c.FallbackGroup.Valid() {
		return invalid("fallback group %q is not a muscle group", c.FallbackGroup)
	}

	if _, ok := c.Splits[c.DefaultDays]; !ok {
		return invalid("default days %d has no split template", c.DefaultDays)
	}
	for days, split := range c.Splits {
		if len(split) != days {
			return invalid("split for %d days has %d entries", days, len(split))
		}
		for _, d := range split {
			for _, g := range d.Groups {
				if !g.Valid() {
					return invalid("split day %q references unknown group %q", d.Name, g)
				}
			}
		}
	}

	if _, ok := c.RepSchemes[c.DefaultGoal]; !ok {
		return invalid("default goal %q has no rep scheme", c.DefaultGoal)
	}
	for goal, s := range c.RepSchemes {
		if s.Sets <= 0 || s.Reps <= 0 {
			return invalid("rep scheme %q must have positive sets and reps", goal)
		}
	}

	for g, n := range c.GroupCaps {
		if !g.Valid() || n < 0 {
			return invalid("invalid cap %d for group %q", n, g)
		}
	}
	if c.DefaultCap < 0 {
		return invalid("default cap must not be negative")
	}
	return nil
}
