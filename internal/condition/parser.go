package condition

import (
	"fmt"

	"github.com/compadre-sh/compadre/internal/config"
)

// Parse converts a config.When block into an evaluable Condition.
// Returns an error if the block is invalid (e.g., no conditions specified).
func Parse(when *config.When) (Condition, error) {
	if when == nil {
		return nil, fmt.Errorf("when is nil")
	}

	atomic := collectAtomic(when)
	composite := 0
	if len(when.All) > 0 {
		composite++
	}
	if len(when.Any) > 0 {
		composite++
	}

	if len(atomic) == 0 && composite == 0 {
		return nil, fmt.Errorf("when block must specify at least one condition")
	}
	if len(atomic) > 0 && composite > 0 {
		return nil, fmt.Errorf("cannot mix atomic conditions (file, var, dir, command) with composite conditions (all, any) at the same level")
	}
	if composite > 1 {
		return nil, fmt.Errorf("cannot have both 'all' and 'any' at the same level")
	}

	if len(when.All) > 0 {
		conds, err := parseGroup("all", when.All)
		if err != nil {
			return nil, err
		}
		return AllCondition{Conditions: conds}, nil
	}
	if len(when.Any) > 0 {
		conds, err := parseGroup("any", when.Any)
		if err != nil {
			return nil, err
		}
		return AnyCondition{Conditions: conds}, nil
	}

	// Multiple atomic conditions are ANDed together
	if len(atomic) > 1 {
		return AllCondition{Conditions: atomic}, nil
	}
	return atomic[0], nil
}

// Allowed reports whether a source gated by the given when block should
// load. A nil when block always allows.
func Allowed(when *config.When, ctx Context) (bool, string, error) {
	if when == nil {
		return true, "", nil
	}

	cond, err := Parse(when)
	if err != nil {
		return false, "", err
	}

	return cond.Evaluate(ctx)
}

// collectAtomic gathers the atomic conditions declared on a When block
func collectAtomic(when *config.When) []Condition {
	var conditions []Condition

	if when.File != "" {
		conditions = append(conditions, FileCondition{Path: when.File})
	}
	if when.Var != "" {
		conditions = append(conditions, VarCondition{Name: when.Var})
	}
	if when.Dir != "" {
		conditions = append(conditions, DirCondition{Path: when.Dir})
	}
	if when.Command != "" {
		conditions = append(conditions, CommandCondition{Name: when.Command})
	}

	return conditions
}

// parseGroup parses the members of an all/any block
func parseGroup(label string, whens []config.When) ([]Condition, error) {
	var conditions []Condition

	for i := range whens {
		cond, err := Parse(&whens[i])
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", label, i, err)
		}
		conditions = append(conditions, cond)
	}

	return conditions, nil
}
