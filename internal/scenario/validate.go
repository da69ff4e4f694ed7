package scenario

import (
	"errors"
	"fmt"
	"slices"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// Scenario errors.
var (
	ErrInvalidScenario   = errors.New("invalid scenario")
	ErrExpectationFailed = errors.New("expectation failed")
)

// Validate checks the structure of the scenario without running it.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return invalid("name is required")
	}

	declared := make(map[string]bool, len(s.Components))
	for i, name := range s.Components {
		switch {
		case name == "":
			return invalid("components[%d]: name is required", i)
		case slices.Contains(types.ReservedComponentNames, name):
			return invalid("components[%d]: %q is reserved", i, name)
		case declared[name]:
			return invalid("components[%d]: %q declared twice", i, name)
		}
		declared[name] = true
	}

	resources := make(map[string]bool, len(s.Resources))
	for i, r := range s.Resources {
		switch {
		case r.Name == "":
			return invalid("resources[%d]: name is required", i)
		case r.Value.Value == nil:
			return invalid("resources[%d]: value is required", i)
		case resources[r.Name]:
			return invalid("resources[%d]: %q declared twice", i, r.Name)
		}
		resources[r.Name] = true
	}

	if len(s.Steps) == 0 {
		return invalid("steps list is required and must be non-empty")
	}
	for i, step := range s.Steps {
		if err := validateStep(i, step, declared, resources); err != nil {
			return err
		}
	}
	return nil
}

func validateStep(index int, step Step, declared, resources map[string]bool) error {
	actions := step.actions()
	switch len(actions) {
	case 0:
		return invalid("steps[%d]: no action", index)
	case 1:
	default:
		return invalid("steps[%d]: more than one action %v", index, actions)
	}

	// Reserved components can be read and matched but not written.
	readable := func(name string) bool {
		return declared[name] || slices.Contains(types.ReservedComponentNames, name)
	}

	switch actions[0] {
	case ActionSpawn:
		seen := make(map[string]bool, len(step.Spawn))
		for _, f := range step.Spawn {
			if !declared[f.Name] {
				return invalid("steps[%d].spawn: component %q not declared", index, f.Name)
			}
			if seen[f.Name] {
				return invalid("steps[%d].spawn: component %q listed twice", index, f.Name)
			}
			seen[f.Name] = true
		}
	case ActionUpdate:
		if !*step.Update {
			return invalid("steps[%d].update: must be true", index)
		}
	case ActionDeleteWhere:
		if len(step.DeleteWhere) != 1 {
			return invalid("steps[%d].delete_where: exactly one component is required", index)
		}
		if name := step.DeleteWhere[0].Name; !readable(name) {
			return invalid("steps[%d].delete_where: component %q not declared", index, name)
		}
	case ActionQuery:
		for _, name := range step.Query {
			if !readable(name) {
				return invalid("steps[%d].query: component %q not declared", index, name)
			}
		}
	case ActionResource:
		if !resources[step.Resource] {
			return invalid("steps[%d].resource: %q not declared", index, step.Resource)
		}
	case ActionExpectEntities:
		if *step.ExpectEntities < 0 {
			return invalid("steps[%d].expect_entities: must be non-negative", index)
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidScenario, fmt.Sprintf(format, args...))
}
