package scenario

import (
	"fmt"
	"log/slog"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// Report collects what a scenario run observed.
type Report struct {
	Scenario  string          `json:"scenario"`
	World     string          `json:"world,omitempty"`
	Entities  int             `json:"entities"`
	Queries   []QueryReport   `json:"queries"`
	Resources []ResourceValue `json:"resources"`
}

// QueryReport holds the rows returned by one query step. Each row lists the
// values of Components in order, rendered with String.
type QueryReport struct {
	Step       int        `json:"step"`
	Components []string   `json:"components"`
	Rows       [][]string `json:"rows"`
}

// ResourceValue is the value of a resource at one resource step.
type ResourceValue struct {
	Step  int    `json:"step"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

// identified is implemented by worlds that carry an id for logs.
type identified interface {
	ID() string
}

// Run registers the scenario's components and resources in world, then
// performs every step in order. world should be freshly created. The first
// failing step stops the run; its error names the step index.
func Run(world types.World, s *Scenario) (*Report, error) {
	logger := slog.Default().With("scenario", s.Name)
	report := &Report{
		Scenario:  s.Name,
		Queries:   []QueryReport{},
		Resources: []ResourceValue{},
	}
	if w, ok := world.(identified); ok {
		report.World = w.ID()
		logger = logger.With("world", report.World)
	}

	for _, name := range s.Components {
		if err := world.Register(name); err != nil {
			return nil, fmt.Errorf("register %q: %w", name, err)
		}
	}
	for _, r := range s.Resources {
		world.AddResource(r.Name, r.Value.Value)
	}

	for i, step := range s.Steps {
		logger.Debug("running step", "step", i, "action", step.Action())
		if err := runStep(world, i, step, report); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}

	report.Entities = world.EntityCount()
	logger.Info("scenario finished", "steps", len(s.Steps), "entities", report.Entities)
	return report, nil
}

func runStep(world types.World, index int, step Step, report *Report) error {
	switch step.Action() {
	case ActionSpawn:
		b := world.SpawnEntity()
		for _, f := range step.Spawn {
			var err error
			if b, err = b.WithComponent(f.Name, f.Value); err != nil {
				return err
			}
		}
		return nil

	case ActionDelete:
		return world.DeleteByID(*step.Delete)

	case ActionDeleteWhere:
		return deleteWhere(world, step.DeleteWhere[0])

	case ActionUpdate:
		return world.Update()

	case ActionQuery:
		result, err := world.Query(step.Query...)
		if err != nil {
			return err
		}
		report.Queries = append(report.Queries, QueryReport{
			Step:       index,
			Components: step.Query,
			Rows:       rows(result, step.Query),
		})
		return nil

	case ActionResource:
		cell, err := world.GetResource(step.Resource)
		if err != nil {
			return err
		}
		report.Resources = append(report.Resources, ResourceValue{
			Step:  index,
			Name:  step.Resource,
			Value: cell.Get().String(),
		})
		return nil

	case ActionExpectEntities:
		if got := world.EntityCount(); got != *step.ExpectEntities {
			return fmt.Errorf("%w: want %d entities, have %d", ErrExpectationFailed, *step.ExpectEntities, got)
		}
		return nil

	default:
		return fmt.Errorf("%w: step must hold exactly one action", ErrInvalidScenario)
	}
}

// deleteWhere marks every entity whose component f.Name equals f.Value.
// Ids are collected first so no cell is borrowed while flags are written.
func deleteWhere(world types.World, f Field) error {
	result, err := world.Query(f.Name, types.EntityIDComponent)
	if err != nil {
		return err
	}
	values := result[f.Name]
	idCells := result[types.EntityIDComponent]

	var ids []uint32
	for i, cell := range values {
		if cell.Get() != f.Value {
			continue
		}
		id, err := types.Cast[types.U32](idCells[i])
		if err != nil {
			return err
		}
		ids = append(ids, uint32(id))
	}

	for _, id := range ids {
		if err := world.DeleteByID(id); err != nil {
			return err
		}
	}
	return nil
}

func rows(result types.QueryResult, names []string) [][]string {
	out := make([][]string, result.Len())
	for i := range out {
		row := make([]string, len(names))
		for j, name := range names {
			row[j] = result[name][i].Get().String()
		}
		out[i] = row
	}
	return out
}
