// Package columns holds the dense component columns of the entity store.
// A column contains only the values of entities that have the component, in
// slot order; the presence bitmap translates between slots and column
// positions.
package columns

import (
	"fmt"
	"slices"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// Store holds one dense column of cells per registered component name.
type Store struct {
	columns map[string][]*types.Cell
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		columns: make(map[string][]*types.Cell),
	}
}

// Register creates an empty column for name.
// Returns ErrComponentAlreadyRegistered if the column exists.
func (s *Store) Register(name string) error {
	if _, ok := s.columns[name]; ok {
		return fmt.Errorf("%w: %q", types.ErrComponentAlreadyRegistered, name)
	}
	s.columns[name] = nil
	return nil
}

// Registered reports whether name has a column.
func (s *Store) Registered(name string) bool {
	_, ok := s.columns[name]
	return ok
}

// Insert appends value to the column for name.
// Returns ErrNeedToRegister if name has no column.
func (s *Store) Insert(name string, value types.Value) error {
	col, ok := s.columns[name]
	if !ok {
		return fmt.Errorf("%w: %q", types.ErrNeedToRegister, name)
	}
	s.columns[name] = append(col, types.NewComponentCell(value))
	return nil
}

// Replace stores value at a column position, discarding the previous cell.
// Returns ErrNeedToRegister for an unknown name and ErrOutOfRangeInVector for
// a position past the end of the column.
func (s *Store) Replace(name string, index int, value types.Value) error {
	col, ok := s.columns[name]
	if !ok {
		return fmt.Errorf("%w: %q", types.ErrNeedToRegister, name)
	}
	if index < 0 || index >= len(col) {
		return fmt.Errorf("%w: %q index %d of %d", types.ErrOutOfRangeInVector, name, index, len(col))
	}
	col[index] = types.NewComponentCell(value)
	return nil
}

// Column returns the cells stored for name. The slice is shared with the
// store and is only valid until the next structural change.
// Returns ErrComponentNotFound if name has no column.
func (s *Store) Column(name string) ([]*types.Cell, error) {
	col, ok := s.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrComponentNotFound, name)
	}
	return col, nil
}

// Len returns the number of cells stored for name.
func (s *Store) Len(name string) int {
	return len(s.columns[name])
}

// Query collects the cells of every slot that is present in all of names.
// The slots are scanned once in increasing order while a running column
// position is kept per name, so row i of every returned column belongs to
// the same entity.
//
// A column shorter than its presence vector claims is a broken invariant
// and panics.
func (s *Store) Query(names []string, presence map[string][]bool) (types.QueryResult, error) {
	names = dedupe(names)
	result := make(types.QueryResult, len(names))
	if len(names) == 0 {
		return result, nil
	}

	slots := -1
	for _, name := range names {
		if _, ok := s.columns[name]; !ok {
			return nil, fmt.Errorf("%w: %q", types.ErrComponentNotFound, name)
		}
		vec, ok := presence[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", types.ErrComponentNotFound, name)
		}
		if slots >= 0 && len(vec) != slots {
			panic(fmt.Sprintf("columns: presence vector %q has %d slots, want %d", name, len(vec), slots))
		}
		slots = len(vec)
		result[name] = []*types.Cell{}
	}

	cursor := make([]int, len(names))
	for slot := 0; slot < slots; slot++ {
		all := true
		for i, name := range names {
			if presence[name][slot] {
				cursor[i]++
			} else {
				all = false
			}
		}
		if !all {
			continue
		}
		for i, name := range names {
			col := s.columns[name]
			pos := cursor[i] - 1
			if pos >= len(col) {
				panic(fmt.Sprintf("columns: %q slot %d maps to position %d of %d", name, slot, pos, len(col)))
			}
			result[name] = append(result[name], col[pos])
		}
	}
	return result, nil
}

// DeleteByPhysicalIndices removes the given positions from each named column,
// highest first. Every position is validated before any column changes, so a
// failed call leaves the store untouched.
// Returns ErrComponentNotFound for an unknown name and ErrOutOfRangeInVector
// for a position past the end of its column.
func (s *Store) DeleteByPhysicalIndices(indices map[string][]int) error {
	plan := make(map[string][]int, len(indices))
	for name, positions := range indices {
		col, ok := s.columns[name]
		if !ok {
			return fmt.Errorf("%w: %q", types.ErrComponentNotFound, name)
		}
		sorted := slices.Clone(positions)
		slices.Sort(sorted)
		sorted = slices.Compact(sorted)
		for _, pos := range sorted {
			if pos < 0 || pos >= len(col) {
				return fmt.Errorf("%w: %q index %d of %d", types.ErrOutOfRangeInVector, name, pos, len(col))
			}
		}
		plan[name] = sorted
	}

	for name, sorted := range plan {
		col := s.columns[name]
		for i := len(sorted) - 1; i >= 0; i-- {
			col = slices.Delete(col, sorted[i], sorted[i]+1)
		}
		s.columns[name] = col
	}
	return nil
}

// dedupe drops repeated names, keeping the first occurrence.
func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}
