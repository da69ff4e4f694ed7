package types

import "fmt"

// QueryResult maps each queried component name to its aligned column of
// cells.
type QueryResult map[string][]*Cell

// Get returns the column for name.
// Returns ErrComponentNotFound if name was not part of the query.
func (q QueryResult) Get(name string) ([]*Cell, error) {
	cells, ok := q[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrComponentNotFound, name)
	}
	return cells, nil
}

// Len returns the number of matched entities.
func (q QueryResult) Len() int {
	for _, cells := range q {
		return len(cells)
	}
	return 0
}
