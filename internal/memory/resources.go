package memory

import (
	"fmt"
	"sort"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// Resources is a flat registry of named values that belong to no entity,
// such as the frame time or the cursor location.
type Resources struct {
	items map[string]*types.Cell
}

func newResources(capacity int) *Resources {
	return &Resources{items: make(map[string]*types.Cell, capacity)}
}

// Add stores value under name, replacing any earlier value.
func (r *Resources) Add(name string, value types.Value) {
	r.items[name] = types.NewResourceCell(value)
}

// Get returns the cell for name.
// Returns ErrResourceNotFound if no resource has that name.
func (r *Resources) Get(name string) (*types.Cell, error) {
	cell, ok := r.items[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrResourceNotFound, name)
	}
	return cell, nil
}

// Names returns the resource names in sorted order.
func (r *Resources) Names() []string {
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
