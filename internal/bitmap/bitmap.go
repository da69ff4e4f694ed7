// Package bitmap tracks which entity slots hold a value for each registered
// component. Every presence vector has one entry per entity slot, so a slot
// index means the same entity in every vector.
package bitmap

import (
	"fmt"
	"slices"
	"sort"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// Bitmap holds one presence vector per component name.
type Bitmap struct {
	presence map[string][]bool
	length   int
}

// New creates an empty Bitmap.
func New() *Bitmap {
	return &Bitmap{
		presence: make(map[string][]bool),
	}
}

// Register creates the presence vector for name, padded with false up to the
// current slot count. Registering a known name leaves its vector untouched;
// uniqueness is enforced by the component store.
func (b *Bitmap) Register(name string) {
	if _, ok := b.presence[name]; ok {
		return
	}
	b.presence[name] = make([]bool, b.length)
}

// Spawn appends an empty slot to every presence vector.
func (b *Bitmap) Spawn() {
	b.length++
	for name, vec := range b.presence {
		b.presence[name] = append(vec, false)
	}
}

// Set marks the last slot as holding a value for name.
// Returns ErrBitMapInsertBeforeRegister if name is unknown and
// ErrOutOfRangeInVector if no slot has been spawned.
func (b *Bitmap) Set(name string) error {
	vec, ok := b.presence[name]
	if !ok {
		return fmt.Errorf("%w: %q", types.ErrBitMapInsertBeforeRegister, name)
	}
	if b.length == 0 {
		return fmt.Errorf("%w: no entity spawned", types.ErrOutOfRangeInVector)
	}
	vec[b.length-1] = true
	return nil
}

// Has reports whether slot holds a value for name.
func (b *Bitmap) Has(name string, slot int) bool {
	vec, ok := b.presence[name]
	if !ok || slot < 0 || slot >= len(vec) {
		return false
	}
	return vec[slot]
}

// Query returns the presence vectors for names. The vectors are shared with
// the bitmap and must not be modified.
// Returns ErrComponentNotFound if any name is unknown.
func (b *Bitmap) Query(names []string) (map[string][]bool, error) {
	result := make(map[string][]bool, len(names))
	for _, name := range names {
		vec, ok := b.presence[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", types.ErrComponentNotFound, name)
		}
		result[name] = vec
	}
	return result, nil
}

// PhysicalIndicesToDelete translates slot indices into column indices for
// every registered name. A slot contributes to a name only when it holds a
// value for that name; its column index is the slot minus the number of empty
// slots before it. Indices are returned in ascending order.
// Returns ErrOutOfRangeInVector if a slot is past the last entity.
func (b *Bitmap) PhysicalIndicesToDelete(slots []int) (map[string][]int, error) {
	sorted := uniqueSorted(slots)
	for _, slot := range sorted {
		if slot < 0 || slot >= b.length {
			return nil, fmt.Errorf("%w: slot %d of %d", types.ErrOutOfRangeInVector, slot, b.length)
		}
	}

	result := make(map[string][]int, len(b.presence))
	for name, vec := range b.presence {
		indices := make([]int, 0, len(sorted))
		empty := 0
		next := 0
		for i := 0; i < len(vec) && next < len(sorted); i++ {
			if i == sorted[next] {
				if vec[i] {
					indices = append(indices, i-empty)
				}
				next++
			}
			if !vec[i] {
				empty++
			}
		}
		result[name] = indices
	}
	return result, nil
}

// DeleteSlots removes the given slots from every presence vector. Slots are
// removed from the highest index down so earlier removals do not shift later
// ones. Duplicates and out-of-range slots are ignored.
func (b *Bitmap) DeleteSlots(slots []int) {
	sorted := uniqueSorted(slots)
	for i := len(sorted) - 1; i >= 0; i-- {
		slot := sorted[i]
		if slot < 0 || slot >= b.length {
			continue
		}
		for name, vec := range b.presence {
			b.presence[name] = slices.Delete(vec, slot, slot+1)
		}
		b.length--
	}
}

// Len returns the current slot count.
func (b *Bitmap) Len() int {
	return b.length
}

// Names returns the registered names in sorted order.
func (b *Bitmap) Names() []string {
	names := make([]string, 0, len(b.presence))
	for name := range b.presence {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// uniqueSorted returns a sorted copy of slots without duplicates.
func uniqueSorted(slots []int) []int {
	sorted := slices.Clone(slots)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}
