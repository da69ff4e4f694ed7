// Package memory implements the in-memory entity store behind types.World.
// It composes the presence bitmap and the component columns and owns the
// entity lifecycle: spawn, tombstone and sweep.
package memory

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/larder/internal/bitmap"
	"github.com/mesh-intelligence/larder/internal/columns"
	"github.com/mesh-intelligence/larder/pkg/types"
)

// World implements types.World. It is not safe for concurrent use.
type World struct {
	id        string
	logger    *slog.Logger
	capacity  int
	bitmap    *bitmap.Bitmap
	store     *columns.Store
	resources *Resources

	nextID uint32 // id handed to the next spawned entity
	epoch  uint64 // bumped on every spawn and every Update
	sweep  []int  // scratch list of tombstoned slots reused by Update
}

var _ types.World = (*World)(nil)

// NewWorld creates a World with the reserved id and delete-flag components
// already registered.
func NewWorld(opts ...Option) *World {
	w := &World{
		id:       uuid.Must(uuid.NewV7()).String(),
		logger:   slog.Default(),
		capacity: defaultCapacity,
		bitmap:   bitmap.New(),
		store:    columns.New(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With("world", w.id)
	w.resources = newResources(w.capacity)
	w.sweep = make([]int, 0, w.capacity)

	for _, name := range types.ReservedComponentNames {
		if err := w.Register(name); err != nil {
			panic(fmt.Sprintf("memory: register reserved component %q: %v", name, err))
		}
	}
	return w
}

// ID returns the UUID assigned to this world at creation.
func (w *World) ID() string {
	return w.id
}

// Register declares a component name.
// Returns ErrComponentAlreadyRegistered if the name is already known.
func (w *World) Register(name string) error {
	if err := w.store.Register(name); err != nil {
		return err
	}
	w.bitmap.Register(name)
	w.logger.Debug("component registered", "name", name)
	return nil
}

// SpawnEntity appends an entity slot, assigns the next id and clears the
// delete flag.
func (w *World) SpawnEntity() types.EntityBuilder {
	w.bitmap.Spawn()
	slot := w.bitmap.Len() - 1
	id := w.nextID

	if err := w.attach(slot, types.EntityIDComponent, types.U32(id)); err != nil {
		panic(fmt.Sprintf("memory: attach entity id: %v", err))
	}
	if err := w.attach(slot, types.DeleteFlagComponent, types.Bool(false)); err != nil {
		panic(fmt.Sprintf("memory: attach delete flag: %v", err))
	}

	w.nextID++
	w.epoch++
	return &entityBuilder{world: w, id: id, slot: slot, epoch: w.epoch}
}

// attach stores value for the entity in slot, which must be the last slot.
// A component the slot already holds is replaced in place; its column
// position is the last one because no later slot exists.
func (w *World) attach(slot int, name string, value types.Value) error {
	if w.bitmap.Has(name, slot) {
		return w.store.Replace(name, w.store.Len(name)-1, value)
	}
	if err := w.store.Insert(name, value); err != nil {
		return err
	}
	return w.bitmap.Set(name)
}

// Query returns the aligned cells of every entity holding all names.
// Returns ErrComponentNotFound for an unknown name.
func (w *World) Query(names ...string) (types.QueryResult, error) {
	presence, err := w.bitmap.Query(names)
	if err != nil {
		return nil, err
	}
	return w.store.Query(names, presence)
}

// QueryOne returns every cell stored for name.
// Returns ErrComponentNotFound for an unknown name.
func (w *World) QueryOne(name string) ([]*types.Cell, error) {
	result, err := w.Query(name)
	if err != nil {
		return nil, err
	}
	return result[name], nil
}

// DeleteByID sets the delete flag of the entity with the given id. The flag
// is written through its cell, so a borrow still held on it panics. Ids that
// match no entity are ignored.
func (w *World) DeleteByID(id uint32) error {
	ids, err := w.store.Column(types.EntityIDComponent)
	if err != nil {
		return err
	}
	flags, err := w.store.Column(types.DeleteFlagComponent)
	if err != nil {
		return err
	}

	// Every entity holds both reserved components, so column positions
	// equal slot indices here.
	for slot, cell := range ids {
		got, err := types.Cast[types.U32](cell)
		if err != nil {
			return err
		}
		if uint32(got) != id {
			continue
		}
		if err := flags[slot].Set(types.Bool(true)); err != nil {
			return err
		}
		w.logger.Debug("entity marked for deletion", "id", id, "slot", slot)
		return nil
	}

	w.logger.Debug("delete ignored: no entity with id", "id", id)
	return nil
}

// Update removes every entity whose delete flag is set. Column entries are
// removed first, using positions computed from the presence vectors before
// they change; the slots are then dropped from the presence vectors.
func (w *World) Update() error {
	flags, err := w.store.Column(types.DeleteFlagComponent)
	if err != nil {
		return err
	}

	w.epoch++
	w.sweep = w.sweep[:0]
	for slot, cell := range flags {
		marked, err := types.Cast[types.Bool](cell)
		if err != nil {
			return err
		}
		if marked {
			w.sweep = append(w.sweep, slot)
		}
	}
	if len(w.sweep) == 0 {
		return nil
	}

	indices, err := w.bitmap.PhysicalIndicesToDelete(w.sweep)
	if err != nil {
		return err
	}
	if err := w.store.DeleteByPhysicalIndices(indices); err != nil {
		return err
	}
	w.bitmap.DeleteSlots(w.sweep)

	w.logger.Debug("entities swept", "removed", len(w.sweep), "remaining", w.bitmap.Len())
	return nil
}

// AddResource stores value under name, replacing any earlier resource.
func (w *World) AddResource(name string, value types.Value) {
	w.resources.Add(name, value)
}

// GetResource returns the cell holding the named resource.
// Returns ErrResourceNotFound if no resource has that name.
func (w *World) GetResource(name string) (*types.Cell, error) {
	return w.resources.Get(name)
}

// EntityCount returns the number of entity slots, swept entities excluded.
func (w *World) EntityCount() int {
	return w.bitmap.Len()
}

// Components returns the registered component names in sorted order.
func (w *World) Components() []string {
	return slices.Clone(w.bitmap.Names())
}
