package memory

import (
	"fmt"
	"slices"

	"github.com/mesh-intelligence/larder/pkg/types"
)

// entityBuilder attaches components to the entity created by SpawnEntity.
type entityBuilder struct {
	world *World
	id    uint32
	slot  int
	epoch uint64
}

// WithComponent stores value under name for the builder's entity.
// Returns ErrNeedToRegister if name is unknown and ErrReservedComponent for
// the id and delete-flag components, which only the world writes. Panics if another entity
// has been spawned or Update has run since this builder was made.
func (b *entityBuilder) WithComponent(name string, value types.Value) (types.EntityBuilder, error) {
	if b.epoch != b.world.epoch {
		panic("memory: entity builder used after another spawn or update")
	}
	if slices.Contains(types.ReservedComponentNames, name) {
		return b, fmt.Errorf("%w: %q", types.ErrReservedComponent, name)
	}
	if err := b.world.attach(b.slot, name, value); err != nil {
		return b, err
	}
	return b, nil
}

// ID returns the id assigned to the entity at spawn.
func (b *entityBuilder) ID() uint32 {
	return b.id
}
