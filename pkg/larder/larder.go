// Package larder provides the public API for the in-memory entity store.
// It exposes the world factory and its options while keeping the storage
// implementation internal.
package larder

import (
	"log/slog"

	"github.com/mesh-intelligence/larder/internal/memory"
	"github.com/mesh-intelligence/larder/pkg/types"
)

// Version is the library and CLI release.
const Version = "0.1.0"

// Option configures a world created by NewWorld.
type Option = memory.Option

// WithLogger sets the logger used for debug output. Defaults to
// slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return memory.WithLogger(logger)
}

// WithCapacity sizes internal scratch buffers for about n entities.
func WithCapacity(n int) Option {
	return memory.WithCapacity(n)
}

// NewWorld creates an empty world with the reserved components registered.
//
// Example:
//
//	world := larder.NewWorld()
//	_ = world.Register("location")
//	b, _ := world.SpawnEntity().WithComponent("location", types.NewPoint(0, 0))
//	_ = world.DeleteByID(b.ID())
//	_ = world.Update()
func NewWorld(opts ...Option) types.World {
	return memory.NewWorld(opts...)
}
