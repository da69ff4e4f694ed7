package larder_test

import (
	"io"
	"log/slog"
	"testing"

	"github.com/mesh-intelligence/larder/pkg/larder"
	"github.com/mesh-intelligence/larder/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWorld(t *testing.T) {
	world := larder.NewWorld(
		larder.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		larder.WithCapacity(16),
	)
	require.NoError(t, world.Register("location"))

	for _, p := range []types.Point{types.NewPoint(0, 0), types.NewPoint(10, 10), types.NewPoint(15, 15)} {
		_, err := world.SpawnEntity().WithComponent("location", p)
		require.NoError(t, err)
	}

	// Find the entity at (10, 10) and remove it by id.
	result, err := world.Query("location", types.EntityIDComponent)
	require.NoError(t, err)
	for i, cell := range result["location"] {
		p, err := types.Cast[types.Point](cell)
		require.NoError(t, err)
		if p != types.NewPoint(10, 10) {
			continue
		}
		id, err := types.Cast[types.U32](result[types.EntityIDComponent][i])
		require.NoError(t, err)
		require.NoError(t, world.DeleteByID(uint32(id)))
	}
	require.NoError(t, world.Update())

	cells, err := world.QueryOne("location")
	require.NoError(t, err)
	got := make([]types.Value, len(cells))
	for i, c := range cells {
		got[i] = c.Get()
	}
	assert.Equal(t, []types.Value{types.NewPoint(0, 0), types.NewPoint(15, 15)}, got)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, larder.Version)
}
