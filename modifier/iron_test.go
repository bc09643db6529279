package modifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aligator/goslice/data"
)

func TestIronModifierDisabledIsNoOp(t *testing.T) {
	options := testOptions()
	options.Print.IroningEnabled = false
	layers := buildSingleLayerIslands(t, &options)

	require.NoError(t, NewIronModifier(&options).Modify(layers))

	island := layers[0].Attributes()["islands"].([]*data.Island)[0]
	assert.Empty(t, island.IronPaths)
}

func TestIronModifierTopLayerGetsIroningPaths(t *testing.T) {
	options := testOptions()
	options.Print.IroningEnabled = true
	options.Print.IronDensity = 20
	layers := buildSingleLayerIslands(t, &options)

	require.NoError(t, NewIronModifier(&options).Modify(layers))

	island := layers[0].Attributes()["islands"].([]*data.Island)[0]
	assert.NotEmpty(t, island.IronPaths, "a single isolated layer's whole inner region is exposed and should be ironed")
}

func TestIronModifierCoveredLayerSkipsFullyOverlappedRegion(t *testing.T) {
	options := testOptions()
	options.Print.IroningEnabled = true

	m := NewPerimeterModifier(&options)
	layers := []data.PartitionedLayer{
		data.NewPartitionedLayer([]data.LayerPart{squarePart(0, 0, 10000000, 10000000)}),
		data.NewPartitionedLayer([]data.LayerPart{squarePart(0, 0, 10000000, 10000000)}),
	}
	require.NoError(t, m.Modify(layers))
	require.NoError(t, NewIronModifier(&options).Modify(layers))

	island := layers[0].Attributes()["islands"].([]*data.Island)[0]
	assert.Empty(t, island.IronPaths, "a layer whose whole footprint is repeated above it has nothing exposed to iron")
}
