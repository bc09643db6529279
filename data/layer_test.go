package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllPathsPrependsOutline(t *testing.T) {
	outline := square(0, 0, 10000, 10000)
	hole := square(3000, 3000, 7000, 7000).Reversed()
	part := NewUnknownLayerPart(outline, Paths{hole})

	all := AllPaths(part)
	assert.Len(t, all, 2)
	assert.Equal(t, outline, all[0])
	assert.Equal(t, hole, all[1])
}

func TestExtendAttributesCopiesWithoutAliasingOriginal(t *testing.T) {
	base := NewPartitionedLayer([]LayerPart{NewUnknownLayerPart(square(0, 0, 1000, 1000), nil)})
	base.Attributes()["k"] = 1

	extended := ExtendAttributes(base)
	extended.Attributes()["k"] = 2
	extended.Attributes()["new"] = "v"

	assert.Equal(t, 1, base.Attributes()["k"], "mutating the extended map must not affect the original")
	assert.Nil(t, base.Attributes()["new"])
	assert.Equal(t, base.LayerParts(), extended.LayerParts(), "parts are shared, not copied")
}
