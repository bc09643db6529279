package clip

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aligator/goslice/data"
)

func testBounds() data.Bounds {
	return data.Bounds{Min: data.NewMicroPoint(0, 0), Max: data.NewMicroPoint(10000, 10000)}
}

func TestRectilinearPatternGeneratesParallelLines(t *testing.T) {
	p := RectilinearPattern(testBounds(), 1000, 0, 10)
	lines := p.Generate()
	assert.NotEmpty(t, lines)
	for _, l := range lines {
		assert.Len(t, l, 2, "each scanline is a 2-point open path")
	}
}

func TestGridPatternCombinesTwoPerpendicularAngleSets(t *testing.T) {
	grid := GridPattern(testBounds(), 1000, 0, 10)
	rectilinear := RectilinearPattern(testBounds(), 1000, 0, 10)

	assert.Equal(t, 2*len(rectilinear.Generate()), len(grid.Generate()), "grid draws two full angle passes, each the size of one rectilinear pass")
}

func TestTrianglePatternCombinesThreeAngleSets(t *testing.T) {
	triangle := TrianglePattern(testBounds(), 1000, 0, 10)
	rectilinear := RectilinearPattern(testBounds(), 1000, 0, 10)

	assert.Equal(t, 3*len(rectilinear.Generate()), len(triangle.Generate()))
}

func TestTriangle2PatternOnlyDrawsTwoOfThreeAnglesPerLayer(t *testing.T) {
	rectilinear := RectilinearPattern(testBounds(), 1000, 0, 10)
	perAngle := len(rectilinear.Generate())

	for layer := 0; layer < 3; layer++ {
		p := Triangle2Pattern(testBounds(), 1000, 0, 10, layer)
		assert.Equal(t, 2*perAngle, len(p.Generate()), "layer %d should draw exactly two angles", layer)
	}
}

func TestLinePatternOverlapScalesWithOverlapPercent(t *testing.T) {
	full := NewLinePattern(testBounds(), 1000, []float64{0}, 0)
	half := NewLinePattern(testBounds(), 1000, []float64{0}, 50)

	assert.Equal(t, data.Micrometer(1000), full.Overlap())
	assert.Equal(t, data.Micrometer(500), half.Overlap())
}

func TestLinePatternZeroLineWidthGeneratesNothing(t *testing.T) {
	p := NewLinePattern(testBounds(), 0, []float64{0}, 0)
	assert.Nil(t, p.Generate())
}
