package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aligator/goslice/data"
)

func tri(x0, y0, z0, x1, y1, z1, x2, y2, z2 float64) Triangle {
	return Triangle{Vertices: [3]data.Vertex{
		{X: data.Millimeter(x0), Y: data.Millimeter(y0), Z: data.Millimeter(z0)},
		{X: data.Millimeter(x1), Y: data.Millimeter(y1), Z: data.Millimeter(z1)},
		{X: data.Millimeter(x2), Y: data.Millimeter(y2), Z: data.Millimeter(z2)},
	}}
}

func TestTriangleMin3Max3(t *testing.T) {
	tr := tri(0, 5, -1, 10, -2, 3, -4, 8, 0)

	min := tr.Min3()
	assert.Equal(t, data.Millimeter(-4), min.X)
	assert.Equal(t, data.Millimeter(-2), min.Y)
	assert.Equal(t, data.Millimeter(-1), min.Z)

	max := tr.Max3()
	assert.Equal(t, data.Millimeter(10), max.X)
	assert.Equal(t, data.Millimeter(8), max.Y)
	assert.Equal(t, data.Millimeter(3), max.Z)
}

func TestNewMeshComputesOverallBoundingBox(t *testing.T) {
	m := NewMesh([]Triangle{
		tri(0, 0, 0, 10, 0, 0, 0, 10, 0),
		tri(-5, -5, 2, 5, 5, 4, -5, 5, 1),
	})

	assert.Equal(t, 2, m.FaceCount())
	assert.Equal(t, data.Millimeter(-5).ToMicrometer(), m.Min().X())
	assert.Equal(t, data.Millimeter(-5).ToMicrometer(), m.Min().Y())
	assert.Equal(t, data.Millimeter(0), m.Min().Z())
	assert.Equal(t, data.Millimeter(10).ToMicrometer(), m.Max().X())
	assert.Equal(t, data.Millimeter(10).ToMicrometer(), m.Max().Y())
	assert.Equal(t, data.Millimeter(4), m.Max().Z())
}

func TestNewMeshEmptyTriangleList(t *testing.T) {
	m := NewMesh(nil)
	assert.Equal(t, 0, m.FaceCount())
	assert.Equal(t, data.MicroVec3{}, m.Min())
}
