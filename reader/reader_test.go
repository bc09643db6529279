package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hschendel/stl"
	"github.com/stretchr/testify/require"

	"github.com/aligator/goslice/data"
)

// writeTestSolid writes a one-triangle binary STL to a fresh temp file and
// returns its path.
func writeTestSolid(t *testing.T, tri stl.Triangle) string {
	t.Helper()
	solid := &stl.Solid{Triangles: []stl.Triangle{tri}}

	path := filepath.Join(t.TempDir(), "model.stl")
	require.NoError(t, solid.WriteFile(path))
	return path
}

func TestReadAppliesTranslateAndZChop(t *testing.T) {
	tri := stl.Triangle{
		Vertices: [3]stl.Vec3{
			{0, 0, 2},
			{10, 0, 5},
			{0, 10, 8},
		},
	}
	path := writeTestSolid(t, tri)

	options := data.NewDefaultOptions()
	options.GoSlice.TranslateX = 5
	options.GoSlice.TranslateY = -5
	options.GoSlice.ZChop = 3

	model, err := Reader(&options).Read(path)
	require.NoError(t, err)
	require.Equal(t, 1, model.FaceCount())

	m, ok := model.(interface {
		Min() data.MicroVec3
		Max() data.MicroVec3
	})
	require.True(t, ok)

	// after translating X by +5, Y by -5 and chopping 3mm off Z (clipped
	// at 0 for the vertex that would go negative):
	// (0,0,2) -> (5,-5,0)
	// (10,0,5) -> (15,-5,2)
	// (0,10,8) -> (5,5,5)
	assert := require.New(t)
	assert.Equal(data.Millimeter(5).ToMicrometer(), m.Min().X())
	assert.Equal(data.Millimeter(-5).ToMicrometer(), m.Min().Y())
	assert.Equal(data.Millimeter(0), m.Min().Z())
	assert.Equal(data.Millimeter(15).ToMicrometer(), m.Max().X())
	assert.Equal(data.Millimeter(5).ToMicrometer(), m.Max().Y())
	assert.Equal(data.Millimeter(5), m.Max().Z())
}

func TestReadMissingFileReturnsError(t *testing.T) {
	options := data.NewDefaultOptions()
	_, err := Reader(&options).Read(filepath.Join(os.TempDir(), "does-not-exist.stl"))
	require.Error(t, err)
}
