// Package reader implements handler.ModelReader. Binary STL parsing is
// explicitly out of scope for this repository (spec.md section 1 says to
// "specify only its interface") — all byte-level work is delegated to
// github.com/hschendel/stl, the teacher's own STL dependency.
package reader

import (
	"os"

	"github.com/hschendel/stl"

	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/handler"
	"github.com/aligator/goslice/mesh"
)

type reader struct {
	options *data.Options
}

// Reader returns the handler.ModelReader built in to this repository.
func Reader(options *data.Options) handler.ModelReader {
	return &reader{options: options}
}

// Read loads a binary STL file. A filename of "-" reads from stdin, per
// spec.md section 6.
func (r *reader) Read(filePath string) (handler.Model, error) {
	var solid *stl.Solid
	var err error

	if filePath == "-" {
		solid, err = stl.ReadAll(os.Stdin)
	} else {
		solid, err = stl.ReadFile(filePath)
	}
	if err != nil {
		return nil, err
	}

	translateX := r.options.GoSlice.TranslateX
	translateY := r.options.GoSlice.TranslateY
	zChop := r.options.GoSlice.ZChop

	triangles := make([]mesh.Triangle, 0, len(solid.Triangles))
	for _, t := range solid.Triangles {
		tri := mesh.Triangle{}
		for i, v := range t.Vertices {
			z := data.Millimeter(v[2]) - zChop
			if z < 0 {
				z = 0
			}
			tri.Vertices[i] = data.Vertex{
				X: data.Millimeter(v[0]) + translateX,
				Y: data.Millimeter(v[1]) + translateY,
				Z: z,
			}
		}
		triangles = append(triangles, tri)
	}

	return mesh.NewMesh(triangles), nil
}
