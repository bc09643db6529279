// Package optimizer turns a raw mesh.Mesh into a handler.OptimizedModel:
// duplicate vertices (shared by multiple triangles but emitted separately
// by most STL exporters) are merged, and each face is annotated with the
// indices of the (up to three) faces that share an edge with it. The
// segment stitcher (slicer package, section 4.2) walks this adjacency
// instead of an O(n^2) nearest-endpoint search.
package optimizer

import (
	hull "github.com/furstenheim/go-convex-hull-2d"

	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/handler"
	"github.com/aligator/goslice/mesh"
)

type optimizer struct {
	options *data.Options
}

// NewOptimizer returns the handler.ModelOptimizer built in to this repository.
func NewOptimizer(options *data.Options) handler.ModelOptimizer {
	return &optimizer{options: options}
}

// vertexKey rounds a vertex to the lattice so that vertices which are
// meant to coincide (but differ by float rounding noise in the source STL)
// hash to the same key.
type vertexKey struct {
	x, y, z int64
}

func keyOf(v data.Vertex, scale float64) vertexKey {
	return vertexKey{
		x: int64(float64(v.X)*scale + 0.5),
		y: int64(float64(v.Y)*scale + 0.5),
		z: int64(float64(v.Z)*scale + 0.5),
	}
}

// edgeKey identifies an (undirected) edge by its two endpoint vertex
// indices, canonicalized so (a,b) and (b,a) collide.
type edgeKey struct{ a, b int }

func edgeOf(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

type face struct {
	vertices [3]data.Vertex
	touching [3]int
}

func (f *face) Vertices() [3]data.Vertex    { return f.vertices }
func (f *face) TouchingFaceIndices() [3]int { return f.touching }

type optimizedModel struct {
	faces    []*face
	min, max data.MicroVec3
	hull     []data.MicroPoint
}

func (m *optimizedModel) FaceCount() int              { return len(m.faces) }
func (m *optimizedModel) Min() data.MicroVec3         { return m.min }
func (m *optimizedModel) Max() data.MicroVec3         { return m.max }
func (m *optimizedModel) OptimizedFace(i int) handler.Face { return m.faces[i] }

// Hull2D returns the convex hull of the mesh's vertices projected to XY —
// a cheap upper bound on how far the model's footprint can reach. It is
// computed once per mesh; the brim and raft modifiers size their rings from
// layer 0's offset footprint and do not read it.
func (m *optimizedModel) Hull2D() []data.MicroPoint { return m.hull }

// a hullPoint adapts data.MicroPoint to the go-convex-hull-2d Point
// interface (X()/Y() float64).
type hullPoint struct{ x, y float64 }

func (p hullPoint) X() float64 { return p.x }
func (p hullPoint) Y() float64 { return p.y }

func (o *optimizer) Optimize(m handler.Model) (handler.OptimizedModel, error) {
	raw, ok := m.(*mesh.Mesh)
	if !ok {
		// Any handler.Model works; we only need its triangles, which
		// *mesh.Mesh is the sole producer of in this repository.
		return nil, errNotAMesh
	}

	scale := o.options.GoSlice.ScaleConstant
	if scale == 0 {
		scale = data.ScaleConstant
	}

	vertIndex := map[vertexKey]int{}
	var vertices []data.Vertex
	// faceVertexIdx[f][c] = deduplicated vertex index of corner c of face f
	faceVertexIdx := make([][3]int, len(raw.Triangles))

	for fi, t := range raw.Triangles {
		for c, v := range t.Vertices {
			k := keyOf(v, scale)
			idx, ok := vertIndex[k]
			if !ok {
				idx = len(vertices)
				vertIndex[k] = idx
				vertices = append(vertices, v)
			}
			faceVertexIdx[fi][c] = idx
		}
	}

	// edge -> first face that owns it (a manifold mesh has exactly two
	// faces per edge; the second face to see an edge is its neighbor).
	edgeOwner := map[edgeKey]int{}
	faces := make([]*face, len(raw.Triangles))
	for fi, t := range raw.Triangles {
		faces[fi] = &face{vertices: t.Vertices, touching: [3]int{-1, -1, -1}}
	}

	for fi := range raw.Triangles {
		vi := faceVertexIdx[fi]
		for c := 0; c < 3; c++ {
			a, b := vi[c], vi[(c+1)%3]
			ek := edgeOf(a, b)
			if owner, ok := edgeOwner[ek]; ok {
				linkTouching(faces, owner, fi)
			} else {
				edgeOwner[ek] = fi
			}
		}
	}

	hullPoints := make([]hull.Point, 0, len(vertices))
	for _, v := range vertices {
		hullPoints = append(hullPoints, hullPoint{x: float64(v.X), y: float64(v.Y)})
	}
	var hullMicro []data.MicroPoint
	if len(hullPoints) >= 3 {
		convex := hull.ConvexHull(hullPoints)
		hullMicro = make([]data.MicroPoint, 0, len(convex))
		for _, p := range convex {
			hullMicro = append(hullMicro, data.NewMicroPointMM(data.Millimeter(p.X()), data.Millimeter(p.Y())))
		}
	}

	om := &optimizedModel{faces: faces, min: m.Min(), max: m.Max(), hull: hullMicro}
	return om, nil
}

// linkTouching records that faces a and b share an edge, filling the first
// free touching slot of each (a valid manifold triangle has at most three
// neighbors, one per edge, so this never needs to search past the slot the
// matching edge loop iteration already identifies).
func linkTouching(faces []*face, a, b int) {
	for i := 0; i < 3; i++ {
		if faces[a].touching[i] == -1 {
			faces[a].touching[i] = b
			break
		}
	}
	for i := 0; i < 3; i++ {
		if faces[b].touching[i] == -1 {
			faces[b].touching[i] = a
			break
		}
	}
}

type optimizerError string

func (e optimizerError) Error() string { return string(e) }

const errNotAMesh = optimizerError("optimizer: model is not a *mesh.Mesh")
