// Package mesh holds the raw triangulated solid as loaded from an STL file
// (spec.md section 3's Mesh/Triangle entities), before any optimization.
package mesh

import "github.com/aligator/goslice/data"

// Triangle is one face of the mesh, owned by Mesh. It is destroyed (in the
// sense of "never looked at again") once S1 has extracted its segments.
type Triangle struct {
	Vertices [3]data.Vertex
}

// Min3 returns the component-wise minimum of the triangle's vertices.
func (t Triangle) Min3() data.Vertex {
	m := t.Vertices[0]
	for _, v := range t.Vertices[1:] {
		if v.X < m.X {
			m.X = v.X
		}
		if v.Y < m.Y {
			m.Y = v.Y
		}
		if v.Z < m.Z {
			m.Z = v.Z
		}
	}
	return m
}

// Max3 returns the component-wise maximum of the triangle's vertices.
func (t Triangle) Max3() data.Vertex {
	m := t.Vertices[0]
	for _, v := range t.Vertices[1:] {
		if v.X > m.X {
			m.X = v.X
		}
		if v.Y > m.Y {
			m.Y = v.Y
		}
		if v.Z > m.Z {
			m.Z = v.Z
		}
	}
	return m
}

// Mesh is the whole loaded model: an unordered bag of triangles plus the
// bounding box computed while reading them in.
type Mesh struct {
	Triangles []Triangle
	min, max  data.MicroVec3
}

// NewMesh builds a Mesh from triangles and computes its bounding box once,
// rather than re-scanning the triangle list on every Min()/Max() call.
func NewMesh(triangles []Triangle) *Mesh {
	m := &Mesh{Triangles: triangles}
	if len(triangles) == 0 {
		return m
	}

	min3 := triangles[0].Min3()
	max3 := triangles[0].Max3()
	for _, t := range triangles[1:] {
		tMin := t.Min3()
		tMax := t.Max3()
		if tMin.X < min3.X {
			min3.X = tMin.X
		}
		if tMin.Y < min3.Y {
			min3.Y = tMin.Y
		}
		if tMin.Z < min3.Z {
			min3.Z = tMin.Z
		}
		if tMax.X > max3.X {
			max3.X = tMax.X
		}
		if tMax.Y > max3.Y {
			max3.Y = tMax.Y
		}
		if tMax.Z > max3.Z {
			max3.Z = tMax.Z
		}
	}

	m.min = data.NewMicroVec3(min3.X.ToMicrometer(), min3.Y.ToMicrometer(), min3.Z)
	m.max = data.NewMicroVec3(max3.X.ToMicrometer(), max3.Y.ToMicrometer(), max3.Z)
	return m
}

func (m *Mesh) FaceCount() int { return len(m.Triangles) }
func (m *Mesh) Min() data.MicroVec3 { return m.min }
func (m *Mesh) Max() data.MicroVec3 { return m.max }
