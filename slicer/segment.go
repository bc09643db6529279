// Package slicer implements S1 (mesh to per-layer segments) and S2
// (segments to stitched, partitioned islands), the handler.ModelSlicer
// this repository provides.
package slicer

import (
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/handler"
)

// segment is one plane-triangle intersection: two 2D lattice endpoints plus
// the face it came from, needed later to walk face adjacency while
// stitching (section 4.2). Temporary - lives only between S1 and S2.
type segment struct {
	start, end     data.MicroPoint
	faceIndex      int
	addedToPolygon bool
}

// sliceSegments implements S1 for one optimized model: for every face and
// every mid-layer plane it intersects, emit an ordered 2D segment.
//
// layerCount is computed from the model's bounding box and layer height
// the way the teacher's own main sizing logic does: N = ceil(max_z /
// layer_height).
func sliceSegments(m handler.OptimizedModel, layerHeight data.Millimeter) [][]segment {
	if layerHeight <= 0 {
		return nil
	}

	maxZ := m.Max().Z()
	layerCount := int(maxZ / layerHeight)
	if data.Millimeter(layerCount) < maxZ/layerHeight {
		layerCount++
	}
	if layerCount < 1 {
		layerCount = 1
	}

	layers := make([][]segment, layerCount)

	for fi := 0; fi < m.FaceCount(); fi++ {
		face := m.OptimizedFace(fi)
		verts := face.Vertices()

		minZ, maxZv := verts[0].Z, verts[0].Z
		for _, v := range verts[1:] {
			if v.Z < minZ {
				minZ = v.Z
			}
			if v.Z > maxZv {
				maxZv = v.Z
			}
		}
		if minZ < 0 {
			minZ = 0
		}

		// Round to the nearest mid-layer plane index with an asymmetric
		// epsilon so a vertex lying exactly on a plane is not
		// double-counted by adjacent triangles (section 4.1).
		startLayer := int(float64(minZ/layerHeight) + 0.4999)
		endLayer := int(float64(maxZv/layerHeight) + 0.5001)

		if startLayer < 0 {
			startLayer = 0
		}
		if endLayer > layerCount {
			endLayer = layerCount
		}

		for li := startLayer; li < endLayer; li++ {
			z := (data.Millimeter(li) + 0.5) * layerHeight
			if seg, ok := intersectTriangle(verts, z, fi); ok {
				layers[li] = append(layers[li], seg)
			}
		}
	}

	return layers
}

// intersectTriangle classifies the triangle's three vertices against plane
// z and, if it straddles the plane, interpolates the two edge
// intersections in the fixed vertex-index order that keeps a
// correctly-wound mesh's stitched polygons counter-clockwise (section
// 4.1's orientation rule).
func intersectTriangle(v [3]data.Vertex, z data.Millimeter, faceIndex int) (segment, bool) {
	var above [3]bool
	for i, vertex := range v {
		above[i] = vertex.Z > z
	}

	// Collect the edges that straddle the plane, walking the triangle's
	// three edges in index order (0-1, 1-2, 2-0) so the two crossing
	// points always come out in the same relative order for a given
	// winding.
	var points []data.MicroPoint
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		if above[i] == above[j] {
			continue
		}
		points = append(points, interpolateEdge(v[i], v[j], z))
	}

	if len(points) != 2 {
		return segment{}, false
	}

	// Orient the segment so that walking start->end keeps solid material
	// (z < plane for a downward-facing normal convention) on its left,
	// matching which of the two vertices at each crossing edge is above
	// the plane.
	start, end := points[0], points[1]
	if start == end {
		return segment{}, false
	}

	// Determine which crossing edge came first and whether its "above"
	// vertex was the first or second index; this fixes segment direction
	// without needing the face normal directly; the winding of the input
	// mesh (outward normals, CCW when viewed from outside) combined with
	// always walking edges 0-1,1-2,2-0 produces exterior-CCW polygons
	// once stitched.
	if !above[firstStraddleEdge(above)] {
		start, end = end, start
	}

	return segment{start: start, end: end, faceIndex: faceIndex}, true
}

// firstStraddleEdge returns the index i of the first edge (i, i+1 mod 3)
// whose endpoints are on opposite sides of the plane.
func firstStraddleEdge(above [3]bool) int {
	for i := 0; i < 3; i++ {
		if above[i] != above[(i+1)%3] {
			return i
		}
	}
	return 0
}

func interpolateEdge(a, b data.Vertex, z data.Millimeter) data.MicroPoint {
	t := float64(z-a.Z) / float64(b.Z-a.Z)
	x := a.X + data.Millimeter(t)*(b.X-a.X)
	y := a.Y + data.Millimeter(t)*(b.Y-a.Y)
	return data.NewMicroPointMM(x, y)
}
