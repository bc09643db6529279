package slicer

import (
	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/handler"
)

// slicerImpl implements handler.ModelSlicer, grounded on the teacher's
// slicer/slice/layer.go stitching walk (makePolygons), reworked from a
// map[faceIndex]segmentIndex intrusive structure plus a goto-based
// "rerun connect" loop into an arena of segments per layer indexed
// directly by face, and an explicit best-candidate search replacing the
// goto restart (section 4.2's stitching algorithm, steps 1-4).
type slicerImpl struct {
	options   *data.Options
	clipper   clip.Clipper
	tolerance data.Micrometer
	coarse    data.Micrometer
}

// NewSlicer returns the handler.ModelSlicer built in to this repository.
func NewSlicer(options *data.Options) handler.ModelSlicer {
	return &slicerImpl{
		options:   options,
		clipper:   clip.NewClipper(),
		tolerance: options.GoSlice.Tolerance.ToMicrometer(),
		coarse:    options.GoSlice.Coarseness.ToMicrometer(),
	}
}

func (s *slicerImpl) Slice(m handler.OptimizedModel) ([]data.PartitionedLayer, error) {
	layerSegments := sliceSegments(m, s.options.Print.LayerThickness.ToMillimeter())

	layers := make([]data.PartitionedLayer, len(layerSegments))
	for i, segs := range layerSegments {
		polygons := stitch(segs, m, s.tolerance)
		polygons = simplifyAll(polygons, s.coarse)

		parts, ok := s.clipper.GenerateLayerParts(polygons)
		if !ok {
			parts = nil
		}
		layers[i] = data.NewPartitionedLayer(parts)
	}

	return layers, nil
}

func simplifyAll(paths data.Paths, epsilon data.Micrometer) data.Paths {
	out := make(data.Paths, len(paths))
	for i, p := range paths {
		out[i] = p.Simplify(epsilon, epsilon)
	}
	return out
}

// faceToSegment maps, for one layer, a face index to the index of the
// segment array element that face produced (at most one segment per face
// per layer, since a plane crosses a triangle at most once).
type faceToSegment map[int]int

// stitch runs the per-slice stitching algorithm of section 4.2: segments
// are walked via face adjacency (TouchingFaceIndices), falling back to a
// nearest-endpoint search within tolerance when adjacency alone can't
// close a polygon (non-manifold or tolerance-worthy meshes).
func stitch(segs []segment, m handler.OptimizedModel, tolerance data.Micrometer) data.Paths {
	if len(segs) == 0 {
		return nil
	}

	faceIdx := make(faceToSegment, len(segs))
	for i, sg := range segs {
		faceIdx[sg.faceIndex] = i
	}

	var polygons data.Paths
	var closed []bool

	for start := range segs {
		if segs[start].addedToPolygon {
			continue
		}

		polygon := data.Path{segs[start].start}
		current := start
		canClose := false

		for {
			canClose = false
			cur := &segs[current]
			cur.addedToPolygon = true
			p0 := cur.end
			polygon = append(polygon, p0)

			nextIndex := -1
			face := m.OptimizedFace(cur.faceIndex)
			for _, touchingFace := range face.TouchingFaceIndices() {
				if touchingFace < 0 {
					continue
				}
				touchingSeg, ok := faceIdx[touchingFace]
				if !ok {
					continue
				}
				if p0.Sub(segs[touchingSeg].start).ShorterThan(30) {
					if touchingSeg == start {
						canClose = true
					}
					if segs[touchingSeg].addedToPolygon {
						continue
					}
					nextIndex = touchingSeg
				}
			}

			if nextIndex == -1 {
				break
			}
			current = nextIndex
		}

		polygons = append(polygons, polygon)
		closed = append(closed, canClose)
	}

	joinUnclosedPolygons(polygons, closed, tolerance)
	return finalizePolygons(polygons, closed, tolerance)
}

// joinUnclosedPolygons repeatedly connects the best-matching pair of still
// open polygon chains (end of one within tolerance of the start of
// another), replacing the teacher's goto-based restart loop with an
// explicit outer loop over remaining candidates.
func joinUnclosedPolygons(polygons data.Paths, closed []bool, tolerance data.Micrometer) {
	for {
		joinedAny := false

		for i, polygon := range polygons {
			if polygon == nil || closed[i] {
				continue
			}

			best := -1
			var bestScore int64 = int64(tolerance)*int64(tolerance) + 1

			for j, candidate := range polygons {
				if candidate == nil || closed[j] || i == j {
					continue
				}

				diff := polygon[len(polygon)-1].Sub(candidate[0])
				d2 := diff.SizeSquared()
				if d2 > int64(tolerance)*int64(tolerance) {
					continue
				}

				score := d2 - int64(len(candidate))*10
				if score < bestScore {
					best = j
					bestScore = score
				}
			}

			if best == -1 {
				continue
			}

			polygons[i] = append(polygons[i], polygons[best]...)
			if polygons[i].IsAlmostFinished(tolerance) {
				polygons[i] = removeLastPoint(polygons[i])
				closed[i] = true
			}
			polygons[best] = nil
			joinedAny = true
		}

		if !joinedAny {
			return
		}
	}
}

// finalizePolygons closes any polygon whose endpoints are within the
// (looser) final snap distance, then drops unclosed or too-small
// polygons, matching the teacher's final cleanup pass.
func finalizePolygons(polygons data.Paths, closed []bool, tolerance data.Micrometer) data.Paths {
	snapDistance := tolerance * 10
	if snapDistance < 1000 {
		snapDistance = 1000
	}

	var result data.Paths
	for i, poly := range polygons {
		if poly == nil {
			continue
		}

		if poly.IsAlmostFinished(snapDistance) {
			poly = removeLastPoint(poly)
			closed[i] = true
		}

		if !closed[i] {
			continue
		}
		if poly.ClosedLength() <= snapDistance {
			continue
		}

		result = append(result, poly)
	}
	return result
}

func removeLastPoint(p data.Path) data.Path {
	if len(p) == 0 {
		return p
	}
	return p[:len(p)-1]
}
