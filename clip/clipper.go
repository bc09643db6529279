// Package clip provides the only implementation for clipping, offsetting
// and filling polygons, the facility spec.md section 1 describes as an
// "external library" boundary. It wraps github.com/go-clipper/clipper2 (a
// pure-Go port of Clipper2), chosen over the CGo-backed go.clipper binding
// because it needs no C toolchain and exposes PolyTree64 and open-path
// boolean results, both of which this package needs.
package clip

import (
	clipper "github.com/go-clipper/clipper2/port"

	"github.com/aligator/goslice/data"
)

// Clipper is an interface that provides the polygon operations GoSlice
// needs, at the []data.LayerPart granularity the modifiers pass around.
type Clipper interface {
	// GenerateLayerParts partitions a whole layer's stitched polygons into
	// parts (outer contour + immediate holes), section 4.2's Island
	// construction.
	GenerateLayerParts(polygons data.Paths) ([]data.LayerPart, bool)

	Union(a, b []data.LayerPart) ([]data.LayerPart, bool)
	Intersection(a, b []data.LayerPart) ([]data.LayerPart, bool)
	Difference(a, b []data.LayerPart) ([]data.LayerPart, bool)
	Xor(a, b []data.LayerPart) ([]data.LayerPart, bool)

	// Offset grows (positive delta) or shrinks (negative delta) a part set
	// using square joins, section 4.3's repeated inset/outset operations.
	Offset(parts []data.LayerPart, delta data.Micrometer) ([]data.LayerPart, bool)

	// OffsetRound is Offset with round joins, used for support overhang
	// growth (section 4.6) where a square corner would over-extend the
	// support footprint.
	OffsetRound(parts []data.LayerPart, delta data.Micrometer) ([]data.LayerPart, bool)

	// Simplify runs RDP simplification at the given epsilon.
	Simplify(paths data.Paths, epsilon data.Micrometer) data.Paths

	// Fill clips pattern's lines to the given part, after shrinking the part
	// by pattern.Overlap(); line spacing and wall overlap both come from
	// the Pattern.
	Fill(part data.LayerPart, pattern Pattern) data.Paths

	// ClipOpenPaths intersects open paths (pattern lines, travel moves)
	// against a set of closed clip regions, keeping only the portions
	// inside.
	ClipOpenPaths(lines data.Paths, clipRegion []data.LayerPart) data.Paths
}

// clipperClipper implements Clipper using github.com/go-clipper/clipper2.
type clipperClipper struct{}

// NewClipper returns a new instance of a polygon Clipper. Clipper2's free
// functions keep no shared mutable state across calls, so every instance
// is safe to use from multiple slice-processing goroutines at once
// (section 5's per-slice concurrency model).
func NewClipper() Clipper {
	return clipperClipper{}
}

func toClipperPoint(p data.MicroPoint) clipper.Point64 {
	return clipper.Point64{X: int64(p.X()), Y: int64(p.Y())}
}

func toClipperPath(p data.Path) clipper.Path64 {
	out := make(clipper.Path64, len(p))
	for i, pt := range p {
		out[i] = toClipperPoint(pt)
	}
	return out
}

func toClipperPaths(p data.Paths) clipper.Paths64 {
	out := make(clipper.Paths64, len(p))
	for i, path := range p {
		out[i] = toClipperPath(path)
	}
	return out
}

func toMicroPoint(p clipper.Point64) data.MicroPoint {
	return data.NewMicroPoint(data.Micrometer(p.X), data.Micrometer(p.Y))
}

func toDataPath(p clipper.Path64) data.Path {
	out := make(data.Path, len(p))
	for i, pt := range p {
		out[i] = toMicroPoint(pt)
	}
	return out
}

func toDataPaths(p clipper.Paths64) data.Paths {
	out := make(data.Paths, len(p))
	for i, path := range p {
		out[i] = toDataPath(path)
	}
	return out
}

// partsToPaths flattens a set of LayerParts to one Paths list (outline then
// holes for each part), the shape every boolean op wants as input.
func partsToPaths(parts []data.LayerPart) data.Paths {
	var out data.Paths
	for _, part := range parts {
		out = append(out, part.Outline())
		out = append(out, part.Holes()...)
	}
	return out
}

func (c clipperClipper) GenerateLayerParts(polygons data.Paths) ([]data.LayerPart, bool) {
	if len(polygons) == 0 {
		return nil, true
	}

	tree, _, err := clipper.Union64Tree(toClipperPaths(polygons), nil, clipper.EvenOdd)
	if err != nil {
		return nil, false
	}

	return polyTreeToLayerParts(tree), true
}

// polyTreeToLayerParts walks the PolyTree breadth-first: every outer
// contour becomes one LayerPart whose holes are its immediate children,
// and any deeper nesting (an island inside a hole) is walked again in the
// next round, matching section 4.2's recursive Island construction (the
// same shape the teacher's own polyTreeToLayerParts walks, adapted from
// go.clipper's PolyNode.Childs()/Contour() to clipper2's
// PolyPath64.Children()/Polygon()).
func polyTreeToLayerParts(tree *clipper.PolyTree64) []data.LayerPart {
	var parts []data.LayerPart

	roundNodes := tree.Children()
	for len(roundNodes) > 0 {
		var nextRound []*clipper.PolyTree64
		for _, node := range roundNodes {
			var holes data.Paths
			for _, hole := range node.Children() {
				holes = append(holes, toDataPath(hole.Polygon()))
				nextRound = append(nextRound, hole.Children()...)
			}
			parts = append(parts, data.NewUnknownLayerPart(toDataPath(node.Polygon()), holes))
		}
		roundNodes = nextRound
	}

	return parts
}

func booleanOp(op clipper.ClipType, a, b []data.LayerPart) ([]data.LayerPart, bool) {
	tree, _, err := clipper.BooleanOp64Tree(op, clipper.EvenOdd, toClipperPaths(partsToPaths(a)), toClipperPaths(partsToPaths(b)))
	if err != nil {
		return nil, false
	}
	return polyTreeToLayerParts(tree), true
}

func (c clipperClipper) Union(a, b []data.LayerPart) ([]data.LayerPart, bool) {
	return booleanOp(clipper.Union, a, b)
}

func (c clipperClipper) Intersection(a, b []data.LayerPart) ([]data.LayerPart, bool) {
	return booleanOp(clipper.Intersection, a, b)
}

func (c clipperClipper) Difference(a, b []data.LayerPart) ([]data.LayerPart, bool) {
	return booleanOp(clipper.Difference, a, b)
}

func (c clipperClipper) Xor(a, b []data.LayerPart) ([]data.LayerPart, bool) {
	return booleanOp(clipper.Xor, a, b)
}

func offset(parts []data.LayerPart, delta data.Micrometer, join clipper.JoinType) ([]data.LayerPart, bool) {
	if len(parts) == 0 {
		return nil, true
	}

	result, err := clipper.InflatePaths64(toClipperPaths(partsToPaths(parts)), float64(delta), join, clipper.ClosedPolygon, clipper.OffsetOptions{
		MiterLimit:   2,
		ArcTolerance: 0.25,
	})
	if err != nil {
		return nil, false
	}

	tree, _, err := clipper.Union64Tree(result, nil, clipper.NonZero)
	if err != nil {
		return nil, false
	}

	return polyTreeToLayerParts(tree), true
}

func (c clipperClipper) Offset(parts []data.LayerPart, delta data.Micrometer) ([]data.LayerPart, bool) {
	return offset(parts, delta, clipper.Square)
}

func (c clipperClipper) OffsetRound(parts []data.LayerPart, delta data.Micrometer) ([]data.LayerPart, bool) {
	return offset(parts, delta, clipper.Round)
}

func (c clipperClipper) Simplify(paths data.Paths, epsilon data.Micrometer) data.Paths {
	result, err := clipper.SimplifyPaths64(toClipperPaths(paths), float64(epsilon), true)
	if err != nil {
		return paths
	}
	return toDataPaths(result)
}

// Fill generates a line-fill pattern for part. The line spacing and wall
// overlap both come from pattern (section 4.4's Pattern entity).
func (c clipperClipper) Fill(part data.LayerPart, pattern Pattern) data.Paths {
	lines := pattern.Generate()
	if len(lines) == 0 {
		return nil
	}

	clipRegion := []data.LayerPart{part}
	if pattern.Overlap() != 0 {
		shrunk, ok := c.Offset(clipRegion, -pattern.Overlap())
		if ok {
			clipRegion = shrunk
		}
	}

	return c.ClipOpenPaths(lines, clipRegion)
}

func (c clipperClipper) ClipOpenPaths(lines data.Paths, clipRegion []data.LayerPart) data.Paths {
	if len(lines) == 0 || len(clipRegion) == 0 {
		return nil
	}

	_, openResult, err := clipper.BooleanOp64(clipper.Intersection, clipper.EvenOdd,
		nil, toClipperPaths(lines), toClipperPaths(partsToPaths(clipRegion)))
	if err != nil {
		return nil
	}

	return toDataPaths(openResult)
}
