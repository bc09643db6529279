package clip

import (
	"github.com/aligator/goslice/data"
)

// Pattern generates the raw (unclipped) infill geometry for one layer part,
// section 4.4's Pattern entity. Generate returns open paths which still
// need clipping to the target region's boundary — Clipper.Fill does both
// steps together.
type Pattern interface {
	// Generate returns the raw scanline/crosshatch geometry covering
	// bounds, before clipping.
	Generate() data.Paths

	// Overlap is the distance (in micrometers) Clipper.Fill shrinks the
	// target region by before clipping the lines to it. NewLinePattern sets
	// it to lineWidth*(100-overlapPercent)/100, so a higher overlap percent
	// lets the fill reach further toward the wall.
	Overlap() data.Micrometer
}

// linePattern is the teacher's "simple parallel lines" infill generator
// (originally getLinearFill in clip/clipper.go), generalized to cover grid,
// triangle, triangle2 and rectilinear patterns (section 4.4) by varying the
// set of scan angles.
type linePattern struct {
	bounds    data.Bounds
	lineWidth data.Micrometer
	angles    []float64
	overlap   data.Micrometer
}

// NewLinePattern builds a Pattern that fills bounds with parallel lines at
// lineWidth spacing, rotated by each angle in turn (one angle draws
// rectilinear fill, two perpendicular angles draw a grid, three at 60
// degrees draw a triangle pattern, per section 4.4).
func NewLinePattern(bounds data.Bounds, lineWidth data.Micrometer, angles []float64, overlapPercent int) Pattern {
	overlap := data.Micrometer(int64(lineWidth) * int64(100-overlapPercent) / 100)
	return &linePattern{bounds: bounds, lineWidth: lineWidth, angles: angles, overlap: overlap}
}

func (p *linePattern) Overlap() data.Micrometer { return p.overlap }

// Generate builds scanlines for every configured angle, each rotated about
// the bounds center so a multi-angle pattern (grid, triangle) still covers
// the same footprint regardless of orientation.
func (p *linePattern) Generate() data.Paths {
	if p.lineWidth <= 0 {
		return nil
	}

	center := data.NewMicroPoint(
		(p.bounds.Min.X()+p.bounds.Max.X())/2,
		(p.bounds.Min.Y()+p.bounds.Max.Y())/2,
	)

	// radius large enough that rotated scanlines still span the
	// rotated bounding box.
	dx := int64(p.bounds.Max.X() - p.bounds.Min.X())
	dy := int64(p.bounds.Max.Y() - p.bounds.Min.Y())
	radius := data.Micrometer(isqrt(dx*dx+dy*dy)/2 + int64(p.lineWidth))

	var all data.Paths
	for _, angle := range p.angles {
		all = append(all, p.scanlines(center, radius, angle)...)
	}
	return all
}

func (p *linePattern) scanlines(center data.MicroPoint, radius data.Micrometer, angleRad float64) data.Paths {
	var lines data.Paths
	numLine := 0
	for x := -radius; x <= radius; x += p.lineWidth {
		var a, b data.MicroPoint
		if numLine%2 == 1 {
			a = data.NewMicroPoint(x, radius)
			b = data.NewMicroPoint(x, -radius)
		} else {
			a = data.NewMicroPoint(x, -radius)
			b = data.NewMicroPoint(x, radius)
		}
		lines = append(lines, data.Path{a.Rotate(angleRad).Add(center), b.Rotate(angleRad).Add(center)})
		numLine++
	}
	return lines
}

// isqrt is an integer square root (Newton's method) returning
// floor(sqrt(n)), used only to size the scanline generator's radius - the
// caller adds one line width of margin on top, which covers the truncation.
func isqrt(n int64) int64 {
	if n <= 0 {
		return 0
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}

// GridPattern returns the two-angle crosshatch pattern (section 4.4's
// "grid" infill type): perpendicular lines at 45 and 135 degrees.
func GridPattern(bounds data.Bounds, lineWidth data.Micrometer, rotationDeg float64, overlapPercent int) Pattern {
	base := data.ToRadians(rotationDeg)
	return NewLinePattern(bounds, lineWidth, []float64{base + data.ToRadians(45), base + data.ToRadians(135)}, overlapPercent)
}

// TrianglePattern returns the three-angle pattern (section 4.4's
// "triangle" infill type): lines at 0, 60 and 120 degrees relative to
// rotationDeg.
func TrianglePattern(bounds data.Bounds, lineWidth data.Micrometer, rotationDeg float64, overlapPercent int) Pattern {
	base := data.ToRadians(rotationDeg)
	return NewLinePattern(bounds, lineWidth, []float64{base, base + data.ToRadians(60), base + data.ToRadians(120)}, overlapPercent)
}

// Triangle2Pattern is the alternate triangle infill (section 4.4's
// "triangle2"): like TrianglePattern but only two of the three angles are
// drawn on any given layer, alternating by layerIndex so consecutive layers
// still combine into a full triangular lattice once stacked.
func Triangle2Pattern(bounds data.Bounds, lineWidth data.Micrometer, rotationDeg float64, overlapPercent int, layerIndex int) Pattern {
	base := data.ToRadians(rotationDeg)
	all := []float64{base, base + data.ToRadians(60), base + data.ToRadians(120)}
	pair := [][2]int{{0, 1}, {1, 2}, {2, 0}}[layerIndex%3]
	return NewLinePattern(bounds, lineWidth, []float64{all[pair[0]], all[pair[1]]}, overlapPercent)
}

// RectilinearPattern returns the single-angle pattern used for solid
// top/bottom fill and for the default sparse infill type (section 4.4/4.5).
func RectilinearPattern(bounds data.Bounds, lineWidth data.Micrometer, rotationDeg float64, overlapPercent int) Pattern {
	return NewLinePattern(bounds, lineWidth, []float64{data.ToRadians(rotationDeg)}, overlapPercent)
}
