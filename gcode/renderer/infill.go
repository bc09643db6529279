package renderer

import (
	"math"

	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/gcode"
	"github.com/aligator/goslice/gcode/comb"
	"github.com/aligator/goslice/handler"
)

// Infill renders each island's solid and sparse fill lines, plus the
// optional top-surface ironing pass (section 4.8.3).
type Infill struct {
	options *data.Options
}

// NewInfill builds the fill-line renderer.
func NewInfill(options *data.Options) *Infill {
	return &Infill{options: options}
}

func (r *Infill) Init(model handler.OptimizedModel) {}

func (r *Infill) Render(b *gcode.Builder, layerNr int, maxLayer int, layer data.PartitionedLayer, z data.Micrometer, options *data.Options) error {
	islands, err := islandsOf(layer)
	if err != nil || len(islands) == 0 {
		return err
	}

	for _, island := range islands {
		router := comb.NewCombing(island.OuterCombPaths)
		if options.Print.SmoothInfillEnabled {
			r.renderSmoothed(b, router, z, island, island.SolidInfillLines, options)
		} else {
			r.renderLines(b, router, z, island.SolidInfillLines, options)
		}
		r.renderLines(b, router, z, island.SparseInfillLines, options)
		if options.Print.IroningEnabled {
			r.renderIroning(b, router, z, island.IronPaths, options)
		}
	}

	return nil
}

// renderLines is section 4.8.3's "Simple" strategy: repeatedly pick the
// nearest remaining line's start point, travel to it (triggering combing
// and retract decisions), then extrude it in full. Used for sparse infill
// and, when smoothing is disabled, solid infill too.
func (r *Infill) renderLines(b *gcode.Builder, router comb.Combing, z data.Micrometer, lines data.Paths, options *data.Options) {
	remaining := append(data.Paths{}, lines...)
	for len(remaining) > 0 {
		x, y, _ := b.Position()
		from := data.NewMicroPoint(x, y)
		idx := nearestLineStart(remaining, from)
		line := remaining[idx]
		remaining = append(remaining[:idx], remaining[idx+1:]...)
		if len(line) < 2 {
			continue
		}

		r.travelAndExtrude(b, router, z, line, options)
	}
}

func (r *Infill) travelAndExtrude(b *gcode.Builder, router comb.Combing, z data.Micrometer, line data.Path, options *data.Options) {
	x, y, _ := b.Position()
	from := data.NewMicroPoint(x, y)

	if from.Dist(line[0]) >= options.Print.RetractThreshold {
		if from.Dist(line[0]) >= options.Print.RetractMinTravel {
			b.Retract()
		}
		route, forceRetract := router.Route(from, line[0])
		if forceRetract {
			b.Retract()
		}
		for _, p := range route[1:] {
			b.Move(p.X(), p.Y(), z, false, 0, 0)
		}
		b.Unretract()
	} else {
		b.Move(line[0].X(), line[0].Y(), z, false, 0, 0)
	}

	for _, p := range line[1:] {
		b.Move(p.X(), p.Y(), z, true, 1, 0)
	}
}

// renderSmoothed implements section 4.8.3's "Smoothed solid infill": after
// extruding the nearest line, it looks at whichever remaining line sits
// closest to the point it just finished at. If that line is an
// opposite-direction neighbor spaced about one extrusion width away, it is
// either merged into a single smoothed pass (both lines very short) or
// joined by a short connecting bead (the usual case); otherwise it is left
// for the next iteration's nearest-line pick, section 4.8.3's "Normal"
// case.
func (r *Infill) renderSmoothed(b *gcode.Builder, router comb.Combing, z data.Micrometer, island *data.Island, lines data.Paths, options *data.Options) {
	remaining := append(data.Paths{}, lines...)
	ew := float64(options.Printer.ExtrusionWidth.ToMillimeter())
	spacingTolerance := ew / 8
	smoothThreshold := ew * 2 * float64(options.Print.InfillSmoothThresholdPercent) / 100
	shorten := options.Print.InfillShorteningDistance
	flowRatio := 1 - 2*float64(options.Print.InfillOverlapPercent)/100

	for len(remaining) > 0 {
		x, y, _ := b.Position()
		from := data.NewMicroPoint(x, y)
		idx := nearestLineStart(remaining, from)
		line := remaining[idx]
		remaining = append(remaining[:idx], remaining[idx+1:]...)
		if len(line) < 2 {
			continue
		}

		r.travelAndExtrude(b, router, z, line, options)

		if len(remaining) == 0 {
			continue
		}

		x, y, _ = b.Position()
		current := data.NewMicroPoint(x, y)
		nIdx, spacing := nearestLineByEndpoint(remaining, current)
		if nIdx < 0 {
			continue
		}
		next := remaining[nIdx]
		spacingMM := float64(spacing.ToMillimeter())
		if len(next) < 2 || math.Abs(spacingMM-ew) > spacingTolerance {
			continue
		}
		if !oppositeDirection(line, next) {
			continue
		}
		if island != nil && !island.ConstrainingEdge.Contains(current) {
			continue
		}

		lenCurr := float64(line.Length().ToMillimeter())
		lenNext := float64(next.Length().ToMillimeter())

		if lenCurr < smoothThreshold && lenNext < smoothThreshold {
			// Smooth: connect the two short segments' midpoints with one
			// flow-adjusted move instead of extruding each separately.
			midNext := midpoint(next)
			feed := options.Print.MoveSpeed
			if options.Print.LayerSpeed < feed {
				feed = options.Print.LayerSpeed
			}
			targetLenMM := (lenCurr + lenNext) / 2
			moveLenMM := float64(current.Dist(midNext).ToMillimeter())
			adjust := 1.0
			if moveLenMM > 0 {
				adjust = targetLenMM / moveLenMM
			}
			b.Move(midNext.X(), midNext.Y(), z, true, adjust, feed)
			remaining[nIdx] = restAfterMidpoint(next, midNext)
		} else if shorten > 0 {
			// Connect: extrude from the end of the current line to the point
			// InfillShorteningDistance along the next line at a reduced flow
			// ratio, leaving the rest of the next line for the next pick.
			// The current line itself is not shortened.
			trimmedNext, keptNext := cutFromStart(next, shorten)
			if len(trimmedNext) == 0 || len(keptNext) < 2 {
				continue
			}
			joint := trimmedNext[len(trimmedNext)-1]
			b.Move(joint.X(), joint.Y(), z, true, flowRatio, 0)
			remaining[nIdx] = keptNext
		}
	}
}

func (r *Infill) renderIroning(b *gcode.Builder, router comb.Combing, z data.Micrometer, lines data.Paths, options *data.Options) {
	for _, line := range lines {
		if len(line) < 2 {
			continue
		}
		x, y, _ := b.Position()
		from := data.NewMicroPoint(x, y)
		route, forceRetract := router.Route(from, line[0])
		if forceRetract {
			b.Retract()
		}
		for _, p := range route {
			b.Move(p.X(), p.Y(), z, false, 0, 0)
		}
		// ironing lays a very thin, low-flow skim coat over the top
		// surface rather than a full bead.
		for _, p := range line[1:] {
			b.Move(p.X(), p.Y(), z, true, 0.1, options.Print.LayerSpeed*2)
		}
	}
}

func nearestLineStart(lines data.Paths, from data.MicroPoint) int {
	best := 0
	var bestDist data.Micrometer = -1
	for i, l := range lines {
		if len(l) == 0 {
			continue
		}
		d := from.Dist(l[0])
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// nearestLineByEndpoint returns the index of the line in lines whose
// closest endpoint lies nearest to from, and that distance - the spacing
// between the just-finished line and its candidate smoothing neighbor.
func nearestLineByEndpoint(lines data.Paths, from data.MicroPoint) (int, data.Micrometer) {
	best := -1
	var bestDist data.Micrometer = -1
	for i, l := range lines {
		if len(l) == 0 {
			continue
		}
		for _, end := range [2]data.MicroPoint{l[0], l[len(l)-1]} {
			d := from.Dist(end)
			if bestDist < 0 || d < bestDist {
				bestDist = d
				best = i
			}
		}
	}
	return best, bestDist
}

func oppositeDirection(a, b data.Path) bool {
	if len(a) < 2 || len(b) < 2 {
		return false
	}
	da := a[len(a)-1].Sub(a[0])
	db := b[len(b)-1].Sub(b[0])
	return da.Dot(db) < 0
}

func midpoint(line data.Path) data.MicroPoint {
	return line[0].Add(line[len(line)-1]).Mul(0.5)
}

// restAfterMidpoint returns the portion of line from its midpoint to its
// end, so the smoothed half that was already traversed isn't extruded
// again on a later pass.
func restAfterMidpoint(line data.Path, mid data.MicroPoint) data.Path {
	_, kept := cutFromStart(line, line[0].Dist(mid))
	if len(kept) < 2 {
		return data.Path{mid, line[len(line)-1]}
	}
	return kept
}
