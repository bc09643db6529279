package renderer

import (
	"math"

	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/gcode"
	"github.com/aligator/goslice/gcode/comb"
	"github.com/aligator/goslice/handler"
)

// Perimeter renders each island's shells, outer-to-inner or inner-to-outer
// per PrintOptions.OutsideFirst, with seam picking, combed travel and
// retraction (section 4.8.1/4.8.2).
type Perimeter struct {
	options *data.Options
	seam    comb.SeamPicker
}

// NewPerimeter builds the shell renderer.
func NewPerimeter(options *data.Options) *Perimeter {
	return &Perimeter{options: options, seam: comb.NewSeamPicker(options.Print.AlignInteriorSeams)}
}

func (r *Perimeter) Init(model handler.OptimizedModel) {}

func (r *Perimeter) Render(b *gcode.Builder, layerNr int, maxLayer int, layer data.PartitionedLayer, z data.Micrometer, options *data.Options) error {
	islands, err := islandsOf(layer)
	if err != nil || len(islands) == 0 {
		return err
	}

	// Layer 0 always emits outside-in, section 4.8.1.
	outsideFirst := options.Print.OutsideFirst || layerNr == 0

	remaining := append([]*data.Island{}, islands...)
	for len(remaining) > 0 {
		x, y, _ := b.Position()
		from := data.NewMicroPoint(x, y)
		idx := nearestIslandIndex(remaining, from)
		island := remaining[idx]
		remaining = append(remaining[:idx], remaining[idx+1:]...)

		router := comb.NewCombing(island.OuterCombPaths)

		if options.Print.StrictShellOrder {
			r.renderStrict(b, router, z, island, outsideFirst, options)
		} else {
			r.renderWeighted(b, router, z, island, outsideFirst, options)
		}

		for _, gaps := range island.InsetGaps {
			for _, gap := range gaps {
				if len(gap) == 0 {
					continue
				}
				r.travelTo(b, router, z, gap[0], island, options)
				r.extrudeClosedGap(b, z, gap)
			}
		}
	}

	return nil
}

// shellIndices returns shell indices inside-out (default) or, when
// outsideFirst is set, outside-in - used by renderStrict, the
// PrintOptions.StrictShellOrder strategy of section 4.8.1.
func shellIndices(n int, outsideFirst bool) []int {
	out := make([]int, n)
	if outsideFirst {
		for i := 0; i < n; i++ {
			out[i] = i
		}
		return out
	}
	for i := 0; i < n; i++ {
		out[i] = n - 1 - i
	}
	return out
}

// renderStrict emits every loop and hole of shell index 0..n-1 (or the
// reverse, per outsideFirst) before moving to the next shell index, picking
// the nearest remaining loop within each index - section 4.8.1's "strict
// order" alternative, toggled on by PrintOptions.StrictShellOrder.
func (r *Perimeter) renderStrict(b *gcode.Builder, router comb.Combing, z data.Micrometer, island *data.Island, outsideFirst bool, options *data.Options) {
	order := shellIndices(len(island.Insets), outsideFirst)
	for _, shellIdx := range order {
		shell := island.Insets[shellIdx]
		if len(shell) == 0 {
			continue
		}

		var loops data.Paths
		for _, part := range shell {
			loops = append(loops, part.Outline())
			loops = append(loops, part.Holes()...)
		}

		for len(loops) > 0 {
			x, y, _ := b.Position()
			from := data.NewMicroPoint(x, y)
			idx := nearestLoopIndex(loops, from)
			loop := loops[idx]
			loops = append(loops[:idx], loops[idx+1:]...)
			r.renderLoop(b, router, z, loop, shellIdx, island, options)
		}
	}
}

// renderWeighted is section 4.8.1's default strategy: at each step, every
// remaining loop across every shell index is a candidate, scored by its
// distance to the current position weighted by weightFor, and the lowest
// score wins. This interleaves shells instead of finishing one index before
// starting the next, minimizing travel across an island with an irregular
// footprint.
func (r *Perimeter) renderWeighted(b *gcode.Builder, router comb.Combing, z data.Micrometer, island *data.Island, outsideFirst bool, options *data.Options) {
	shells := len(island.Insets)

	type loopCandidate struct {
		shellIdx int
		loop     data.Path
	}

	var candidates []loopCandidate
	for shellIdx, shell := range island.Insets {
		for _, part := range shell {
			candidates = append(candidates, loopCandidate{shellIdx, part.Outline()})
			for _, hole := range part.Holes() {
				candidates = append(candidates, loopCandidate{shellIdx, hole})
			}
		}
	}

	for len(candidates) > 0 {
		x, y, _ := b.Position()
		from := data.NewMicroPoint(x, y)

		bestIdx := -1
		var bestScore float64
		for i, c := range candidates {
			_, distSq := c.loop.NearestPointIndex(from)
			score := math.Sqrt(float64(distSq)) * weightFor(c.shellIdx, shells, outsideFirst)
			if bestIdx < 0 || score < bestScore {
				bestScore = score
				bestIdx = i
			}
		}

		c := candidates[bestIdx]
		candidates = append(candidates[:bestIdx], candidates[bestIdx+1:]...)
		r.renderLoop(b, router, z, c.loop, c.shellIdx, island, options)
	}
}

// weightFor biases the weighted shell-ordering score toward the preferred
// direction: exterior shells first when outsideFirst, interior otherwise,
// section 4.8.1's "(shells-i)+1" / "i+1" multiplier.
func weightFor(shellIdx, shells int, outsideFirst bool) float64 {
	if outsideFirst {
		return float64(shellIdx + 1)
	}
	return float64(shells - shellIdx + 1)
}

func nearestIslandIndex(islands []*data.Island, from data.MicroPoint) int {
	best := -1
	var bestDist int64 = -1
	for i, isl := range islands {
		if len(isl.Insets) == 0 {
			continue
		}
		for _, part := range isl.Insets[0] {
			_, d := part.Outline().NearestPointIndex(from)
			if bestDist < 0 || d < bestDist {
				bestDist = d
				best = i
			}
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

func nearestLoopIndex(loops data.Paths, from data.MicroPoint) int {
	best := 0
	var bestDist int64 = -1
	for i, l := range loops {
		_, d := l.NearestPointIndex(from)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

// renderLoop emits generate_closed_path_moves (section 4.8.2) for one
// closed shell loop: seam pick, travel to the start, shell-clip/coast tail
// trim, the anchor dot, the extruding pass, the coast pass, then a retract
// (a moving retract if enabled, else a plain one) and finally a wipe if
// WipeLength is set.
func (r *Perimeter) renderLoop(b *gcode.Builder, router comb.Combing, z data.Micrometer, loop data.Path, shellIdx int, island *data.Island, options *data.Options) {
	if len(loop) < 2 {
		return
	}

	x, y, _ := b.Position()
	from := data.NewMicroPoint(x, y)
	loop = r.seam.Pick(loop, shellIdx, from)

	r.travelTo(b, router, z, loop[0], island, options)

	ew := options.Printer.ExtrusionWidth
	closed := append(data.Path{}, loop...)
	closed = append(closed, loop[0])

	shellClip := data.Micrometer(int64(ew) * int64(options.Print.ShellClipPercent) / 100)
	extrudePath := closed
	if shellClip > 0 && closed.Length() > shellClip {
		extrudePath, _ = cutFromEnd(closed, shellClip)
	}

	var coastPath data.Path
	if options.Print.CoastEnabled && options.Print.CoastLength > 0 && extrudePath.Length() > options.Print.CoastLength {
		extrudePath, coastPath = cutFromEnd(extrudePath, options.Print.CoastLength)
	}

	if options.Print.AnchorEnabled && extrudePath.Length() > 0 {
		// stationary anchor dot before the loop gets moving, section 4.8.2
		// step 5 - ExtrudeStationary is required here because Move with a
		// zero-length XY delta always produces a zero extruder delta.
		anchorLen := float64(ew.ToMillimeter()) / 2 * math.Pi / 4
		b.ExtrudeStationary(anchorLen, options.Print.MoveSpeed/4)
	}

	r.extrudeLoop(b, z, extrudePath)

	if len(coastPath) > 1 {
		// the coast pass: travel without extruding, no retract inserted.
		for _, p := range coastPath[1:] {
			b.Move(p.X(), p.Y(), z, false, 0, 0)
		}
	}

	if options.Print.MovingRetractEnabled {
		r.movingRetract(b, z, closed, options)
	} else {
		b.Retract()
	}

	if options.Print.WipeLength > 0 {
		r.wipe(b, z, closed, options)
	}
}

func (r *Perimeter) extrudeLoop(b *gcode.Builder, z data.Micrometer, path data.Path) {
	for _, p := range path[1:] {
		b.Move(p.X(), p.Y(), z, true, 1, 0)
	}
}

// extrudeClosedGap extrudes an inset-gap fill path as a closed loop
// (wrapping back to its own start), matching the stored gap geometry which
// carries no separate closing point.
func (r *Perimeter) extrudeClosedGap(b *gcode.Builder, z data.Micrometer, loop data.Path) {
	n := len(loop)
	for i := 1; i <= n; i++ {
		p := loop[i%n]
		b.Move(p.X(), p.Y(), z, true, 1, 0)
	}
}

// movingRetract continues along closed past its own start, pulling back
// Filament.RetractionLength of filament distributed proportionally over the
// physical distance implied by MovingRetractSpeed vs. the layer's extrude
// speed - section 4.8.2 step 7.
func (r *Perimeter) movingRetract(b *gcode.Builder, z data.Micrometer, closed data.Path, options *data.Options) {
	retractMM := float64(options.Filament.RetractionLength)
	if retractMM <= 0 || len(closed) < 2 {
		b.Retract()
		return
	}

	speed := options.Print.MovingRetractSpeed
	if speed <= 0 {
		speed = options.Print.RetractSpeed
	}
	feedRate := float64(options.Print.LayerSpeed)
	mrSpeed := float64(speed)
	if mrSpeed <= 0 {
		mrSpeed = feedRate
	}

	targetDist := data.Millimeter(retractMM * feedRate / mrSpeed).ToMicrometer()
	if targetDist <= 0 {
		b.Retract()
		return
	}

	n := len(closed)
	remainingDist := targetDist
	remainingRetract := retractMM
	for i := 1; i < n*2 && remainingDist > 0 && remainingRetract > 0; i++ {
		p := closed[i%n]
		x, y, _ := b.Position()
		from := data.NewMicroPoint(x, y)
		segLen := from.Dist(p)
		if segLen == 0 {
			continue
		}

		step := segLen
		if step > remainingDist {
			step = remainingDist
		}
		target := p
		if step < segLen {
			target = from.Add(p.Sub(from).Mul(float64(step) / float64(segLen)))
		}

		pullback := retractMM * float64(step) / float64(targetDist)
		if pullback > remainingRetract {
			pullback = remainingRetract
		}

		b.MoveRetracting(target.X(), target.Y(), z, pullback, speed)
		remainingRetract -= pullback
		remainingDist -= step
	}

	if remainingRetract > 0 {
		b.Retract()
	} else {
		b.MarkRetracted()
	}
}

// wipe travels wipe_len further along closed past the current position,
// without extruding, then forces the next travel move to retract - section
// 4.8.2 step 8.
func (r *Perimeter) wipe(b *gcode.Builder, z data.Micrometer, closed data.Path, options *data.Options) {
	wipeLen := options.Print.WipeLength
	if wipeLen <= 0 || len(closed) < 2 {
		return
	}

	n := len(closed)
	remaining := wipeLen
	for i := 1; i < n*2 && remaining > 0; i++ {
		p := closed[i%n]
		x, y, _ := b.Position()
		from := data.NewMicroPoint(x, y)
		segLen := from.Dist(p)
		if segLen == 0 {
			continue
		}

		if segLen > remaining {
			p = from.Add(p.Sub(from).Mul(float64(remaining) / float64(segLen)))
			b.Move(p.X(), p.Y(), z, false, 0, 0)
			remaining = 0
			break
		}

		b.Move(p.X(), p.Y(), z, false, 0, 0)
		remaining -= segLen
	}

	b.ForceRetractNext()
}

// travelTo moves the nozzle from its current position to "to", inserting a
// retract when any of section 4.8.4's conditions hold: a prior operation
// asked for a forced retract, the router itself couldn't avoid a crossing,
// the straight line crosses the island's boundaries or exposed surface, or
// the distance alone exceeds RetractMinTravel.
func (r *Perimeter) travelTo(b *gcode.Builder, router comb.Combing, z data.Micrometer, to data.MicroPoint, island *data.Island, options *data.Options) {
	x, y, _ := b.Position()
	from := data.NewMicroPoint(x, y)
	if from == to {
		return
	}

	route, forceFromCombing := router.Route(from, to)

	crossesBoundary := island != nil && island.Boundaries.Crosses(from, to)
	crossesExposed := island != nil && island.ExposedSurface.Crosses(from, to)

	if b.ShouldForceRetract() || forceFromCombing || crossesBoundary || crossesExposed ||
		from.Dist(to) >= options.Print.RetractMinTravel {
		b.Retract()
	}

	for _, p := range route[1:] {
		b.Move(p.X(), p.Y(), z, false, 0, 0)
	}

	b.Unretract()
}

func islandsOf(layer data.PartitionedLayer) ([]*data.Island, error) {
	attr, ok := layer.Attributes()["islands"]
	if !ok {
		return nil, nil
	}
	islands, ok := attr.([]*data.Island)
	if !ok {
		return nil, nil
	}
	return islands, nil
}
