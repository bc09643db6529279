// Package modifier implements the S3-S7 LayerModifiers: shells and gap
// fill (PerimeterModifier), infill and ironing (InfillModifier,
// IronModifier), support (supportDetectorModifier/supportGeneratorModifier
// in support.go) and brim/raft (BrimModifier, RaftModifier).
package modifier

import (
	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/handler"
)

type perimeterModifier struct {
	handler.Named
	options *data.Options
	derived data.Derived
}

// NewPerimeterModifier builds the islands of every layer: it takes the
// LayerParts S2 produced, builds the inset/shell stack, the derived
// boundary/comb paths and the inset-gap fill, and stores the result as the
// "islands" attribute ([]*data.Island) - section 4.2's "Island
// construction" plus all of section 4.3's Inset Builder.
func NewPerimeterModifier(options *data.Options) handler.LayerModifier {
	return &perimeterModifier{
		Named:   handler.Named{Name: "Perimeter"},
		options: options,
		derived: data.ComputeDerived(options),
	}
}

func (m *perimeterModifier) Init(_ handler.OptimizedModel) {}

func (m *perimeterModifier) Modify(layers []data.PartitionedLayer) error {
	cl := clip.NewClipper()
	ew := m.options.Printer.ExtrusionWidth
	shells := m.options.Print.InsetCount
	edgeOffset := data.Micrometer(m.derived.EdgeOffset * data.ScaleConstant)
	edgeWidth := data.Micrometer(m.derived.EdgeWidth * data.ScaleConstant)

	for i, layer := range layers {
		parts := layer.LayerParts()
		islands := make([]*data.Island, 0, len(parts))

		for _, part := range parts {
			island := buildIsland(cl, part, shells, ew, edgeOffset, edgeWidth, m.options)
			if island != nil {
				islands = append(islands, island)
			}
		}

		newLayer := newExtendedLayer(layer)
		newLayer.Attributes()["islands"] = islands
		layers[i] = newLayer
	}

	return nil
}

func buildIsland(cl clip.Clipper, part data.LayerPart, shells int, ew, edgeOffset, edgeWidth data.Micrometer, options *data.Options) *data.Island {
	single := []data.LayerPart{part}

	inset0, ok := cl.Offset(single, edgeOffset)
	if !ok || len(inset0) == 0 {
		return nil
	}

	island := &data.Island{
		CombPaths:   partsToOutlines(inset0),
		BoundingBox: data.BoundsOfPaths(partsToOutlines(inset0)),
	}

	island.Insets = append(island.Insets, inset0)

	current := inset0
	for k := 1; k < shells; k++ {
		// offset in by one and a half extrusion widths, then back out by
		// half a width: each shell lands one extrusion width inside the
		// previous one and slivers thinner than a width disappear,
		// matching the "overlap-removal ratio 1.0" note of section 4.3.
		shrunk, ok := cl.Offset(current, -ew-ew/2)
		if !ok || len(shrunk) == 0 {
			break
		}
		widened, ok := cl.Offset(shrunk, ew/2)
		if ok {
			shrunk = widened
		}
		island.Insets = append(island.Insets, shrunk)
		current = shrunk
	}

	lastShell := island.Insets[len(island.Insets)-1]
	infillDelta := data.Micrometer((0.5 - float64(options.Print.InfillOverlapPercent)/100) * float64(ew))
	infillInsets, ok := cl.Offset(lastShell, -infillDelta)
	if ok {
		island.InfillInsets = infillInsets
	}

	if boundaries, ok := cl.Offset(inset0, ew/8); ok {
		island.Boundaries = partsToOutlines(boundaries)
	}

	outerDelta := data.Micrometer(edgeWidth/2 - edgeOffset)
	if outer, ok := cl.Offset(inset0, outerDelta); ok {
		island.OuterBoundaries = partsToOutlines(outer)
		if combOuter, ok := cl.Offset(outer, ew/8); ok {
			island.OuterCombPaths = partsToOutlines(combOuter)
		}
	}

	clipOffset := data.Micrometer(int64(ew) * int64(options.Print.SolidInfillClipOffsetPercent) / 100)
	if clipOffset == 0 {
		island.SolidInfillClip = partsToOutlines(island.InfillInsets)
	} else if clipped, ok := cl.Offset(island.InfillInsets, clipOffset); ok {
		island.SolidInfillClip = partsToOutlines(clipped)
	}

	if constrain, ok := cl.Offset(island.InfillInsets, -ew/8); ok {
		island.ConstrainingEdge = partsToOutlines(constrain)
	}

	if options.Print.FillThresholdPercent > 0 {
		island.InsetGaps = buildInsetGaps(cl, island.Insets, ew, options)
	}

	if options.Print.AlignSeams {
		alignSeams(island, options.Print.AlignInteriorSeams)
	}

	return island
}

// buildInsetGaps extracts the thin uncovered strip between each pair of
// adjacent shells, section 4.3's "Inset gap fill".
func buildInsetGaps(cl clip.Clipper, insets [][]data.LayerPart, ew data.Micrometer, options *data.Options) []data.Paths {
	threshold := float64(options.Print.FillThresholdPercent) / 100
	overlap := float64(options.Print.InfillOverlapPercent) / 100

	var gaps []data.Paths
	for k := 0; k+1 < len(insets); k++ {
		if len(insets[k]) == 0 || len(insets[k+1]) == 0 {
			gaps = append(gaps, nil)
			continue
		}

		reversedNext := reverseParts(insets[k+1])
		union, ok := cl.Union(insets[k], reversedNext)
		if !ok {
			gaps = append(gaps, nil)
			continue
		}

		in := data.Micrometer((0.5 + threshold/2) * float64(ew))
		out := data.Micrometer((overlap + threshold/2) * float64(ew))

		shrunk, ok := cl.Offset(union, -in)
		if !ok {
			gaps = append(gaps, nil)
			continue
		}
		widened, ok := cl.Offset(shrunk, out)
		if !ok {
			gaps = append(gaps, nil)
			continue
		}

		gaps = append(gaps, partsToOutlines(widened))
	}
	return gaps
}

func reverseParts(parts []data.LayerPart) []data.LayerPart {
	out := make([]data.LayerPart, len(parts))
	for i, p := range parts {
		out[i] = data.NewUnknownLayerPart(p.Outline().Reversed(), reverseHoles(p.Holes()))
	}
	return out
}

func reverseHoles(holes data.Paths) data.Paths {
	out := make(data.Paths, len(holes))
	for i, h := range holes {
		out[i] = h.Reversed()
	}
	return out
}

// alignSeams rotates the outline of every inset part of island so its
// point-sum-minimum point becomes the start point (section 4.3's seam
// alignment rule); holes keep their start point. Shell 0's seam is always
// aligned; interior shells only if alignInterior is set.
func alignSeams(island *data.Island, alignInterior bool) {
	for shellIdx, shell := range island.Insets {
		if shellIdx > 0 && !alignInterior {
			continue
		}
		for i, part := range shell {
			outline := part.Outline()
			rotated := outline.StartAt(outline.LowestSumIndex())
			shell[i] = data.NewUnknownLayerPart(rotated, part.Holes())
		}
	}
}

func partsToOutlines(parts []data.LayerPart) data.Paths {
	var out data.Paths
	for _, p := range parts {
		out = append(out, p.Outline())
		out = append(out, p.Holes()...)
	}
	return out
}
