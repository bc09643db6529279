package modifier

import (
	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/handler"
)

type infillModifier struct {
	handler.Named
	options *data.Options
}

// NewInfillModifier builds, per island, the exposed surface, solid vs
// sparse infill regions and their clipped fill lines (section 4.5's
// Infill Builder). It must run after PerimeterModifier has attached
// "islands" to every layer.
func NewInfillModifier(options *data.Options) handler.LayerModifier {
	return &infillModifier{Named: handler.Named{Name: "Infill"}, options: options}
}

func (m *infillModifier) Init(_ handler.OptimizedModel) {}

func (m *infillModifier) Modify(layers []data.PartitionedLayer) error {
	cl := clip.NewClipper()
	ew := m.options.Printer.ExtrusionWidth
	floor := m.options.Print.FloorLayers
	roof := m.options.Print.RoofLayers
	density := m.options.Print.InfillPercent

	for i := range layers {
		islands, err := islandsOf(layers[i])
		if err != nil {
			return err
		}

		for _, island := range islands {
			if len(island.InfillInsets) == 0 {
				continue
			}

			m.buildExposedSurface(cl, island, layers, i, roof, ew)

			solid, sparse := m.splitSolidSparse(cl, island, layers, i, floor, roof, density)

			if len(solid) > 0 {
				bounds := data.BoundsOfPaths(partsToOutlines(solid))
				pattern := clip.RectilinearPattern(bounds, ew, float64(m.options.Print.InfillRotationDegree)+90, 0)
				island.SolidInfillLines = clipToPaths(cl, solid, pattern)
				if wide, ok := cl.Offset(solid, ew/8); ok {
					island.SolidInfillBoundaries = partsToOutlines(wide)
				}
			}

			if len(sparse) > 0 {
				bounds := data.BoundsOfPaths(partsToOutlines(sparse))
				pattern := sparsePattern(m.options, bounds, ew, i)
				lines := clipToPaths(cl, sparse, pattern)
				island.SparseInfillLines = filterShortLines(lines, m.options.Print.MinSparseInfillLength)
			}
		}
	}

	return nil
}

// buildExposedSurface implements section 4.5 step 1: the top region not
// covered by the next layer's islands, used for retract decisions.
func (m *infillModifier) buildExposedSurface(cl clip.Clipper, island *data.Island, layers []data.PartitionedLayer, i, roof int, ew data.Micrometer) {
	if roof <= 0 || i+1 >= len(layers) {
		island.ExposedSurface = partsToOutlines(island.InfillInsets)
		return
	}

	nextIslands, _ := islandsOf(layers[i+1])
	var coveringParts []data.LayerPart
	for _, next := range nextIslands {
		if !island.BoundingBox.Intersects(next.BoundingBox) {
			continue
		}
		if len(next.Insets) > 0 {
			coveringParts = append(coveringParts, next.Insets[0]...)
		}
	}

	remaining, ok := cl.Difference(island.InfillInsets, coveringParts)
	if !ok {
		return
	}
	shrunk, ok := cl.Offset(remaining, -ew)
	if ok {
		island.ExposedSurface = partsToOutlines(shrunk)
	}
}

// splitSolidSparse implements section 4.5 step 3's three cases.
func (m *infillModifier) splitSolidSparse(cl clip.Clipper, island *data.Island, layers []data.PartitionedLayer, i, floor, roof, density int) ([]data.LayerPart, []data.LayerPart) {
	infillParts := island.InfillInsets

	allSolid := density >= 100 || i < floor || i+roof >= len(layers)
	if allSolid {
		return infillParts, nil
	}

	if !m.options.Print.NeighborLayersForSolid {
		return nil, infillParts
	}

	if floor == 0 && roof == 0 {
		// no neighbor layer is in range, so nothing forces solid fill.
		return nil, infillParts
	}

	var clipRegions []data.LayerPart
	for k := -floor; k <= roof; k++ {
		if k == 0 {
			continue
		}
		idx := i + k
		if idx < 0 || idx >= len(layers) {
			continue
		}
		islands, _ := islandsOf(layers[idx])
		for _, other := range islands {
			if island.BoundingBox.Intersects(other.BoundingBox) && len(other.SolidInfillClip) > 0 {
				clipRegions = append(clipRegions, toParts(other.SolidInfillClip)...)
			}
		}
	}

	if len(clipRegions) == 0 {
		return infillParts, nil
	}

	intersection, ok := cl.Intersection(infillParts, clipRegions)
	if !ok {
		return infillParts, nil
	}

	solid, ok := cl.Difference(infillParts, intersection)
	if !ok {
		return infillParts, nil
	}
	sparse, ok := cl.Difference(infillParts, solid)
	if !ok {
		return solid, nil
	}
	return solid, sparse
}

func sparsePattern(options *data.Options, bounds data.Bounds, ew data.Micrometer, layerIndex int) clip.Pattern {
	rot := float64(options.Print.InfillRotationDegree)
	overlap := options.Print.InfillOverlapPercent

	switch options.Print.InfillPattern {
	case data.InfillGrid:
		return clip.GridPattern(bounds, ew, rot, overlap)
	case data.InfillTriangle:
		return clip.TrianglePattern(bounds, ew, rot, overlap)
	case data.InfillTriangle2:
		return clip.Triangle2Pattern(bounds, ew, rot, overlap, layerIndex)
	default:
		angle := rot
		if layerIndex%2 == 1 {
			angle += 90
		}
		return clip.RectilinearPattern(bounds, ew, angle, overlap)
	}
}

func clipToPaths(cl clip.Clipper, region []data.LayerPart, pattern clip.Pattern) data.Paths {
	if len(region) == 0 {
		return nil
	}
	var all data.Paths
	for _, part := range region {
		all = append(all, cl.Fill(part, pattern)...)
	}
	return all
}

func filterShortLines(lines data.Paths, minLen data.Micrometer) data.Paths {
	var out data.Paths
	for _, l := range lines {
		if l.Length() >= minLen {
			out = append(out, l)
		}
	}
	return out
}

func islandsOf(layer data.PartitionedLayer) ([]*data.Island, error) {
	attr, ok := layer.Attributes()["islands"]
	if !ok {
		return nil, nil
	}
	islands, ok := attr.([]*data.Island)
	if !ok {
		return nil, errNoAttribute
	}
	return islands, nil
}

func toParts(paths data.Paths) []data.LayerPart {
	var out []data.LayerPart
	for _, p := range paths {
		out = append(out, data.NewUnknownLayerPart(p, nil))
	}
	return out
}
