package modifier

import (
	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/handler"
)

// ironModifier implements section 4.5.2's top-surface ironing pass, a
// feature the teacher's own modifier set never built (GoSlice ships
// support, perimeters and infill only) but which spec.md's infill builder
// explicitly names. It is grounded on the same offset/difference/pattern
// idiom as infillModifier, just one step further: insets[0] shrunk by half
// an extrusion width, minus what the next layer already covers, filled
// with a dense rectilinear pass.
type ironModifier struct {
	handler.Named
	options *data.Options
}

// NewIronModifier builds the top-surface ironing paths IronDensity and
// IroningEnabled control.
func NewIronModifier(options *data.Options) handler.LayerModifier {
	return &ironModifier{Named: handler.Named{Name: "Iron"}, options: options}
}

func (m *ironModifier) Init(_ handler.OptimizedModel) {}

func (m *ironModifier) Modify(layers []data.PartitionedLayer) error {
	if !m.options.Print.IroningEnabled {
		return nil
	}

	cl := clip.NewClipper()
	ew := m.options.Printer.ExtrusionWidth

	for i := range layers {
		islands, err := islandsOf(layers[i])
		if err != nil {
			return err
		}

		for _, island := range islands {
			if len(island.Insets) == 0 || len(island.Insets[0]) == 0 {
				continue
			}

			shrunk, ok := cl.Offset(island.Insets[0], -ew/2)
			if !ok || len(shrunk) == 0 {
				continue
			}

			region := shrunk
			if i+1 < len(layers) {
				nextIslands, _ := islandsOf(layers[i+1])
				var coveringParts []data.LayerPart
				for _, next := range nextIslands {
					if island.BoundingBox.Intersects(next.BoundingBox) && len(next.Insets) > 0 {
						coveringParts = append(coveringParts, next.Insets[0]...)
					}
				}
				if len(coveringParts) > 0 {
					remaining, ok := cl.Difference(shrunk, coveringParts)
					if ok {
						region = remaining
					}
				}
			}

			if len(region) == 0 {
				continue
			}

			bounds := data.BoundsOfPaths(partsToOutlines(region))
			pattern := clip.RectilinearPattern(bounds, ew, float64(m.options.Print.InfillRotationDegree), 0)
			// density expressed as line spacing: denser ironing means
			// tighter line spacing, so the spacing is the extrusion
			// width divided by the density fraction (IronDensity/100).
			if m.options.Print.IronDensity > 0 {
				spacing := data.Micrometer(int64(ew) * 100 / int64(m.options.Print.IronDensity))
				pattern = clip.RectilinearPattern(bounds, spacing, float64(m.options.Print.InfillRotationDegree), 0)
			}

			island.IronPaths = clipToPaths(cl, region, pattern)
		}
	}

	return nil
}
