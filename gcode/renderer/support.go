package renderer

import (
	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/gcode"
	"github.com/aligator/goslice/handler"
)

// Support renders the body and interface support material
// supportGeneratorModifier attaches to each layer as the "support" and
// "supportInterface" ([]data.LayerPart) attributes (section 4.6 steps 2-7),
// filling each region with a rectilinear pattern at its configured density.
type Support struct {
	options *data.Options
	cl      clip.Clipper
}

// NewSupport builds the support renderer.
func NewSupport(options *data.Options) *Support {
	return &Support{options: options, cl: clip.NewClipper()}
}

func (r *Support) Init(model handler.OptimizedModel) {}

func (r *Support) Render(b *gcode.Builder, layerNr int, maxLayer int, layer data.PartitionedLayer, z data.Micrometer, options *data.Options) error {
	ew := options.Printer.ExtrusionWidth

	if err := r.renderRegion(b, layer, z, "support", options.Print.Support.PatternSpacing.ToMicrometer(), ew, options); err != nil {
		return err
	}

	interfaceSpacing := data.Micrometer(float64(ew) * 100 / float64(maxI(options.Print.Support.InterfaceDensity, 1)))
	return r.renderRegion(b, layer, z, "supportInterface", interfaceSpacing, ew, options)
}

func (r *Support) renderRegion(b *gcode.Builder, layer data.PartitionedLayer, z data.Micrometer, key string, spacing, ew data.Micrometer, options *data.Options) error {
	parts, err := partsAttribute(layer, key)
	if err != nil || len(parts) == 0 {
		return err
	}

	var outline data.Paths
	for _, p := range parts {
		outline = append(outline, p.Outline())
		outline = append(outline, p.Holes()...)
	}
	bounds := data.BoundsOfPaths(outline)

	pattern := clip.RectilinearPattern(bounds, spacing, 45, 0)

	for _, part := range parts {
		for _, line := range r.cl.Fill(part, pattern) {
			if len(line) < 2 {
				continue
			}
			r.travel(b, z, line[0])
			for _, p := range line[1:] {
				b.Move(p.X(), p.Y(), z, true, 1, options.Print.MoveSpeed)
			}
			if options.Print.SupportWipeLength > 0 {
				r.wipeBack(b, z, line, options.Print.SupportWipeLength)
			}
		}
	}

	return nil
}

// wipeBack retraces line backward from its last point for wipeLen without
// extruding, then forces the next travel move to retract - support's
// analogue of section 4.8.3's support_wipe_len rule.
func (r *Support) wipeBack(b *gcode.Builder, z data.Micrometer, line data.Path, wipeLen data.Micrometer) {
	reversed := line.Reversed()
	n := len(reversed)
	remaining := wipeLen
	for i := 1; i < n && remaining > 0; i++ {
		p := reversed[i]
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

func (r *Support) travel(b *gcode.Builder, z data.Micrometer, to data.MicroPoint) {
	x, y, _ := b.Position()
	from := data.NewMicroPoint(x, y)
	if from == to {
		return
	}
	if from.Dist(to) >= r.options.Print.RetractMinTravel {
		b.Retract()
	}
	b.Move(to.X(), to.Y(), z, false, 0, 0)
	b.Unretract()
}

func partsAttribute(layer data.PartitionedLayer, key string) ([]data.LayerPart, error) {
	if layer == nil {
		return nil, nil
	}
	attr, ok := layer.Attributes()[key]
	if !ok {
		return nil, nil
	}
	parts, ok := attr.([]data.LayerPart)
	if !ok {
		return nil, errBadAttribute
	}
	return parts, nil
}

func maxI(a, b int) int {
	if a > b {
		return a
	}
	return b
}
