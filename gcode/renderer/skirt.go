package renderer

import (
	"github.com/aligator/goslice/clip"
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/gcode"
	"github.com/aligator/goslice/handler"
)

// Skirt draws SkirtOptions.Lines priming loops around layer 0's footprint
// before the object itself, offset out from it by SkirtOptions.Distance -
// a feature spec.md names but the teacher's own modifier set never built;
// it is rendered directly rather than stored as a layer attribute since it
// depends only on layer 0's footprint, not on any other modifier's output.
type Skirt struct {
	options *data.Options
	cl      clip.Clipper
}

// NewSkirt builds the skirt renderer.
func NewSkirt(options *data.Options) *Skirt {
	return &Skirt{options: options, cl: clip.NewClipper()}
}

func (r *Skirt) Init(model handler.OptimizedModel) {}

func (r *Skirt) Render(b *gcode.Builder, layerNr int, maxLayer int, layer data.PartitionedLayer, z data.Micrometer, options *data.Options) error {
	if layerNr != 0 || !options.Print.Skirt.Enabled {
		return nil
	}

	base := layer.LayerParts()
	if support, err := partsAttribute(layer, "support"); err == nil && len(support) > 0 {
		if union, ok := r.cl.Union(base, support); ok {
			base = union
		}
	}

	ew := options.Printer.ExtrusionWidth

	for k := 0; k < options.Print.Skirt.Lines; k++ {
		delta := options.Print.Skirt.Distance.ToMicrometer() + data.Micrometer(k)*ew
		ring, ok := r.cl.Offset(base, delta)
		if !ok || len(ring) == 0 {
			continue
		}

		for _, part := range ring {
			loop := part.Outline()
			if len(loop) < 2 {
				continue
			}
			r.travel(b, z, loop[0], options)
			n := len(loop)
			for i := 1; i <= n; i++ {
				p := loop[i%n]
				b.Move(p.X(), p.Y(), z, true, 1, options.Print.IntialLayerSpeed)
			}
		}
	}

	return nil
}

func (r *Skirt) travel(b *gcode.Builder, z data.Micrometer, to data.MicroPoint, options *data.Options) {
	x, y, _ := b.Position()
	from := data.NewMicroPoint(x, y)
	if from == to {
		return
	}
	if from.Dist(to) >= options.Print.RetractMinTravel {
		b.Retract()
	}
	b.Move(to.X(), to.Y(), z, false, 0, 0)
	b.Unretract()
}
