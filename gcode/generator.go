package gcode

import (
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/gcode/comb"
	"github.com/aligator/goslice/handler"
)

// Renderer renders one concern of one layer. Init runs once with the final
// optimized model; Render runs once per layer, in the order the generator
// registers renderers in (section 4.8's renderer pipeline). Concrete
// renderers live in gcode/renderer and are wired in by the caller via
// WithRenderer, so this package never needs to import that one.
type Renderer interface {
	Init(model handler.OptimizedModel)
	Render(b *Builder, layerNr int, maxLayer int, layer data.PartitionedLayer, z data.Micrometer, options *data.Options) error
}

// Generator implements handler.GCodeGenerator: S8+S9, motion planning and
// text emission. It owns one Builder for the whole print and drives the
// registered Renderer pipeline over every layer in registration order,
// section 4.8's pre-layer/skirt/brim/support/perimeter/infill/post-layer
// sequence.
type Generator struct {
	options   *data.Options
	renderers []Renderer
}

// Option configures a Generator at construction time.
type Option func(*Generator)

// WithRenderer appends r to the end of the render pipeline.
func WithRenderer(r Renderer) Option {
	return func(g *Generator) { g.renderers = append(g.renderers, r) }
}

// NewGenerator builds the G-code generator. Renderers run in the order
// they're passed; callers assemble the standard pipeline with repeated
// WithRenderer options (see goslice.go in the module root).
func NewGenerator(options *data.Options, opts ...Option) *Generator {
	g := &Generator{options: options}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Generator) Init(m handler.OptimizedModel) {
	for _, r := range g.renderers {
		r.Init(m)
	}
}

// Generate walks every layer in order, accumulating G-code into one
// Builder and returning its text (section 4.9's top-level emission loop).
func (g *Generator) Generate(layers []data.PartitionedLayer) (string, error) {
	b := NewBuilder(g.options)
	maxLayer := len(layers) - 1

	scaler := comb.NewSpeedScaler(g.options.Print.MinLayerTime, g.options.Print.MinFeedRate, g.options.Print.LayerTimeSamples)

	var z data.Micrometer
	for i, layer := range layers {
		thickness := g.options.Print.LayerThickness
		if i == 0 {
			thickness = g.options.Print.InitialLayerThickness
		}
		z += thickness

		b.ResetLayerTime()
		for _, r := range g.renderers {
			if err := r.Render(b, i, maxLayer, layer, z, g.options); err != nil {
				return "", err
			}
		}

		// The scale just applied came from the *previous* layers' planned
		// time; fold this layer's own time into the window now so the next
		// layer sees it, normalizing layer 0's slower first_layer_mult
		// speed back to steady-state terms before it enters the average.
		plannedSeconds := b.LayerTime()
		if i == 0 && g.options.Print.FirstLayerSpeedMult > 0 {
			plannedSeconds *= g.options.Print.FirstLayerSpeedMult
		}
		factor := scaler.Scale(plannedSeconds, g.options.Print.LayerSpeed)
		b.SetSpeedScale(factor)
	}

	b.AddComment("total filament used: %.2fmm", b.TotalExtruded())
	return b.String(), nil
}
