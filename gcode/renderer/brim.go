package renderer

import (
	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/gcode"
	"github.com/aligator/goslice/handler"
)

// Brim renders the adhesion rings brimModifier stores as layer 0's "brim"
// attribute ([]data.Paths, section 4.7), and raftModifier's "raftBase" and
// "raftInterface" line sets beneath it. Both only ever fire on layer 0.
type Brim struct {
	options *data.Options
}

// NewBrim builds the brim/raft renderer.
func NewBrim(options *data.Options) *Brim {
	return &Brim{options: options}
}

func (r *Brim) Init(model handler.OptimizedModel) {}

func (r *Brim) Render(b *gcode.Builder, layerNr int, maxLayer int, layer data.PartitionedLayer, z data.Micrometer, options *data.Options) error {
	if layerNr != 0 {
		return nil
	}

	if err := r.renderRaftLines(b, layer, z, "raftBase", options); err != nil {
		return err
	}
	if err := r.renderRaftLines(b, layer, z, "raftInterface", options); err != nil {
		return err
	}

	attr, ok := layer.Attributes()["brim"]
	if !ok {
		return nil
	}
	rings, ok := attr.([]data.Paths)
	if !ok {
		return errBadAttribute
	}

	for _, ring := range rings {
		for _, loop := range ring {
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

func (r *Brim) renderRaftLines(b *gcode.Builder, layer data.PartitionedLayer, z data.Micrometer, key string, options *data.Options) error {
	attr, ok := layer.Attributes()[key]
	if !ok {
		return nil
	}
	lines, ok := attr.(data.Paths)
	if !ok {
		return errBadAttribute
	}

	for _, line := range lines {
		if len(line) < 2 {
			continue
		}
		r.travel(b, z, line[0], options)
		for _, p := range line[1:] {
			b.Move(p.X(), p.Y(), z, true, 1, options.Print.IntialLayerSpeed)
		}
	}
	return nil
}

func (r *Brim) travel(b *gcode.Builder, z data.Micrometer, to data.MicroPoint, options *data.Options) {
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
