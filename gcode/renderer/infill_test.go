package renderer

import (
	"testing"

	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/gcode"
)

func newLine(points ...[2]data.Micrometer) data.Path {
	line := make(data.Path, len(points))
	for i, p := range points {
		line[i] = data.NewMicroPoint(p[0], p[1])
	}
	return line
}

func TestInfillRendersSolidAndSparseLines(t *testing.T) {
	options := data.NewDefaultOptions()

	island := &data.Island{
		SolidInfillLines:  data.Paths{newLine([2]data.Micrometer{0, 0}, [2]data.Micrometer{5000, 0})},
		SparseInfillLines: data.Paths{newLine([2]data.Micrometer{0, 1000}, [2]data.Micrometer{5000, 1000})},
	}
	layer := layerWithIslands([]*data.Island{island})

	b := gcode.NewBuilder(&options)
	b.SetExtrusion(options.Print.LayerThickness, options.Printer.ExtrusionWidth)
	b.SetExtrudeSpeed(options.Print.LayerSpeed)
	b.SetMoveSpeed(options.Print.MoveSpeed)
	b.SetRetractionSpeed(options.Filament.RetractionSpeed)
	b.SetRetractionAmount(options.Filament.RetractionLength)

	r := NewInfill(&options)
	if err := r.Render(b, 2, 5, layer, 0, &options); err != nil {
		t.Fatalf("Render returned an error: %v", err)
	}
	if b.TotalExtruded() <= 0 {
		t.Fatalf("expected extrusion after rendering solid+sparse infill, got %v", b.TotalExtruded())
	}
}

func TestInfillIroningOnlyRendersWhenEnabled(t *testing.T) {
	options := data.NewDefaultOptions()
	options.Print.IroningEnabled = false

	island := &data.Island{
		IronPaths: data.Paths{newLine([2]data.Micrometer{0, 0}, [2]data.Micrometer{5000, 0})},
	}
	layer := layerWithIslands([]*data.Island{island})

	b := gcode.NewBuilder(&options)
	b.SetExtrusion(options.Print.LayerThickness, options.Printer.ExtrusionWidth)
	b.SetExtrudeSpeed(options.Print.LayerSpeed)

	r := NewInfill(&options)
	if err := r.Render(b, 0, 0, layer, 0, &options); err != nil {
		t.Fatalf("Render returned an error: %v", err)
	}
	if b.TotalExtruded() != 0 {
		t.Fatalf("ironing disabled should not extrude anything, got %v", b.TotalExtruded())
	}
}
