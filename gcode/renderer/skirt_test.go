package renderer

import (
	"testing"

	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/gcode"
)

func TestSkirtRendersLinesAroundFootprint(t *testing.T) {
	options := data.NewDefaultOptions()
	options.Print.Skirt.Enabled = true
	options.Print.Skirt.Lines = 2

	outline := squarePath(0, 0, 20000, 20000)
	layer := data.NewPartitionedLayer([]data.LayerPart{data.NewUnknownLayerPart(outline, nil)})

	b := gcode.NewBuilder(&options)
	b.SetExtrusion(options.Print.InitialLayerThickness, options.Printer.ExtrusionWidth)
	b.SetExtrudeSpeed(options.Print.LayerSpeed)
	b.SetMoveSpeed(options.Print.MoveSpeed)
	b.SetRetractionSpeed(options.Filament.RetractionSpeed)
	b.SetRetractionAmount(options.Filament.RetractionLength)

	r := NewSkirt(&options)
	if err := r.Render(b, 0, 5, layer, 0, &options); err != nil {
		t.Fatalf("Render returned an error: %v", err)
	}
	if b.TotalExtruded() <= 0 {
		t.Fatalf("expected extrusion after rendering %d skirt lines, got %v", options.Print.Skirt.Lines, b.TotalExtruded())
	}
}

func TestSkirtDisabledIsNoop(t *testing.T) {
	options := data.NewDefaultOptions()
	options.Print.Skirt.Enabled = false

	outline := squarePath(0, 0, 20000, 20000)
	layer := data.NewPartitionedLayer([]data.LayerPart{data.NewUnknownLayerPart(outline, nil)})

	b := gcode.NewBuilder(&options)
	r := NewSkirt(&options)
	if err := r.Render(b, 0, 5, layer, 0, &options); err != nil {
		t.Fatalf("Render returned an error: %v", err)
	}
	if b.String() != "" {
		t.Fatalf("disabled skirt should render nothing, got %q", b.String())
	}
}

func TestSkirtOnlyRendersOnLayerZero(t *testing.T) {
	options := data.NewDefaultOptions()
	options.Print.Skirt.Enabled = true

	outline := squarePath(0, 0, 20000, 20000)
	layer := data.NewPartitionedLayer([]data.LayerPart{data.NewUnknownLayerPart(outline, nil)})

	b := gcode.NewBuilder(&options)
	r := NewSkirt(&options)
	if err := r.Render(b, 1, 5, layer, 0, &options); err != nil {
		t.Fatalf("Render returned an error: %v", err)
	}
	if b.String() != "" {
		t.Fatalf("skirt should only render on layer 0, got %q", b.String())
	}
}
