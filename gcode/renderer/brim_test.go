package renderer

import (
	"testing"

	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/gcode"
)

func TestBrimOnlyRendersOnLayerZero(t *testing.T) {
	options := data.NewDefaultOptions()

	layer := data.NewPartitionedLayer(nil)
	layer = data.ExtendAttributes(layer)
	layer.Attributes()["brim"] = []data.Paths{{squarePath(0, 0, 5000, 5000)}}

	b := gcode.NewBuilder(&options)
	b.SetExtrusion(options.Print.InitialLayerThickness, options.Printer.ExtrusionWidth)
	b.SetExtrudeSpeed(options.Print.LayerSpeed)
	b.SetMoveSpeed(options.Print.MoveSpeed)
	b.SetRetractionSpeed(options.Filament.RetractionSpeed)
	b.SetRetractionAmount(options.Filament.RetractionLength)

	r := NewBrim(&options)
	if err := r.Render(b, 1, 5, layer, 0, &options); err != nil {
		t.Fatalf("Render returned an error: %v", err)
	}
	if b.TotalExtruded() != 0 {
		t.Fatalf("brim should not render on a non-zero layer, got %v extruded", b.TotalExtruded())
	}

	if err := r.Render(b, 0, 5, layer, 0, &options); err != nil {
		t.Fatalf("Render returned an error: %v", err)
	}
	if b.TotalExtruded() <= 0 {
		t.Fatalf("expected extrusion after rendering a brim ring on layer 0, got %v", b.TotalExtruded())
	}
}

func TestBrimRendersRaftLines(t *testing.T) {
	options := data.NewDefaultOptions()

	layer := data.NewPartitionedLayer(nil)
	layer = data.ExtendAttributes(layer)
	layer.Attributes()["raftBase"] = data.Paths{newLine([2]data.Micrometer{0, 0}, [2]data.Micrometer{5000, 0})}

	b := gcode.NewBuilder(&options)
	b.SetExtrusion(options.Print.InitialLayerThickness, options.Printer.ExtrusionWidth)
	b.SetExtrudeSpeed(options.Print.LayerSpeed)
	b.SetMoveSpeed(options.Print.MoveSpeed)
	b.SetRetractionSpeed(options.Filament.RetractionSpeed)
	b.SetRetractionAmount(options.Filament.RetractionLength)

	r := NewBrim(&options)
	if err := r.Render(b, 0, 5, layer, 0, &options); err != nil {
		t.Fatalf("Render returned an error: %v", err)
	}
	if b.TotalExtruded() <= 0 {
		t.Fatalf("expected extrusion after rendering raft base lines, got %v", b.TotalExtruded())
	}
}
