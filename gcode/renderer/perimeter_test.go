package renderer

import (
	"strings"
	"testing"

	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/gcode"
)

func squarePath(x0, y0, x1, y1 data.Micrometer) data.Path {
	return data.Path{
		data.NewMicroPoint(x0, y0),
		data.NewMicroPoint(x1, y0),
		data.NewMicroPoint(x1, y1),
		data.NewMicroPoint(x0, y1),
	}
}

func layerWithIslands(islands []*data.Island) data.PartitionedLayer {
	l := data.NewPartitionedLayer(nil)
	l = data.ExtendAttributes(l)
	l.Attributes()["islands"] = islands
	return l
}

func TestPerimeterRendersEachShellLoop(t *testing.T) {
	options := data.NewDefaultOptions()
	outline := squarePath(0, 0, 10000, 10000)
	inner := squarePath(1000, 1000, 9000, 9000)

	island := &data.Island{
		Insets: [][]data.LayerPart{
			{data.NewUnknownLayerPart(outline, nil)},
			{data.NewUnknownLayerPart(inner, nil)},
		},
	}

	layer := layerWithIslands([]*data.Island{island})

	b := gcode.NewBuilder(&options)
	b.SetExtrusion(options.Print.LayerThickness, options.Printer.ExtrusionWidth)
	b.SetExtrudeSpeed(options.Print.LayerSpeed)
	b.SetMoveSpeed(options.Print.MoveSpeed)
	b.SetRetractionSpeed(options.Filament.RetractionSpeed)
	b.SetRetractionAmount(options.Filament.RetractionLength)

	r := NewPerimeter(&options)
	if err := r.Render(b, 1, 5, layer, data.Millimeter(1).ToMicrometer(), &options); err != nil {
		t.Fatalf("Render returned an error: %v", err)
	}

	out := b.String()
	if !strings.Contains(out, "G1") {
		t.Fatalf("expected at least one G1 move, got %q", out)
	}
	if b.TotalExtruded() <= 0 {
		t.Fatalf("expected positive extrusion after rendering two shells, got %v", b.TotalExtruded())
	}
}

func TestPerimeterNoIslandsIsNoop(t *testing.T) {
	options := data.NewDefaultOptions()
	layer := data.NewPartitionedLayer(nil)

	b := gcode.NewBuilder(&options)
	r := NewPerimeter(&options)
	if err := r.Render(b, 0, 0, layer, 0, &options); err != nil {
		t.Fatalf("Render returned an error for an empty layer: %v", err)
	}
	if b.String() != "" {
		t.Fatalf("expected no output for a layer with no islands, got %q", b.String())
	}
}

func TestShellIndicesOrdering(t *testing.T) {
	insideOut := shellIndices(3, false)
	want := []int{2, 1, 0}
	for i := range want {
		if insideOut[i] != want[i] {
			t.Fatalf("insideOut order = %v, want %v", insideOut, want)
		}
	}

	outsideIn := shellIndices(3, true)
	wantOut := []int{0, 1, 2}
	for i := range wantOut {
		if outsideIn[i] != wantOut[i] {
			t.Fatalf("outsideIn order = %v, want %v", outsideIn, wantOut)
		}
	}
}
