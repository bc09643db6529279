package renderer

import (
	"testing"

	"github.com/aligator/goslice/data"
	"github.com/aligator/goslice/gcode"
)

func TestSupportRendersRegisteredParts(t *testing.T) {
	options := data.NewDefaultOptions()
	options.Print.Support.Enabled = true

	outline := squarePath(0, 0, 20000, 20000)
	part := data.NewUnknownLayerPart(outline, nil)

	layer := data.NewPartitionedLayer(nil)
	layer = data.ExtendAttributes(layer)
	layer.Attributes()["support"] = []data.LayerPart{part}

	b := gcode.NewBuilder(&options)
	b.SetExtrusion(options.Print.LayerThickness, options.Printer.ExtrusionWidth)
	b.SetExtrudeSpeed(options.Print.LayerSpeed)
	b.SetMoveSpeed(options.Print.MoveSpeed)
	b.SetRetractionSpeed(options.Filament.RetractionSpeed)
	b.SetRetractionAmount(options.Filament.RetractionLength)

	r := NewSupport(&options)
	if err := r.Render(b, 3, 10, layer, 0, &options); err != nil {
		t.Fatalf("Render returned an error: %v", err)
	}
	if b.TotalExtruded() <= 0 {
		t.Fatalf("expected extrusion after filling a 20x20mm support region, got %v", b.TotalExtruded())
	}
}

func TestSupportNoAttributeIsNoop(t *testing.T) {
	options := data.NewDefaultOptions()
	layer := data.NewPartitionedLayer(nil)

	b := gcode.NewBuilder(&options)
	r := NewSupport(&options)
	if err := r.Render(b, 0, 0, layer, 0, &options); err != nil {
		t.Fatalf("Render returned an error for a layer without support attributes: %v", err)
	}
	if b.String() != "" {
		t.Fatalf("expected no output when no support attribute is set, got %q", b.String())
	}
}

func TestPartsAttributeRejectsWrongType(t *testing.T) {
	layer := data.NewPartitionedLayer(nil)
	layer = data.ExtendAttributes(layer)
	layer.Attributes()["support"] = "not a []LayerPart"

	_, err := partsAttribute(layer, "support")
	if err != errBadAttribute {
		t.Fatalf("expected errBadAttribute for a mistyped attribute, got %v", err)
	}
}
