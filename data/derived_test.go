package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeDerivedMatchesSection3Formulas(t *testing.T) {
	options := NewDefaultOptions()
	options.Printer.ExtrusionWidth = Millimeter(0.4).ToMicrometer()
	options.Print.LayerThickness = Millimeter(0.2).ToMicrometer()
	options.Print.PackingDensity = 0.95
	options.Print.EdgePackingDensity = 1.0
	options.Filament.MaterialDiameter = 1.75

	d := ComputeDerived(&options)

	ew, lh := 0.4, 0.2
	wantArea := ew*lh - (lh*lh-lh*lh*3.141592653589793/4)*(1-0.95)
	assert.InDelta(t, wantArea, d.ExtrusionArea, 1e-9)

	wantEdgeWidth := (wantArea-lh*lh*3.141592653589793/4)/lh + lh
	assert.InDelta(t, wantEdgeWidth, d.EdgeWidth, 1e-9)

	wantEdgeOffset := -(wantEdgeWidth + (wantEdgeWidth-ew)*(1-1.0)) / 2
	assert.InDelta(t, wantEdgeOffset, d.EdgeOffset, 1e-9)

	wantMaterialArea := 3.141592653589793 * 1.75 * 1.75 / 4
	assert.InDelta(t, wantMaterialArea, d.MaterialArea, 1e-9)
}

func TestDerivedExtrusionLengthScalesWithFlow(t *testing.T) {
	d := Derived{ExtrusionArea: 1, MaterialArea: 2}

	assert.InDelta(t, 5.0, d.ExtrusionLength(10, 1, 1), 1e-9)
	assert.InDelta(t, 10.0, d.ExtrusionLength(10, 2, 1), 1e-9)
	assert.InDelta(t, 2.5, d.ExtrusionLength(10, 1, 0.5), 1e-9)
}
