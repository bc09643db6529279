package data

import "math"

// Derived holds the scalars section 3 says are "computed once from
// settings" and then threaded everywhere rather than recomputed, following
// the "mutable global config" design note of section 9: Options itself
// stays an immutable record after initialization, and Derived is the one
// place its formulas live.
type Derived struct {
	// ExtrusionArea is the cross-sectional area (mm^2) of one bead of
	// extrusion at the configured width/height and packing density.
	ExtrusionArea float64

	// EdgeWidth is the unconstrained outer-edge stroke width (mm).
	EdgeWidth float64

	// EdgeOffset is the (usually negative) inward correction applied when
	// building insets[0] from the stitched outline (mm).
	EdgeOffset float64

	// MaterialArea is the cross-sectional area (mm^2) of the filament
	// itself.
	MaterialArea float64
}

// ComputeDerived implements the formulas of spec.md section 3.
func ComputeDerived(o *Options) Derived {
	ew := o.Printer.ExtrusionWidth.ToMillimeter()
	lh := o.Print.LayerThickness.ToMillimeter()
	packing := o.Print.PackingDensity
	edgePacking := o.Print.EdgePackingDensity

	ewF := float64(ew)
	lhF := float64(lh)

	extrusionArea := ewF*lhF - (lhF*lhF-lhF*lhF*math.Pi/4)*(1-packing)
	edgeWidth := (extrusionArea-lhF*lhF*math.Pi/4)/lhF + lhF
	edgeOffset := -(edgeWidth + (edgeWidth-ewF)*(1-edgePacking)) / 2

	dia := float64(o.Filament.MaterialDiameter)
	materialArea := math.Pi * dia * dia / 4

	return Derived{
		ExtrusionArea: extrusionArea,
		EdgeWidth:     edgeWidth,
		EdgeOffset:    edgeOffset,
		MaterialArea:  materialArea,
	}
}

// ExtrusionLength returns the filament length (mm) that must be fed for a
// move of length L (mm) at flow adjust m, per section 3's formula:
// e = L * extrusion_area * flow_multiplier * m / material_area.
func (d Derived) ExtrusionLength(lengthMM float64, flowMultiplier, adjust float64) float64 {
	return lengthMM * d.ExtrusionArea * flowMultiplier * adjust / d.MaterialArea
}
