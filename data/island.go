package data

// Island is one connected top-level outer contour plus its immediate holes
// at a given layer (section 3). Every Island owns its own inset array,
// gap-fill array, boundary paths, comb paths and computed fill geometry
// exclusively — no other slice or goroutine writes into it once
// PerimeterModifier hands it off, matching the per-slice ownership rule of
// section 5.
type Island struct {
	// Insets[0] always exists and is non-empty for a valid Island.
	// Insets[k] for k>=1 may be empty once no more shells fit.
	// Each shell can itself be split into several disjoint parts after
	// offsetting (e.g. a dumbbell-shaped outline), hence [][]LayerPart.
	Insets [][]LayerPart

	// InfillInsets is insets[shells-1] offset inward by
	// (0.5-infill_overlap)*extrusion_width (section 4.3).
	InfillInsets []LayerPart

	// InsetGaps[k] is the gap-fill strip between Insets[k] and Insets[k+1]
	// (section 4.3's inset gap fill).
	InsetGaps []Paths

	// Boundaries is insets[0] offset outward by extrusion_width/8, used for
	// retract-crossing tests (section 4.3).
	Boundaries Paths

	// OuterBoundaries is insets[0] offset outward by
	// 0.5*edge_width-edge_offset, used for inter-island combing.
	OuterBoundaries Paths

	// OuterCombPaths is a further small outward offset of OuterBoundaries.
	OuterCombPaths Paths

	// CombPaths is insets[0] captured before insets are consumed by
	// planning (section 4.3).
	CombPaths Paths

	// ConstrainingEdge is infill_insets offset inward by extrusion_width/8,
	// used by infill smoothing to decide whether connecting two fill lines
	// is geometrically safe (section 4.3).
	ConstrainingEdge Paths

	// SolidInfillClip is infill_insets enlarged by solid_infill_clip_offset
	// (section 3's derived-scalar invariant).
	SolidInfillClip Paths

	// ExposedSurface is the top-of-island region not covered by the next
	// layer, used for retract decisions (section 4.5.1).
	ExposedSurface Paths

	// IronPaths is the optional top-surface ironing fill (section 4.5.2).
	IronPaths Paths

	// SolidInfillLines/SparseInfillLines are the clipped, ready-to-emit
	// fill line segments for this island (section 4.5).
	SolidInfillLines Paths
	SparseInfillLines Paths

	// SolidInfillBoundaries is the outward offset of the computed solid
	// region, used by infill smoothing-safety tests (section 4.5 step 7).
	SolidInfillBoundaries Paths

	// BoundingBox covers all points of Insets[0], used as the cheap
	// intersection-reject test between islands of adjacent layers
	// (section 4.2).
	BoundingBox Bounds
}

// Outline returns the outer contour of the island (Insets[0]'s first part's
// outline), the path most motion-planner code means when it says "the
// island's outline".
func (isl *Island) Outline() Path {
	if len(isl.Insets) == 0 || len(isl.Insets[0]) == 0 {
		return nil
	}
	return isl.Insets[0][0].Outline()
}

// Shells reports how many inset levels actually have geometry (some may
// have been exhausted early per section 4.3: "if insets[k] becomes empty,
// stop producing further shells").
func (isl *Island) Shells() int {
	n := 0
	for _, shell := range isl.Insets {
		if len(shell) == 0 {
			break
		}
		n++
	}
	return n
}
