package comb

import "github.com/aligator/goslice/data"

// SeamPicker chooses the start point of a closed shell path before it is
// emitted, section 4.8.1's seam placement rule: when AlignSeams is set, the
// perimeter modifier already rotates shells to their point-sum-minimum
// vertex (data.Path.LowestSumIndex, used by alignSeams). Pick keeps that
// existing start for interior shells when alignInterior is false, and
// otherwise restarts the shell at the vertex nearest the given position.
type SeamPicker struct {
	alignInterior bool
}

// NewSeamPicker builds a picker; alignInterior mirrors
// PrintOptions.AlignInteriorSeams.
func NewSeamPicker(alignInterior bool) SeamPicker {
	return SeamPicker{alignInterior: alignInterior}
}

// Pick returns shell rotated so its emission starts at the vertex nearest
// to "from" (typically the nozzle's current position), falling back to the
// path's existing start (its pre-aligned seam) for interior shells when
// alignInterior is false.
func (s SeamPicker) Pick(shell data.Path, shellIndex int, from data.MicroPoint) data.Path {
	if shellIndex > 0 && !s.alignInterior {
		return shell
	}
	if len(shell) == 0 {
		return shell
	}
	idx, _ := shell.NearestPointIndex(from)
	return shell.StartAt(idx)
}
