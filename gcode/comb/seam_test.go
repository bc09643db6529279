package comb

import (
	"testing"

	"github.com/aligator/goslice/data"
)

func TestSeamPickerOuterShellAlwaysRealigns(t *testing.T) {
	shell := square(0, 0, 10000, 10000)
	picker := NewSeamPicker(false)

	from := data.NewMicroPoint(10000, 10000)
	picked := picker.Pick(shell, 0, from)

	if picked[0] != data.NewMicroPoint(10000, 10000) {
		t.Fatalf("expected outer shell to start at the point nearest %v, got %v", from, picked[0])
	}
}

func TestSeamPickerInteriorShellKeepsSeamWithoutAlignInterior(t *testing.T) {
	shell := square(0, 0, 10000, 10000)
	picker := NewSeamPicker(false)

	from := data.NewMicroPoint(10000, 10000)
	picked := picker.Pick(shell, 1, from)

	if !pathsEqual(picked, shell) {
		t.Fatalf("interior shell should keep its pre-aligned seam, got %v want %v", picked, shell)
	}
}

func TestSeamPickerInteriorShellRealignsWhenEnabled(t *testing.T) {
	shell := square(0, 0, 10000, 10000)
	picker := NewSeamPicker(true)

	from := data.NewMicroPoint(10000, 10000)
	picked := picker.Pick(shell, 1, from)

	if picked[0] != data.NewMicroPoint(10000, 10000) {
		t.Fatalf("expected interior shell to realign when alignInterior is set, got %v", picked[0])
	}
}

func pathsEqual(a, b data.Path) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
