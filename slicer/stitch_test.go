package slicer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aligator/goslice/data"
)

// squareModel returns four faces wired face-to-face in a ring, each face
// owning one edge of a 1000x1000 square with a corner at the origin.
func squareModel() (fakeModel, []segment) {
	p0 := data.NewMicroPoint(0, 0)
	p1 := data.NewMicroPoint(1000, 0)
	p2 := data.NewMicroPoint(1000, 1000)
	p3 := data.NewMicroPoint(0, 1000)

	segs := []segment{
		{start: p0, end: p1, faceIndex: 0},
		{start: p1, end: p2, faceIndex: 1},
		{start: p2, end: p3, faceIndex: 2},
		{start: p3, end: p0, faceIndex: 3},
	}

	m := fakeModel{faces: []fakeFace{
		{touching: [3]int{1, -1, -1}},
		{touching: [3]int{2, -1, -1}},
		{touching: [3]int{3, -1, -1}},
		{touching: [3]int{0, -1, -1}},
	}}

	return m, segs
}

func TestStitchClosesRingOfFaceAdjacentSegments(t *testing.T) {
	m, segs := squareModel()

	polygons := stitch(segs, m, 10)
	require.Len(t, polygons, 1)

	poly := polygons[0]
	assert.Len(t, poly, 4, "the closed square should have no duplicated final point")
	assert.True(t, poly.IsCCW())
}

func TestStitchEmptySegmentsReturnsNil(t *testing.T) {
	m, _ := squareModel()
	assert.Nil(t, stitch(nil, m, 10))
}

func TestJoinUnclosedPolygonsConnectsNearbyChains(t *testing.T) {
	a := data.Path{data.NewMicroPoint(0, 0), data.NewMicroPoint(1000, 0)}
	b := data.Path{data.NewMicroPoint(1005, 0), data.NewMicroPoint(1000, 1000)}
	polygons := data.Paths{a, b}
	closed := []bool{false, false}

	joinUnclosedPolygons(polygons, closed, 10)

	assert.Nil(t, polygons[1], "the consumed chain should be cleared")
	assert.Equal(t, data.Path{
		data.NewMicroPoint(0, 0), data.NewMicroPoint(1000, 0),
		data.NewMicroPoint(1005, 0), data.NewMicroPoint(1000, 1000),
	}, polygons[0])
}

func TestRemoveLastPointDropsFinalElement(t *testing.T) {
	p := data.Path{data.NewMicroPoint(0, 0), data.NewMicroPoint(1, 1), data.NewMicroPoint(0, 0)}
	assert.Equal(t, data.Path{data.NewMicroPoint(0, 0), data.NewMicroPoint(1, 1)}, removeLastPoint(p))
}

func TestRemoveLastPointEmptyPath(t *testing.T) {
	assert.Equal(t, data.Path(nil), removeLastPoint(nil))
}
