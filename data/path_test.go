package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func square(x0, y0, x1, y1 Micrometer) Path {
	return Path{
		NewMicroPoint(x0, y0),
		NewMicroPoint(x1, y0),
		NewMicroPoint(x1, y1),
		NewMicroPoint(x0, y1),
	}
}

func TestPathSignedArea2CCWIsPositive(t *testing.T) {
	p := square(0, 0, 10000, 10000)
	assert.True(t, p.IsCCW())
	assert.Equal(t, int64(2*10000*10000), p.SignedArea2())
}

func TestPathReversedFlipsOrientation(t *testing.T) {
	p := square(0, 0, 10000, 10000)
	r := p.Reversed()
	assert.False(t, r.IsCCW())
	assert.Equal(t, -p.SignedArea2(), r.SignedArea2())
}

func TestPathLengthAndClosedLength(t *testing.T) {
	p := Path{NewMicroPoint(0, 0), NewMicroPoint(10000, 0), NewMicroPoint(10000, 10000)}
	assert.Equal(t, Micrometer(20000), p.Length())
	assert.Equal(t, p.Length()+NewMicroPoint(10000, 10000).Size(), p.ClosedLength())
}

func TestPathStartAtRotatesPreservingOrder(t *testing.T) {
	p := square(0, 0, 10000, 10000)
	rotated := p.StartAt(2)
	assert.Equal(t, p[2], rotated[0])
	assert.Equal(t, p[3], rotated[1])
	assert.Equal(t, p[0], rotated[2])
	assert.Equal(t, p[1], rotated[3])
}

func TestPathLowestSumIndex(t *testing.T) {
	p := square(0, 0, 10000, 10000)
	assert.Equal(t, 0, p.LowestSumIndex())
}

func TestPathNearestPointIndex(t *testing.T) {
	p := square(0, 0, 10000, 10000)
	idx, distSq := p.NearestPointIndex(NewMicroPoint(9000, 9000))
	assert.Equal(t, 2, idx)
	assert.Equal(t, int64(1000*1000*2), distSq)
}

func TestPathContainsInsideAndOutside(t *testing.T) {
	p := square(0, 0, 10000, 10000)
	assert.True(t, p.Contains(NewMicroPoint(5000, 5000)))
	assert.False(t, p.Contains(NewMicroPoint(15000, 5000)))
}

func TestPathsContainsEvenOdd(t *testing.T) {
	outer := square(0, 0, 10000, 10000)
	hole := square(3000, 3000, 7000, 7000).Reversed()
	ps := Paths{outer, hole}

	assert.True(t, ps.Contains(NewMicroPoint(1000, 1000)), "between outer and hole should be inside")
	assert.False(t, ps.Contains(NewMicroPoint(5000, 5000)), "inside the hole should be outside")
}

func TestPathCrossesDetectsSegmentIntersection(t *testing.T) {
	p := square(0, 0, 10000, 10000)
	assert.True(t, p.Crosses(NewMicroPoint(-1000, 5000), NewMicroPoint(11000, 5000)))
	assert.False(t, p.Crosses(NewMicroPoint(-1000, -1000), NewMicroPoint(-500, -500)))
}

func TestPathSimplifyDropsNearlyCollinearPoints(t *testing.T) {
	p := Path{
		NewMicroPoint(0, 0),
		NewMicroPoint(5000, 1),
		NewMicroPoint(10000, 0),
	}
	simplified := p.Simplify(50, 0)
	assert.Len(t, simplified, 2)
	assert.Equal(t, p[0], simplified[0])
	assert.Equal(t, p[2], simplified[1])
}

func TestBoundsOfAndIntersects(t *testing.T) {
	a := BoundsOf(square(0, 0, 10000, 10000))
	b := BoundsOf(square(5000, 5000, 15000, 15000))
	c := BoundsOf(square(20000, 20000, 30000, 30000))

	assert.Equal(t, NewMicroPoint(0, 0), a.Min)
	assert.Equal(t, NewMicroPoint(10000, 10000), a.Max)
	assert.True(t, a.Intersects(b))
	assert.False(t, a.Intersects(c))
}

func TestBoundsExpandAndUnion(t *testing.T) {
	a := BoundsOf(square(0, 0, 10000, 10000))
	expanded := a.Expand(1000)
	assert.Equal(t, NewMicroPoint(-1000, -1000), expanded.Min)
	assert.Equal(t, NewMicroPoint(11000, 11000), expanded.Max)

	b := BoundsOf(square(20000, -5000, 30000, 5000))
	union := a.Union(b)
	assert.Equal(t, NewMicroPoint(0, -5000), union.Min)
	assert.Equal(t, NewMicroPoint(30000, 10000), union.Max)
}
