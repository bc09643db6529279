// Package comb factors the motion planner's cross-cutting travel-path
// concerns out of the per-feature renderers (section 4.8.4/4.8.5):
// Combing keeps travel moves inside the printed region, SeamPicker chooses
// each shell's start point, and SpeedScaler derives the per-layer feed-rate
// multiplier from the minimum-layer-time rule.
package comb

import "github.com/aligator/goslice/data"

// Combing routes travel moves through an island's comb region instead of
// flying straight over open air above a hole or a neighboring, unrelated
// island, the way section 4.8.4 describes.
type Combing struct {
	boundary data.Paths
}

// NewCombing builds a router over boundary, normally an island's
// OuterCombPaths or CombPaths attribute.
func NewCombing(boundary data.Paths) Combing {
	return Combing{boundary: boundary}
}

// Route returns the sequence of travel points to move from "from" to "to",
// and whether the caller must force a retract before taking them. If the
// direct line stays inside the boundary and crosses none of its edges, it
// is returned unchanged. Otherwise the move is routed along the vertices of
// whichever boundary the straight line crosses nearest to "to", walking the
// shorter of its two directions between the entry and exit vertex (section
// 4.8.4 steps 1-3) rather than cutting a straight line between them - a
// straight entry->exit leg is exactly as likely to cross the boundary as
// the original line was. If the routed path still ends in a crossing leg
// (a second boundary sits between entry and destination), Route reports
// forceRetract so the caller inserts a retract instead of looping further.
func (c Combing) Route(from, to data.MicroPoint) (data.Path, bool) {
	if len(c.boundary) == 0 {
		return data.Path{from, to}, false
	}

	if !c.boundary.Crosses(from, to) {
		mid := from.Add(to).Mul(0.5)
		if c.boundary.Contains(mid) {
			return data.Path{from, to}, false
		}
	}

	boundary, noCandidate := c.nearestCrossedBoundary(from, to)
	if boundary == nil {
		return data.Path{from, to}, noCandidate
	}

	fromIdx, _ := boundary.NearestPointIndex(from)
	toIdx, _ := boundary.NearestPointIndex(to)

	path := data.Path{from}
	path = append(path, c.walk(*boundary, fromIdx, toIdx)...)
	path = append(path, to)

	forceRetract := c.boundary.Crosses(path[len(path)-2], to)
	return path, forceRetract
}

// nearestCrossedBoundary finds, among c.boundary, the path the segment
// from->to crosses whose nearest point to "to" is closest - section
// 4.8.4 step 1. The bool return is true when no boundary qualifies (the
// caller should force a retract rather than trust an unrouted move).
func (c Combing) nearestCrossedBoundary(from, to data.MicroPoint) (*data.Path, bool) {
	var best *data.Path
	var bestDist int64 = -1
	for i := range c.boundary {
		b := c.boundary[i]
		if !b.Crosses(from, to) {
			continue
		}
		idx, d := b.NearestPointIndex(to)
		if idx < 0 {
			continue
		}
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = &c.boundary[i]
		}
	}
	return best, best == nil
}

// walk returns the boundary vertices between fromIdx and toIdx (inclusive
// of toIdx, exclusive of fromIdx's predecessor) along whichever direction
// around the polygon is shorter - section 4.8.4 step 2/3. Stepping through
// the polygon's own vertices, instead of a straight line between the two
// nearest points, is what keeps the travel from cutting back across the
// boundary it just entered.
func (c Combing) walk(boundary data.Path, fromIdx, toIdx int) data.Path {
	n := len(boundary)
	if n == 0 || fromIdx < 0 || toIdx < 0 {
		return nil
	}

	fwd := (toIdx - fromIdx + n) % n
	bwd := (fromIdx - toIdx + n) % n

	var out data.Path
	if fwd <= bwd {
		for i := fromIdx; i != toIdx; i = (i + 1) % n {
			out = append(out, boundary[i])
		}
	} else {
		for i := fromIdx; i != toIdx; i = (i - 1 + n) % n {
			out = append(out, boundary[i])
		}
	}
	return append(out, boundary[toIdx])
}
