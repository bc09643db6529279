package renderer

import "github.com/aligator/goslice/data"

// cutFromEnd splits path into a kept prefix and a trimmed suffix, the
// suffix covering exactly trimLen of the path's length measured backward
// from its last point, with the cut point placed by linear interpolation
// on whichever segment straddles it (section 4.8.2 steps 1/3: shell-clip
// and coast both trim a fixed length off a closed path's tail). If trimLen
// is <= 0 or the path is too short to measure, path is returned unchanged
// with an empty trimmed suffix.
func cutFromEnd(path data.Path, trimLen data.Micrometer) (kept data.Path, trimmed data.Path) {
	n := len(path)
	if n < 2 || trimLen <= 0 {
		return path, nil
	}

	remaining := trimLen
	for i := n - 1; i > 0; i-- {
		a, b := path[i-1], path[i]
		segLen := a.Dist(b)
		if segLen <= 0 {
			continue
		}
		if segLen < remaining {
			remaining -= segLen
			continue
		}

		t := float64(remaining) / float64(segLen)
		cut := b.Add(a.Sub(b).Mul(t))

		kept = append(data.Path{}, path[:i]...)
		kept = append(kept, cut)
		trimmed = data.Path{cut}
		trimmed = append(trimmed, path[i:]...)
		return kept, trimmed
	}

	// trimLen reaches (or exceeds) the whole path.
	return data.Path{path[0]}, path
}

// cutFromStart is cutFromEnd's mirror: it returns the trimmed prefix
// (covering trimLen of length from the start) and the kept remainder,
// used by infill's "connect" case to shorten a segment's leading edge.
func cutFromStart(path data.Path, trimLen data.Micrometer) (trimmedPrefix data.Path, kept data.Path) {
	reversedTrim, reversedKeep := cutFromEnd(path.Reversed(), trimLen)
	return reversedTrim.Reversed(), reversedKeep.Reversed()
}
