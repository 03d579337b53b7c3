// Package collision decides whether a candidate element intersects an opening of its own wall.
package collision

import "masonry/internal/geom"

// DefaultMargin is the clearance kept around every opening.
const DefaultMargin = 0.02

// Exclude reports whether footprint intersects any of the scoped opening volumes after each
// volume is grown by margin on u, v and w. All three axes must overlap: an opening that lines
// up with a brick on u and v but sits at a different depth does not remove it.
// An empty opening list never excludes.
func Exclude(footprint geom.Box, scoped []geom.Box, margin float32) bool {
	_, hit := First(footprint, scoped, margin)
	return hit
}

// First returns the index of the first scoped opening the footprint intersects.
func First(footprint geom.Box, scoped []geom.Box, margin float32) (int, bool) {
	for i, o := range scoped {
		if penetration(footprint, o.Expand(margin)) > 0 {
			return i, true
		}
	}
	return -1, false
}

// penetration returns the smallest overlap across the three axes, or 0 when the boxes are
// separated (or only touching) on any axis.
func penetration(a, b geom.Box) float32 {
	ov := a.Overlap(b)
	if ov[0] <= 0 || ov[1] <= 0 || ov[2] <= 0 {
		return 0
	}
	return min(ov[0], ov[1], ov[2])
}

// Clear returns the parts of the interval [u0, u1] not covered by the u-extent of any opening
// (grown by margin) whose grown v and w ranges overlap the band [v0, v1] x [w0, w1].
// Used to split long mortar strips around openings instead of dropping them.
func Clear(u0, u1 float32, band geom.Box, scoped []geom.Box, margin float32) [][2]float32 {
	spans := [][2]float32{{u0, u1}}
	for _, o := range scoped {
		e := o.Expand(margin)
		ov := band.Overlap(e)
		if ov[1] <= 0 || ov[2] <= 0 {
			continue
		}
		next := spans[:0:0]
		for _, s := range spans {
			if e.Max[0] <= s[0] || e.Min[0] >= s[1] {
				next = append(next, s)
				continue
			}
			if e.Min[0] > s[0] {
				next = append(next, [2]float32{s[0], e.Min[0]})
			}
			if e.Max[0] < s[1] {
				next = append(next, [2]float32{e.Max[0], s[1]})
			}
		}
		spans = next
	}
	return spans
}
