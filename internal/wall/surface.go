package wall

import (
	"masonry/internal/diag"
	"masonry/internal/geom"
)

// Surface is one wall ready for layout: its usable u-extent and the openings it owns.
// It is the only view of openings later stages get.
type Surface struct {
	wall     Wall
	extent   float32
	openings []Opening
	boxes    []geom.Box
}

// NewSurface scopes records to w. Records for other facades are dropped before anything
// else looks at them; owned records are then validated and malformed ones skipped with a
// warning. When trimTrailing is set the thickness at the trailing corner is left to the
// next wall, so each corner is built exactly once.
func NewSurface(w Wall, records []OpeningSpec, trimTrailing bool) (*Surface, []diag.Warning) {
	s := &Surface{wall: w, extent: w.length}
	if trimTrailing {
		s.extent = w.length - w.thickness
	}
	scope := w.facade.String()
	var warns []diag.Warning
	for _, rec := range records {
		if rec.Facade != w.facade {
			continue
		}
		o, err := NewOpening(rec)
		if err != nil {
			warns = append(warns, diag.Warn(scope, err))
			continue
		}
		box, warn := s.cover(o)
		if warn != nil {
			warns = append(warns, diag.Warn(scope, warn))
			if box == (geom.Box{}) {
				continue
			}
		}
		s.openings = append(s.openings, o)
		s.boxes = append(s.boxes, box)
	}
	return s, warns
}

// cover resolves the opening volume against the wall bounds. A zero box with an error means
// the opening is dropped; a non-zero box with an error means it was clamped.
func (s *Surface) cover(o Opening) (geom.Box, error) {
	box := o.Box(s.wall.thickness)
	bounds := geom.NewBox(0, 0, 0, s.extent, s.wall.height, s.wall.thickness)
	ov := box.Overlap(bounds)
	if ov[0] <= 0 || ov[1] <= 0 || ov[2] <= 0 {
		return geom.Box{}, diag.Invalid("opening at (%g, %g) %gx%g lies outside the wall", o.u, o.v, o.width, o.height)
	}
	if box.Max[2] > s.wall.thickness {
		box.Max[2] = s.wall.thickness
		return box, diag.Invalid("opening at (%g, %g) is deeper than the wall; clamped to %g", o.u, o.v, s.wall.thickness)
	}
	return box, nil
}

func (s *Surface) Wall() Wall { return s.wall }

// Extent is the usable length along u after the corner policy.
func (s *Surface) Extent() float32 { return s.extent }

func (s *Surface) Height() float32 { return s.wall.height }

// Openings returns the scoped openings.
func (s *Surface) Openings() []Opening { return s.openings }

// OpeningBoxes returns the scoped opening volumes in wall-local space.
func (s *Surface) OpeningBoxes() []geom.Box { return s.boxes }

// Bounds is the local box every element on this surface must stay inside.
func (s *Surface) Bounds() geom.Box {
	return geom.NewBox(0, 0, 0, s.extent, s.wall.height, s.wall.thickness)
}
