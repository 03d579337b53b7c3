// Package wall normalizes one wall into its local (u, v, w) frame and scopes openings to the
// wall that owns them.
package wall

import (
	"github.com/chewxy/math32"

	"masonry/internal/diag"
	"masonry/internal/geom"
)

// Up is the world vertical; every wall's v axis.
var Up = geom.Vec3{0, 1, 0}

// Spec is the upstream wall record: facade, origin corner, horizontal direction and dimensions.
type Spec struct {
	Facade    Facade    `yaml:"facade" json:"facade"`
	Origin    geom.Vec3 `yaml:"origin" json:"origin"`
	Direction geom.Vec3 `yaml:"direction" json:"direction"`
	Length    float32   `yaml:"length" json:"length"`
	Height    float32   `yaml:"height" json:"height"`
	Thickness float32   `yaml:"thickness" json:"thickness"`
}

// Wall is a validated, immutable wall. u runs along the length, v is world up and
// w = u × v points from the exterior face into the wall.
type Wall struct {
	facade    Facade
	origin    geom.Vec3
	u, v, w   geom.Vec3
	length    float32
	height    float32
	thickness float32
}

// New validates s and builds the wall frame. The direction is projected onto the horizontal plane.
func New(s Spec) (Wall, error) {
	if !s.Facade.Valid() {
		return Wall{}, diag.Invalid("wall facade not set")
	}
	if !positive(s.Length) || !positive(s.Height) || !positive(s.Thickness) {
		return Wall{}, diag.Invalid("%s: wall dimensions must be positive (length %g, height %g, thickness %g)",
			s.Facade, s.Length, s.Height, s.Thickness)
	}
	dir := geom.Vec3{s.Direction[0], 0, s.Direction[2]}.Normalize()
	if dir == (geom.Vec3{}) {
		return Wall{}, diag.Invalid("%s: wall direction must have a horizontal component", s.Facade)
	}
	return Wall{
		facade:    s.Facade,
		origin:    s.Origin,
		u:         dir,
		v:         Up,
		w:         dir.Cross(Up),
		length:    s.Length,
		height:    s.Height,
		thickness: s.Thickness,
	}, nil
}

func (w Wall) Facade() Facade            { return w.facade }
func (w Wall) Origin() geom.Vec3         { return w.origin }
func (w Wall) Length() float32           { return w.length }
func (w Wall) Height() float32           { return w.height }
func (w Wall) Thickness() float32        { return w.thickness }
func (w Wall) Axes() (u, v, n geom.Vec3) { return w.u, w.v, w.w }

// ToWorld maps a wall-local point to world space.
func (w Wall) ToWorld(p geom.Vec3) geom.Vec3 {
	return w.origin.Add(w.u.Scale(p[0])).Add(w.v.Scale(p[1])).Add(w.w.Scale(p[2]))
}

// ToLocal maps a world point into the wall frame.
func (w Wall) ToLocal(p geom.Vec3) geom.Vec3 {
	d := p.Sub(w.origin)
	return geom.Vec3{d.Dot(w.u), d.Dot(w.v), d.Dot(w.w)}
}

// Placement returns the world transform of a local box: a unit cube centered at the origin
// mapped onto the box when scaled is true, or a box-sized mesh centered at the origin when false.
func (w Wall) Placement(b geom.Box, scaled bool) geom.Mat4 {
	c := w.ToWorld(b.Center())
	if !scaled {
		return geom.Basis(w.u, w.v, w.w, c)
	}
	s := b.Size()
	return geom.Basis(w.u.Scale(s[0]), w.v.Scale(s[1]), w.w.Scale(s[2]), c)
}

func positive(f float32) bool {
	return f > 0 && !math32.IsInf(f, 0) && !math32.IsNaN(f)
}
