package geom

import "github.com/chewxy/math32"

// Vec3 is a 3D vector. World space is Y-up; wall-local space is (u, v, w).
type Vec3 [3]float32

func (a Vec3) Add(b Vec3) Vec3 { return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }

func (a Vec3) Sub(b Vec3) Vec3 { return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

func (a Vec3) Scale(s float32) Vec3 { return Vec3{a[0] * s, a[1] * s, a[2] * s} }

func (a Vec3) Dot(b Vec3) float32 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

// Cross returns a × b.
func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func (a Vec3) Len() float32 { return math32.Sqrt(a.Dot(a)) }

// Normalize returns a unit vector in the direction of a, or the zero vector when a has no length.
func (a Vec3) Normalize() Vec3 {
	l := a.Len()
	if l == 0 {
		return Vec3{}
	}
	return a.Scale(1 / l)
}

// Box is an axis-aligned box. In wall-local space the axes are u (along the wall),
// v (vertical) and w (through the thickness, 0 at the exterior face).
type Box struct {
	Min Vec3
	Max Vec3
}

// NewBox returns the box with corner (u0, v0, w0) and the given extents.
func NewBox(u0, v0, w0, du, dv, dw float32) Box {
	return Box{
		Min: Vec3{u0, v0, w0},
		Max: Vec3{u0 + du, v0 + dv, w0 + dw},
	}
}

// Bounds returns the box spanning [u0, u1] x [v0, v1] x [w0, w1]. Prefer it over NewBox when a
// face must land exactly on a computed coordinate.
func Bounds(u0, u1, v0, v1, w0, w1 float32) Box {
	return Box{Min: Vec3{u0, v0, w0}, Max: Vec3{u1, v1, w1}}
}

func (b Box) Size() Vec3 { return b.Max.Sub(b.Min) }

func (b Box) Center() Vec3 { return b.Min.Add(b.Max).Scale(0.5) }

// Expand grows the box by margin on every side of all three axes.
func (b Box) Expand(margin float32) Box {
	return Box{
		Min: Vec3{b.Min[0] - margin, b.Min[1] - margin, b.Min[2] - margin},
		Max: Vec3{b.Max[0] + margin, b.Max[1] + margin, b.Max[2] + margin},
	}
}

// Overlap returns the overlap extent on each axis. A non-positive component means the
// boxes are separated (or only touching) on that axis.
func (b Box) Overlap(o Box) Vec3 {
	return Vec3{
		min(b.Max[0], o.Max[0]) - max(b.Min[0], o.Min[0]),
		min(b.Max[1], o.Max[1]) - max(b.Min[1], o.Min[1]),
		min(b.Max[2], o.Max[2]) - max(b.Min[2], o.Min[2]),
	}
}

// Intersects reports whether the boxes share a volume with positive extent on all three axes.
func (b Box) Intersects(o Box) bool {
	ov := b.Overlap(o)
	return ov[0] > 0 && ov[1] > 0 && ov[2] > 0
}

// Within reports whether b lies inside o, allowing eps of slack on every side.
func (b Box) Within(o Box, eps float32) bool {
	for i := 0; i < 3; i++ {
		if b.Min[i] < o.Min[i]-eps || b.Max[i] > o.Max[i]+eps {
			return false
		}
	}
	return true
}
