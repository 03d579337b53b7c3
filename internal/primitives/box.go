package primitives

import (
	"github.com/chewxy/math32"

	"masonry/internal/geom"
)

// Detail controls how a box is shaped. Bevel chamfers every edge by that distance;
// Jitter moves each corner by up to that distance, seeded so the same Seed gives the same mesh.
type Detail struct {
	Bevel  float32
	Jitter float32
	Seed   int32
}

// corners in sign order; index bits: 0 = x, 1 = y, 2 = z (bit set = positive side).
var cornerSigns = func() [8]geom.Vec3 {
	var out [8]geom.Vec3
	for i := range out {
		for a := 0; a < 3; a++ {
			out[i][a] = -1
			if i&(1<<a) != 0 {
				out[i][a] = 1
			}
		}
	}
	return out
}()

// Box builds a box of the given size centered at the origin.
func Box(size geom.Vec3, d Detail) *Mesh {
	half := size.Scale(0.5)
	bevel := min(d.Bevel, min(half[0], half[1], half[2])*0.5)
	if bevel <= 0 {
		return plainBox(half, d)
	}
	return beveledBox(half, bevel, d)
}

func jitter(p geom.Vec3, corner, slot int, d Detail) geom.Vec3 {
	if d.Jitter <= 0 {
		return p
	}
	for a := 0; a < 3; a++ {
		p[a] += geom.Signed(int32(corner*3+slot), int32(a), d.Seed) * d.Jitter
	}
	return p
}

func plainBox(half geom.Vec3, d Detail) *Mesh {
	var pts [8]geom.Vec3
	for i, s := range cornerSigns {
		pts[i] = jitter(geom.Vec3{s[0] * half[0], s[1] * half[1], s[2] * half[2]}, i, 0, d)
	}
	m := &Mesh{Name: "box"}
	for a := 0; a < 3; a++ {
		for _, side := range []float32{-1, 1} {
			var face []geom.Vec3
			for i, s := range cornerSigns {
				if s[a] == side {
					face = append(face, pts[i])
				}
			}
			var n geom.Vec3
			n[a] = side
			m.addFace(face, n)
		}
	}
	return m
}

// beveledBox cuts every edge and corner: 6 main faces, 12 edge chamfers, 8 corner triangles.
// Each corner contributes three points, one pushed out along each axis.
func beveledBox(half geom.Vec3, bevel float32, d Detail) *Mesh {
	var pts [8][3]geom.Vec3
	for i, s := range cornerSigns {
		for a := 0; a < 3; a++ {
			var p geom.Vec3
			for b := 0; b < 3; b++ {
				inset := half[b] - bevel
				if a == b {
					inset = half[b]
				}
				p[b] = s[b] * inset
			}
			pts[i][a] = jitter(p, i, a, d)
		}
	}
	m := &Mesh{Name: "beveled-box"}
	// Main faces.
	for a := 0; a < 3; a++ {
		for _, side := range []float32{-1, 1} {
			var face []geom.Vec3
			for i, s := range cornerSigns {
				if s[a] == side {
					face = append(face, pts[i][a])
				}
			}
			var n geom.Vec3
			n[a] = side
			m.addFace(face, n)
		}
	}
	// Edge chamfers between faces a and b, along the remaining axis.
	for a := 0; a < 3; a++ {
		for b := a + 1; b < 3; b++ {
			for _, sa := range []float32{-1, 1} {
				for _, sb := range []float32{-1, 1} {
					var face []geom.Vec3
					for i, s := range cornerSigns {
						if s[a] == sa && s[b] == sb {
							face = append(face, pts[i][a], pts[i][b])
						}
					}
					var n geom.Vec3
					n[a], n[b] = sa, sb
					m.addFace(face, n)
				}
			}
		}
	}
	// Corner triangles.
	for i, s := range cornerSigns {
		m.addFace([]geom.Vec3{pts[i][0], pts[i][1], pts[i][2]}, s)
	}
	return m
}

// Volume estimates the enclosed volume from the triangles (divergence theorem).
func (m *Mesh) Volume() float32 {
	var v float32
	for i := 0; i+2 < len(m.Indices); i += 3 {
		a := m.vertex(m.Indices[i])
		b := m.vertex(m.Indices[i+1])
		c := m.vertex(m.Indices[i+2])
		v += a.Dot(b.Cross(c))
	}
	return math32.Abs(v) / 6
}

func (m *Mesh) vertex(i uint32) geom.Vec3 {
	return geom.Vec3{m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]}
}
