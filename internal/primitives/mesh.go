package primitives

import (
	"slices"

	"github.com/chewxy/math32"

	"masonry/internal/geom"
)

// Mesh is an indexed triangle mesh. Vertices and Normals hold 3 floats per vertex,
// Indices 3 per triangle, counter-clockwise seen from outside.
type Mesh struct {
	Name     string    `json:"name"`
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
}

func (m *Mesh) VertexCount() int   { return len(m.Vertices) / 3 }
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Bounds returns the axis-aligned bounds of the vertices.
func (m *Mesh) Bounds() geom.Box {
	if len(m.Vertices) < 3 {
		return geom.Box{}
	}
	b := geom.Box{
		Min: geom.Vec3{m.Vertices[0], m.Vertices[1], m.Vertices[2]},
		Max: geom.Vec3{m.Vertices[0], m.Vertices[1], m.Vertices[2]},
	}
	for i := 3; i+2 < len(m.Vertices); i += 3 {
		for a := 0; a < 3; a++ {
			b.Min[a] = min(b.Min[a], m.Vertices[i+a])
			b.Max[a] = max(b.Max[a], m.Vertices[i+a])
		}
	}
	return b
}

// addFace appends a flat convex polygon. Points may come in any order; they are sorted
// counter-clockwise around outward so the triangles face out.
func (m *Mesh) addFace(points []geom.Vec3, outward geom.Vec3) {
	n := outward.Normalize()
	var c geom.Vec3
	for _, p := range points {
		c = c.Add(p)
	}
	c = c.Scale(1 / float32(len(points)))
	t1 := perpendicular(n)
	t2 := n.Cross(t1)
	sorted := slices.Clone(points)
	slices.SortFunc(sorted, func(a, b geom.Vec3) int {
		da, db := a.Sub(c), b.Sub(c)
		aa := math32.Atan2(da.Dot(t2), da.Dot(t1))
		ab := math32.Atan2(db.Dot(t2), db.Dot(t1))
		switch {
		case aa < ab:
			return -1
		case aa > ab:
			return 1
		}
		return 0
	})
	base := uint32(m.VertexCount())
	for _, p := range sorted {
		m.Vertices = append(m.Vertices, p[0], p[1], p[2])
		m.Normals = append(m.Normals, n[0], n[1], n[2])
	}
	for i := uint32(1); i+1 < uint32(len(sorted)); i++ {
		m.Indices = append(m.Indices, base, base+i, base+i+1)
	}
}

func perpendicular(n geom.Vec3) geom.Vec3 {
	axis := geom.Vec3{1, 0, 0}
	if math32.Abs(n[0]) > 0.9 {
		axis = geom.Vec3{0, 1, 0}
	}
	return n.Cross(axis).Normalize()
}
