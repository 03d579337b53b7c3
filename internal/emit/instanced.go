package emit

import (
	"fmt"

	"masonry/internal/collision"
	"masonry/internal/geom"
	"masonry/internal/layout"
	"masonry/internal/primitives"
	"masonry/internal/wall"
)

const mortarKey = "mortar/unit"

// Instanced lays a proxy grid whose cells are instances of one master brick mesh (real brick
// size, scaled onto each cell), plus one mortar strip per course. Large faces are coarsened so each wall stays within Proxy.Max
// instances.
type Instanced struct {
	Options
}

func (s *Instanced) Name() string { return "instanced" }

func (s *Instanced) Emit(surf *wall.Surface) (*Output, error) {
	o := s.Options
	if o.Meshes == nil {
		o.Meshes = primitives.NewRegistry()
	}
	g, err := layout.Proxy(surf.Extent(), surf.Height(), o.Units, o.Bond, o.Proxy)
	if err != nil {
		return nil, err
	}
	m := newMason(surf, o, s.Name())
	m.out.Stats.Rows = g.Rows()
	m.out.Stats.Coarsening = layout.CoarseningFactor(surf.Extent()*surf.Height(), o.Units, o.Proxy.Target)

	_, pv := g.Pitch()
	size := geom.Vec3{o.Units.Length, o.Units.Height, o.Units.Depth}
	brick := o.Meshes.Box(brickKey(o.Quality, size), size, o.Quality.Detail(o.Seed))
	unscale := geom.Scaling(geom.Vec3{1 / size[0], 1 / size[1], 1 / size[2]})

	m.layBricks(g, func(p layout.Piece, role Role, b geom.Box) {
		m.add(Element{
			Role:      role,
			Mesh:      brick,
			Shared:    true,
			Transform: m.wall.Placement(b, true).Mul(unscale),
			Footprint: b,
			Row:       p.Row,
			Col:       p.Col,
			Tint:      m.tint(p.Row, p.Col),
		})
	})

	if m.depth <= o.MortarRecess {
		return m.out, nil
	}
	unit := o.Meshes.Box(mortarKey, geom.Vec3{1, 1, 1}, primitives.Detail{})
	for r := 1; r <= g.Rows(); r++ {
		v0 := float32(r-1) * pv
		v1 := min(float32(r)*pv, m.height)
		band := geom.Bounds(0, m.extent, v0, v1, o.MortarRecess, m.depth)
		col := 0
		for _, span := range collision.Clear(0, m.extent, band, m.openings, o.Margin) {
			if span[1]-span[0] < minSegment {
				continue
			}
			b := geom.Bounds(span[0], span[1], v0, v1, o.MortarRecess, m.depth)
			if !m.admit(b) {
				continue
			}
			m.add(Element{
				Role:      RoleMortar,
				Mesh:      unit,
				Shared:    true,
				Transform: m.wall.Placement(b, true),
				Footprint: b,
				Row:       r,
				Col:       col,
				Tint:      1,
			})
			col++
		}
	}
	return m.out, nil
}

func brickKey(q Quality, size geom.Vec3) string {
	return fmt.Sprintf("brick/%s/%.4fx%.4fx%.4f", q, size[0], size[1], size[2])
}
