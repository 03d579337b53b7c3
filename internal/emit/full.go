package emit

import (
	"fmt"
	"slices"

	"masonry/internal/geom"
	"masonry/internal/layout"
	"masonry/internal/primitives"
	"masonry/internal/wall"
)

// Full builds a distinct mesh for every brick and every mortar joint at real scale. There is
// no cap on the count; walls above WarnThreshold elements are reported.
type Full struct {
	Options
}

func (s *Full) Name() string { return "full" }

func (s *Full) Emit(surf *wall.Surface) (*Output, error) {
	o := s.Options
	g, err := layout.New(surf.Extent(), surf.Height(), o.Units, o.Bond)
	if err != nil {
		return nil, err
	}
	m := newMason(surf, o, s.Name())
	m.out.Stats.Rows = g.Rows()
	m.out.Stats.Coarsening = 1
	facade := m.wall.Facade()

	m.layBricks(g, func(p layout.Piece, role Role, b geom.Box) {
		seed := o.Seed ^ int32(facade)<<24 ^ int32(p.Row)<<12 ^ int32(p.Col)
		if role == RoleLintel {
			seed = ^seed
		}
		mesh := primitives.Box(b.Size(), o.Quality.Detail(seed))
		mesh.Name = fmt.Sprintf("%s/%s/%d/%d", facade, role, p.Row, p.Col)
		m.add(Element{
			Role:      role,
			Mesh:      mesh,
			Transform: m.wall.Placement(b, false),
			Footprint: b,
			Row:       p.Row,
			Col:       p.Col,
			Tint:      m.tint(p.Row, p.Col),
		})
	})

	if m.depth > o.MortarRecess {
		var row []layout.Piece
		for r := 1; r <= g.Rows(); r++ {
			row = slices.AppendSeq(row[:0], g.RowWith(r, m.spans))
			s.joints(m, row)
		}
	}

	if n := m.out.Stats.Total(); o.WarnThreshold > 0 && n > o.WarnThreshold {
		m.warn(fmt.Errorf("%d elements exceed the warning threshold of %d; consider an instanced quality", n, o.WarnThreshold))
	}
	return m.out, nil
}

// joints emits the head joint right of each piece and the bed joint above it, lintels included.
// The first piece also fills any gap back to u = 0 and the last one runs to the end of the
// face, so dropped slivers at either end are mortar.
func (s *Full) joints(m *mason, row []layout.Piece) {
	w0, w1 := s.MortarRecess, m.depth
	for i, p := range row {
		if i == 0 && p.U0 > minSegment {
			s.joint(m, p.Row, -1, geom.Bounds(0, p.U0, p.V0, p.V1(), w0, w1))
		}
		end := m.extent
		if i+1 < len(row) {
			end = row[i+1].U0
		}
		if end-p.U1() > minSegment {
			s.joint(m, p.Row, 2*p.Col, geom.Bounds(p.U1(), end, p.V0, p.V1(), w0, w1))
		}
		top := min(p.V1()+s.Units.Joint, m.height)
		if top-p.V1() > minSegment {
			start := p.U0
			if i == 0 {
				start = 0
			}
			s.joint(m, p.Row, 2*p.Col+1, geom.Bounds(start, end, p.V1(), top, w0, w1))
		}
	}
}

func (s *Full) joint(m *mason, row, col int, b geom.Box) {
	if !m.admit(b) {
		return
	}
	mesh := primitives.Box(b.Size(), primitives.Detail{})
	mesh.Name = fmt.Sprintf("%s/mortar/%d/%d", m.wall.Facade(), row, col)
	m.add(Element{
		Role:      RoleMortar,
		Mesh:      mesh,
		Transform: m.wall.Placement(b, false),
		Footprint: b,
		Row:       row,
		Col:       col,
		Tint:      1,
	})
}
