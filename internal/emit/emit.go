// Package emit turns a wall surface into bricks, mortar and lintels, either as instances of a
// shared master mesh or as distinct meshes per element.
package emit

import (
	"masonry/internal/collision"
	"masonry/internal/diag"
	"masonry/internal/geom"
	"masonry/internal/layout"
	"masonry/internal/primitives"
	"masonry/internal/wall"
)

// Options configures both strategies.
type Options struct {
	Quality Quality
	Units   layout.Units
	Bond    layout.Bond
	// Margin is the clearance kept around openings on every axis.
	Margin float32
	// MortarRecess is how far mortar sits behind the brick face.
	MortarRecess float32
	Proxy        layout.ProxyRule
	// WarnThreshold is the per-wall element count above which the full strategy warns.
	WarnThreshold int
	Lintels       bool
	Seed          int32
	// Meshes caches master meshes; shared between walls so they reuse one brick mesh.
	Meshes *primitives.Registry
}

func DefaultOptions() Options {
	return Options{
		Quality:       Medium,
		Units:         layout.DefaultUnits(),
		Bond:          layout.Running,
		Margin:        collision.DefaultMargin,
		MortarRecess:  0.006,
		Proxy:         layout.DefaultProxyRule(),
		WarnThreshold: 3000,
		Lintels:       true,
	}
}

// Strategy emits the elements of one wall. Implementations mutate nothing outside the
// returned Output except the mesh cache.
type Strategy interface {
	Name() string
	Emit(s *wall.Surface) (*Output, error)
}

// ForQuality picks the strategy for o.Quality.
func ForQuality(o Options) Strategy {
	if o.Meshes == nil {
		o.Meshes = primitives.NewRegistry()
	}
	if o.Quality.Instanced() {
		return &Instanced{Options: o}
	}
	return &Full{Options: o}
}

// minSegment is the thinnest mortar segment worth emitting.
const minSegment = 1e-4

// mason holds the per-wall state shared by both strategies.
type mason struct {
	opts     Options
	wall     wall.Wall
	extent   float32
	height   float32
	depth    float32
	openings []geom.Box
	spans    []layout.Span
	out      *Output
}

func newMason(s *wall.Surface, o Options, strategy string) *mason {
	w := s.Wall()
	return &mason{
		opts:     o,
		wall:     w,
		extent:   s.Extent(),
		height:   s.Height(),
		depth:    min(o.Units.Depth, w.Thickness()),
		openings: s.OpeningBoxes(),
		out: &Output{
			Facade: w.Facade(),
			Stats:  Stats{Strategy: strategy},
		},
	}
}

// admit runs the opening filter on a candidate.
func (m *mason) admit(b geom.Box) bool {
	m.out.Stats.Candidates++
	if collision.Exclude(b, m.openings, m.opts.Margin) {
		m.out.Stats.Excluded++
		return false
	}
	return true
}

// layBricks places every piece of the grid that survives the opening filter. With lintels on,
// the course above each opening carries a lintel and the ordinary pieces of that course are
// cut back around it.
func (m *mason) layBricks(g *layout.Grid, place func(p layout.Piece, role Role, b geom.Box)) {
	if m.opts.Lintels {
		m.spans = g.LintelSpans(m.openings, m.opts.Margin)
		m.out.Stats.Displaced = g.Displaced(m.spans)
	}
	for p := range g.AllWith(m.spans) {
		b := p.Box(0, m.depth)
		if !m.admit(b) {
			continue
		}
		role := RoleBrick
		if p.Course == layout.Lintel {
			role = RoleLintel
		}
		place(p, role, b)
	}
}

// tint is the lightness factor of the element at (row, col), in [0.9, 1.1].
func (m *mason) tint(row, col int) float32 {
	if !m.opts.Quality.Tinted() {
		return 1
	}
	return 1 + 0.1*geom.Signed(int32(row), int32(col), m.opts.Seed+int32(m.wall.Facade())*7919)
}

func (m *mason) add(e Element) {
	e.Facade = m.wall.Facade()
	switch e.Role {
	case RoleBrick:
		m.out.Stats.Bricks++
	case RoleLintel:
		m.out.Stats.Lintels++
	case RoleMortar:
		m.out.Stats.Mortar++
	}
	m.out.Elements = append(m.out.Elements, e)
}

func (m *mason) warn(err error) {
	m.out.Warnings = append(m.out.Warnings, diag.Warn(m.wall.Facade().String(), err))
}
