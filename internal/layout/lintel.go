package layout

import (
	"cmp"
	"iter"
	"slices"

	"github.com/chewxy/math32"

	"masonry/internal/geom"
)

// LintelOverhang is how far a lintel runs past each side of its opening.
const LintelOverhang = 0.10

// Span is the stretch of one course a lintel takes over.
type Span struct {
	Row    int
	U0, U1 float32
}

// LintelSpans places a lintel on the first course that starts at least margin above each
// opening, from LintelOverhang left of it to LintelOverhang right of it, clipped to the face.
// Spans on the same course that come within one joint of each other are merged. An opening
// with no course above it gets no lintel.
func (g *Grid) LintelSpans(openings []geom.Box, margin float32) []Span {
	var spans []Span
	for _, o := range openings {
		r := g.courseAbove(o.Max[1] + margin)
		if r > g.rows || g.courseHeight(r) < g.minPiece() {
			continue
		}
		u0 := max(0, o.Min[0]-LintelOverhang)
		u1 := min(g.length, o.Max[0]+LintelOverhang)
		if u1-u0 < g.minPiece() {
			continue
		}
		spans = append(spans, Span{Row: r, U0: u0, U1: u1})
	}
	slices.SortFunc(spans, func(a, b Span) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return cmp.Compare(a.U0, b.U0)
	})
	merged := spans[:0]
	for _, s := range spans {
		if n := len(merged); n > 0 && merged[n-1].Row == s.Row && s.U0 <= merged[n-1].U1+g.units.Joint {
			merged[n-1].U1 = max(merged[n-1].U1, s.U1)
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// courseAbove is the first row whose bottom edge is at or above v.
func (g *Grid) courseAbove(v float32) int {
	r := max(1, int(math32.Floor(v/g.pitchV))+1)
	for r > 1 && float32(r-2)*g.pitchV >= v {
		r--
	}
	for float32(r-1)*g.pitchV < v {
		r++
	}
	return r
}

func (g *Grid) courseHeight(r int) float32 {
	return min(g.brickH, g.height-float32(r-1)*g.pitchV)
}

// Lintels returns the lintel pieces of every span, bottom course first.
func (g *Grid) Lintels(openings []geom.Box, margin float32) []Piece {
	var out []Piece
	for p := range g.AllWith(g.LintelSpans(openings, margin)) {
		if p.Course == Lintel {
			out = append(out, p)
		}
	}
	return out
}

// RowWith yields row r with the spans on that row laid in: each span is filled edge to edge
// with lintel stretchers and the ordinary pieces are cut back to stay one joint clear of it. Cut pieces
// thinner than a joint are dropped. Pieces come left to right and Col counts along the row.
func (g *Grid) RowWith(r int, spans []Span) iter.Seq[Piece] {
	return func(yield func(Piece) bool) {
		for _, p := range g.rowWith(r, spans) {
			if !yield(p) {
				return
			}
		}
	}
}

// AllWith is All with the lintel spans laid in.
func (g *Grid) AllWith(spans []Span) iter.Seq[Piece] {
	return func(yield func(Piece) bool) {
		for r := 1; r <= g.rows; r++ {
			for _, p := range g.rowWith(r, spans) {
				if !yield(p) {
					return
				}
			}
		}
	}
}

// Displaced counts the ordinary pieces the spans remove entirely.
func (g *Grid) Displaced(spans []Span) int {
	n := 0
	for r := 1; r <= g.rows; r++ {
		own := spansOn(r, spans)
		if len(own) == 0 {
			continue
		}
		for p := range g.Row(r) {
			if len(g.clipAround(p, own)) == 0 {
				n++
			}
		}
	}
	return n
}

func spansOn(r int, spans []Span) []Span {
	var own []Span
	for _, s := range spans {
		if s.Row == r {
			own = append(own, s)
		}
	}
	return own
}

func (g *Grid) rowWith(r int, spans []Span) []Piece {
	own := spansOn(r, spans)
	var out []Piece
	for p := range g.Row(r) {
		if len(own) == 0 {
			out = append(out, p)
			continue
		}
		out = append(out, g.clipAround(p, own)...)
	}
	if len(own) == 0 {
		return out
	}
	v0 := float32(r-1) * g.pitchV
	h := g.courseHeight(r)
	for _, s := range own {
		for u := s.U0; s.U1-u >= g.minPiece(); u += g.pitchU {
			w := min(g.brickW, s.U1-u)
			if rest := s.U1 - u - g.pitchU; rest > 0 && rest < g.minPiece() {
				w = s.U1 - u
			}
			out = append(out, Piece{Row: r, Course: Lintel, U0: u, V0: v0, Width: w, Height: h})
		}
	}
	slices.SortStableFunc(out, func(a, b Piece) int { return cmp.Compare(a.U0, b.U0) })
	for i := range out {
		out[i].Col = i
	}
	return out
}

// clipAround cuts p back so that every part of it stays one joint clear of the spans, which
// are sorted along u and do not overlap.
func (g *Grid) clipAround(p Piece, spans []Span) []Piece {
	var out []Piece
	u := p.U0
	for _, s := range spans {
		lo, hi := s.U0-g.units.Joint, s.U1+g.units.Joint
		if hi <= u || lo >= p.U1() {
			continue
		}
		if lo-u >= g.minPiece() {
			q := p
			q.U0, q.Width = u, lo-u
			out = append(out, q)
		}
		u = max(u, hi)
	}
	if p.U1()-u >= g.minPiece() {
		q := p
		q.U0, q.Width = u, p.U1()-u
		out = append(out, q)
	}
	return out
}
