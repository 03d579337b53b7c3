// Package layout computes deterministic brick placements for one wall face.
package layout

import (
	"iter"

	"github.com/chewxy/math32"

	"masonry/internal/diag"
	"masonry/internal/geom"
)

// Piece is one brick placement in wall-local (u, v) space. Row is 1-indexed from the bottom,
// Col is 0-indexed from u = 0 within the row.
type Piece struct {
	Row    int
	Col    int
	Course Course
	U0     float32
	V0     float32
	Width  float32
	Height float32
}

func (p Piece) U1() float32 { return p.U0 + p.Width }
func (p Piece) V1() float32 { return p.V0 + p.Height }

// Box extrudes the piece through w in [w0, w0+depth].
func (p Piece) Box(w0, depth float32) geom.Box {
	return geom.NewBox(p.U0, p.V0, w0, p.Width, p.Height, depth)
}

// Grid is the brick grid of one wall face. It holds no mutable state; every call to All
// replays the same sequence.
type Grid struct {
	length, height float32
	units          Units
	bond           Bond

	pitchU, pitchV float32 // stretcher and course pitch
	brickW, brickH float32
	headerPitch    float32
	headerW        float32
	rows           int
}

// New builds the full-resolution grid. A face smaller than one brick in either direction is
// a geometry construction error; callers emit nothing for it.
func New(length, height float32, units Units, bond Bond) (*Grid, error) {
	if err := units.Validate(); err != nil {
		return nil, err
	}
	if length < units.Length || height < units.Height {
		return nil, diag.Degenerate("face %gx%g is smaller than one %gx%g brick", length, height, units.Length, units.Height)
	}
	return newGrid(length, height, units, bond, units.Length+units.Joint, units.Height+units.Joint), nil
}

// newGrid builds a grid with the given cell pitch; pieces fill the cell minus one joint.
func newGrid(length, height float32, units Units, bond Bond, pitchU, pitchV float32) *Grid {
	scale := pitchU / (units.Length + units.Joint)
	g := &Grid{
		length:      length,
		height:      height,
		units:       units,
		bond:        bond,
		pitchU:      pitchU,
		pitchV:      pitchV,
		brickW:      pitchU - units.Joint,
		brickH:      pitchV - units.Joint,
		headerPitch: (units.Depth + units.Joint) * scale,
	}
	g.headerW = g.headerPitch - units.Joint
	full := int(math32.Floor(height / pitchV))
	g.rows = full
	if height-float32(full)*pitchV >= g.minPiece() {
		g.rows++
	}
	return g
}

// minPiece is the narrowest piece worth laying; anything thinner is left to mortar.
func (g *Grid) minPiece() float32 {
	return max(g.units.Joint, 1e-4)
}

func (g *Grid) Length() float32 { return g.length }
func (g *Grid) Height() float32 { return g.height }
func (g *Grid) Units() Units    { return g.units }
func (g *Grid) Bond() Bond      { return g.bond }
func (g *Grid) Rows() int       { return g.rows }

// Pitch returns the cell size along u and v.
func (g *Grid) Pitch() (u, v float32) { return g.pitchU, g.pitchV }

// RowOffset is the u shift of row r (1-indexed). For running bond it is
// (r mod 2) * (brick width/2 + joint/2).
func (g *Grid) RowOffset(r int) float32 {
	if r%2 == 0 {
		return 0
	}
	switch g.bond {
	case Running:
		return g.pitchU / 2
	case Flemish:
		return g.pitchU / 4
	case English:
		return g.headerPitch / 2
	}
	return 0
}

func (g *Grid) course(r int) (Course, float32, float32) {
	if g.bond == English && r%2 == 1 {
		return Header, g.headerW, g.headerPitch
	}
	return Stretcher, g.brickW, g.pitchU
}

// Row yields the pieces of row r, clipped to [0, length] x [0, height].
func (g *Grid) Row(r int) iter.Seq[Piece] {
	return func(yield func(Piece) bool) {
		g.row(r, yield)
	}
}

func (g *Grid) row(r int, yield func(Piece) bool) bool {
	if r < 1 || r > g.rows {
		return true
	}
	v0 := float32(r-1) * g.pitchV
	h := min(g.brickH, g.height-v0)
	if h < g.minPiece() {
		return true
	}
	course, width, pitch := g.course(r)
	start := float32(0)
	if off := g.RowOffset(r); off > 0 {
		start = off - pitch
	}
	col := 0
	for k := 0; ; k++ {
		u := start + float32(k)*pitch
		if u >= g.length {
			break
		}
		u0 := max(u, 0)
		u1 := min(u+width, g.length)
		if u1-u0 < g.minPiece() {
			continue
		}
		p := Piece{Row: r, Col: col, Course: course, U0: u0, V0: v0, Width: u1 - u0, Height: h}
		col++
		if !yield(p) {
			return false
		}
	}
	return true
}

// All yields every piece, bottom row first, left to right.
func (g *Grid) All() iter.Seq[Piece] {
	return func(yield func(Piece) bool) {
		for r := 1; r <= g.rows; r++ {
			if !g.row(r, yield) {
				return
			}
		}
	}
}

// Count returns the number of pieces All yields.
func (g *Grid) Count() int {
	n := 0
	for range g.All() {
		n++
	}
	return n
}

// Estimate is the full-resolution brick count of a face, or 0 for a degenerate face.
func Estimate(length, height float32, units Units, bond Bond) int {
	g, err := New(length, height, units, bond)
	if err != nil {
		return 0
	}
	return g.Count()
}
