package emit

import (
	"iter"

	"masonry/internal/diag"
	"masonry/internal/geom"
	"masonry/internal/material"
	"masonry/internal/primitives"
	"masonry/internal/wall"
)

// Role is what an element is, for material binding and reporting.
type Role string

const (
	RoleBrick  Role = "brick"
	RoleMortar Role = "mortar"
	RoleLintel Role = "lintel"
)

// Element is one emitted piece of geometry. Mesh is shared between elements when Shared is
// set (instanced tiers) and owned by the element otherwise. Transform places the mesh in
// world space; Footprint is the same volume in the wall's local frame.
type Element struct {
	Facade    wall.Facade
	Role      Role
	Mesh      *primitives.Mesh
	Shared    bool
	Transform geom.Mat4
	Footprint geom.Box
	Row       int
	Col       int
	Tint      float32
	Material  *material.Material
}

func (e *Element) PartRole() string             { return string(e.Role) }
func (e *Element) Assigned() *material.Material { return e.Material }
func (e *Element) Assign(m *material.Material)  { e.Material = m }

// Stats summarizes one wall's emission.
type Stats struct {
	Strategy   string
	Rows       int
	Coarsening float32
	Candidates int
	Excluded   int
	Displaced  int
	Bricks     int
	Lintels    int
	Mortar     int
}

// Total is the number of emitted elements.
func (s Stats) Total() int { return s.Bricks + s.Lintels + s.Mortar }

// Output is what a strategy produces for one wall.
type Output struct {
	Facade   wall.Facade
	Elements []Element
	Stats    Stats
	Warnings []diag.Warning
}

// Targets yields every element for material binding.
func (o *Output) Targets() iter.Seq[material.Target] {
	return Targets(o.Elements)
}

// Targets yields pointers into els, so bound materials land on the slice itself.
func Targets(els []Element) iter.Seq[material.Target] {
	return func(yield func(material.Target) bool) {
		for i := range els {
			if !yield(&els[i]) {
				return
			}
		}
	}
}
