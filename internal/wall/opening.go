package wall

import (
	"masonry/internal/diag"
	"masonry/internal/geom"
)

// OpeningSpec is an upstream opening record in its wall's local frame. U/V locate the
// lower-left corner, W the offset of the cut from the exterior face. Depth 0 means unset.
type OpeningSpec struct {
	Facade Facade  `yaml:"facade" json:"facade"`
	U      float32 `yaml:"u" json:"u"`
	V      float32 `yaml:"v" json:"v"`
	W      float32 `yaml:"w,omitempty" json:"w,omitempty"`
	Width  float32 `yaml:"width" json:"width"`
	Height float32 `yaml:"height" json:"height"`
	Depth  float32 `yaml:"depth,omitempty" json:"depth,omitempty"`
}

// Opening is a validated cutout owned by exactly one facade.
type Opening struct {
	facade        Facade
	u, v, w       float32
	width, height float32
	depth         float32
}

// NewOpening validates an upstream record.
func NewOpening(s OpeningSpec) (Opening, error) {
	if !s.Facade.Valid() {
		return Opening{}, diag.Invalid("opening has no owning facade")
	}
	if !positive(s.Width) || !positive(s.Height) {
		return Opening{}, diag.Invalid("%s opening at (%g, %g): width and height must be positive, got %g x %g",
			s.Facade, s.U, s.V, s.Width, s.Height)
	}
	if s.Depth < 0 || s.W < 0 {
		return Opening{}, diag.Invalid("%s opening at (%g, %g): negative depth or offset", s.Facade, s.U, s.V)
	}
	return Opening{
		facade: s.Facade,
		u:      s.U,
		v:      s.V,
		w:      s.W,
		width:  s.Width,
		height: s.Height,
		depth:  s.Depth,
	}, nil
}

func (o Opening) Facade() Facade         { return o.facade }
func (o Opening) Width() float32         { return o.width }
func (o Opening) Height() float32        { return o.height }
func (o Opening) Depth() float32         { return o.depth }
func (o Opening) DepthSet() bool         { return o.depth > 0 }
func (o Opening) Anchor() (u, v float32) { return o.u, o.v }

// Box returns the opening volume in wall-local space. An unset depth spans the full
// thickness from the exterior face, whatever the offset.
func (o Opening) Box(thickness float32) geom.Box {
	if o.depth <= 0 {
		return geom.NewBox(o.u, o.v, 0, o.width, o.height, thickness)
	}
	return geom.NewBox(o.u, o.v, o.w, o.width, o.height, o.depth)
}
