package material

import (
	"fmt"
	"iter"

	"github.com/jinzhu/copier"

	"masonry/internal/diag"
)

// Target is anything a material can be bound to.
type Target interface {
	PartRole() string
	Assigned() *Material
	Assign(*Material)
}

// Plan says which spec each role gets. Mortar uses Mortar; roles listed in Roles use their
// entry; every other role (bricks, lintels, anything else) uses Brick.
type Plan struct {
	Brick  Spec
	Mortar Spec
	Roles  map[string]Spec
	// Force replaces materials already present on a target. Without it they are kept,
	// whatever the role.
	Force bool
}

// DefaultPlan binds the default preset to bricks and the default mortar color to mortar.
func DefaultPlan() Plan {
	return Plan{Brick: Preset(""), Mortar: Color(DefaultMortarColor)}
}

func (p Plan) spec(role string) Spec {
	if s, ok := p.Roles[role]; ok {
		return s
	}
	if role == "mortar" {
		return p.Mortar
	}
	return p.Brick
}

// BindReport counts what Bind did.
type BindReport struct {
	Assigned    int
	Preserved   int
	Overwritten int
	Materials   []*Material
}

// Binder resolves specs against an injected registry.
type Binder struct {
	registry *Registry
}

func NewBinder(r *Registry) *Binder {
	return &Binder{registry: r}
}

// colorRoughness is used for plain colors; mortar is the usual consumer.
const colorRoughness = 0.9

// Resolve turns a spec into a material. When the spec cannot be honored the default preset
// is returned together with a configuration error describing the substitution. If the
// default itself cannot be built the material is nil.
func (b *Binder) Resolve(s Spec) (*Material, error) {
	switch s.Mode {
	case ModePreset:
		if s.Preset == "" {
			return b.fromRecipe(b.registry.Default())
		}
		rc, err := b.registry.Lookup(s.Preset)
		if err != nil {
			return b.fallback(err)
		}
		return b.fromRecipe(rc)
	case ModeColor:
		c, err := parseHex(s.Color)
		if err != nil {
			return b.fallback(err)
		}
		return &Material{Name: "color" + c.Hex(), Mode: ModeColor, Color: c, Roughness: colorRoughness}, nil
	case ModeCustom:
		if s.Ref == "" {
			return b.fallback(diag.Misconfigured("custom material without a reference"))
		}
		m, err := b.fromRecipe(b.registry.Default())
		if err != nil {
			return nil, err
		}
		m.Name, m.Mode, m.Preset, m.Ref = s.Ref, ModeCustom, "", s.Ref
		return m, nil
	}
	return b.fallback(diag.Misconfigured("unknown material mode %d", s.Mode))
}

func (b *Binder) fallback(cause error) (*Material, error) {
	def := b.registry.Default()
	m, err := b.fromRecipe(def)
	if err != nil {
		return nil, fmt.Errorf("%w; default preset unusable: %w", cause, err)
	}
	return m, fmt.Errorf("%w; using default preset %s", cause, def.Name)
}

func (b *Binder) fromRecipe(rc Recipe) (*Material, error) {
	m := &Material{}
	if err := copier.Copy(m, &rc); err != nil {
		return nil, diag.Misconfigured("preset %q: %v", rc.Name, err)
	}
	c, err := parseHex(rc.Hex)
	if err != nil {
		return nil, fmt.Errorf("preset %q: %w", rc.Name, err)
	}
	m.Mode = ModePreset
	m.Preset = rc.Name
	m.Color = c
	return m, nil
}

// Bind assigns materials to targets per plan. A target that already carries a material is
// left alone unless plan.Force is set; the rule is the same for every role. Each distinct
// spec is resolved once and shared; every fallback is reported as a warning.
func (b *Binder) Bind(targets iter.Seq[Target], plan Plan) (BindReport, []diag.Warning) {
	var (
		rep      BindReport
		warns    []diag.Warning
		resolved = make(map[Spec]*Material)
	)
	for t := range targets {
		prev := t.Assigned()
		if prev != nil && !plan.Force {
			rep.Preserved++
			continue
		}
		spec := plan.spec(t.PartRole())
		m, ok := resolved[spec]
		if !ok {
			var err error
			m, err = b.Resolve(spec)
			if err != nil {
				warns = append(warns, diag.Warn("material "+t.PartRole(), err))
			}
			resolved[spec] = m
			if m != nil {
				rep.Materials = append(rep.Materials, m)
			}
		}
		if m == nil {
			continue
		}
		t.Assign(m)
		if prev != nil {
			rep.Overwritten++
		}
		rep.Assigned++
	}
	return rep, warns
}
