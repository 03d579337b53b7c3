// Package blueprint reads the YAML documents that describe what to build: the walls (or a
// rectangular envelope), their openings, and optional quality, bond and material choices.
package blueprint

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"masonry/internal/assembler"
	"masonry/internal/diag"
	"masonry/internal/emit"
	"masonry/internal/geom"
	"masonry/internal/layout"
	"masonry/internal/material"
	"masonry/internal/wall"
)

// Document is one blueprint. Exactly one of Envelope and Walls must be given.
type Document struct {
	Name      string             `yaml:"name"`
	Quality   *emit.Quality      `yaml:"quality,omitempty"`
	Bond      *layout.Bond       `yaml:"bond,omitempty"`
	Envelope  *Envelope          `yaml:"envelope,omitempty"`
	Walls     []wall.Spec        `yaml:"walls,omitempty"`
	Openings  []wall.OpeningSpec `yaml:"openings,omitempty"`
	Materials *Materials         `yaml:"materials,omitempty"`
}

// Envelope describes four walls around a width x length rectangle.
type Envelope struct {
	Origin    geom.Vec3 `yaml:"origin"`
	Width     float32   `yaml:"width"`
	Length    float32   `yaml:"length"`
	Height    float32   `yaml:"height"`
	Thickness float32   `yaml:"thickness"`
}

// Materials overrides the material plan per role.
type Materials struct {
	Brick  *material.Spec `yaml:"brick,omitempty"`
	Mortar *material.Spec `yaml:"mortar,omitempty"`
	Lintel *material.Spec `yaml:"lintel,omitempty"`
	Force  bool           `yaml:"force,omitempty"`
}

// Decode reads a document. Unknown fields are rejected.
func Decode(r io.Reader) (*Document, error) {
	var d Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, diag.ErrInputValidation) || errors.Is(err, diag.ErrConfiguration) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: blueprint: %v", diag.ErrInputValidation, err)
	}
	return &d, nil
}

// Load reads the document at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// WallSpecs returns the walls of the document, expanding the envelope if there is one.
func (d *Document) WallSpecs() ([]wall.Spec, error) {
	switch {
	case d.Envelope != nil && len(d.Walls) > 0:
		return nil, diag.Invalid("blueprint %q has both an envelope and walls", d.Name)
	case d.Envelope != nil:
		e := d.Envelope
		return wall.Envelope(e.Origin, e.Width, e.Length, e.Height, e.Thickness)
	case len(d.Walls) > 0:
		return d.Walls, nil
	}
	return nil, diag.Invalid("blueprint %q has no walls", d.Name)
}

// Plan applies the document's material overrides to base.
func (d *Document) Plan(base material.Plan) material.Plan {
	m := d.Materials
	if m == nil {
		return base
	}
	if m.Brick != nil {
		base.Brick = *m.Brick
	}
	if m.Mortar != nil {
		base.Mortar = *m.Mortar
	}
	if m.Lintel != nil {
		roles := make(map[string]material.Spec, len(base.Roles)+1)
		for k, v := range base.Roles {
			roles[k] = v
		}
		roles[string(emit.RoleLintel)] = *m.Lintel
		base.Roles = roles
	}
	base.Force = base.Force || m.Force
	return base
}

// Request builds an assembler request. The document's quality wins over q.
func (d *Document) Request(q emit.Quality, base material.Plan) (assembler.Request, error) {
	walls, err := d.WallSpecs()
	if err != nil {
		return assembler.Request{}, err
	}
	if d.Quality != nil {
		q = *d.Quality
	}
	return assembler.Request{
		Walls:     walls,
		Openings:  d.Openings,
		Quality:   q,
		Materials: d.Plan(base),
	}, nil
}

// Options returns opts with the document's bond applied.
func (d *Document) Options(opts emit.Options) emit.Options {
	if d.Bond != nil {
		opts.Bond = *d.Bond
	}
	return opts
}

// Area is the total face area of the document's walls, ignoring openings.
func (d *Document) Area() (float32, error) {
	walls, err := d.WallSpecs()
	if err != nil {
		return 0, err
	}
	var a float32
	for _, w := range walls {
		a += w.Length * w.Height
	}
	return a, nil
}
