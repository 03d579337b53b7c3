// Package material resolves material intent (a color, a named preset, an external reference)
// into materials and binds them to emitted elements.
package material

import (
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"masonry/internal/diag"
)

// Mode selects how a Spec is resolved.
type Mode uint8

const (
	ModePreset Mode = iota
	ModeColor
	ModeCustom
)

var modeNames = [...]string{"PRESET", "COLOR", "CUSTOM"}

func (m Mode) String() string {
	if int(m) >= len(modeNames) {
		return "UNKNOWN"
	}
	return modeNames[m]
}

func ParseMode(s string) (Mode, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	if up == "" {
		return ModePreset, nil
	}
	for i, n := range modeNames {
		if n == up {
			return Mode(i), nil
		}
	}
	return ModePreset, diag.Misconfigured("unknown material mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// DefaultMortarColor is a light warm grey.
const DefaultMortarColor = "#bfbfb8"

// Spec is material intent: a mode plus the payload that mode reads.
type Spec struct {
	Mode   Mode   `yaml:"mode" json:"mode"`
	Color  string `yaml:"color,omitempty" json:"color,omitempty"`
	Preset string `yaml:"preset,omitempty" json:"preset,omitempty"`
	Ref    string `yaml:"ref,omitempty" json:"ref,omitempty"`
}

// Color returns a COLOR spec.
func Color(hex string) Spec { return Spec{Mode: ModeColor, Color: hex} }

// Preset returns a PRESET spec.
func Preset(name string) Spec { return Spec{Mode: ModePreset, Preset: name} }

// Custom returns a CUSTOM spec referring to a material owned by the host.
func Custom(ref string) Spec { return Spec{Mode: ModeCustom, Ref: ref} }

// Material is a resolved material, shared by every element bound from the same spec.
type Material struct {
	Name      string         `json:"name"`
	Mode      Mode           `json:"mode"`
	Color     colorful.Color `json:"-"`
	Roughness float32        `json:"roughness"`
	Preset    string         `json:"preset,omitempty"`
	Ref       string         `json:"ref,omitempty"`
}

// Hex is the material's base color as #rrggbb.
func (m *Material) Hex() string { return m.Color.Clamped().Hex() }

// Tinted returns the base color scaled in lightness by f (1 = unchanged), for per-element variation.
func (m *Material) Tinted(f float32) colorful.Color {
	h, c, l := m.Color.Hcl()
	return colorful.Hcl(h, c, l*float64(f)).Clamped()
}

func parseHex(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if s != "" && !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, diag.Misconfigured("invalid color %q", s)
	}
	return c, nil
}
