package layout

import (
	"strings"

	"masonry/internal/diag"
)

// Units are the brick dimensions and joint thickness in meters.
type Units struct {
	Length float32 `yaml:"length" json:"length"`
	Height float32 `yaml:"height" json:"height"`
	Depth  float32 `yaml:"depth" json:"depth"`
	Joint  float32 `yaml:"joint" json:"joint"`
}

// DefaultUnits is a European facing brick (22 x 6.5 x 10 cm) with 12 mm joints.
func DefaultUnits() Units {
	return Units{Length: 0.22, Height: 0.065, Depth: 0.10, Joint: 0.012}
}

func (u Units) Validate() error {
	if u.Length <= 0 || u.Height <= 0 || u.Depth <= 0 {
		return diag.Misconfigured("brick units must be positive, got %gx%gx%g", u.Length, u.Height, u.Depth)
	}
	if u.Joint < 0 {
		return diag.Misconfigured("joint thickness must not be negative, got %g", u.Joint)
	}
	return nil
}

// FaceArea is the wall area one brick and its joints account for.
func (u Units) FaceArea() float32 {
	return (u.Length + u.Joint) * (u.Height + u.Joint)
}

// Bond is the masonry pattern. Running bond is the zero value.
type Bond uint8

const (
	Running Bond = iota
	Stack
	Flemish
	English
)

var bondNames = [...]string{"RUNNING", "STACK", "FLEMISH", "ENGLISH"}

func (b Bond) String() string {
	if int(b) >= len(bondNames) {
		return "UNKNOWN"
	}
	return bondNames[b]
}

func ParseBond(s string) (Bond, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	if up == "" {
		return Running, nil
	}
	for i, n := range bondNames {
		if n == up {
			return Bond(i), nil
		}
	}
	return Running, diag.Misconfigured("unknown bond %q", s)
}

func (b Bond) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *Bond) UnmarshalText(t []byte) error {
	v, err := ParseBond(string(t))
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// Course distinguishes stretcher pieces (long face out) from header pieces (end out) and
// from the stretchers of a lintel course laid over an opening.
type Course uint8

const (
	Stretcher Course = iota
	Header
	Lintel
)
