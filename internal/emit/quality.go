package emit

import (
	"strings"

	"masonry/internal/diag"
	"masonry/internal/primitives"
)

// Quality is the detail tier. LOW and MEDIUM are instanced, HIGH and ULTRA emit full geometry.
type Quality uint8

const (
	Low Quality = iota
	Medium
	High
	Ultra
)

var qualityNames = [...]string{"LOW", "MEDIUM", "HIGH", "ULTRA"}

func (q Quality) String() string {
	if int(q) >= len(qualityNames) {
		return "UNKNOWN"
	}
	return qualityNames[q]
}

// ParseQuality accepts a tier name in any case; empty selects MEDIUM.
func ParseQuality(s string) (Quality, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	if up == "" {
		return Medium, nil
	}
	for i, n := range qualityNames {
		if n == up {
			return Quality(i), nil
		}
	}
	return Medium, diag.Misconfigured("unknown quality %q", s)
}

func (q Quality) MarshalText() ([]byte, error) { return []byte(q.String()), nil }

func (q *Quality) UnmarshalText(b []byte) error {
	v, err := ParseQuality(string(b))
	if err != nil {
		return err
	}
	*q = v
	return nil
}

// Instanced reports whether the tier shares one master mesh between bricks.
func (q Quality) Instanced() bool { return q < High }

// Tinted reports whether bricks get per-element color variation.
func (q Quality) Tinted() bool { return q >= Medium }

// Detail is the brick mesh shape for the tier. seed only matters for ULTRA.
func (q Quality) Detail(seed int32) primitives.Detail {
	switch q {
	case Medium:
		return primitives.Detail{Bevel: 0.001}
	case High:
		return primitives.Detail{Bevel: 0.0015}
	case Ultra:
		return primitives.Detail{Bevel: 0.0015, Jitter: 0.0005, Seed: seed}
	}
	return primitives.Detail{}
}
