package wall

import (
	"strings"

	"masonry/internal/diag"
)

// Facade identifies one of the four exterior walls. The zero value is not a facade, so a
// record whose facade was never set is rejected instead of silently landing on FRONT.
type Facade uint8

const (
	Front Facade = iota + 1
	Right
	Back
	Left
)

// Order is the fixed processing and corner-ownership order.
var Order = [...]Facade{Front, Right, Back, Left}

var facadeNames = [...]string{"", "FRONT", "RIGHT", "BACK", "LEFT"}

func (f Facade) Valid() bool { return f >= Front && f <= Left }

func (f Facade) String() string {
	if !f.Valid() {
		return "UNSET"
	}
	return facadeNames[f]
}

// Next returns the facade that follows f around the envelope (LEFT wraps to FRONT).
func (f Facade) Next() Facade {
	if f == Left {
		return Front
	}
	return f + 1
}

// ParseFacade accepts the upper- or lower-case facade name.
func ParseFacade(s string) (Facade, error) {
	up := strings.ToUpper(strings.TrimSpace(s))
	for i := Front; i <= Left; i++ {
		if facadeNames[i] == up {
			return i, nil
		}
	}
	return 0, diag.Invalid("unknown facade %q", s)
}

func (f Facade) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, diag.Invalid("facade not set")
	}
	return []byte(f.String()), nil
}

func (f *Facade) UnmarshalText(b []byte) error {
	v, err := ParseFacade(string(b))
	if err != nil {
		return err
	}
	*f = v
	return nil
}
