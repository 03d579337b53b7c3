package layout

import "github.com/chewxy/math32"

// ProxyRule bounds the element count of a coarsened (instanced) face. The count that is
// held near Target is pieces plus one mortar strip per course.
type ProxyRule struct {
	Target int `yaml:"target" json:"target"`
	Min    int `yaml:"min" json:"min"`
	Max    int `yaml:"max" json:"max"`
}

func DefaultProxyRule() ProxyRule {
	return ProxyRule{Target: 150, Min: 100, Max: 200}
}

// CoarseningFactor is k(A) = max(1, sqrt(A / (target * unit face area))): the linear scale a
// proxy cell has relative to one brick cell. It is non-decreasing in area.
func CoarseningFactor(area float32, units Units, target int) float32 {
	if target <= 0 || area <= 0 {
		return 1
	}
	return max(1, math32.Sqrt(area/(float32(target)*units.FaceArea())))
}

// Proxy returns the grid the instanced strategy lays. When the full grid plus one mortar
// strip per course already fits within rule.Max it is returned unchanged. Otherwise the
// face is divided into rows x cols proxy cells where
//
//	rows/cols keeps the brick aspect of the face, then
//	cols = round(target/rows - 1.5), rows = round(target/(cols + 1.5))
//
// which makes rows*cols + ceil(rows/2) + rows (pieces of a running bond plus strips) land
// near target. English bond is laid as running bond at proxy scale.
func Proxy(length, height float32, units Units, bond Bond, rule ProxyRule) (*Grid, error) {
	full, err := New(length, height, units, bond)
	if err != nil {
		return nil, err
	}
	if rule.Target <= 0 || full.Count()+full.Rows() <= rule.Max {
		return full, nil
	}
	if bond == English {
		bond = Running
	}
	t := float32(rule.Target)
	realRows := height / full.pitchV
	realCols := length / full.pitchU
	maxRows := max(1, int(math32.Floor(realRows)))

	rows := clampInt(round(math32.Sqrt(t*realRows/realCols)), 1, maxRows)
	cols := max(1, round(t/float32(rows)-1.5))
	if float32(cols) > realCols {
		cols = max(1, int(math32.Floor(realCols)))
	}
	rows = clampInt(round(t/(float32(cols)+1.5)), 1, maxRows)

	return newGrid(length, height, units, bond, length/float32(cols), height/float32(rows)), nil
}

func round(f float32) int { return int(math32.Floor(f + 0.5)) }

func clampInt(v, lo, hi int) int { return min(max(v, lo), hi) }
