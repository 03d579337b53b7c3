package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"masonry/internal/geom"
)

// toMatrix maps a column-major transform onto raylib's matrix fields, which share the layout.
func toMatrix(m geom.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M4: m[4], M8: m[8], M12: m[12],
		M1: m[1], M5: m[5], M9: m[9], M13: m[13],
		M2: m[2], M6: m[6], M10: m[10], M14: m[14],
		M3: m[3], M7: m[7], M11: m[11], M15: m[15],
	}
}
