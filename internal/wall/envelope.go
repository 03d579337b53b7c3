package wall

import (
	"masonry/internal/diag"
	"masonry/internal/geom"
)

// Envelope returns the four walls of a rectangular building whose exterior corner sits at
// origin: FRONT runs along +X for width, RIGHT along +Z for length, BACK and LEFT close the
// loop. Every wall's w axis points into the building.
func Envelope(origin geom.Vec3, width, length, height, thickness float32) ([]Spec, error) {
	if !positive(width) || !positive(length) || !positive(height) || !positive(thickness) {
		return nil, diag.Invalid("envelope dimensions must be positive (width %g, length %g, height %g, thickness %g)",
			width, length, height, thickness)
	}
	spec := func(f Facade, at, dir geom.Vec3, l float32) Spec {
		return Spec{Facade: f, Origin: origin.Add(at), Direction: dir, Length: l, Height: height, Thickness: thickness}
	}
	return []Spec{
		spec(Front, geom.Vec3{0, 0, 0}, geom.Vec3{1, 0, 0}, width),
		spec(Right, geom.Vec3{width, 0, 0}, geom.Vec3{0, 0, 1}, length),
		spec(Back, geom.Vec3{width, 0, length}, geom.Vec3{-1, 0, 0}, width),
		spec(Left, geom.Vec3{0, 0, length}, geom.Vec3{0, 0, -1}, length),
	}, nil
}
