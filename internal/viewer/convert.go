package viewer

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

var fallbackColor = color.RGBA{R: 180, G: 180, B: 180, A: 255}

// objectColor parses an object's hex color; objects without one are drawn grey.
func objectColor(hex string) color.RGBA {
	if hex == "" {
		return fallbackColor
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallbackColor
	}
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// narrowIndices converts to the 16-bit indices raylib meshes use. Every mesh the generator
// builds is far below 65536 vertices.
func narrowIndices(idx []uint32) []uint16 {
	out := make([]uint16, len(idx))
	for i, v := range idx {
		out[i] = uint16(v)
	}
	return out
}
