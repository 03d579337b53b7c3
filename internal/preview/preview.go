// Package preview renders wall elevations as images: every element's footprint drawn flat in
// its material color, looking at the exterior face.
package preview

import (
	"image"
	"image/color"
	"image/draw"
	"slices"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
	"github.com/chewxy/math32"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"masonry/internal/emit"
)

// Options controls rendering.
type Options struct {
	// Scale is pixels per metre.
	Scale      float32
	Background color.Color
	// MaxSide caps the image size; Scale is reduced to fit.
	MaxSide int
	// Label is written in the top left corner when set.
	Label string
}

func DefaultOptions() Options {
	return Options{Scale: 100, Background: color.RGBA{R: 0x20, G: 0x24, B: 0x2c, A: 0xff}, MaxSide: 4096}
}

var labelColor = color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}

// fallback colors for unbound elements.
var roleColors = map[emit.Role]colorful.Color{
	emit.RoleBrick:  {R: 0.55, G: 0.23, B: 0.16},
	emit.RoleLintel: {R: 0.40, G: 0.16, B: 0.11},
	emit.RoleMortar: {R: 0.75, G: 0.75, B: 0.72},
}

// drawOrder puts mortar behind bricks and lintels.
func drawOrder(r emit.Role) int {
	if r == emit.RoleMortar {
		return 0
	}
	return 1
}

// Elevation renders the elements of one wall. The image spans the union of their footprints
// from the wall origin; v points up.
func Elevation(els []emit.Element, o Options) *image.RGBA {
	var maxU, maxV float32
	for _, e := range els {
		maxU = max(maxU, e.Footprint.Max[0])
		maxV = max(maxV, e.Footprint.Max[1])
	}
	scale := o.Scale
	if o.MaxSide > 0 {
		if longest := max(maxU, maxV); longest*scale > float32(o.MaxSide) {
			scale = float32(o.MaxSide) / longest
		}
	}
	w := max(1, int(math32.Ceil(maxU*scale)))
	h := max(1, int(math32.Ceil(maxV*scale)))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(o.Background), image.Point{}, draw.Src)

	sorted := slices.Clone(els)
	slices.SortStableFunc(sorted, func(a, b emit.Element) int { return drawOrder(a.Role) - drawOrder(b.Role) })
	for _, e := range sorted {
		r := image.Rect(
			int(math32.Round(e.Footprint.Min[0]*scale)),
			int(math32.Round(e.Footprint.Min[1]*scale)),
			int(math32.Round(e.Footprint.Max[0]*scale)),
			int(math32.Round(e.Footprint.Max[1]*scale)),
		)
		draw.Draw(img, r, image.NewUniform(elementColor(e)), image.Point{}, draw.Src)
	}
	// Rows were drawn with v growing downwards.
	out := transform.FlipV(img)
	if o.Label != "" {
		d := &font.Drawer{
			Dst:  out,
			Src:  image.NewUniform(labelColor),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(4, 13),
		}
		d.DrawString(o.Label)
	}
	return out
}

func elementColor(e emit.Element) color.Color {
	if e.Material != nil {
		return e.Material.Tinted(e.Tint)
	}
	c, ok := roleColors[e.Role]
	if !ok {
		c = roleColors[emit.RoleBrick]
	}
	if e.Tint > 0 && e.Tint != 1 {
		h, cc, l := c.Hcl()
		c = colorful.Hcl(h, cc, l*float64(e.Tint)).Clamped()
	}
	return c
}

// Save writes img as a PNG.
func Save(path string, img image.Image) error {
	return imgio.Save(path, img, imgio.PNGEncoder())
}
