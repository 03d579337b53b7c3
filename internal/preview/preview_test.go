package preview

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"masonry/internal/emit"
	"masonry/internal/geom"
	"masonry/internal/material"
)

func rgba(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func TestElevationOrientationAndOrder(t *testing.T) {
	red, err := material.NewBinder(material.DefaultRegistry()).Resolve(material.Preset("BRICK_RED"))
	require.NoError(t, err)
	els := []emit.Element{
		// A brick in the bottom-left corner, drawn before the mortar that spans the whole face.
		{Role: emit.RoleBrick, Footprint: geom.Bounds(0, 0.5, 0, 0.5, 0, 0.1), Tint: 1, Material: red},
		{Role: emit.RoleMortar, Footprint: geom.Bounds(0, 1, 0, 1, 0.006, 0.1), Tint: 1},
	}
	img := Elevation(els, Options{Scale: 10, Background: color.Black})
	require.Equal(t, 10, img.Bounds().Dx())
	require.Equal(t, 10, img.Bounds().Dy())

	bottomLeft := rgba(img.At(1, 8))
	topRight := rgba(img.At(8, 1))
	assert.Equal(t, rgba(red.Color), bottomLeft, "brick sits at the bottom and over the mortar")
	assert.Equal(t, rgba(roleColors[emit.RoleMortar]), topRight)
}

func TestElevationCapsSize(t *testing.T) {
	els := []emit.Element{{Role: emit.RoleBrick, Footprint: geom.Bounds(0, 100, 0, 10, 0, 0.1), Tint: 1}}
	img := Elevation(els, Options{Scale: 100, Background: color.Black, MaxSide: 500})
	assert.Equal(t, 500, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestSave(t *testing.T) {
	els := []emit.Element{{Role: emit.RoleLintel, Footprint: geom.Bounds(0, 1, 0, 1, 0, 0.1), Tint: 1.05}}
	img := Elevation(els, DefaultOptions())
	path := filepath.Join(t.TempDir(), "front.png")
	require.NoError(t, Save(path, img))

	back, err := imgio.Open(path)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), back.Bounds())
}

func TestElevationLabel(t *testing.T) {
	els := []emit.Element{{Role: emit.RoleMortar, Footprint: geom.Bounds(0, 2, 0, 1, 0, 0.1), Tint: 1}}
	plain := Elevation(els, Options{Scale: 100, Background: color.Black})
	labelled := Elevation(els, Options{Scale: 100, Background: color.Black, Label: "FRONT"})

	changed := 0
	for y := 0; y < 16; y++ {
		for x := 0; x < 60; x++ {
			if rgba(plain.At(x, y)) != rgba(labelled.At(x, y)) {
				changed++
			}
		}
	}
	assert.Positive(t, changed)
	assert.Equal(t, rgba(plain.At(150, 80)), rgba(labelled.At(150, 80)))
}
