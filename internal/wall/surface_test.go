package wall

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"masonry/internal/diag"
)

func TestNewOpeningRequiresFacade(t *testing.T) {
	_, err := NewOpening(OpeningSpec{U: 1, V: 1, Width: 1, Height: 1})
	require.ErrorIs(t, err, diag.ErrInputValidation)

	o, err := NewOpening(OpeningSpec{Facade: Back, U: 1, V: 1, Width: 1, Height: 2})
	require.NoError(t, err)
	assert.Equal(t, Back, o.Facade())
	assert.False(t, o.DepthSet())
}

func TestSurfaceDropsOtherFacadesFirst(t *testing.T) {
	w, err := New(frontSpec())
	require.NoError(t, err)

	records := []OpeningSpec{
		{Facade: Front, U: 2, V: 1, Width: 1.2, Height: 1.5},
		{Facade: Left, U: 2, V: 1, Width: 1.2, Height: 1.5},
		// Malformed but owned by LEFT: never validated here, so no warning on FRONT.
		{Facade: Left, U: 2, V: 1, Width: -1, Height: 1.5},
		{Facade: Front, U: 7, V: 1, Width: 0, Height: 1.5},
	}
	s, warns := NewSurface(w, records, false)
	require.Len(t, s.Openings(), 1)
	assert.Equal(t, Front, s.Openings()[0].Facade())
	require.Len(t, warns, 1)
	assert.True(t, warns[0].Is(diag.ErrInputValidation))
	assert.Equal(t, "FRONT", warns[0].Scope)
}

func TestSurfaceDepthCoverage(t *testing.T) {
	w, err := New(frontSpec())
	require.NoError(t, err)

	s, warns := NewSurface(w, []OpeningSpec{
		{Facade: Front, U: 1, V: 1, Width: 1, Height: 1},                     // unset: full thickness
		{Facade: Front, U: 3, V: 1, Width: 1, Height: 1, W: 0.2, Depth: 0.5}, // clamped
		{Facade: Front, U: 5, V: 1, Width: 1, Height: 1, W: 0.4, Depth: 0.1}, // behind the wall
		{Facade: Front, U: 50, V: 1, Width: 1, Height: 1},                    // beyond the length
	}, false)
	boxes := s.OpeningBoxes()
	require.Len(t, boxes, 2)
	assert.Equal(t, float32(0), boxes[0].Min[2])
	assert.InDelta(t, 0.3, boxes[0].Max[2], 1e-6)
	assert.InDelta(t, 0.2, boxes[1].Min[2], 1e-6)
	assert.InDelta(t, 0.3, boxes[1].Max[2], 1e-6)
	assert.Len(t, warns, 3)
}

func TestSurfaceCornerTrim(t *testing.T) {
	w, err := New(frontSpec())
	require.NoError(t, err)
	s, _ := NewSurface(w, nil, true)
	assert.InDelta(t, 9.7, s.Extent(), 1e-6)
	full, _ := NewSurface(w, nil, false)
	assert.Equal(t, float32(10), full.Extent())
	assert.InDelta(t, 9.7, s.Bounds().Max[0], 1e-6)
}
