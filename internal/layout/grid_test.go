package layout

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"masonry/internal/diag"
)

func TestRunningBondOffsets(t *testing.T) {
	u := DefaultUnits()
	g, err := New(10, 3, u, Running)
	require.NoError(t, err)

	half := u.Length/2 + u.Joint/2
	want := map[int]float32{1: half, 2: 0, 3: half, 4: 0, 5: half, 6: 0}
	for row, off := range want {
		assert.InDelta(t, off, g.RowOffset(row), 1e-6, "row %d", row)
	}
}

func TestOffsetRowClipsLeadingBrick(t *testing.T) {
	u := DefaultUnits()
	g, err := New(10, 3, u, Running)
	require.NoError(t, err)

	first := slices.Collect(g.Row(1))
	require.NotEmpty(t, first)
	assert.Equal(t, float32(0), first[0].U0)
	assert.InDelta(t, u.Length/2-u.Joint/2, first[0].Width, 1e-6)
	assert.InDelta(t, g.RowOffset(1), first[1].U0, 1e-5)

	second := slices.Collect(g.Row(2))
	assert.Equal(t, float32(0), second[0].U0)
	assert.InDelta(t, u.Length, second[0].Width, 1e-6)
	last := second[len(second)-1]
	assert.InDelta(t, 10, last.U1(), 1e-5)
}

func TestPiecesStayInsideFace(t *testing.T) {
	for _, bond := range []Bond{Running, Stack, Flemish, English} {
		g, err := New(4.37, 2.71, DefaultUnits(), bond)
		require.NoError(t, err)
		prev := Piece{}
		for p := range g.All() {
			assert.GreaterOrEqual(t, p.U0, float32(0))
			assert.GreaterOrEqual(t, p.V0, float32(0))
			assert.LessOrEqual(t, p.U1(), float32(4.37)+1e-5)
			assert.LessOrEqual(t, p.V1(), float32(2.71)+1e-5)
			assert.GreaterOrEqual(t, p.Width, DefaultUnits().Joint)
			if p.Row == prev.Row && prev.Width > 0 {
				assert.Greater(t, p.U0, prev.U1(), "bond %s row %d overlaps", bond, p.Row)
			}
			prev = p
		}
	}
}

func TestPartialRowIsClipped(t *testing.T) {
	u := DefaultUnits()
	g, err := New(1, 0.1, u, Stack)
	require.NoError(t, err)
	require.Equal(t, 2, g.Rows())
	for p := range g.Row(2) {
		assert.InDelta(t, 0.1-(u.Height+u.Joint), p.Height, 1e-6)
		assert.LessOrEqual(t, p.V1(), float32(0.1)+1e-6)
	}

	// Remainder thinner than a joint is left as mortar.
	g, err = New(1, 2*(u.Height+u.Joint)+0.005, u, Stack)
	require.NoError(t, err)
	assert.Equal(t, 2, g.Rows())
}

func TestSequenceIsRestartable(t *testing.T) {
	g, err := New(6, 2.5, DefaultUnits(), Running)
	require.NoError(t, err)
	a := slices.Collect(g.All())
	b := slices.Collect(g.All())
	assert.Equal(t, a, b)
	assert.Equal(t, len(a), g.Count())

	// Early stop does not disturb later passes.
	n := 0
	for range g.All() {
		n++
		if n == 5 {
			break
		}
	}
	assert.Equal(t, a, slices.Collect(g.All()))
}

func TestFullCountTracksArea(t *testing.T) {
	u := DefaultUnits()
	g, err := New(10, 3, u, Running)
	require.NoError(t, err)
	expected := 10 * 3 / u.FaceArea()
	assert.InEpsilon(t, expected, float32(g.Count()), 0.05)
	assert.Equal(t, g.Count(), Estimate(10, 3, u, Running))
}

func TestDegenerateFace(t *testing.T) {
	_, err := New(0.15, 3, DefaultUnits(), Running)
	assert.ErrorIs(t, err, diag.ErrGeometryConstruction)
	_, err = New(3, 0.05, DefaultUnits(), Running)
	assert.ErrorIs(t, err, diag.ErrGeometryConstruction)
	assert.Zero(t, Estimate(0.1, 0.1, DefaultUnits(), Running))

	_, err = New(3, 3, Units{Length: 0.2, Height: 0, Depth: 0.1}, Running)
	assert.ErrorIs(t, err, diag.ErrConfiguration)
}

func TestBondVariants(t *testing.T) {
	u := DefaultUnits()
	stack, err := New(5, 1, u, Stack)
	require.NoError(t, err)
	for r := 1; r <= 6; r++ {
		assert.Zero(t, stack.RowOffset(r))
	}

	flemish, err := New(5, 1, u, Flemish)
	require.NoError(t, err)
	assert.InDelta(t, (u.Length+u.Joint)/4, flemish.RowOffset(1), 1e-6)
	assert.Zero(t, flemish.RowOffset(2))

	english, err := New(5, 1, u, English)
	require.NoError(t, err)
	for p := range english.Row(2) {
		assert.Equal(t, Stretcher, p.Course)
	}
	headers := slices.Collect(english.Row(3))
	require.NotEmpty(t, headers)
	for _, p := range headers[1 : len(headers)-1] {
		assert.Equal(t, Header, p.Course)
		assert.InDelta(t, u.Depth, p.Width, 1e-6)
	}
}

func TestParseBond(t *testing.T) {
	b, err := ParseBond("flemish")
	require.NoError(t, err)
	assert.Equal(t, Flemish, b)
	b, err = ParseBond("")
	require.NoError(t, err)
	assert.Equal(t, Running, b)
	_, err = ParseBond("herringbone")
	assert.ErrorIs(t, err, diag.ErrConfiguration)
}
