package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"masonry/internal/geom"
)

func brick(u, v float32) geom.Box {
	return geom.NewBox(u, v, 0, 0.22, 0.065, 0.10)
}

func TestExcludeRequiresAllThreeAxes(t *testing.T) {
	opening := geom.NewBox(2, 1, 0, 1.2, 1.5, 0.3)

	cases := []struct {
		name string
		box  geom.Box
		want bool
	}{
		{"inside", brick(2.5, 1.5), true},
		{"left of opening", brick(1.5, 1.5), false},
		{"within margin on u", brick(1.79, 1.5), true},
		{"below opening", brick(2.5, 0.5), false},
		{"clear of margin", brick(1.75, 1.5), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Exclude(c.box, []geom.Box{opening}, DefaultMargin))
		})
	}
}

func TestOpeningOffsetOnlyInDepth(t *testing.T) {
	// Same u/v as the brick but behind it in w: a two-axis test would remove the brick.
	b := brick(2.5, 1.5)
	behind := geom.NewBox(2, 1, 0.15, 1.2, 1.5, 0.10)
	assert.False(t, Exclude(b, []geom.Box{behind}, DefaultMargin))

	// Within the margin on w it does intersect.
	near := geom.NewBox(2, 1, 0.11, 1.2, 1.5, 0.10)
	assert.True(t, Exclude(b, []geom.Box{near}, DefaultMargin))
}

func TestEmptyListNeverExcludes(t *testing.T) {
	assert.False(t, Exclude(brick(0, 0), nil, DefaultMargin))
	assert.False(t, Exclude(brick(0, 0), []geom.Box{}, 10))
}

func TestFirstReportsIndex(t *testing.T) {
	openings := []geom.Box{
		geom.NewBox(2, 1, 0, 1.2, 1.5, 0.3),
		geom.NewBox(7, 1, 0, 1.2, 1.5, 0.3),
	}
	i, ok := First(brick(7.5, 1.5), openings, 0)
	assert.True(t, ok)
	assert.Equal(t, 1, i)
	i, ok = First(brick(5, 1.5), openings, 0)
	assert.False(t, ok)
	assert.Equal(t, -1, i)
}

func TestClearSplitsAroundOpenings(t *testing.T) {
	openings := []geom.Box{
		geom.NewBox(2, 1, 0, 1.2, 1.5, 0.3),
		geom.NewBox(7, 1, 0, 1.2, 1.5, 0.3),
	}
	band := geom.NewBox(0, 1.2, 0.006, 10, 0.077, 0.094)
	spans := Clear(0, 10, band, openings, 0.02)
	assert.Len(t, spans, 3)
	assert.InDelta(t, 1.98, spans[0][1], 1e-5)
	assert.InDelta(t, 3.22, spans[1][0], 1e-5)
	assert.InDelta(t, 6.98, spans[1][1], 1e-5)
	assert.InDelta(t, 8.22, spans[2][0], 1e-5)

	for _, s := range spans {
		seg := geom.Bounds(s[0], s[1], band.Min[1], band.Max[1], band.Min[2], band.Max[2])
		assert.False(t, Exclude(seg, openings, 0.02))
	}

	above := geom.NewBox(0, 2.6, 0.006, 10, 0.077, 0.094)
	assert.Len(t, Clear(0, 10, above, openings, 0.02), 1)
}
