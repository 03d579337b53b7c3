package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBoxOverlap(t *testing.T) {
	a := NewBox(0, 0, 0, 1, 1, 1)
	b := NewBox(0.5, 0.5, 0.5, 1, 1, 1)
	assert.True(t, a.Intersects(b))
	ov := a.Overlap(b)
	assert.InDeltaSlice(t, []float32{0.5, 0.5, 0.5}, ov[:], 1e-6)

	touching := NewBox(1, 0, 0, 1, 1, 1)
	assert.False(t, a.Intersects(touching))

	apartInDepth := NewBox(0, 0, 2, 1, 1, 1)
	assert.False(t, a.Intersects(apartInDepth))
	assert.True(t, a.Intersects(apartInDepth.Expand(1.5)))
}

func TestBoxWithin(t *testing.T) {
	outer := Bounds(0, 10, 0, 3, 0, 0.3)
	assert.True(t, NewBox(9.78, 2.9, 0, 0.22, 0.065, 0.1).Within(outer, 1e-5))
	assert.False(t, NewBox(9.9, 2.9, 0, 0.22, 0.065, 0.1).Within(outer, 1e-5))
	assert.Equal(t, Vec3{5, 1.5, 0.15}, outer.Center())
}

func TestMat4(t *testing.T) {
	id := Identity()
	p := Vec3{1, 2, 3}
	assert.Equal(t, p, id.Apply(p))

	tr := Basis(Vec3{2, 0, 0}, Vec3{0, 2, 0}, Vec3{0, 0, 2}, Vec3{1, 1, 1})
	assert.Equal(t, Vec3{3, 5, 7}, tr.Apply(p))
	assert.Equal(t, tr, tr.Mul(id))
	assert.Equal(t, Vec3{7, 11, 15}, tr.Mul(tr).Apply(p))
	assert.Equal(t, Vec3{1, 1, 1}, tr.Translation())
	assert.Equal(t, Vec3{5, 9, 1}, tr.Mul(Scaling(Vec3{2, 2, 0})).Apply(p))
}

func TestVectors(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	assert.Equal(t, Vec3{0, 0, 1}, x.Cross(y))
	assert.Equal(t, float32(0), x.Dot(y))
	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
	assert.InDelta(t, 1, Vec3{3, 4, 0}.Normalize().Len(), 1e-6)
}
