package diag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsWrap(t *testing.T) {
	assert.True(t, errors.Is(Invalid("width %v", -1), ErrInputValidation))
	assert.True(t, errors.Is(Misconfigured("preset %q", "X"), ErrConfiguration))
	assert.True(t, errors.Is(Degenerate("short"), ErrGeometryConstruction))
	assert.False(t, errors.Is(Invalid("x"), ErrConfiguration))
	assert.Contains(t, Invalid("width %v", -1).Error(), "width -1")
}

func TestWarningString(t *testing.T) {
	w := Warn("FRONT", Invalid("bad record"))
	assert.Equal(t, "FRONT: input validation error: bad record", w.String())
	assert.True(t, w.Is(ErrInputValidation))

	ws := []Warning{w, Warn("material", Misconfigured("unknown")), Warn("", Invalid("y"))}
	assert.Equal(t, 2, Count(ws, ErrInputValidation))
	assert.Equal(t, 1, Count(ws, ErrConfiguration))
	assert.Equal(t, "input validation error: y", ws[2].String())
}
