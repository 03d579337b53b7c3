package material

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"masonry/internal/diag"
)

type part struct {
	role string
	mat  *Material
}

func (p *part) PartRole() string    { return p.role }
func (p *part) Assigned() *Material { return p.mat }
func (p *part) Assign(m *Material)  { p.mat = m }

func targets(parts []*part) func(func(Target) bool) {
	return func(yield func(Target) bool) {
		for _, p := range parts {
			if !yield(p) {
				return
			}
		}
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, "BRICK_RED", r.Default().Name)
	assert.Equal(t, []string{
		"BRICK_RED", "BRICK_RED_DARK", "BRICK_ORANGE", "BRICK_BROWN",
		"BRICK_YELLOW", "BRICK_GREY", "BRICK_WHITE",
	}, r.Names())

	_, err := r.Lookup("MARBLE")
	assert.ErrorIs(t, err, diag.ErrConfiguration)
}

func TestLoadRegistryRejectsBadFiles(t *testing.T) {
	cases := map[string]string{
		"missing default": "default: NOPE\npresets:\n  - {name: A, color: \"#ffffff\", roughness: 0.5}\n",
		"bad color":       "default: A\npresets:\n  - {name: A, color: \"zzz\", roughness: 0.5}\n",
		"duplicate":       "default: A\npresets:\n  - {name: A, color: \"#fff\"}\n  - {name: A, color: \"#000\"}\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadRegistry(strings.NewReader(doc))
			assert.ErrorIs(t, err, diag.ErrConfiguration)
		})
	}
}

func TestResolve(t *testing.T) {
	b := NewBinder(DefaultRegistry())

	m, err := b.Resolve(Preset("BRICK_GREY"))
	require.NoError(t, err)
	assert.Equal(t, "BRICK_GREY", m.Name)
	assert.Equal(t, "#7d7b78", m.Hex())

	m, err = b.Resolve(Color("bfbfb8"))
	require.NoError(t, err)
	assert.Equal(t, ModeColor, m.Mode)
	assert.Equal(t, DefaultMortarColor, m.Hex())

	m, err = b.Resolve(Custom("mat/old_brick"))
	require.NoError(t, err)
	assert.Equal(t, ModeCustom, m.Mode)
	assert.Equal(t, "mat/old_brick", m.Ref)

	for _, bad := range []Spec{Preset("MARBLE"), Color("not-a-color"), Custom("")} {
		m, err = b.Resolve(bad)
		assert.ErrorIs(t, err, diag.ErrConfiguration, "%+v", bad)
		assert.Equal(t, "BRICK_RED", m.Name, "%+v", bad)
	}
}

func TestBindPreservesExistingForEveryRole(t *testing.T) {
	b := NewBinder(DefaultRegistry())
	mine := &Material{Name: "hand-picked"}
	parts := []*part{
		{role: "brick", mat: mine},
		{role: "mortar", mat: mine},
		{role: "lintel", mat: mine},
		{role: "brick"},
		{role: "mortar"},
	}

	rep, warns := b.Bind(targets(parts), DefaultPlan())
	assert.Empty(t, warns)
	assert.Equal(t, 2, rep.Assigned)
	assert.Equal(t, 3, rep.Preserved)
	for _, p := range parts[:3] {
		assert.Same(t, mine, p.mat, p.role)
	}
	assert.Equal(t, "BRICK_RED", parts[3].mat.Name)
	assert.Equal(t, DefaultMortarColor, parts[4].mat.Hex())

	rep, _ = b.Bind(targets(parts), Plan{Brick: Preset("BRICK_WHITE"), Mortar: Color("#000000"), Force: true})
	assert.Equal(t, 5, rep.Assigned)
	assert.Equal(t, 5, rep.Overwritten)
	assert.Equal(t, "BRICK_WHITE", parts[0].mat.Name)
	assert.Equal(t, "#000000", parts[1].mat.Hex())
	assert.Equal(t, "BRICK_WHITE", parts[2].mat.Name, "lintels follow the brick spec")
}

func TestBindSharesAndWarnsOncePerSpec(t *testing.T) {
	b := NewBinder(DefaultRegistry())
	parts := make([]*part, 10)
	for i := range parts {
		parts[i] = &part{role: "brick"}
	}
	rep, warns := b.Bind(targets(parts), Plan{Brick: Preset("MARBLE")})
	require.Len(t, warns, 1)
	assert.True(t, warns[0].Is(diag.ErrConfiguration))
	assert.Len(t, rep.Materials, 1)
	for _, p := range parts {
		assert.Same(t, rep.Materials[0], p.mat)
	}
}

func TestBrokenDefaultIsReported(t *testing.T) {
	b := NewBinder(&Registry{})
	for _, s := range []Spec{Preset(""), Preset("MARBLE"), Custom("mat/old_brick")} {
		m, err := b.Resolve(s)
		assert.ErrorIs(t, err, diag.ErrConfiguration, "%+v", s)
		assert.Nil(t, m, "%+v", s)
	}

	parts := []*part{{role: "brick"}, {role: "mortar"}}
	rep, warns := b.Bind(targets(parts), DefaultPlan())
	require.Len(t, warns, 1)
	assert.True(t, warns[0].Is(diag.ErrConfiguration))
	assert.Equal(t, 1, rep.Assigned)
	assert.Nil(t, parts[0].mat)
	assert.Equal(t, DefaultMortarColor, parts[1].mat.Hex())
}

func TestBindRoleOverride(t *testing.T) {
	b := NewBinder(DefaultRegistry())
	parts := []*part{{role: "brick"}, {role: "lintel"}}
	plan := DefaultPlan()
	plan.Roles = map[string]Spec{"lintel": Color("#333333")}
	b.Bind(targets(parts), plan)
	assert.Equal(t, "BRICK_RED", parts[0].mat.Name)
	assert.Equal(t, "#333333", parts[1].mat.Hex())
}

func TestModeText(t *testing.T) {
	var m Mode
	require.NoError(t, m.UnmarshalText([]byte("custom")))
	assert.Equal(t, ModeCustom, m)
	assert.ErrorIs(t, m.UnmarshalText([]byte("paint")), diag.ErrConfiguration)
	assert.True(t, slices.Contains(modeNames[:], "COLOR"))
}

func TestTinted(t *testing.T) {
	m, _ := NewBinder(DefaultRegistry()).Resolve(Preset(""))
	_, _, l0 := m.Color.Hcl()
	_, _, l1 := m.Tinted(1.1).Hcl()
	assert.Greater(t, l1, l0)
	assert.Equal(t, m.Hex(), m.Tinted(1).Clamped().Hex())
}
