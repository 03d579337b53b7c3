package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"masonry/internal/diag"
	"masonry/internal/emit"
	"masonry/internal/layout"
	"masonry/internal/material"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), p)
}

func TestLoadKeepsDefaultsForAbsentFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "masonry.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"quality": "HIGH", "seed": 9}`), 0644))
	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "HIGH", p.Quality)
	assert.Equal(t, int32(9), p.Seed)
	assert.Equal(t, Default().ProxyTarget, p.ProxyTarget)
	assert.Equal(t, Default().MortarColor, p.MortarColor)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "masonry.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"quality": `), 0644))
	p, err := Load(path)
	assert.ErrorIs(t, err, diag.ErrConfiguration)
	assert.Equal(t, Default(), p)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "masonry.json")
	p := Default()
	p.Bond = "FLEMISH"
	p.SkipLintels = true
	require.NoError(t, Save(path, p))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestOverlay(t *testing.T) {
	p, err := Default().Overlay(map[string]string{
		"QUALITY":      "ultra",
		"MARGIN":       "0.05",
		"SKIP_LINTELS": "true",
		"SEED":         "17",
		"BRICK_PRESET": "",
		"UNKNOWN":      "ignored",
	})
	require.NoError(t, err)
	assert.Equal(t, "ultra", p.Quality)
	assert.Equal(t, float32(0.05), p.Margin)
	assert.True(t, p.SkipLintels)
	assert.Equal(t, int32(17), p.Seed)
	assert.Equal(t, "BRICK_RED", p.BrickPreset, "empty values do not override")
	assert.Equal(t, Default().Joint, p.Joint)

	_, err = Default().Overlay(map[string]string{"WORKERS": "many"})
	assert.ErrorIs(t, err, diag.ErrConfiguration)
}

func TestEmitOptions(t *testing.T) {
	p := Default()
	p.Quality = "high"
	p.Bond = "english"
	p.SkipLintels = true
	o, err := p.EmitOptions()
	require.NoError(t, err)
	assert.Equal(t, emit.High, o.Quality)
	assert.Equal(t, layout.English, o.Bond)
	assert.False(t, o.Lintels)
	assert.Equal(t, layout.DefaultUnits(), o.Units)
	assert.Equal(t, layout.DefaultProxyRule(), o.Proxy)

	for name, mutate := range map[string]func(*Prefs){
		"quality": func(p *Prefs) { p.Quality = "cinematic" },
		"bond":    func(p *Prefs) { p.Bond = "herringbone" },
		"units":   func(p *Prefs) { p.Joint = -1 },
		"proxy":   func(p *Prefs) { p.ProxyMin = 500 },
	} {
		p := Default()
		mutate(&p)
		_, err := p.EmitOptions()
		assert.ErrorIs(t, err, diag.ErrConfiguration, name)
	}
}

func TestPlanAndRegistry(t *testing.T) {
	p := Default()
	plan := p.Plan()
	assert.Equal(t, material.Preset("BRICK_RED"), plan.Brick)
	assert.Equal(t, material.Color(material.DefaultMortarColor), plan.Mortar)

	r, err := p.Registry()
	require.NoError(t, err)
	assert.Equal(t, "BRICK_RED", r.Default().Name)

	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default: SANDSTONE\npresets:\n  - {name: SANDSTONE, color: \"#d2b48c\", roughness: 0.9}\n"), 0644))
	p.PresetFile = path
	r, err = p.Registry()
	require.NoError(t, err)
	assert.Equal(t, []string{"SANDSTONE"}, r.Names())
}
