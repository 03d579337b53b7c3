// Package config holds the generator preferences: a JSON file with defaults, overridable from
// MASONRY_* environment variables.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jinzhu/copier"

	"masonry/internal/diag"
	"masonry/internal/emit"
	"masonry/internal/layout"
	"masonry/internal/material"
)

// Path is the preferences file, relative to the process working directory.
const Path = "config/masonry.json"

// EnvPrefix marks environment variables that override preferences, e.g. MASONRY_QUALITY.
const EnvPrefix = "MASONRY_"

// Prefs are the generator preferences. Booleans are phrased so that false is the default,
// which lets an environment override turn them on.
type Prefs struct {
	Quality       string  `json:"quality"`
	Bond          string  `json:"bond"`
	Margin        float32 `json:"margin"`
	MortarRecess  float32 `json:"mortar_recess"`
	ProxyTarget   int     `json:"proxy_target"`
	ProxyMin      int     `json:"proxy_min"`
	ProxyMax      int     `json:"proxy_max"`
	WarnThreshold int     `json:"warn_threshold"`
	Workers       int     `json:"workers"`
	FullCorners   bool    `json:"full_corners"`
	SkipLintels   bool    `json:"skip_lintels"`
	Seed          int32   `json:"seed"`
	BrickPreset   string  `json:"brick_preset"`
	MortarColor   string  `json:"mortar_color"`
	PresetFile    string  `json:"preset_file,omitempty"`
	BrickLength   float32 `json:"brick_length"`
	BrickHeight   float32 `json:"brick_height"`
	BrickDepth    float32 `json:"brick_depth"`
	Joint         float32 `json:"joint"`
	LogFile       string  `json:"log_file,omitempty"`
}

// Default returns the stock preferences.
func Default() Prefs {
	units := layout.DefaultUnits()
	rule := layout.DefaultProxyRule()
	o := emit.DefaultOptions()
	return Prefs{
		Quality:       o.Quality.String(),
		Bond:          o.Bond.String(),
		Margin:        o.Margin,
		MortarRecess:  o.MortarRecess,
		ProxyTarget:   rule.Target,
		ProxyMin:      rule.Min,
		ProxyMax:      rule.Max,
		WarnThreshold: o.WarnThreshold,
		Workers:       4,
		BrickPreset:   "BRICK_RED",
		MortarColor:   material.DefaultMortarColor,
		BrickLength:   units.Length,
		BrickHeight:   units.Height,
		BrickDepth:    units.Depth,
		Joint:         units.Joint,
	}
}

// Load reads preferences from path on top of Default, so fields absent from the file keep
// their defaults. A missing file is not an error.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return p, err
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("%w: %s: %v", diag.ErrConfiguration, path, err)
	}
	return p, nil
}

// Save writes preferences to path, creating its directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

type setter func(p *Prefs, v string) error

func str(field func(*Prefs) *string) setter {
	return func(p *Prefs, v string) error { *field(p) = v; return nil }
}

func float(field func(*Prefs) *float32) setter {
	return func(p *Prefs, v string) error {
		f, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return err
		}
		*field(p) = float32(f)
		return nil
	}
}

func integer(field func(*Prefs) *int) setter {
	return func(p *Prefs, v string) error {
		n, err := strconv.Atoi(v)
		*field(p) = n
		return err
	}
}

func flag(field func(*Prefs) *bool) setter {
	return func(p *Prefs, v string) error {
		b, err := strconv.ParseBool(v)
		*field(p) = b
		return err
	}
}

var envSetters = map[string]setter{
	"QUALITY":        str(func(p *Prefs) *string { return &p.Quality }),
	"BOND":           str(func(p *Prefs) *string { return &p.Bond }),
	"MARGIN":         float(func(p *Prefs) *float32 { return &p.Margin }),
	"MORTAR_RECESS":  float(func(p *Prefs) *float32 { return &p.MortarRecess }),
	"PROXY_TARGET":   integer(func(p *Prefs) *int { return &p.ProxyTarget }),
	"PROXY_MIN":      integer(func(p *Prefs) *int { return &p.ProxyMin }),
	"PROXY_MAX":      integer(func(p *Prefs) *int { return &p.ProxyMax }),
	"WARN_THRESHOLD": integer(func(p *Prefs) *int { return &p.WarnThreshold }),
	"WORKERS":        integer(func(p *Prefs) *int { return &p.Workers }),
	"FULL_CORNERS":   flag(func(p *Prefs) *bool { return &p.FullCorners }),
	"SKIP_LINTELS":   flag(func(p *Prefs) *bool { return &p.SkipLintels }),
	"SEED": func(p *Prefs, v string) error {
		n, err := strconv.ParseInt(v, 10, 32)
		p.Seed = int32(n)
		return err
	},
	"BRICK_PRESET": str(func(p *Prefs) *string { return &p.BrickPreset }),
	"MORTAR_COLOR": str(func(p *Prefs) *string { return &p.MortarColor }),
	"PRESET_FILE":  str(func(p *Prefs) *string { return &p.PresetFile }),
	"BRICK_LENGTH": float(func(p *Prefs) *float32 { return &p.BrickLength }),
	"BRICK_HEIGHT": float(func(p *Prefs) *float32 { return &p.BrickHeight }),
	"BRICK_DEPTH":  float(func(p *Prefs) *float32 { return &p.BrickDepth }),
	"JOINT":        float(func(p *Prefs) *float32 { return &p.Joint }),
	"LOG_FILE":     str(func(p *Prefs) *string { return &p.LogFile }),
}

// Overlay applies environment overrides (keys without the MASONRY_ prefix, see env.Prefixed).
// Only non-empty values override; unknown keys are ignored.
func (p Prefs) Overlay(vars map[string]string) (Prefs, error) {
	var over Prefs
	for k, v := range vars {
		set, ok := envSetters[strings.ToUpper(k)]
		if !ok || v == "" {
			continue
		}
		if err := set(&over, v); err != nil {
			return p, fmt.Errorf("%w: %s%s=%q: %v", diag.ErrConfiguration, EnvPrefix, k, v, err)
		}
	}
	out := p
	if err := copier.CopyWithOption(&out, &over, copier.Option{IgnoreEmpty: true}); err != nil {
		return p, err
	}
	return out, nil
}

// Units returns the brick dimensions.
func (p Prefs) Units() layout.Units {
	return layout.Units{Length: p.BrickLength, Height: p.BrickHeight, Depth: p.BrickDepth, Joint: p.Joint}
}

// EmitOptions validates the emission settings.
func (p Prefs) EmitOptions() (emit.Options, error) {
	o := emit.DefaultOptions()
	var err error
	if o.Quality, err = emit.ParseQuality(p.Quality); err != nil {
		return o, err
	}
	if o.Bond, err = layout.ParseBond(p.Bond); err != nil {
		return o, err
	}
	o.Units = p.Units()
	if err := o.Units.Validate(); err != nil {
		return o, err
	}
	if p.Margin < 0 || p.MortarRecess < 0 {
		return o, diag.Misconfigured("margin and mortar recess must not be negative")
	}
	if p.ProxyMin > p.ProxyTarget || p.ProxyTarget > p.ProxyMax {
		return o, diag.Misconfigured("proxy bounds %d <= %d <= %d do not hold", p.ProxyMin, p.ProxyTarget, p.ProxyMax)
	}
	o.Margin = p.Margin
	o.MortarRecess = p.MortarRecess
	o.Proxy = layout.ProxyRule{Target: p.ProxyTarget, Min: p.ProxyMin, Max: p.ProxyMax}
	o.WarnThreshold = p.WarnThreshold
	o.Lintels = !p.SkipLintels
	o.Seed = p.Seed
	return o, nil
}

// Plan is the material plan the preferences describe.
func (p Prefs) Plan() material.Plan {
	return material.Plan{Brick: material.Preset(p.BrickPreset), Mortar: material.Color(p.MortarColor)}
}

// Registry loads PresetFile, or the built-in presets when it is empty.
func (p Prefs) Registry() (*material.Registry, error) {
	if p.PresetFile == "" {
		return material.DefaultRegistry(), nil
	}
	f, err := os.Open(p.PresetFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return material.LoadRegistry(f)
}
