package material

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"masonry/internal/diag"
)

// Recipe is a named preset as stored in the preset file.
type Recipe struct {
	Name        string  `yaml:"name"`
	Description string  `yaml:"description,omitempty"`
	Hex         string  `yaml:"color"`
	Roughness   float32 `yaml:"roughness"`
}

// Registry holds the presets PRESET specs resolve against. It is built explicitly and handed
// to the Binder; there is no process-wide registry.
type Registry struct {
	recipes map[string]Recipe
	order   []string
	def     string
}

type registryFile struct {
	Default string   `yaml:"default"`
	Presets []Recipe `yaml:"presets"`
}

//go:embed presets.yaml
var builtinPresets []byte

// NewRegistry builds a registry from recipes; def names the fallback recipe and must be one of them.
func NewRegistry(def string, recipes ...Recipe) (*Registry, error) {
	r := &Registry{recipes: make(map[string]Recipe, len(recipes)), def: def}
	for _, rc := range recipes {
		if rc.Name == "" {
			return nil, diag.Misconfigured("preset without a name")
		}
		if _, err := parseHex(rc.Hex); err != nil {
			return nil, fmt.Errorf("preset %s: %w", rc.Name, err)
		}
		if _, dup := r.recipes[rc.Name]; dup {
			return nil, diag.Misconfigured("duplicate preset %q", rc.Name)
		}
		r.recipes[rc.Name] = rc
		r.order = append(r.order, rc.Name)
	}
	if _, ok := r.recipes[def]; !ok {
		return nil, diag.Misconfigured("default preset %q is not defined", def)
	}
	return r, nil
}

// LoadRegistry reads a preset file (see presets.yaml for the format).
func LoadRegistry(rd io.Reader) (*Registry, error) {
	var f registryFile
	dec := yaml.NewDecoder(rd)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("material: decode presets: %w", err)
	}
	return NewRegistry(f.Default, f.Presets...)
}

// DefaultRegistry returns a fresh registry of the built-in presets.
func DefaultRegistry() *Registry {
	r, err := LoadRegistry(bytes.NewReader(builtinPresets))
	if err != nil {
		panic(fmt.Sprintf("material: built-in presets: %v", err))
	}
	return r
}

// Lookup returns the named recipe or a configuration error.
func (r *Registry) Lookup(name string) (Recipe, error) {
	rc, ok := r.recipes[name]
	if !ok {
		return Recipe{}, diag.Misconfigured("unknown preset %q", name)
	}
	return rc, nil
}

// Default returns the fallback recipe.
func (r *Registry) Default() Recipe { return r.recipes[r.def] }

// Names lists presets in file order.
func (r *Registry) Names() []string { return append([]string(nil), r.order...) }
