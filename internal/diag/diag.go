// Package diag holds the error kinds shared by the generation pipeline and the warning values
// every fallback path reports to the caller.
package diag

import (
	"errors"
	"fmt"
)

var (
	// ErrInputValidation marks non-positive wall/opening dimensions and malformed opening records.
	ErrInputValidation = errors.New("input validation error")
	// ErrConfiguration marks unknown presets, quality tiers, bonds and unusable material payloads.
	ErrConfiguration = errors.New("configuration error")
	// ErrGeometryConstruction marks degenerate walls, e.g. shorter than one brick unit.
	ErrGeometryConstruction = errors.New("geometry construction error")
)

// Invalid returns an error wrapping ErrInputValidation.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInputValidation, fmt.Sprintf(format, args...))
}

// Misconfigured returns an error wrapping ErrConfiguration.
func Misconfigured(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

// Degenerate returns an error wrapping ErrGeometryConstruction.
func Degenerate(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrGeometryConstruction, fmt.Sprintf(format, args...))
}

// Warning is a non-fatal problem surfaced to the caller: a skipped record, a clamped value,
// a substituted preset. Scope names what it applies to (a facade, "material", "assembler").
type Warning struct {
	Scope string
	Err   error
}

func (w Warning) String() string {
	if w.Scope == "" {
		return w.Err.Error()
	}
	return w.Scope + ": " + w.Err.Error()
}

// Is reports whether the warning carries an error of the given kind.
func (w Warning) Is(kind error) bool {
	return errors.Is(w.Err, kind)
}

// Warn builds a Warning.
func Warn(scope string, err error) Warning {
	return Warning{Scope: scope, Err: err}
}

// Count returns how many warnings carry the given kind.
func Count(ws []Warning, kind error) int {
	n := 0
	for _, w := range ws {
		if w.Is(kind) {
			n++
		}
	}
	return n
}
