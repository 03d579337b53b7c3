package commands

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute(t *testing.T) {
	reg := NewRegistry()
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	quality := fs.String("quality", "MEDIUM", "")
	var got string
	reg.Register("generate", "build a blueprint", fs, func() error {
		got = *quality
		return nil
	})

	require.NoError(t, reg.Execute([]string{"generate", "-quality", "HIGH"}))
	assert.Equal(t, "HIGH", got)

	assert.EqualError(t, reg.Execute(nil), "missing subcommand")
	assert.EqualError(t, reg.Execute([]string{"nope"}), "unknown command: nope")
	assert.Error(t, reg.Execute([]string{"generate", "-bogus"}))
}

func TestRunError(t *testing.T) {
	reg := NewRegistry()
	boom := errors.New("boom")
	reg.Register("fail", "always fails", flag.NewFlagSet("fail", flag.ContinueOnError), func() error { return boom })
	assert.ErrorIs(t, reg.Execute([]string{"fail"}), boom)
}

func TestUsage(t *testing.T) {
	reg := NewRegistry()
	reg.Register("stats", "count bricks", flag.NewFlagSet("stats", flag.ContinueOnError), func() error { return nil })
	reg.Register("presets", "list presets", flag.NewFlagSet("presets", flag.ContinueOnError), func() error { return nil })
	assert.Equal(t, []string{"presets", "stats"}, reg.Names())

	var buf bytes.Buffer
	reg.Usage(&buf)
	assert.Equal(t, "  presets    list presets\n  stats      count bricks\n", buf.String())
}
