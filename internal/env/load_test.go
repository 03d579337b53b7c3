package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(`
# comment
MASONRY_QUALITY = high
MASONRY_MORTAR_COLOR="#cccccc"
NAME='quoted'
=ignored
broken line
`), 0644))

	vars, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"MASONRY_QUALITY":      "high",
		"MASONRY_MORTAR_COLOR": "#cccccc",
		"NAME":                 "quoted",
	}, vars)
}

func TestReadMissingFile(t *testing.T) {
	vars, err := Read(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Empty(t, vars)
}

func TestPrefixedProcessWins(t *testing.T) {
	t.Setenv("MASONRY_TEST_SEED", "7")
	out := Prefixed("MASONRY_TEST_", map[string]string{
		"MASONRY_TEST_SEED": "1",
		"MASONRY_TEST_BOND": "flemish",
		"OTHER":             "x",
		"MASONRY_TEST_":     "empty name",
	})
	assert.Equal(t, map[string]string{"SEED": "7", "BOND": "flemish"}, out)
}
