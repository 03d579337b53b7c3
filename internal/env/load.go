package env

import (
	"bufio"
	"os"
	"strings"
)

// Read parses the given file (e.g. ".env") into KEY=VALUE pairs. Empty lines and lines
// starting with # are skipped; surrounding quotes are removed from values.
// The file may be missing; that is not an error.
func Read(path string) (map[string]string, error) {
	vars := make(map[string]string)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return vars, nil
		}
		return nil, err
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		i := strings.Index(line, "=")
		if i <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:i])
		value := strings.TrimSpace(line[i+1:])
		if key == "" {
			continue
		}
		// Remove surrounding quotes if present
		if len(value) >= 2 && (value[0] == '"' && value[len(value)-1] == '"' || value[0] == '\'' && value[len(value)-1] == '\'') {
			value = value[1 : len(value)-1]
		}
		vars[key] = value
	}
	return vars, scanner.Err()
}

// Load reads the file and sets an environment variable for each pair.
func Load(path string) error {
	vars, err := Read(path)
	if err != nil {
		return err
	}
	for k, v := range vars {
		_ = os.Setenv(k, v)
	}
	return nil
}

// Prefixed collects variables whose name starts with prefix from file and the process
// environment, the process winning, and returns them keyed without the prefix.
func Prefixed(prefix string, file map[string]string) map[string]string {
	out := make(map[string]string)
	for k, v := range file {
		if name, ok := strings.CutPrefix(k, prefix); ok && name != "" {
			out[name] = v
		}
	}
	for _, kv := range os.Environ() {
		k, v, _ := strings.Cut(kv, "=")
		if name, ok := strings.CutPrefix(k, prefix); ok && name != "" {
			out[name] = v
		}
	}
	return out
}
