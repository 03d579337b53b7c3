package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"masonry/internal/diag"
)

// LogFilePath is where the CLI logs, relative to the working directory.
const LogFilePath = "logs/masonry.txt"

// Logger stores lines in memory and, when created with a path, appends them to that file.
// A nil *Logger discards everything.
type Logger struct {
	mu    sync.Mutex
	lines []string
	path  string
}

// New returns a Logger writing to path. An empty path keeps lines in memory only.
func New(path string) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{lines: make([]string, 0), path: path}
}

// Log appends a line. Each entry is prefixed with [timestamp] using computer time.
func (l *Logger) Log(line string) {
	if l == nil {
		return
	}
	ts := time.Now().Format("2006-01-02 15:04:05")
	stamped := "[" + ts + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	l.mu.Unlock()

	if l.path == "" {
		return
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

func (l *Logger) Logf(format string, args ...any) {
	l.Log(fmt.Sprintf(format, args...))
}

// Warn records a warning with a WARN tag.
func (l *Logger) Warn(w diag.Warning) {
	l.Log("WARN " + w.String())
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
