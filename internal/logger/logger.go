package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultPath is the simulation log file, relative to the working directory.
const DefaultPath = "logs/sim.txt"

// DefaultMaxLines bounds the in-memory history shown by the console.
const DefaultMaxLines = 500

// Logger keeps recent lines in memory for the console and appends every line to a file.
// The console reads Lines from the draw loop while commands write, so access is locked.
type Logger struct {
	mu       sync.Mutex
	path     string
	lines    []string
	maxLines int
	now      func() time.Time
}

// New returns a Logger writing to DefaultPath and ensures its directory exists.
func New() *Logger {
	return NewAt(DefaultPath)
}

// NewAt returns a Logger writing to path. An empty path keeps lines in memory only.
func NewAt(path string) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{path: path, maxLines: DefaultMaxLines, now: time.Now}
}

// Log stores line prefixed with [timestamp] and appends it to the log file.
// File errors are ignored; logging never stops the simulation.
func (l *Logger) Log(line string) {
	stamped := "[" + l.now().Format("2006-01-02 15:04:05") + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	if over := len(l.lines) - l.maxLines; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
	path := l.path
	l.mu.Unlock()

	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Logf formats and logs a line.
func (l *Logger) Logf(format string, args ...any) {
	l.Log(fmt.Sprintf(format, args...))
}

// Lines returns a copy of the stored lines, oldest first.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// Tail returns up to n of the most recent lines.
func (l *Logger) Tail(n int) []string {
	lines := l.Lines()
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
