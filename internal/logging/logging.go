// Package logging provides the shared diagnostic log. The bar runs inside
// an alternate-screen TUI, so diagnostics go to a file instead of stderr.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const defaultLogFile = "lumebar.log"

var (
	mu      sync.Mutex
	logPath = defaultLogFile
)

// Configure sets the log destination. An empty value falls back to the
// default path. Missing directories are created.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// Error appends an error to the log file. Nil errors are ignored.
func Error(err error) {
	if err == nil {
		return
	}
	write("ERROR " + err.Error())
}

// Warnf appends a formatted warning. Used for the recoverable misses of the
// renderer: unknown context keys, unresolvable icons, stale open-item ids.
func Warnf(format string, args ...any) {
	write("WARN " + fmt.Sprintf(format, args...))
}

// Infof appends a formatted informational entry.
func Infof(format string, args ...any) {
	write("INFO " + fmt.Sprintf(format, args...))
}

func write(line string) {
	mu.Lock()
	path := logPath
	mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return
	}
	defer f.Close()

	logger := log.New(f, "", log.LstdFlags)
	logger.Println(line)
}
