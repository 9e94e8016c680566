// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/kiln/internal/core/ports"
)

// DebugEnv names the environment variable selecting debug areas, e.g. KILN_DEBUG=generate,dispatch.
// The area * enables every area. Test subprocesses inherit it unchanged.
const DebugEnv = "KILN_DEBUG"

// messager describes an error that can report its own message without the chain, as zerr.Error does.
type messager interface {
	Message() string
}

type metadataer interface {
	Metadata() map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger *slog.Logger
	mu     sync.RWMutex
	areas  map[string]bool
	all    bool
}

var _ ports.Logger = (*Logger)(nil)

// New creates a Logger writing to stderr with debug areas taken from KILN_DEBUG.
func New() *Logger {
	return NewWithAreas(os.Stderr, os.Getenv(DebugEnv))
}

// NewWithAreas creates a Logger writing to w. areas is a comma-separated list of debug areas.
func NewWithAreas(w io.Writer, areas string) *Logger {
	l := &Logger{areas: make(map[string]bool)}
	for _, area := range strings.Split(areas, ",") {
		area = strings.TrimSpace(area)
		switch area {
		case "":
		case "*":
			l.all = true
		default:
			l.areas[area] = true
		}
	}
	l.SetOutput(w)
	return l
}

// SetOutput updates the logger's output destination. If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	level := slog.LevelInfo
	if l.all || len(l.areas) > 0 {
		level = slog.LevelDebug
	}

	handler := NewPrettyHandler(w, &slog.HandlerOptions{Level: level})

	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = slog.New(handler)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Debug logs msg when area is enabled.
func (l *Logger) Debug(area, msg string) {
	if !l.DebugEnabled(area) {
		return
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg, "area", area)
}

// DebugEnabled reports whether area is enabled.
func (l *Logger) DebugEnabled(area string) bool {
	return l.all || l.areas[area]
}

// Areas returns the enabled debug areas in sorted order.
func (l *Logger) Areas() []string {
	if l.all {
		return []string{"*"}
	}
	return slices.Sorted(maps.Keys(l.areas))
}

// Error logs an error with its cause chain and metadata.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}

// ErrorEntry is one link of an error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks the chain of zerr errors, stopping at the first plain error.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error()})
			break
		}
		entry := ErrorEntry{Message: m.Message()}
		if md, ok := current.(metadataer); ok {
			entry.Metadata = md.Metadata()
		}
		entries = append(entries, entry)
		current = errors.Unwrap(current)
	}
	return entries
}

// formatErrorEntries renders the main error followed by its causes, metadata sorted by key.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string
	for i, e := range entries {
		msgLines := strings.Split(e.Message, "\n")
		head, indent := "Error: ", "       "
		if i > 0 {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			head, indent = "    → ", "      "
		}
		lines = append(lines, head+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, k := range slices.Sorted(maps.Keys(e.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, e.Metadata[k]))
		}
	}
	return strings.Join(lines, "\n")
}
