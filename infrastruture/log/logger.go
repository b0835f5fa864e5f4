// Package log provides the component-tagged, color-coded logger used across
// the service. Each component owns a Logger with its own tag and color so
// interleaved output stays readable.
package log

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gridweave/gridweave-api/config"
)

// Logger writes tagged, leveled log lines to a single writer.
type Logger struct {
	tag   string
	color string
	out   io.Writer
	mu    sync.Mutex
}

// New creates a Logger writing lines tagged with `tag` in the given ANSI
// color to `out`.
func New(tag, color string, out io.Writer) (*Logger, error) {
	if tag == "" {
		return nil, errors.New("logger tag must not be empty")
	}
	if out == nil {
		return nil, errors.New("logger output must not be nil")
	}

	return &Logger{
		tag:   tag,
		color: color,
		out:   out,
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.write("INFO", msg)
}

// Warning logs a warning message.
func (l *Logger) Warning(msg string) {
	l.write("WARNING", msg)
}

// Error logs an error message.
func (l *Logger) Error(msg string) {
	l.write(config.LogErrorColor+"ERROR"+config.ColorReset, msg)
}

func (l *Logger) write(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006/01/02 15:04:05")
	fmt.Fprintf(l.out, "%s %s[%s]%s [%s] %s\n", timestamp, l.color, l.tag, config.ColorReset, level, msg)
}
