// Package logger is the leveled logging interface shared by the sampler,
// configuration loader and UI. The terminal belongs to the header while
// perftop runs, so log output goes to a file or nowhere.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// DebugEnv enables Debug output when set to any non-empty value.
const DebugEnv = "PERFTOP_DEBUG"

// Logger takes printf-style messages at four levels.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

var std = log.New(io.Discard, "", log.LstdFlags)

// SetOutput redirects every env logger. Output is discarded until this is
// called.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// OpenFile appends log output to path and returns the closer for it.
func OpenFile(path string) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	SetOutput(f)
	return f, nil
}

type envLogger struct {
	prefix string
}

// NewEnvLogger returns a logger that tags each line with prefix, e.g.
// "[monitor]". Debug lines are written only when PERFTOP_DEBUG is set.
func NewEnvLogger(prefix string) Logger {
	return &envLogger{prefix: prefix}
}

func (l *envLogger) Debug(format string, args ...any) {
	if os.Getenv(DebugEnv) != "" {
		std.Printf(l.prefix+" DEBUG: "+format, args...)
	}
}

func (l *envLogger) Info(format string, args ...any) {
	std.Printf(l.prefix+" "+format, args...)
}

func (l *envLogger) Warn(format string, args ...any) {
	std.Printf(l.prefix+" WARN: "+format, args...)
}

func (l *envLogger) Error(format string, args ...any) {
	std.Printf(l.prefix+" ERROR: "+format, args...)
}

type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return noopLogger{}
}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

type Message struct {
	Level   string
	Message string
}

// BufferLogger captures messages for test assertions. It is safe for use
// by the sampler goroutine and the test at the same time.
type BufferLogger struct {
	mu       sync.Mutex
	messages []Message
}

func NewBufferLogger() *BufferLogger {
	return &BufferLogger{}
}

func (l *BufferLogger) add(level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, Message{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Debug(format string, args ...any) { l.add("debug", format, args...) }
func (l *BufferLogger) Info(format string, args ...any)  { l.add("info", format, args...) }
func (l *BufferLogger) Warn(format string, args ...any)  { l.add("warn", format, args...) }
func (l *BufferLogger) Error(format string, args ...any) { l.add("error", format, args...) }

// Messages returns a copy of the captured messages.
func (l *BufferLogger) Messages() []Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Message(nil), l.messages...)
}

// HasLevel reports whether any message was logged at level.
func (l *BufferLogger) HasLevel(level string) bool {
	for _, m := range l.Messages() {
		if m.Level == level {
			return true
		}
	}
	return false
}

// Contains reports whether any message at level contains substr.
func (l *BufferLogger) Contains(level, substr string) bool {
	for _, m := range l.Messages() {
		if m.Level == level && strings.Contains(m.Message, substr) {
			return true
		}
	}
	return false
}

func (l *BufferLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = nil
}
