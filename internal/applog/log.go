// Package applog is a small leveled file logger. The CLI draws to the
// terminal, so diagnostics go to a file instead of stderr.
package applog

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Level is the severity of a log message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelOff // disables all logging
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a config string into a Level. Unknown values fall
// back to INFO.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "OFF":
		return LevelOff
	default:
		return LevelInfo
	}
}

var (
	currentLevel = LevelOff
	logger       *log.Logger
	logFile      *os.File
)

// Setup opens the log file and sets the level. An empty path defaults to
// ~/.config/quill/quill.log. LevelOff closes any open file and disables
// output entirely.
func Setup(level Level, path string) error {
	currentLevel = level

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}

	if level == LevelOff {
		logger = nil
		return nil
	}

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolving home directory: %w", err)
		}
		dir := filepath.Join(home, ".config", "quill")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
		path = filepath.Join(dir, "quill.log")
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", path, err)
	}

	logFile = f
	logger = log.New(f, "quill ", log.LstdFlags|log.Lmicroseconds)
	return nil
}

// SetLevel changes the level without reopening the file.
func SetLevel(level Level) {
	currentLevel = level
}

func GetLevel() Level {
	return currentLevel
}

// Close flushes and closes the log file if open.
func Close() error {
	if logFile != nil {
		err := logFile.Close()
		logFile = nil
		logger = nil
		return err
	}
	return nil
}

func logf(level Level, format string, args ...any) {
	if level < currentLevel || logger == nil {
		return
	}
	logger.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
}

func Debugf(format string, args ...any) { logf(LevelDebug, format, args...) }
func Infof(format string, args ...any)  { logf(LevelInfo, format, args...) }
func Warnf(format string, args ...any)  { logf(LevelWarn, format, args...) }
func Errorf(format string, args ...any) { logf(LevelError, format, args...) }

// FieldLogger appends key=value pairs to every message.
type FieldLogger struct {
	fields map[string]any
}

// WithFields returns a logger that tags messages with the given fields.
func WithFields(fields map[string]any) *FieldLogger {
	return &FieldLogger{fields: fields}
}

func (fl *FieldLogger) formatFields() string {
	if len(fl.fields) == 0 {
		return ""
	}
	var parts []string
	for key, value := range fl.fields {
		parts = append(parts, fmt.Sprintf("%s=%v", key, value))
	}
	return " [" + strings.Join(parts, " ") + "]"
}

func (fl *FieldLogger) logf(level Level, format string, args ...any) {
	if level < currentLevel || logger == nil {
		return
	}
	logf(level, "%s", fmt.Sprintf(format, args...)+fl.formatFields())
}

func (fl *FieldLogger) Debugf(format string, args ...any) { fl.logf(LevelDebug, format, args...) }
func (fl *FieldLogger) Infof(format string, args ...any)  { fl.logf(LevelInfo, format, args...) }
func (fl *FieldLogger) Warnf(format string, args ...any)  { fl.logf(LevelWarn, format, args...) }
func (fl *FieldLogger) Errorf(format string, args ...any) { fl.logf(LevelError, format, args...) }
