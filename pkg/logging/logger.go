// Package logging provides leveled, component-scoped logging for the
// autofill engine and its surrounding glue. Each run writes to a
// run-specific file under ~/.formpilot/logs/, falling back to stderr when
// the file cannot be opened. The scanner and filler receive a Logger at
// construction time; there is no package-level logging state beyond the
// shared run id.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Logger writes leveled log entries for a single component. All log
// methods write unconditionally; there is currently no level filtering.
type Logger struct {
	runID     string
	component string
	file      *os.File
	logger    *log.Logger
	mu        sync.Mutex
	logPath   string
	closeOnce sync.Once
}

var (
	// Run id shared by every component logger in this process
	runID     string
	runIDOnce sync.Once

	// logDir is the directory where log files are stored
	logDir string

	initOnce sync.Once
	initErr  error
)

// getRunID returns or creates the run id for this execution.
func getRunID() string {
	runIDOnce.Do(func() {
		runID = uuid.New().String()
	})
	return runID
}

// initLogDirectory ensures the log directory exists.
func initLogDirectory() error {
	initOnce.Do(func() {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			initErr = fmt.Errorf("failed to get home directory: %w", err)
			return
		}

		logDir = filepath.Join(homeDir, ".formpilot", "logs")
		if err := os.MkdirAll(logDir, 0750); err != nil {
			initErr = fmt.Errorf("failed to create log directory: %w", err)
		}
	})
	return initErr
}

// NewLogger creates a logger for a specific component, writing to
// ~/.formpilot/logs/<run-id>.log.
//
// If the log directory cannot be created or the log file cannot be
// opened, it returns a fallback logger that writes to stderr along with
// the error, so callers can detect fallback mode.
func NewLogger(component string) (*Logger, error) {
	if err := initLogDirectory(); err != nil {
		return newFallbackLogger(component, err), err
	}

	id := getRunID()
	logPath := filepath.Join(logDir, fmt.Sprintf("%s.log", id))

	// Append mode: multiple components share one file per run.
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return newFallbackLogger(component, fmt.Errorf("failed to open log file: %w", err)), err
	}

	return &Logger{
		runID:     id,
		component: component,
		file:      file,
		logger:    log.New(file, "", 0), // timestamps are formatted below
		logPath:   logPath,
	}, nil
}

// NewWriterLogger creates a logger that writes to the given writer.
// Used by tests and by callers that manage their own log destination.
func NewWriterLogger(component string, w io.Writer) *Logger {
	return &Logger{
		runID:     getRunID(),
		component: component,
		logger:    log.New(w, "", 0),
	}
}

// newFallbackLogger creates a logger that writes to stderr when file
// logging fails.
func newFallbackLogger(component string, err error) *Logger {
	logger := log.New(os.Stderr, fmt.Sprintf("[%s] ", component), log.LstdFlags)
	logger.Printf("WARNING: failed to initialize file logging: %v", err)
	logger.Printf("falling back to stderr logging")

	return &Logger{
		runID:     getRunID(),
		component: component,
		logger:    logger,
	}
}

// formatEntry creates a structured log entry with timestamp, component, and level.
func (l *Logger) formatEntry(level, message string) string {
	timestamp := time.Now().Format("2006-01-02 15:04:05.000")
	return fmt.Sprintf("[%s] [%s] [%s] %s", timestamp, l.component, level, message)
}

func (l *Logger) write(level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.logger.Println(l.formatEntry(level, fmt.Sprintf(format, v...)))
}

// writeKV appends an optional structured payload of alternating
// key/value pairs to the message. A dangling key is logged as-is.
func (l *Logger) writeKV(level, message string, kv []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if len(kv) > 0 {
		var payload string
		for i := 0; i < len(kv); i += 2 {
			if i+1 < len(kv) {
				payload += fmt.Sprintf(" %v=%v", kv[i], kv[i+1])
			} else {
				payload += fmt.Sprintf(" %v", kv[i])
			}
		}
		message += " |" + payload
	}
	l.logger.Println(l.formatEntry(level, message))
}

// Debugf logs a debug-level message.
func (l *Logger) Debugf(format string, v ...interface{}) { l.write("DEBUG", format, v...) }

// Infof logs an info-level message.
func (l *Logger) Infof(format string, v ...interface{}) { l.write("INFO", format, v...) }

// Warnf logs a warning-level message.
func (l *Logger) Warnf(format string, v ...interface{}) { l.write("WARN", format, v...) }

// Errorf logs an error-level message.
func (l *Logger) Errorf(format string, v ...interface{}) { l.write("ERROR", format, v...) }

// Debugw logs a debug-level message with a structured key/value payload.
func (l *Logger) Debugw(message string, kv ...interface{}) { l.writeKV("DEBUG", message, kv) }

// Infow logs an info-level message with a structured key/value payload.
func (l *Logger) Infow(message string, kv ...interface{}) { l.writeKV("INFO", message, kv) }

// Warnw logs a warning-level message with a structured key/value payload.
func (l *Logger) Warnw(message string, kv ...interface{}) { l.writeKV("WARN", message, kv) }

// Errorw logs an error-level message with a structured key/value payload.
func (l *Logger) Errorw(message string, kv ...interface{}) { l.writeKV("ERROR", message, kv) }

// Writer returns an io.Writer that writes to this logger's destination.
func (l *Logger) Writer() io.Writer {
	if l.file != nil {
		return l.file
	}
	return os.Stderr
}

// RunID returns the run id shared by all loggers in this process.
func (l *Logger) RunID() string {
	return l.runID
}

// LogPath returns the path to the log file, or "" in fallback mode.
func (l *Logger) LogPath() string {
	return l.logPath
}

// Close closes the log file. Safe to call multiple times.
func (l *Logger) Close() error {
	var err error
	l.closeOnce.Do(func() {
		if l.file != nil {
			err = l.file.Close()
		}
	})
	return err
}

// GetRunID returns the current global run id.
func GetRunID() string {
	return getRunID()
}

// GetLogDirectory returns the directory where logs are stored.
func GetLogDirectory() (string, error) {
	if err := initLogDirectory(); err != nil {
		return "", err
	}
	return logDir, nil
}
