// Package log provides optional file-backed debug logging, enabled with the
// --debug-log flag. When no file is configured all messages are discarded.
package log

import (
	"log"
	"os"
	"sync"
)

var (
	mu        sync.Mutex
	file      *os.File
	stdLogger *log.Logger
)

// SetFile opens (or creates) the debug log file at path and routes all
// subsequent messages to it. An empty path disables logging.
func SetFile(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		_ = file.Close()
		file = nil
		stdLogger = nil
	}
	if path == "" {
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		return err
	}
	file = f
	stdLogger = log.New(f, "", log.LstdFlags|log.Lmicroseconds)
	return nil
}

// Printf writes a formatted debug message when a log file is configured.
func Printf(format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if stdLogger == nil {
		return
	}
	stdLogger.Printf(format, args...)
	_ = file.Sync()
}

// Close closes the debug log file if open.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	stdLogger = nil
	return err
}
