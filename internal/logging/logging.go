// Package logging provides file-backed structured logging for leadkey.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
)

// Logger is the shared logger instance. It discards everything until
// Initialize enables debug output.
var Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// Initialize sets up the logger based on the debug flag and
// configuration. LEADKEY_DEBUG=1 and LEADKEY_DEBUG_FILE override the
// passed values so spawned sessions inherit debugging.
func Initialize(debug bool, debugFile string, maxLogFiles int) error {
	if os.Getenv("LEADKEY_DEBUG") == "1" {
		debug = true
	}
	if envFile := os.Getenv("LEADKEY_DEBUG_FILE"); envFile != "" && debugFile == "" {
		debugFile = envFile
	}

	if !debug && debugFile == "" {
		Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
		return nil
	}

	var logFilePath string
	if debugFile != "" {
		// Custom debug file path, no rotation.
		logFilePath = debugFile
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}
	} else {
		logDir, err := defaultLogDir()
		if err != nil {
			return fmt.Errorf("resolving log directory: %w", err)
		}
		if err := os.MkdirAll(logDir, 0755); err != nil {
			return fmt.Errorf("creating log directory: %w", err)
		}

		if maxLogFiles > 0 {
			if err := rotateLogs(logDir, maxLogFiles); err != nil {
				// Rotation failure shouldn't prevent logging.
				fmt.Fprintf(os.Stderr, "Warning: log rotation failed: %v\n", err)
			}
		}

		logFilePath = filepath.Join(logDir, uuid.NewString()+".log")
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	Logger = slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	return nil
}

// defaultLogDir returns the per-user log directory.
func defaultLogDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, "leadkey", "logs"), nil
}

// rotateLogs removes the oldest log files so at most maxFiles-1 remain
// before a new one is created.
func rotateLogs(dir string, maxFiles int) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*.log"))
	if err != nil {
		return err
	}
	if len(matches) < maxFiles {
		return nil
	}

	type logFile struct {
		path    string
		modTime int64
	}
	files := make([]logFile, 0, len(matches))
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		files = append(files, logFile{path: path, modTime: info.ModTime().UnixNano()})
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime < files[j].modTime
	})

	excess := len(files) - maxFiles + 1
	for i := 0; i < excess && i < len(files); i++ {
		if err := os.Remove(files[i].path); err != nil {
			return err
		}
	}
	return nil
}
