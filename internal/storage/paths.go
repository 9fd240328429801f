// Package storage locates and opens the engine's on-disk state: the
// embedded key-value database backing the indexed opening book (see
// internal/book) and the directory NNUE network files are auto-detected from.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "corvid"

// DataDir returns the platform-specific data directory for the engine.
//   - macOS: ~/Library/Application Support/corvid/
//   - Linux: ~/.local/share/corvid/ (or $XDG_DATA_HOME/corvid)
//   - Windows: %APPDATA%/corvid/
func DataDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(baseDir, appName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// NNUEDir returns the directory NNUE network files are auto-detected from.
func NNUEDir() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(dataDir, "nnue")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// BookIndexDir returns the directory the Badger-backed opening book index
// is stored in.
func BookIndexDir() (string, error) {
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(dataDir, "book")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}
