package store

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	envHome    = "LEAFKEEPER_DATA_DIR" // override for tests and custom installs
	dirName    = ".leafkeeper"
	dbFilename = "state.db"
)

// DataDir returns the directory holding local state (~/.leafkeeper), or
// override when non-empty. It is created with 0700 permissions.
func DataDir(override string) (string, error) {
	dir := override
	if dir == "" {
		dir = os.Getenv(envHome)
	}
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine user home: %w", err)
		}
		dir = filepath.Join(home, dirName)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// DBPath returns the SQLite file path inside DataDir(override).
func DBPath(override string) (string, error) {
	dir, err := DataDir(override)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, dbFilename), nil
}
