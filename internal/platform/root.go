package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrRootNotFound is returned by FindRoot when no store is found.
var ErrRootNotFound = errors.New("store root not found")

// FindRoot looks upwards from startDir for a directory holding the system
// directory (".myagri" unless systemDir says otherwise) and returns its
// absolute path.
func FindRoot(startDir, systemDir string) (string, error) {
	if systemDir == "" {
		systemDir = ".myagri"
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if info, err := os.Stat(filepath.Join(dir, systemDir)); err == nil && info.IsDir() {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrRootNotFound
		}
		dir = parent
	}
}
