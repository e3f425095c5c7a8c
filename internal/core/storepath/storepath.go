package storepath

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultDirName is the store directory used under the user home when no
// explicit store root is configured.
const DefaultDirName = ".bpm-store"

// Resolve picks the store root. An explicit value (flag or environment,
// already merged by the CLI layer) wins; otherwise the default under the
// user home is used. The store root is always passed explicitly into core
// operations, never read from ambient state there.
func Resolve(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory for default store: %w", err)
	}
	return filepath.Join(home, DefaultDirName), nil
}
