// Package appdir resolves the per-user application data directory.
package appdir

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvOverride names the environment variable that overrides the resolved
// data directory, mainly for tests and scripted use.
const EnvOverride = "TALLY_DATA_DIR"

const appName = "tally"

// Resolve returns the data directory, creating it if needed. Without an
// override it is <user config dir>/tally (e.g. ~/Library/Application
// Support/tally on macOS, ~/.config/tally on Linux).
func Resolve() (string, error) {
	dir := os.Getenv(EnvOverride)
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("resolving user config dir: %w", err)
		}
		dir = filepath.Join(base, appName)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating data dir: %w", err)
	}
	return dir, nil
}
