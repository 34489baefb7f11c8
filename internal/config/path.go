package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath resolves ~ and $VAR references in user-supplied paths. Both the
// database location and config file flags accept values like
// "$HOME/.local/share/f1ml/f1ml.db", so expansion happens in one place.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
