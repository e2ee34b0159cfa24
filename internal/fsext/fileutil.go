package fsext

import (
	"os"
	"path/filepath"
	"strings"
)

// PrettyPath shortens paths under the home directory to start with ~.
func PrettyPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" || !HasPrefix(path, home) {
		return path
	}
	rel, err := filepath.Rel(home, path)
	if err != nil {
		return path
	}
	if rel == "." {
		return "~"
	}
	return filepath.Join("~", rel)
}

// HasPrefix reports whether path is prefix or lies below it.
func HasPrefix(path, prefix string) bool {
	rel, err := filepath.Rel(prefix, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// RelOrAbs returns path relative to root when it is inside root.
func RelOrAbs(root, path string) string {
	if !HasPrefix(path, root) {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

// IsFile reports whether path exists and is a regular file.
func IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
