package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir ensures the provided directory exists.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// SafeWriteFile writes data to a temp file next to path and atomically renames
// it into place. Missing parent directories are created.
func SafeWriteFile(path string, data []byte) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// Slug lowercases s and replaces every run of non-alphanumerics with '_'.
func Slug(s string) string {
	out := make([]rune, 0, len(s))
	sep := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
			sep = false
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
			sep = false
		default:
			if !sep && len(out) > 0 {
				out = append(out, '_')
				sep = true
			}
		}
	}
	if sep {
		out = out[:len(out)-1]
	}
	return string(out)
}
