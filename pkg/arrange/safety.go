package arrange

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ValidateDestination rejects destination paths that could write outside
// the fixture directory or that do not name a file:
//   - absolute paths and paths escaping via ".."
//   - paths ending in "/" (directories, not files)
//   - bare file names without at least one directory level
func ValidateDestination(dest string) error {
	if dest == "" {
		return fmt.Errorf("destination path cannot be empty")
	}
	if strings.HasSuffix(dest, "/") {
		return fmt.Errorf("destination path cannot be a directory: %q", dest)
	}
	if filepath.IsAbs(dest) {
		return fmt.Errorf("destination path must be relative to the fixture directory: %q", dest)
	}
	cleaned := path.Clean(dest)
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return fmt.Errorf("destination path escapes the fixture directory: %q", dest)
	}
	if !strings.Contains(cleaned, "/") {
		return fmt.Errorf(
			"invalid destination path format: %q (expected at least one directory level, e.g. 'dir/file.txt')", dest)
	}
	return nil
}

// validateTemplatePath checks the source side of a mapping. Existence is
// checked later against the actual template set.
func validateTemplatePath(tmpl string) error {
	if tmpl == "" || strings.HasSuffix(tmpl, "/") {
		return fmt.Errorf("invalid template path format: %q (template paths reference files, not directories)", tmpl)
	}
	return nil
}

// EnsureFixtureDir resolves the fixture directory to an absolute path and
// creates it if missing.
func EnsureFixtureDir(dir string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("fixture directory path cannot be empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve fixture directory %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return "", fmt.Errorf("create fixture directory %s: %w", abs, err)
	}
	return abs, nil
}
