package prepare

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
)

// Subdirectories of the bundled template set.
const (
	universalDir = "universal"
	kodiDir      = "kodi-addons"
)

// CopyUniversalTemplates copies the universal/ subtree of the template
// set into targetDir, preserving relative paths. A template set without
// a universal directory is tolerated with a warning.
func CopyUniversalTemplates(source fs.FS, targetDir string) error {
	return copyTree(source, universalDir, targetDir)
}

// CopyAddonTemplates copies the kodi-addons/ subtree into
// <targetDir>/<addonID>/ and ensures the addon.xml.j2 template carries a
// news placeholder.
func CopyAddonTemplates(source fs.FS, targetDir, addonID string) error {
	addonTarget := filepath.Join(targetDir, addonID)
	if err := copyTree(source, kodiDir, addonTarget); err != nil {
		return err
	}
	tmpl := filepath.Join(addonTarget, "addon.xml.j2")
	if _, err := os.Stat(tmpl); err == nil {
		if err := EnsureNewsPlaceholder(tmpl); err != nil {
			return err
		}
	}
	return nil
}

func copyTree(source fs.FS, root, targetDir string) error {
	if _, err := fs.Stat(source, root); err != nil {
		logSink.Warnw("template directory not found in template set", "dir", root)
		return nil
	}

	err := fs.WalkDir(source, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel := strings.TrimPrefix(p, root+"/")
		dst := filepath.Join(targetDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", filepath.Dir(dst), err)
		}
		content, err := fs.ReadFile(source, p)
		if err != nil {
			return fmt.Errorf("read template %s: %w", p, err)
		}
		if err := renameio.WriteFile(dst, content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", dst, err)
		}
		logSink.Infow("copied template", "source", p, "destination", dst)
		return nil
	})
	if err != nil {
		return fmt.Errorf("copy %s templates: %w", root, err)
	}
	return nil
}

// EnsureNewsPlaceholder inserts an empty <news> placeholder into an
// addon.xml.j2 template that lacks one. Templates contain Jinja2 syntax,
// so this is a text edit, not an XML transformation: the placeholder goes
// right before the first closing </extension> tag.
func EnsureNewsPlaceholder(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read template %s: %w", path, err)
	}
	content := string(raw)

	if strings.Contains(content, "<news>") {
		return nil
	}

	idx := strings.Index(content, "</extension>")
	if idx == -1 {
		logSink.Warnw("no insertion point for news placeholder", "path", path)
		return nil
	}

	placeholder := "    <news>{{ news }}</news>\n  "
	patched := content[:idx] + placeholder + content[idx:]
	if err := renameio.WriteFile(path, []byte(patched), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logSink.Infow("added news placeholder", "path", path)
	return nil
}

// fileExists reports whether path names an existing file.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist) && err == nil
}
