package arrange

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/renameio/v2"
)

// Step is one concrete template placement. Destination is relative to the
// fixture directory, Template names a file inside the template set.
type Step struct {
	Destination string
	Template    string
	Description string
}

// Runner performs placement steps. The default runner writes files; a dry
// run substitutes a runner that only reports.
type Runner interface {
	Run(step Step) error
}

// BuildSteps orders a mapping into deterministic placement steps.
func BuildSteps(mappings map[string]string) []Step {
	dests := make([]string, 0, len(mappings))
	for dest := range mappings {
		dests = append(dests, dest)
	}
	sort.Strings(dests)

	steps := make([]Step, 0, len(dests))
	for _, dest := range dests {
		steps = append(steps, Step{
			Destination: dest,
			Template:    mappings[dest],
			Description: fmt.Sprintf("place %s at %s", mappings[dest], dest),
		})
	}
	return steps
}

// Apply places every mapped template into the fixture directory. The
// fixture directory is created if missing. Without override, an existing
// destination (file or symlink) is an error.
func Apply(fixtureDir string, mappings map[string]string, source fs.FS, override bool) error {
	fixtureAbs, err := EnsureFixtureDir(fixtureDir)
	if err != nil {
		return err
	}
	if len(mappings) == 0 {
		return fmt.Errorf(
			"no templates to arrange: use --changelog-only (default), --kodi-addon, or --pypi, " +
				"or add [tool.arranger] source-mappings in pyproject.toml")
	}

	runner := &fsRunner{source: source, fixtureDir: fixtureAbs, override: override}
	return applyWith(mappings, runner)
}

// applyWith runs the steps for a mapping through the given runner.
func applyWith(mappings map[string]string, runner Runner) error {
	for _, step := range BuildSteps(mappings) {
		if err := runner.Run(step); err != nil {
			return fmt.Errorf("arrange failed for %s: %w", step.Destination, err)
		}
	}
	return nil
}

// fsRunner writes template content to the fixture directory.
type fsRunner struct {
	source     fs.FS
	fixtureDir string
	override   bool
}

func (r *fsRunner) Run(step Step) error {
	content, err := readTemplate(r.source, step.Template)
	if err != nil {
		return err
	}

	dst := filepath.Join(r.fixtureDir, filepath.FromSlash(step.Destination))
	if err := clearDestination(dst, r.override); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", filepath.Dir(dst), err)
	}
	if err := renameio.WriteFile(dst, content, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}

	logSink.Infow("placed template", "template", step.Template, "destination", dst)
	return nil
}

// readTemplate loads a template file from the set, distinguishing a
// missing file from a directory path.
func readTemplate(source fs.FS, name string) ([]byte, error) {
	info, err := fs.Stat(source, name)
	if err != nil {
		return nil, fmt.Errorf("template file not found in template set: %s", name)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("template path points to a directory, not a file: %s", name)
	}
	content, err := fs.ReadFile(source, name)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", name, err)
	}
	return content, nil
}

// clearDestination enforces override semantics. Symlinks are never
// followed; with override they are removed so the write replaces the link
// itself rather than its target.
func clearDestination(dst string, override bool) error {
	info, err := os.Lstat(dst)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", dst, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		if !override {
			return fmt.Errorf("symlink exists at %s, use --override to replace it", dst)
		}
		if err := os.Remove(dst); err != nil {
			return fmt.Errorf("remove symlink %s: %w", dst, err)
		}
		return nil
	}

	if !override {
		return fmt.Errorf("file exists at %s, use --override to overwrite existing files", dst)
	}
	return nil
}
