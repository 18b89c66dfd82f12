package arrange

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Verify re-reads every mapped destination and confirms its content
// matches the template source byte for byte. Run it after Apply to catch
// partial writes or concurrent modification of the fixture.
func Verify(fixtureDir string, mappings map[string]string, source fs.FS) error {
	fixtureAbs, err := filepath.Abs(fixtureDir)
	if err != nil {
		return fmt.Errorf("resolve fixture directory %s: %w", fixtureDir, err)
	}

	for _, step := range BuildSteps(mappings) {
		want, err := readTemplate(source, step.Template)
		if err != nil {
			return err
		}
		dst := filepath.Join(fixtureAbs, filepath.FromSlash(step.Destination))
		got, err := os.ReadFile(dst)
		if err != nil {
			return fmt.Errorf("verify %s: %w", step.Destination, err)
		}
		if !bytes.Equal(got, want) {
			return fmt.Errorf("verify %s: content does not match template %s", step.Destination, step.Template)
		}
		logSink.Debugw("verified placement", "destination", dst)
	}
	return nil
}
