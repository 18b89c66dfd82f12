package arrange

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"psr-prepare/pkg/addon"
	"psr-prepare/pkg/config"
)

// CheckAddonMetadata compares the configured addon metadata against an
// existing <fixture>/<project>/addon.xml and returns a warning per
// mismatched field. The existing descriptor is authoritative for this
// check; the warnings tell the maintainer their configuration is stale.
// A missing or unparseable descriptor yields no warnings (new projects
// have none yet, and parse problems surface later in prepare).
func CheckAddonMetadata(fixtureDir, kodiProjectName string, cfgMeta *config.Addon) []string {
	if cfgMeta == nil || kodiProjectName == "" {
		return nil
	}

	path := filepath.Join(fixtureDir, kodiProjectName, "addon.xml")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	existing, err := addon.Parse(path)
	if err != nil {
		logSink.Warnw("could not parse existing addon.xml, skipping metadata check",
			"path", path, "error", err)
		return nil
	}

	fields := []struct {
		name     string
		cfgVal   string
		existVal string
	}{
		{"id", cfgMeta.ID, existing.ID},
		{"name", cfgMeta.Name, existing.Name},
		{"provider-name", cfgMeta.ProviderName, existing.ProviderName},
	}

	var warnings []string
	for _, f := range fields {
		if f.cfgVal != "" && f.existVal != "" && f.cfgVal != f.existVal {
			warnings = append(warnings, fmt.Sprintf(
				"metadata mismatch for %s: config=%q vs %s=%q (values from addon.xml win)",
				f.name, f.cfgVal, path, f.existVal))
		}
	}
	return warnings
}
