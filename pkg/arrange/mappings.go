package arrange

import (
	"fmt"

	"psr-prepare/pkg/config"
)

// Template sources inside the bundled set.
const (
	ChangelogTemplate = "universal/CHANGELOG.md.j2"
	KodiAddonTemplate = "kodi-addons/addon.xml.j2"
)

// Selection is the project-type choice from the command line. The three
// flags are mutually exclusive; none set means ChangelogOnly.
type Selection struct {
	PyPI          bool
	KodiAddon     bool
	ChangelogOnly bool
}

func (s Selection) count() int {
	n := 0
	for _, set := range []bool{s.PyPI, s.KodiAddon, s.ChangelogOnly} {
		if set {
			n++
		}
	}
	return n
}

// BuildMappings computes the destination-to-template mapping for a run.
// Default mappings for the selected project type come first and reserve
// their destinations; custom source-mappings from configuration are
// validated and merged on top.
func BuildMappings(cfg config.Arranger, sel Selection) (map[string]string, error) {
	if sel.count() > 1 {
		return nil, fmt.Errorf(
			"flags --pypi, --kodi-addon, and --changelog-only are mutually exclusive")
	}
	if sel.count() == 0 {
		sel.ChangelogOnly = true
	}

	mappings, reserved := defaultMappings(cfg, sel)

	for dest, tmpl := range cfg.SourceMappings {
		if err := ValidateDestination(dest); err != nil {
			return nil, err
		}
		if err := validateTemplatePath(tmpl); err != nil {
			return nil, err
		}
		if reserved[dest] {
			return nil, fmt.Errorf(
				"cannot override default mapping for %q: default destinations are reserved for framework templates", dest)
		}
		mappings[dest] = tmpl
	}

	return mappings, nil
}

// defaultMappings builds the framework mappings for the selected project
// type and returns the set of reserved destinations.
func defaultMappings(cfg config.Arranger, sel Selection) (map[string]string, map[string]bool) {
	mappings := map[string]string{}
	templatesDir := cfg.TemplatesDir
	if templatesDir == "" {
		templatesDir = config.DefaultTemplatesDir
	}

	// PyPI has no default templates yet; the flag only participates in
	// exclusivity handling.

	if sel.KodiAddon || cfg.UseDefaultKodiAddon {
		if cfg.KodiProjectName != "" {
			mappings[templatesDir+"/"+cfg.KodiProjectName+"/addon.xml.j2"] = KodiAddonTemplate
		} else {
			mappings[templatesDir+"/addon.xml.j2"] = KodiAddonTemplate
		}
	}

	// The changelog template ships with every project type.
	mappings[templatesDir+"/CHANGELOG.md.j2"] = ChangelogTemplate

	reserved := make(map[string]bool, len(mappings))
	for dest := range mappings {
		reserved[dest] = true
	}
	return mappings, reserved
}
