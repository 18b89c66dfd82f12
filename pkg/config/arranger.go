package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultTemplatesDir is where consumer repositories keep their rendered
// template tree unless [tool.arranger] says otherwise.
const DefaultTemplatesDir = "templates"

// Arranger mirrors the [tool.arranger] table.
type Arranger struct {
	TemplatesDir        string            `toml:"templates-dir"`
	UseDefaultPyPI      bool              `toml:"use-default-pypi-structure"`
	UseDefaultKodiAddon bool              `toml:"use-default-kodi-addon-structure"`
	KodiProjectName     string            `toml:"kodi-project-name"`
	SourceMappings      map[string]string `toml:"source-mappings"`
}

// validate checks value-level constraints. Type mismatches never get this
// far; the TOML decoder rejects them with its own error. MetaData is needed
// to tell an explicitly empty key from an absent one.
func (a Arranger) validate(md toml.MetaData) error {
	if md.IsDefined("tool", "arranger", "templates-dir") {
		if a.TemplatesDir == "" {
			return fmt.Errorf("config: 'templates-dir' cannot be an empty string")
		}
		if strings.ContainsAny(a.TemplatesDir, `/\`) {
			return fmt.Errorf(
				"config: 'templates-dir' should be a simple directory name, not a path: %q", a.TemplatesDir)
		}
	}

	if md.IsDefined("tool", "arranger", "kodi-project-name") && a.KodiProjectName == "" {
		return fmt.Errorf("config: 'kodi-project-name' cannot be an empty string")
	}

	for dest, tmpl := range a.SourceMappings {
		if dest == "" || tmpl == "" {
			return fmt.Errorf("config: source-mappings entries must be non-empty strings (entry %q)", dest)
		}
	}
	return nil
}

func (a *Arranger) applyDefaults() {
	if a.TemplatesDir == "" {
		a.TemplatesDir = DefaultTemplatesDir
	}
	if a.SourceMappings == nil {
		a.SourceMappings = map[string]string{}
	}
}
