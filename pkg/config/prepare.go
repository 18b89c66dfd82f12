package config

import "fmt"

// Prepare mirrors the [tool.psr-prepare] table. Both sub-tables are
// optional; a nil pointer means the table was not present.
type Prepare struct {
	Addon     *Addon     `toml:"addon"`
	Changelog *Changelog `toml:"changelog"`
}

// Addon is the [tool.psr-prepare.addon] table: the configured metadata for
// a Kodi addon descriptor. Empty strings mean "not configured"; the
// reconciler then keeps whatever addon.xml says.
type Addon struct {
	ID           string            `toml:"id"`
	Name         string            `toml:"name"`
	ProviderName string            `toml:"provider-name"`
	Description  string            `toml:"description"`
	Summary      string            `toml:"summary"`
	License      string            `toml:"license"`
	Disclaimer   string            `toml:"disclaimer"`
	Source       string            `toml:"source"`
	Assets       map[string]string `toml:"assets"`
	Requires     []Dependency      `toml:"requires"`
}

// Dependency is one required addon, as it appears both in configuration
// and in addon.xml's <requires><import/></requires> block.
type Dependency struct {
	Addon   string `toml:"addon" json:"addon"`
	Version string `toml:"version" json:"version"`
}

// Changelog is the [tool.psr-prepare.changelog] table.
type Changelog struct {
	File string `toml:"file"`
	// Mode is "init" (write a fresh changelog) or "update" (insert new
	// release sections into the existing file).
	Mode string `toml:"mode"`
	// NewsTypes maps conventional commit types to the label used in the
	// addon <news> element, e.g. feat -> "new", fix -> "fix".
	NewsTypes map[string]string `toml:"news_types"`
}

func (p Prepare) validate() error {
	if p.Addon != nil && p.Addon.ID == "" {
		return fmt.Errorf("config: addon.id is required (e.g. id = 'script.module.example')")
	}
	if p.Changelog != nil {
		if m := p.Changelog.Mode; m != "" && m != "init" && m != "update" {
			return fmt.Errorf("config: changelog.mode must be 'init' or 'update', got %q", m)
		}
	}
	return nil
}

func (p *Prepare) applyDefaults() {
	if p.Addon != nil {
		if p.Addon.Assets == nil {
			p.Addon.Assets = map[string]string{}
		}
	}
	if p.Changelog != nil {
		if p.Changelog.File == "" {
			p.Changelog.File = "CHANGELOG.md"
		}
		if p.Changelog.Mode == "" {
			p.Changelog.Mode = "update"
		}
		if p.Changelog.NewsTypes == nil {
			p.Changelog.NewsTypes = map[string]string{}
		}
	}
}
