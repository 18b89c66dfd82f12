package prepare

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"

	"psr-prepare/pkg/addon"
	"psr-prepare/pkg/config"
)

// Context file names under the context directory.
const (
	AddonContextFile     = "addon.json"
	ChangelogContextFile = "changelog.json"
)

// AddonContext is the JSON payload PSR templates read for addon metadata.
// Key names match the template context, hence the hyphenated fields.
type AddonContext struct {
	ID                string              `json:"id"`
	Name              string              `json:"name"`
	ProviderName      string              `json:"provider-name"`
	Summary           string              `json:"summary"`
	Description       string              `json:"description"`
	Disclaimer        string              `json:"disclaimer"`
	License           string              `json:"license"`
	Source            string              `json:"source"`
	Assets            map[string]string   `json:"assets"`
	Requires          []config.Dependency `json:"requires"`
	News              string              `json:"news"`
	NewsTypes         map[string]string   `json:"news_types"`
	UnknownExtensions string              `json:"unknown_extensions"`
}

// ChangelogContext is the JSON payload describing changelog handling.
type ChangelogContext struct {
	File     string `json:"file"`
	Mode     string `json:"mode"`
	Existing bool   `json:"existing"`
}

// WriteAddonContext writes the reconciled addon record plus the news type
// mapping to <contextDir>/addon.json.
func WriteAddonContext(contextDir string, merged addon.Merged, newsTypes map[string]string) error {
	ctx := AddonContext{
		ID:                merged.ID,
		Name:              merged.Name,
		ProviderName:      merged.ProviderName,
		Summary:           merged.Summary,
		Description:       merged.Description,
		Disclaimer:        merged.Disclaimer,
		License:           merged.License,
		Source:            merged.Source,
		Assets:            merged.Assets,
		Requires:          merged.Requires,
		News:              merged.News,
		NewsTypes:         newsTypes,
		UnknownExtensions: merged.UnknownExtensions,
	}
	if ctx.Assets == nil {
		ctx.Assets = map[string]string{}
	}
	if ctx.Requires == nil {
		ctx.Requires = []config.Dependency{}
	}
	if ctx.NewsTypes == nil {
		ctx.NewsTypes = map[string]string{}
	}
	return writeContextJSON(contextDir, AddonContextFile, ctx)
}

// WriteChangelogContext writes changelog handling info to
// <contextDir>/changelog.json. When the changelog file does not exist yet
// the mode is forced to "init" regardless of configuration.
func WriteChangelogContext(contextDir string, cfg config.Changelog, changelogExists bool) error {
	mode := cfg.Mode
	if !changelogExists {
		mode = "init"
	}
	ctx := ChangelogContext{
		File:     cfg.File,
		Mode:     mode,
		Existing: changelogExists,
	}
	return writeContextJSON(contextDir, ChangelogContextFile, ctx)
}

func writeContextJSON(contextDir, name string, payload any) error {
	if err := os.MkdirAll(contextDir, 0o755); err != nil {
		return fmt.Errorf("create context directory %s: %w", contextDir, err)
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	path := filepath.Join(contextDir, name)
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logSink.Infow("wrote context file", "path", path)
	return nil
}
