package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pyproject.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "pyproject.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeConfig(t, "[tool.arranger\nbroken")
	_, _, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid TOML")
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, "")
	cfg, warnings, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, DefaultTemplatesDir, cfg.Arranger.TemplatesDir)
	assert.NotNil(t, cfg.Arranger.SourceMappings)
	assert.Nil(t, cfg.Prepare.Addon)
	assert.Nil(t, cfg.Prepare.Changelog)
}

func TestLoad_ArrangerTable(t *testing.T) {
	path := writeConfig(t, `
[tool.arranger]
templates-dir = "tpl"
use-default-kodi-addon-structure = true
kodi-project-name = "script.module.example"

[tool.arranger.source-mappings]
"docs/README.md.j2" = "universal/README.md.j2"
`)
	cfg, warnings, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "tpl", cfg.Arranger.TemplatesDir)
	assert.True(t, cfg.Arranger.UseDefaultKodiAddon)
	assert.Equal(t, "script.module.example", cfg.Arranger.KodiProjectName)
	assert.Equal(t, "universal/README.md.j2", cfg.Arranger.SourceMappings["docs/README.md.j2"])
}

func TestLoad_ExplicitlyEmptyTemplatesDir(t *testing.T) {
	path := writeConfig(t, `
[tool.arranger]
templates-dir = ""
`)
	_, _, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "templates-dir")
}

func TestLoad_TemplatesDirWithSeparator(t *testing.T) {
	for _, dir := range []string{"a/b", `a\b`} {
		path := writeConfig(t, "[tool.arranger]\ntemplates-dir = '"+dir+"'\n")
		_, _, err := Load(path)
		require.Error(t, err, "templates-dir %q should be rejected", dir)
		assert.Contains(t, err.Error(), "simple directory name")
	}
}

func TestLoad_EmptyKodiProjectName(t *testing.T) {
	path := writeConfig(t, `
[tool.arranger]
kodi-project-name = ""
`)
	_, _, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kodi-project-name")
}

func TestLoad_WrongValueType(t *testing.T) {
	path := writeConfig(t, `
[tool.arranger]
templates-dir = 42
`)
	_, _, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[tool.arranger]")
}

func TestLoad_UnknownKeysWarn(t *testing.T) {
	path := writeConfig(t, `
[tool.arranger]
templates-dir = "tpl"
tempaltes-dir = "typo"

[tool.psr-prepare]
stric = true

[tool.black]
line-length = 120
`)
	_, warnings, err := Load(path)
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "tempaltes-dir")
	assert.Contains(t, warnings[1], "stric")
	for _, w := range warnings {
		assert.NotContains(t, w, "line-length", "keys of other tools must not warn")
	}
}

func TestLoad_PrepareAddonRequiresID(t *testing.T) {
	path := writeConfig(t, `
[tool.psr-prepare.addon]
name = "Example"
`)
	_, _, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "addon.id is required")
}

func TestLoad_PrepareFullTable(t *testing.T) {
	path := writeConfig(t, `
[tool.psr-prepare.addon]
id = "script.module.example"
name = "Example"
provider-name = "someone"
requires = [
  { addon = "xbmc.python", version = "3.0.0" },
]

[tool.psr-prepare.addon.assets]
icon = "resources/icon.png"

[tool.psr-prepare.changelog]
news_types = { feat = "new", fix = "fix" }
`)
	cfg, _, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Prepare.Addon)
	assert.Equal(t, "script.module.example", cfg.Prepare.Addon.ID)
	assert.Equal(t, "resources/icon.png", cfg.Prepare.Addon.Assets["icon"])
	require.Len(t, cfg.Prepare.Addon.Requires, 1)
	assert.Equal(t, Dependency{Addon: "xbmc.python", Version: "3.0.0"}, cfg.Prepare.Addon.Requires[0])

	require.NotNil(t, cfg.Prepare.Changelog)
	assert.Equal(t, "CHANGELOG.md", cfg.Prepare.Changelog.File)
	assert.Equal(t, "update", cfg.Prepare.Changelog.Mode)
	assert.Equal(t, "new", cfg.Prepare.Changelog.NewsTypes["feat"])
}

func TestLoad_ChangelogModeValidated(t *testing.T) {
	path := writeConfig(t, `
[tool.psr-prepare.changelog]
mode = "replace"
`)
	_, _, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "changelog.mode")
}

func TestLoad_EmptyMappingEntry(t *testing.T) {
	path := writeConfig(t, `
[tool.arranger.source-mappings]
"docs/file.txt" = ""
`)
	_, _, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source-mappings")
}
