package prepare

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"psr-prepare/pkg/addon"
	"psr-prepare/pkg/config"
)

// ErrAddonXML marks a failure to parse an existing addon.xml. The CLI
// maps it to its own exit code so CI can tell a broken descriptor from a
// broken configuration.
var ErrAddonXML = errors.New("addon.xml parse failed")

// ContextDirName is the directory, relative to the project root, where
// context JSON for PSR rendering is written.
const ContextDirName = ".psr_context"

// Options configures a prepare run.
type Options struct {
	// ConfigPath is the pyproject.toml to read (default "pyproject.toml").
	ConfigPath string
	// Strict makes reconciliation conflicts fatal instead of warnings.
	Strict bool
}

// Result reports what a prepare run did, for logging by the caller.
type Result struct {
	ProjectRoot string
	Warnings    []string
}

// Run performs the full prepare workflow: load configuration, parse and
// reconcile addon.xml, write context JSON, and copy templates. Errors
// wrap ErrAddonXML for descriptor parse failures and carry
// *addon.ConflictError for strict-mode conflicts; everything else is a
// configuration or I/O error.
func Run(opts Options, cfg config.Config, source fs.FS) (Result, error) {
	configPath := opts.ConfigPath
	if configPath == "" {
		configPath = "pyproject.toml"
	}
	absConfig, err := filepath.Abs(configPath)
	if err != nil {
		return Result{}, fmt.Errorf("resolve config path %s: %w", configPath, err)
	}
	projectRoot := filepath.Dir(absConfig)

	templatesDir := filepath.Join(projectRoot, config.DefaultTemplatesDir)
	contextDir := filepath.Join(projectRoot, ContextDirName)

	logSink.Infow("starting prepare",
		"project_root", projectRoot,
		"templates_dir", templatesDir,
		"context_dir", contextDir)

	result := Result{ProjectRoot: projectRoot}

	var merged addon.Merged
	if cfg.Prepare.Addon != nil {
		var xmlData *addon.XMLData
		descriptorPath := filepath.Join(projectRoot, cfg.Prepare.Addon.ID, "addon.xml")
		if fileExists(descriptorPath) {
			xmlData, err = addon.Parse(descriptorPath)
			if err != nil {
				return result, fmt.Errorf("%w: %v", ErrAddonXML, err)
			}
		} else {
			logSink.Infow("addon.xml not found (OK for new projects)", "path", descriptorPath)
		}

		var warnings []string
		merged, warnings, err = addon.Reconcile(xmlData, cfg.Prepare.Addon, opts.Strict)
		if err != nil {
			return result, err
		}
		result.Warnings = append(result.Warnings, warnings...)

		var newsTypes map[string]string
		if cfg.Prepare.Changelog != nil {
			newsTypes = cfg.Prepare.Changelog.NewsTypes
		}
		if err := WriteAddonContext(contextDir, merged, newsTypes); err != nil {
			return result, err
		}
	}

	if cfg.Prepare.Changelog != nil {
		changelogExists := fileExists(filepath.Join(projectRoot, cfg.Prepare.Changelog.File))
		if err := WriteChangelogContext(contextDir, *cfg.Prepare.Changelog, changelogExists); err != nil {
			return result, err
		}
	}

	if err := CopyUniversalTemplates(source, templatesDir); err != nil {
		return result, err
	}
	if cfg.Prepare.Addon != nil {
		if err := CopyAddonTemplates(source, templatesDir, cfg.Prepare.Addon.ID); err != nil {
			return result, err
		}
	}

	return result, nil
}
