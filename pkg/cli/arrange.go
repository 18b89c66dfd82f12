package cli

import (
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"psr-prepare/pkg/arrange"
	"psr-prepare/pkg/config"
)

type arrangeOptions struct {
	configPath   string
	fixtureDir   string
	templatesDir string

	pypi          bool
	kodiAddon     bool
	changelogOnly bool

	override bool
	dryRun   bool
	verify   bool
	stateLog string
}

func newArrangeCommand(a *app) *cobra.Command {
	opts := arrangeOptions{}

	cmd := &cobra.Command{
		Use:   "arrange",
		Short: "Place raw templates into a fixture repository",
		Long: `Arrange copies the bundled raw Jinja2 templates into a fixture
repository according to [tool.arranger] in pyproject.toml. Templates are
placed verbatim; rendering happens later, when python-semantic-release
runs a release.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArrange(cmd, a, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "pyproject.toml",
		"path to the pyproject.toml to read")
	cmd.Flags().StringVar(&opts.fixtureDir, "fixture-dir", ".",
		"fixture repository to arrange templates into")
	cmd.Flags().StringVar(&opts.templatesDir, "templates-dir", "",
		"read templates from this directory instead of the bundled set")

	cmd.Flags().BoolVar(&opts.pypi, "pypi", false, "arrange templates for a PyPI project")
	cmd.Flags().BoolVar(&opts.kodiAddon, "kodi-addon", false, "arrange templates for a Kodi addon project")
	cmd.Flags().BoolVar(&opts.changelogOnly, "changelog-only", false, "arrange only the changelog template (default)")

	cmd.Flags().BoolVar(&opts.override, "override", false,
		"overwrite existing destination files and replace symlinks")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false,
		"print the placement plan without writing anything")
	cmd.Flags().BoolVar(&opts.verify, "verify", false,
		"after arranging, re-read every destination and compare against the template")
	cmd.Flags().StringVar(&opts.stateLog, "state-log", "",
		"append a record of this run to the given file")

	return cmd
}

func runArrange(cmd *cobra.Command, a *app, opts arrangeOptions) error {
	cfg, warnings, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	for _, w := range warnings {
		a.logger.Warnw("configuration warning", "warning", w)
	}

	sel := arrange.Selection{
		PyPI:          opts.pypi,
		KodiAddon:     opts.kodiAddon,
		ChangelogOnly: opts.changelogOnly,
	}
	mappings, err := arrange.BuildMappings(cfg.Arranger, sel)
	if err != nil {
		return err
	}
	steps := arrange.BuildSteps(mappings)

	var source fs.FS = arrange.DefaultSource
	if opts.templatesDir != "" {
		source = arrange.SourceFromDir(opts.templatesDir)
	}

	kodiSelected := sel.KodiAddon || cfg.Arranger.UseDefaultKodiAddon
	if kodiSelected {
		for _, w := range arrange.CheckAddonMetadata(opts.fixtureDir, cfg.Arranger.KodiProjectName, cfg.Prepare.Addon) {
			a.logger.Warnw("metadata warning", "warning", w)
		}
	}

	if opts.dryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "Dry run: %d template(s) would be placed in %s\n",
			len(steps), opts.fixtureDir)
		for _, step := range steps {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", step.Description)
		}
		if opts.stateLog != "" {
			if err := arrange.AppendStateLog(opts.stateLog, opts.fixtureDir, steps, arrange.PhasePlan, nil); err != nil {
				return fmt.Errorf("write state log: %w", err)
			}
		}
		return nil
	}

	runErr := arrange.Apply(opts.fixtureDir, mappings, source, opts.override)
	if opts.stateLog != "" {
		phase := arrange.PhaseSuccess
		if runErr != nil {
			phase = arrange.PhaseFailed
		}
		if logErr := arrange.AppendStateLog(opts.stateLog, opts.fixtureDir, steps, phase, runErr); logErr != nil {
			a.logger.Warnw("could not write state log", "path", opts.stateLog, "error", logErr)
		}
	}
	if runErr != nil {
		return runErr
	}

	if opts.verify {
		if err := arrange.Verify(opts.fixtureDir, mappings, source); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), "✓ Template structure built successfully.")
	return nil
}
