package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"psr-prepare/pkg/arrange"
	"psr-prepare/pkg/config"
	"psr-prepare/pkg/prepare"
)

func newPrepareCommand(a *app) *cobra.Command {
	var (
		configPath string
		strict     bool
	)

	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Reconcile addon metadata and write PSR context files",
		Long: `Prepare reads [tool.psr-prepare] from pyproject.toml, reconciles it
against an existing addon.xml, writes the merged metadata to
.psr_context/, and copies the raw templates next to the project. In
strict mode a metadata conflict aborts the run instead of warning.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, warnings, err := config.Load(configPath)
			if err != nil {
				return err
			}
			for _, w := range warnings {
				a.logger.Warnw("configuration warning", "warning", w)
			}

			result, err := prepare.Run(prepare.Options{
				ConfigPath: configPath,
				Strict:     strict,
			}, cfg, arrange.DefaultSource)
			for _, w := range result.Warnings {
				a.logger.Warnw("reconciliation warning", "warning", w)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Release preparation complete.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "pyproject.toml",
		"path to the pyproject.toml to read")
	cmd.Flags().BoolVarP(&strict, "strict", "s", false,
		"treat metadata conflicts as errors")

	return cmd
}
