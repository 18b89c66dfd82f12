package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"psr-prepare/pkg/addon"
	"psr-prepare/pkg/arrange"
	"psr-prepare/pkg/prepare"
)

// Exit codes. CI pipelines branch on these, so they are part of the
// contract: 2 means the existing addon.xml is broken, 3 means strict
// mode found a metadata conflict.
const (
	exitOK       = 0
	exitError    = 1
	exitParse    = 2
	exitConflict = 3
)

// app carries state shared between the root command and its subcommands.
type app struct {
	debug  bool
	logger *zap.SugaredLogger
}

// Run parses arguments, executes the selected command, and returns the
// process exit code.
func Run(args []string) int {
	root := newRootCommand()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "psr-prepare: %v\n", err)
		return exitCode(err)
	}
	return exitOK
}

func newRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "psr-prepare",
		Short: "Stage templates and context for python-semantic-release",
		Long: `psr-prepare stages raw Jinja2 templates and context data so that
python-semantic-release can render them during a release. It never renders
templates itself: commit analysis, version bumping, and changelog
generation all belong to PSR.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = newLogger(a.debug)
			arrange.SetLogger(a.logger)
			prepare.SetLogger(a.logger)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}

	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "enable debug logging")

	root.AddCommand(newArrangeCommand(a))
	root.AddCommand(newPrepareCommand(a))
	return root
}

func newLogger(debug bool) *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		// Production config only fails on bad options; fall back to no-op.
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

func exitCode(err error) int {
	var conflict *addon.ConflictError
	if errors.As(err, &conflict) {
		return exitConflict
	}
	if errors.Is(err, prepare.ErrAddonXML) {
		return exitParse
	}
	return exitError
}
