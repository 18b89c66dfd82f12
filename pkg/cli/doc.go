// Package cli provides the psr-prepare command-line interface.
//
// Two subcommands cover the pre-release workflow: `arrange` places the
// bundled raw templates into a fixture repository, `prepare` reconciles
// addon metadata and writes the context JSON that python-semantic-release
// renders against. Use `Run` as the entry point:
//
//	os.Exit(cli.Run(os.Args[1:]))
package cli
