// Package main provides the cite CLI, which prints a wiki citation template
// for each identifier given on the command line.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		var exitErr *exitError
		code := ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.code
		}
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(code)
	}
}

// options holds the persistent flags shared by every command.
type options struct {
	jsonOutput bool
	configFile string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "cite [identifier...]",
		Short: "Generate wiki citation templates from bibliographic identifiers",
		Long: `cite turns DOIs, PMIDs, S2CIDs, Google Books URLs and web URLs into
{{cite journal}}, {{cite book}} or {{cite web}} templates.

Configuration is read the same way as the server: an optional .env file,
CITATION_* environment variables and an optional config.yaml.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}

	root.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Print API-shaped JSON instead of plain text")
	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to a config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level written to stderr")

	generate := newGenerateCmd(opts)
	root.RunE = generate.RunE
	root.Flags().AddFlagSet(generate.Flags())

	root.AddCommand(generate)
	root.AddCommand(newClassifyCmd(opts))

	return root
}
