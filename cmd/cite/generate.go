package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/helixir/citation-service/internal/citation"
	"github.com/helixir/citation-service/internal/config"
	"github.com/helixir/citation-service/internal/observability"
)

// citationOutput mirrors the HTTP API response body.
type citationOutput struct {
	Identifier     string `json:"identifier"`
	Citation       string `json:"citation,omitempty"`
	IdentifierType string `json:"identifier_type,omitempty"`
	Error          string `json:"error,omitempty"`
}

// citer is the part of *citation.Generator the command needs.
type citer interface {
	Generate(ctx context.Context, raw string) (*citation.Result, error)
}

func newGenerateCmd(opts *options) *cobra.Command {
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "generate <identifier>...",
		Short: "Fetch metadata and print one citation per identifier",
		Example: `  cite 10.1038/s41586-020-2649-2
  cite --json "PMID: 32728213" S2CID:220845396
  cite generate https://www.bbc.com/news/science-environment-56837908`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}

			cfg, err := config.LoadFrom(opts.configFile)
			if err != nil {
				return withExitCode(ExitConfigError, err)
			}

			logger := observability.NewLogger(observability.LoggingConfig{
				Level:  opts.logLevel,
				Format: "console",
				Output: "stderr",
			})

			registry := citation.NewRegistry(cfg.Sources, nil, logger)
			gen := citation.NewGenerator(registry, logger, nil)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			return runGenerate(ctx, gen, args, opts.jsonOutput, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", 60*time.Second, "Upper bound for the whole run (0 disables)")

	return cmd
}

// runGenerate cites each identifier in order. Every identifier is attempted;
// the exit code reflects the first failure.
func runGenerate(ctx context.Context, gen citer, identifiers []string, jsonOutput bool, stdout, stderr io.Writer) error {
	var firstErr error
	enc := json.NewEncoder(stdout)

	for _, id := range identifiers {
		result, err := gen.Generate(ctx, id)

		out := citationOutput{Identifier: id}
		if err != nil {
			out.Error = citation.UserMessage(err)
			if firstErr == nil {
				firstErr = withExitCode(exitCodeFor(err), fmt.Errorf("%s: %s", id, out.Error))
			}
		} else {
			out.Citation = result.Citation
			out.IdentifierType = result.Kind.String()
		}

		switch {
		case jsonOutput:
			if encErr := enc.Encode(out); encErr != nil {
				return fmt.Errorf("writing output: %w", encErr)
			}
		case err != nil:
			fmt.Fprintf(stderr, "%s: %s\n", id, out.Error)
		default:
			fmt.Fprintln(stdout, out.Citation)
		}

		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			break
		}
	}

	return firstErr
}
