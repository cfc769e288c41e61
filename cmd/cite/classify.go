package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/helixir/citation-service/internal/domain"
)

type classifyOutput struct {
	Identifier     string `json:"identifier"`
	IdentifierType string `json:"identifier_type"`
}

func newClassifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <identifier>...",
		Short: "Print the identifier type without contacting any source",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(args, opts.jsonOutput, cmd.OutOrStdout())
		},
	}
}

func runClassify(identifiers []string, jsonOutput bool, w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, id := range identifiers {
		kind := domain.Classify(id)
		if jsonOutput {
			if err := enc.Encode(classifyOutput{Identifier: id, IdentifierType: kind.String()}); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			continue
		}
		fmt.Fprintf(w, "%s\t%s\n", kind, id)
	}
	return nil
}
