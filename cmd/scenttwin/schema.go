package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/scenttwin/internal/domain/prompt"
	"github.com/kailas-cloud/scenttwin/internal/domain/search/mode"
	"github.com/kailas-cloud/scenttwin/internal/domain/search/request"
)

func newSchemaCmd() *cobra.Command {
	var (
		limits   prompt.Limits
		language string
		query    string
	)

	cmd := &cobra.Command{
		Use:       "schema <BY_NAME|BY_NOTES>",
		Short:     "Print the output schema sent to the provider for a search type",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{mode.ByName.String(), mode.ByNotes.String()},
		RunE: func(cmd *cobra.Command, args []string) error {
			m := mode.Mode(strings.ToUpper(args[0]))
			if !m.IsValid() {
				return fmt.Errorf("invalid search type %q: expected %s or %s", args[0], mode.ByName, mode.ByNotes)
			}

			b, err := prompt.NewBuilder(limits, prompt.Language(language))
			if err != nil {
				return err
			}

			if query == "" {
				sch := b.Schema(m)
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"name":   prompt.SchemaName(m),
					"schema": sch.JSONSchema(),
				})
			}

			req, err := request.New(query, m)
			if err != nil {
				return err
			}
			p := b.Build(req)
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"name":        p.SchemaName,
				"instruction": p.Instruction,
				"schema":      p.Schema.JSONSchema(),
			})
		},
	}
	cmd.Flags().IntVar(&limits.SimilarPerfumes, "similar", prompt.DefaultSimilarPerfumes, "similar perfumes bound")
	cmd.Flags().IntVar(&limits.NotesSuggestions, "suggestions", prompt.DefaultNotesSuggestions, "notes suggestions bound")
	cmd.Flags().StringVar(&language, "language", string(prompt.PortugueseBR), "instruction language: pt-BR, en")
	cmd.Flags().StringVar(&query, "query", "", "also print the full instruction for this query")
	return cmd
}
