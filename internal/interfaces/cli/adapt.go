package cli

import (
	"github.com/spf13/cobra"

	"github.com/arthrokinetix/akx-engine/internal/adapters"
)

func newAdaptCmd(a *app) *cobra.Command {
	var contentType string

	cmd := &cobra.Command{
		Use:   "adapt <file>",
		Short: "Normalize a document and print the extracted text, structure, and metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			doc, err := adapters.Adapt(raw, resolveContentType(contentType, args[0]),
				a.adapterOptions()...)
			if err != nil {
				return err
			}
			return printJSON(cmd, doc)
		},
	}

	cmd.Flags().StringVar(&contentType, "type", "", "content type: html|text|pdf (default: inferred from extension)")
	return cmd
}
