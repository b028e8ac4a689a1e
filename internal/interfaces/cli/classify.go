package cli

import (
	"github.com/spf13/cobra"

	"github.com/arthrokinetix/akx-engine/internal/analysis/journey"
)

func newClassifyCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <file>",
		Short: "Print the keyword-based emotional profile of a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd, journey.Classify(string(raw)))
		},
	}
}
