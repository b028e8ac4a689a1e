package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthrokinetix/akx-engine/internal/signature"
	"github.com/arthrokinetix/akx-engine/pkg/types/emotion"
)

func newSignatureCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "signature <profile.json>",
		Short: "Derive an emotional signature from a stored profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			var profile emotion.EmotionalProfile
			if err := json.Unmarshal(raw, &profile); err != nil {
				return fmt.Errorf("decode profile: %w", err)
			}

			return printJSON(cmd, signature.NewDeriver().Derive(profile))
		},
	}
}
