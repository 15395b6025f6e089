package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/drill"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the mastered word counter",
	Long: `Reset sets the persistent mastered-word total back to zero.

Event history is kept, so "wordiz stats" still reports past answers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to reset without --yes")
		}

		_, s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		prev, err := s.StateRepo().Load(ctx, drill.TotalMasteredKey)
		if err != nil {
			return fmt.Errorf("load mastered total: %w", err)
		}
		if err := s.StateRepo().Save(ctx, drill.TotalMasteredKey, 0); err != nil {
			return fmt.Errorf("reset mastered total: %w", err)
		}
		fmt.Printf("Mastered total reset (was %d).\n", prev)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
