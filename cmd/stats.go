package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/drill"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("missed")

		_, s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		repo := s.EventRepo()

		total, err := s.StateRepo().Load(ctx, drill.TotalMasteredKey)
		if err != nil {
			return fmt.Errorf("load mastered total: %w", err)
		}
		terms, err := repo.MasteredTerms(ctx)
		if err != nil {
			return fmt.Errorf("query mastered terms: %w", err)
		}

		fmt.Printf("Words mastered:  %d (%d distinct)\n", total, len(terms))

		acc, err := repo.TypeAccuracy(ctx)
		if err != nil {
			return fmt.Errorf("query accuracy: %w", err)
		}
		if len(acc) == 0 {
			fmt.Println("\nNo answers recorded yet.")
			return nil
		}

		fmt.Println()
		fmt.Println("Accuracy by Question Type")
		fmt.Println(strings.Repeat("─", 48))
		fmt.Printf("%-16s  %8s  %8s  %8s\n", "Type", "Answers", "Correct", "Rate")
		fmt.Println(strings.Repeat("─", 48))
		for _, a := range acc {
			fmt.Printf("%-16s  %8d  %8d  %7.0f%%\n", a.QuestionType, a.Attempts, a.Correct, a.Rate()*100)
		}

		missed, err := repo.MostMissed(ctx, limit)
		if err != nil {
			return fmt.Errorf("query missed words: %w", err)
		}
		if len(missed) > 0 {
			fmt.Println()
			fmt.Println("Most Missed Words")
			fmt.Println(strings.Repeat("─", 48))
			for _, m := range missed {
				fmt.Printf("%-32s  %6d\n", truncate(m.Term, 32), m.Misses)
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().IntP("missed", "n", 10, "Number of most-missed words to show")
}
