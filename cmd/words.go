package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/drill"
	"github.com/abhisek/wordiz/internal/vocab"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Inspect word lists",
}

var wordsListCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "List the words in a word list (default: --words or the built-in list)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := wordListPath(cmd, args)
		if err != nil {
			return err
		}
		words, err := vocab.Load(path)
		if err != nil {
			return err
		}

		fmt.Printf("%-4s  %-24s  %s\n", "#", "Word", "Meaning")
		fmt.Println(strings.Repeat("─", 56))
		for i, w := range words {
			fmt.Printf("%-4d  %-24s  %s\n", i+1, truncate(w.Term, 24), w.Meaning)
		}
		fmt.Printf("\n%d words\n", len(words))
		return nil
	},
}

var wordsCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a word list file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		words, err := vocab.LoadFile(args[0])
		if err != nil {
			return err
		}
		if _, err := vocab.NewPool(words); err != nil {
			return fmt.Errorf("invalid word list: %w", err)
		}
		if len(words) < drill.MinPoolSize {
			return fmt.Errorf("word list has %d words, a drill needs at least %d", len(words), drill.MinPoolSize)
		}
		fmt.Printf("%s: %d words OK\n", args[0], len(words))
		return nil
	},
}

// wordListPath prefers an explicit argument over the configured list.
func wordListPath(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", err
	}
	return cfg.Words, nil
}

func init() {
	wordsCmd.AddCommand(wordsListCmd)
	wordsCmd.AddCommand(wordsCheckCmd)
}
