package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/coach"
	"github.com/abhisek/wordiz/internal/llm"
	"github.com/abhisek/wordiz/internal/vocab"
)

var tipCmd = &cobra.Command{
	Use:   "tip <word>",
	Short: "Preview an LLM memory tip for a word (no database)",
	Long: `Generate the memory tip a drill would show for a word that keeps being missed.

This is a stateless developer tool for checking tip quality: no database
and no events. The word is looked up in the configured word list.`,
	Args: cobra.ExactArgs(1),
	RunE: runTipPreview,
}

func init() {
	tipCmd.Flags().StringSlice("mistake", nil, "A wrong answer to include in the prompt (repeatable)")
}

func runTipPreview(cmd *cobra.Command, args []string) error {
	mistakes, _ := cmd.Flags().GetStringSlice("mistake")

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	words, err := vocab.Load(cfg.Words)
	if err != nil {
		return err
	}
	word, err := findWord(words, args[0])
	if err != nil {
		return err
	}

	llmCfg, ok := llm.Resolve()
	if !ok {
		return fmt.Errorf("no LLM configured: set WORDIZ_LLM_PROVIDER or a vendor API key")
	}
	log := slog.New(slog.DiscardHandler)
	provider, err := llm.NewProvider(cmd.Context(), llmCfg, nil, log)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	svc := coach.NewService(provider, coach.DefaultConfig(), log)
	fmt.Printf("Word: %s  (model %s)\n\n", word, provider.ModelID())

	tip, err := svc.Generate(cmd.Context(), coach.TipInput{Word: word, Mistakes: mistakes})
	if err != nil {
		return err
	}
	fmt.Printf("Mnemonic: %s\n", tip.Mnemonic)
	fmt.Printf("Example:  %s\n", tip.Example)
	return nil
}

func findWord(words []vocab.Word, term string) (vocab.Word, error) {
	for _, w := range words {
		if w.Term == term {
			return w, nil
		}
	}
	return vocab.Word{}, fmt.Errorf("no word %q in the word list", term)
}
