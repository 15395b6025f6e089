// Package coach asks an LLM for memory tips on words the learner keeps
// missing. It runs beside the drill engine and never touches its state.
package coach

import "github.com/abhisek/wordiz/internal/vocab"

// Tip is a short memory aid for one word.
type Tip struct {
	Term     string
	Mnemonic string
	Example  string
}

// TipInput is everything the prompt needs about a missed word.
type TipInput struct {
	Word vocab.Word
	// Mistakes are the learner's wrong answers for this word, oldest first.
	Mistakes []string
}

// Config holds tip generation settings.
type Config struct {
	// MissThreshold is how many misses in a session trigger a tip.
	MissThreshold int
	MaxTokens     int
	Temperature   float64
}

// DefaultConfig returns defaults for tip generation.
func DefaultConfig() Config {
	return Config{
		MissThreshold: 2,
		MaxTokens:     256,
		Temperature:   0.7,
	}
}
