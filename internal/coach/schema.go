package coach

import "github.com/abhisek/wordiz/internal/llm"

// TipSchema is the structured output expected from the provider.
var TipSchema = &llm.Schema{
	Name:        "memory-tip",
	Description: "A memory aid and example sentence for a vocabulary word",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"mnemonic": map[string]any{
				"type":        "string",
				"description": "One-sentence memory hook linking the word to its meaning",
			},
			"example": map[string]any{
				"type":        "string",
				"description": "A short, natural example sentence using the word",
			},
		},
		"required":             []any{"mnemonic", "example"},
		"additionalProperties": false,
	},
}
