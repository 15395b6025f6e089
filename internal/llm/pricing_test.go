package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		input float64
		found bool
	}{
		{"gpt-4o-mini", 0.15, true},
		{"gpt-4o-mini-2024-07-18", 0.15, true},
		{"claude-haiku-4-5-20251001", 1, true},
		{"claude-sonnet-4-20250514", 3, true},
		{"google/gemini-2.5-flash-lite", 0.1, true},
		{"mock", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			c := LookupCost(tt.model)
			if (c != nil) != tt.found {
				t.Fatalf("LookupCost(%q) found = %v, want %v", tt.model, c != nil, tt.found)
			}
			if c != nil && c.InputPerMTok != tt.input {
				t.Fatalf("LookupCost(%q).InputPerMTok = %v, want %v", tt.model, c.InputPerMTok, tt.input)
			}
		})
	}
}

func TestModelCost_Cost(t *testing.T) {
	c := ModelCost{InputPerMTok: 1, OutputPerMTok: 5}
	got := c.Cost(1000, 200)
	if math.Abs(got-0.002) > 1e-12 {
		t.Fatalf("expected 0.002, got %v", got)
	}
}
