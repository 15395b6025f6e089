package drill

import (
	"strings"

	"github.com/abhisek/wordiz/internal/vocab"
)

// EvaluatorOptions tunes answer comparison.
type EvaluatorOptions struct {
	// TrimSpace strips surrounding whitespace from typed answers (Fill and
	// Spell) before comparing. Off by default.
	TrimSpace bool
}

// Evaluator decides whether a raw answer is correct.
type Evaluator struct {
	opts EvaluatorOptions
}

// NewEvaluator returns an evaluator with the given options.
func NewEvaluator(opts EvaluatorOptions) *Evaluator {
	return &Evaluator{opts: opts}
}

// Evaluate reports whether raw answers a question of type t about word.
// Typed answers are compared case-insensitively; picked options must
// match exactly.
func (e *Evaluator) Evaluate(word vocab.Word, t QuestionType, raw string) bool {
	switch t {
	case ChooseTerm:
		return raw == word.Term
	case ChooseMeaning:
		return raw == word.Meaning
	case Fill:
		return strings.EqualFold(e.normalize(raw), FillAnswer(word.Term))
	case Spell:
		return strings.EqualFold(e.normalize(raw), word.Term)
	default:
		return false
	}
}

func (e *Evaluator) normalize(raw string) string {
	if e.opts.TrimSpace {
		return strings.TrimSpace(raw)
	}
	return raw
}
