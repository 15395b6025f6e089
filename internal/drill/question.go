package drill

import "github.com/abhisek/wordiz/internal/vocab"

// Question is a single prompt presented to the learner.
type Question struct {
	Word vocab.Word
	Type QuestionType

	// Options holds four distinct choices for choice types, one of which
	// is the correct answer. Empty otherwise.
	Options []string

	// Template is the partially revealed term for Fill questions.
	Template string
}

// Prompt returns the text the learner is asked about.
func (q *Question) Prompt() string {
	switch q.Type {
	case ChooseMeaning:
		return q.Word.Term
	case Fill:
		return q.Template
	default:
		return q.Word.Meaning
	}
}

// Hint returns secondary text shown beside the prompt, if any.
func (q *Question) Hint() string {
	if q.Type == Fill {
		return q.Word.Meaning
	}
	return ""
}

// Answer returns the expected response.
func (q *Question) Answer() string {
	switch q.Type {
	case ChooseMeaning:
		return q.Word.Meaning
	case Fill:
		return FillAnswer(q.Word.Term)
	default:
		return q.Word.Term
	}
}

// CorrectIndex returns the index of the correct option, or -1 for
// non-choice questions.
func (q *Question) CorrectIndex() int {
	want := q.Answer()
	for i, opt := range q.Options {
		if opt == want {
			return i
		}
	}
	return -1
}
