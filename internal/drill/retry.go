package drill

import (
	"math/rand/v2"

	"github.com/abhisek/wordiz/internal/vocab"
)

// RetryEntry is a word with the question types it has failed and not yet
// passed since.
type RetryEntry struct {
	Word        vocab.Word
	FailedTypes []QuestionType
}

// RetryBuffer holds words that failed at least one question type. Entries
// live in a dense slice so a uniform pick is a single index draw; removal
// swaps the last entry into the hole.
type RetryBuffer struct {
	entries []*RetryEntry
	index   map[string]int
	rng     *rand.Rand
}

// NewRetryBuffer returns an empty buffer drawing from rng.
func NewRetryBuffer(rng *rand.Rand) *RetryBuffer {
	return &RetryBuffer{
		index: make(map[string]int),
		rng:   rng,
	}
}

// Add records that word failed type t. Adding a pair already present is a
// no-op. Reports whether the buffer changed.
func (b *RetryBuffer) Add(word vocab.Word, t QuestionType) bool {
	if i, ok := b.index[word.Term]; ok {
		e := b.entries[i]
		for _, ft := range e.FailedTypes {
			if ft == t {
				return false
			}
		}
		e.FailedTypes = append(e.FailedTypes, t)
		return true
	}

	b.index[word.Term] = len(b.entries)
	b.entries = append(b.entries, &RetryEntry{Word: word, FailedTypes: []QuestionType{t}})
	return true
}

// Remove clears type t for word, dropping the entry once no failed types
// remain. Reports whether the buffer changed.
func (b *RetryBuffer) Remove(word vocab.Word, t QuestionType) bool {
	i, ok := b.index[word.Term]
	if !ok {
		return false
	}

	e := b.entries[i]
	pos := -1
	for j, ft := range e.FailedTypes {
		if ft == t {
			pos = j
			break
		}
	}
	if pos < 0 {
		return false
	}
	e.FailedTypes = append(e.FailedTypes[:pos], e.FailedTypes[pos+1:]...)

	if len(e.FailedTypes) == 0 {
		b.drop(i)
	}
	return true
}

func (b *RetryBuffer) drop(i int) {
	last := len(b.entries) - 1
	delete(b.index, b.entries[i].Word.Term)
	if i != last {
		b.entries[i] = b.entries[last]
		b.index[b.entries[i].Word.Term] = i
	}
	b.entries[last] = nil
	b.entries = b.entries[:last]
}

// PickRandom returns a uniformly chosen entry.
func (b *RetryBuffer) PickRandom() (RetryEntry, bool) {
	if len(b.entries) == 0 {
		return RetryEntry{}, false
	}
	return b.entries[b.rng.IntN(len(b.entries))].clone(), true
}

// Find returns the entry for term.
func (b *RetryBuffer) Find(term string) (RetryEntry, bool) {
	i, ok := b.index[term]
	if !ok {
		return RetryEntry{}, false
	}
	return b.entries[i].clone(), true
}

// Size returns the number of words in the buffer.
func (b *RetryBuffer) Size() int { return len(b.entries) }

// Entries returns copies of all entries for display.
func (b *RetryBuffer) Entries() []RetryEntry {
	out := make([]RetryEntry, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.clone()
	}
	return out
}

func (e *RetryEntry) clone() RetryEntry {
	types := make([]QuestionType, len(e.FailedTypes))
	copy(types, e.FailedTypes)
	return RetryEntry{Word: e.Word, FailedTypes: types}
}
