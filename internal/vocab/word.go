// Package vocab holds the word list a drill session runs over.
package vocab

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned when building a Pool.
var (
	ErrEmptyTerm     = errors.New("vocab: word has an empty term")
	ErrEmptyMeaning  = errors.New("vocab: word has an empty meaning")
	ErrDuplicateTerm = errors.New("vocab: duplicate term")
)

// Word is a single vocabulary item. Term identifies the word within a pool.
type Word struct {
	Term    string `json:"word"`
	Meaning string `json:"meaning"`
}

func (w Word) String() string {
	return fmt.Sprintf("%s (%s)", w.Term, w.Meaning)
}

// Pool is an immutable, ordered set of words with unique terms.
type Pool struct {
	words []Word
	index map[string]int
}

// NewPool builds a pool from words, preserving their order.
func NewPool(words []Word) (*Pool, error) {
	p := &Pool{
		words: make([]Word, 0, len(words)),
		index: make(map[string]int, len(words)),
	}
	for i, w := range words {
		if strings.TrimSpace(w.Term) == "" {
			return nil, fmt.Errorf("word %d: %w", i, ErrEmptyTerm)
		}
		if strings.TrimSpace(w.Meaning) == "" {
			return nil, fmt.Errorf("word %q: %w", w.Term, ErrEmptyMeaning)
		}
		if _, dup := p.index[w.Term]; dup {
			return nil, fmt.Errorf("word %q: %w", w.Term, ErrDuplicateTerm)
		}
		p.index[w.Term] = len(p.words)
		p.words = append(p.words, w)
	}
	return p, nil
}

// Len returns the number of words in the pool.
func (p *Pool) Len() int { return len(p.words) }

// At returns the i-th word.
func (p *Pool) At(i int) Word { return p.words[i] }

// IndexOf returns the position of the word with the given term.
func (p *Pool) IndexOf(term string) (int, bool) {
	i, ok := p.index[term]
	return i, ok
}

// Contains reports whether the pool has a word with the given term.
func (p *Pool) Contains(term string) bool {
	_, ok := p.index[term]
	return ok
}

// Words returns a copy of the pool's words in order.
func (p *Pool) Words() []Word {
	out := make([]Word, len(p.words))
	copy(out, p.words)
	return out
}
