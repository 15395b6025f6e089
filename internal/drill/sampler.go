package drill

import (
	"math/rand/v2"

	"github.com/abhisek/wordiz/internal/vocab"
)

// DistractorCount is the number of wrong options in a choice question.
const DistractorCount = 3

// MinPoolSize is the smallest pool that can produce a choice question.
const MinPoolSize = DistractorCount + 1

// Sampler draws distractor words from a pool.
type Sampler struct {
	rng *rand.Rand
}

// NewSampler returns a sampler drawing from rng.
func NewSampler(rng *rand.Rand) *Sampler {
	return &Sampler{rng: rng}
}

// Sample draws k words other than word, uniformly without replacement.
func (s *Sampler) Sample(word vocab.Word, pool *vocab.Pool, k int) ([]vocab.Word, error) {
	return s.SampleDistinct(word, pool, k, func(w vocab.Word) string { return w.Term })
}

// SampleDistinct is like Sample but additionally requires that key yields a
// different value for every drawn word and for word itself. Choice
// questions use it so two words sharing a meaning never produce duplicate
// options.
func (s *Sampler) SampleDistinct(word vocab.Word, pool *vocab.Pool, k int, key func(vocab.Word) string) ([]vocab.Word, error) {
	if pool.Len() < k+1 {
		return nil, &InsufficientPoolError{Size: pool.Len(), Need: k + 1}
	}

	candidates := make([]int, 0, pool.Len())
	for i := range pool.Len() {
		if pool.At(i).Term != word.Term {
			candidates = append(candidates, i)
		}
	}

	seen := map[string]struct{}{key(word): {}}
	out := make([]vocab.Word, 0, k)

	// Lazy Fisher-Yates: each step fixes one more position of a uniform
	// permutation, so the accepted prefix is a uniform sample.
	for i := 0; i < len(candidates) && len(out) < k; i++ {
		j := i + s.rng.IntN(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]

		w := pool.At(candidates[i])
		kv := key(w)
		if _, dup := seen[kv]; dup {
			continue
		}
		seen[kv] = struct{}{}
		out = append(out, w)
	}

	if len(out) < k {
		return nil, &InsufficientPoolError{Size: len(seen), Need: k + 1}
	}
	return out, nil
}
