package drill

import (
	"fmt"
	"math/rand/v2"

	"github.com/abhisek/wordiz/internal/vocab"
)

// Generator builds questions for words drawn from a pool.
type Generator struct {
	pool    *vocab.Pool
	sampler *Sampler
	rng     *rand.Rand
}

// NewGenerator returns a generator over pool.
func NewGenerator(pool *vocab.Pool, rng *rand.Rand) *Generator {
	return &Generator{
		pool:    pool,
		sampler: NewSampler(rng),
		rng:     rng,
	}
}

// Build produces a question of type t for word. Choice options are
// reshuffled on every call.
func (g *Generator) Build(word vocab.Word, t QuestionType) (*Question, error) {
	q := &Question{Word: word, Type: t}

	switch t {
	case ChooseTerm:
		opts, err := g.options(word, func(w vocab.Word) string { return w.Term })
		if err != nil {
			return nil, err
		}
		q.Options = opts
	case ChooseMeaning:
		opts, err := g.options(word, func(w vocab.Word) string { return w.Meaning })
		if err != nil {
			return nil, err
		}
		q.Options = opts
	case Fill:
		q.Template = FillTemplate(word.Term)
	case Spell:
	default:
		return nil, fmt.Errorf("build question: unknown type %s", t)
	}

	return q, nil
}

func (g *Generator) options(word vocab.Word, project func(vocab.Word) string) ([]string, error) {
	distractors, err := g.sampler.SampleDistinct(word, g.pool, DistractorCount, project)
	if err != nil {
		return nil, err
	}

	opts := make([]string, 0, DistractorCount+1)
	opts = append(opts, project(word))
	for _, d := range distractors {
		opts = append(opts, project(d))
	}
	g.rng.Shuffle(len(opts), func(i, j int) {
		opts[i], opts[j] = opts[j], opts[i]
	})
	return opts, nil
}
