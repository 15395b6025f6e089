package drill

import (
	"math/rand/v2"

	"github.com/abhisek/wordiz/internal/vocab"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func testWords() []vocab.Word {
	return []vocab.Word{
		{Term: "apple", Meaning: "苹果"},
		{Term: "banana", Meaning: "香蕉"},
		{Term: "cherry", Meaning: "樱桃"},
		{Term: "durian", Meaning: "榴莲"},
	}
}

func mustPool(words []vocab.Word) *vocab.Pool {
	p, err := vocab.NewPool(words)
	if err != nil {
		panic(err)
	}
	return p
}

// wrongAnswer returns an answer guaranteed to be graded incorrect.
func wrongAnswer(q *Question) string {
	if q.Type.IsChoice() {
		for _, opt := range q.Options {
			if opt != q.Answer() {
				return opt
			}
		}
	}
	return "definitely-not-" + q.Word.Term
}
