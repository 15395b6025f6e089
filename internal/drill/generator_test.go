package drill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	words := testWords()
	g := NewGenerator(mustPool(words), testRand())
	word := words[0]

	t.Run("choose term", func(t *testing.T) {
		q, err := g.Build(word, ChooseTerm)
		require.NoError(t, err)
		assert.Equal(t, word.Meaning, q.Prompt())
		assert.ElementsMatch(t, []string{"apple", "banana", "cherry", "durian"}, q.Options)
		assert.Equal(t, "apple", q.Options[q.CorrectIndex()])
	})

	t.Run("choose meaning", func(t *testing.T) {
		q, err := g.Build(word, ChooseMeaning)
		require.NoError(t, err)
		assert.Equal(t, word.Term, q.Prompt())
		assert.ElementsMatch(t, []string{"苹果", "香蕉", "樱桃", "榴莲"}, q.Options)
		assert.Equal(t, word.Meaning, q.Answer())
	})

	t.Run("fill", func(t *testing.T) {
		q, err := g.Build(word, Fill)
		require.NoError(t, err)
		assert.Empty(t, q.Options)
		assert.Equal(t, "ap___", q.Template)
		assert.Equal(t, "ple", q.Answer())
		assert.Equal(t, word.Meaning, q.Hint())
		assert.Equal(t, -1, q.CorrectIndex())
	})

	t.Run("spell", func(t *testing.T) {
		q, err := g.Build(word, Spell)
		require.NoError(t, err)
		assert.Empty(t, q.Options)
		assert.Empty(t, q.Template)
		assert.Equal(t, word.Term, q.Answer())
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := g.Build(word, QuestionType(42))
		assert.Error(t, err)
	})
}

func TestBuildReshufflesOptions(t *testing.T) {
	g := NewGenerator(mustPool(testWords()), testRand())

	positions := map[int]bool{}
	for range 100 {
		q, err := g.Build(testWords()[1], ChooseTerm)
		require.NoError(t, err)
		positions[q.CorrectIndex()] = true
	}
	assert.Len(t, positions, 4, "correct option should land in every position")
}
