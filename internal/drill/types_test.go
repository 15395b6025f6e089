package drill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionTypeStringRoundTrip(t *testing.T) {
	for _, qt := range AllTypes {
		got, err := ParseQuestionType(qt.String())
		require.NoError(t, err)
		assert.Equal(t, qt, got)
	}

	_, err := ParseQuestionType("bogus")
	assert.Error(t, err)
	assert.False(t, QuestionType(9).Valid())
}

func TestCanonicalOrder(t *testing.T) {
	assert.Equal(t, [NumTypes]QuestionType{ChooseTerm, ChooseMeaning, Fill, Spell}, AllTypes)
}

func TestTypeQueueFIFO(t *testing.T) {
	var q typeQueue
	q.reset([]QuestionType{Fill, ChooseTerm, Spell})
	assert.Equal(t, 3, q.len())

	got, ok := q.pop()
	require.True(t, ok)
	assert.Equal(t, Fill, got)

	q.push(ChooseMeaning)
	assert.Equal(t, []QuestionType{ChooseTerm, Spell, ChooseMeaning}, q.items())

	for q.len() > 0 {
		q.pop()
	}
	_, ok = q.pop()
	assert.False(t, ok)
}

func TestTypeSet(t *testing.T) {
	var s typeSet
	s = s.with(Spell).with(ChooseTerm).with(Spell)
	assert.Equal(t, 2, s.len())
	assert.Equal(t, []QuestionType{ChooseTerm, Spell}, s.types())
	assert.False(t, s.full())

	s = s.with(Fill).with(ChooseMeaning)
	assert.True(t, s.full())
}
