package drill

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/abhisek/wordiz/internal/vocab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingCounter struct {
	loadErr error
	saveErr error
	saves   []int
}

func (c *failingCounter) Load(context.Context, string) (int, error) {
	return 7, c.loadErr
}

func (c *failingCounter) Save(_ context.Context, _ string, v int) error {
	c.saves = append(c.saves, v)
	return c.saveErr
}

func newTestEngine(t *testing.T, counter Counter) *Engine {
	t.Helper()
	return NewEngine(Options{
		Counter: counter,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Rand:    testRand(),
	})
}

func answerCorrectly(t *testing.T, e *Engine) (*Question, Result) {
	t.Helper()
	q, err := e.NextQuestion()
	require.NoError(t, err)
	res, err := e.SubmitAnswer(context.Background(), q.Answer())
	require.NoError(t, err)
	require.True(t, res.Correct, "expected %q to be correct for %s/%s", q.Answer(), q.Word.Term, q.Type)
	return q, res
}

func TestInitializeEmptyCompletesImmediately(t *testing.T) {
	e := newTestEngine(t, nil)
	require.NoError(t, e.Initialize(context.Background(), nil))

	assert.True(t, e.Completed())
	_, err := e.NextQuestion()
	assert.ErrorIs(t, err, ErrSessionComplete)
	assert.True(t, IsComplete(err))
	assert.Nil(t, e.Snapshot().CurrentWord)
}

func TestInitializeUndersizedPool(t *testing.T) {
	for n := 1; n < MinPoolSize; n++ {
		e := newTestEngine(t, nil)
		err := e.Initialize(context.Background(), testWords()[:n])

		var ipe *InsufficientPoolError
		require.ErrorAs(t, err, &ipe)
		assert.Equal(t, n, ipe.Size)
		assert.True(t, e.Completed())

		_, err = e.NextQuestion()
		assert.ErrorIs(t, err, ErrSessionComplete)
	}
}

func TestInitializeRejectsDuplicateTerms(t *testing.T) {
	words := testWords()
	words[3] = words[0]

	e := newTestEngine(t, nil)
	err := e.Initialize(context.Background(), words)
	assert.ErrorIs(t, err, vocab.ErrDuplicateTerm)
	assert.True(t, e.Completed())
}

func TestOrderPreservation(t *testing.T) {
	e := newTestEngine(t, nil)
	require.NoError(t, e.Initialize(context.Background(), testWords()))

	var served []string
	var types []QuestionType
	for range 8 {
		q, _ := answerCorrectly(t, e)
		served = append(served, q.Word.Term)
		types = append(types, q.Type)
	}

	assert.Equal(t, []string{
		"apple", "apple", "apple", "apple",
		"banana", "banana", "banana", "banana",
	}, served)
	assert.Equal(t, append(AllTypes[:], AllTypes[:]...), types)
}

func TestFullSessionAllCorrect(t *testing.T) {
	counter := NewMemoryCounter()
	require.NoError(t, counter.Save(context.Background(), TotalMasteredKey, 10))

	e := newTestEngine(t, counter)
	require.NoError(t, e.Initialize(context.Background(), testWords()))
	assert.Equal(t, 10, e.TotalMastered())

	newly := 0
	for range 16 {
		_, res := answerCorrectly(t, e)
		if res.NewlyMastered {
			newly++
		}
	}

	snap := e.Snapshot()
	assert.True(t, snap.Completed)
	assert.Equal(t, 16, snap.Correct)
	assert.Equal(t, 0, snap.Wrong)
	assert.Equal(t, 14, snap.TotalMastered)
	assert.Equal(t, 4, snap.MasteredSession)
	assert.Equal(t, 4, newly)
	assert.Nil(t, snap.CurrentWord)

	saved, err := counter.Load(context.Background(), TotalMasteredKey)
	require.NoError(t, err)
	assert.Equal(t, 14, saved)

	_, err = e.NextQuestion()
	assert.ErrorIs(t, err, ErrSessionComplete)
}

func TestMasteryIncrementsOnlyAfterAllFourTypes(t *testing.T) {
	counter := NewMemoryCounter()
	e := newTestEngine(t, counter)
	require.NoError(t, e.Initialize(context.Background(), testWords()))

	// Fail the first type of apple, pass the rest.
	q, err := e.NextQuestion()
	require.NoError(t, err)
	require.Equal(t, ChooseTerm, q.Type)
	res, err := e.SubmitAnswer(context.Background(), wrongAnswer(q))
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, "apple", res.Expected)

	for range 3 {
		_, res := answerCorrectly(t, e)
		assert.False(t, res.NewlyMastered)
	}
	assert.Equal(t, 0, e.TotalMastered())

	// Retry buffer holds only apple, so the retry pass is deterministic.
	q, res = answerCorrectly(t, e)
	assert.Equal(t, "apple", q.Word.Term)
	assert.Equal(t, ChooseTerm, q.Type)
	assert.True(t, res.NewlyMastered)
	assert.Equal(t, 1, e.TotalMastered())
}

func TestRetryTakesPriorityOverMainQueue(t *testing.T) {
	e := newTestEngine(t, nil)
	require.NoError(t, e.Initialize(context.Background(), testWords()))

	// Fail every type of apple.
	for range NumTypes {
		q, err := e.NextQuestion()
		require.NoError(t, err)
		require.Equal(t, "apple", q.Word.Term)
		_, err = e.SubmitAnswer(context.Background(), wrongAnswer(q))
		require.NoError(t, err)
	}
	require.Equal(t, 1, e.RetryPending())

	// Until the buffer drains, banana must not be introduced.
	retried := 0
	for e.RetryPending() > 0 {
		q, err := e.NextQuestion()
		require.NoError(t, err)
		assert.Equal(t, "apple", q.Word.Term)
		_, err = e.SubmitAnswer(context.Background(), q.Answer())
		require.NoError(t, err)
		retried++
	}
	assert.Equal(t, NumTypes, retried)
	assert.Len(t, e.Snapshot().MainQueue, 3)

	q, err := e.NextQuestion()
	require.NoError(t, err)
	assert.Equal(t, "banana", q.Word.Term)
}

func TestRetryPickSpansFailedWords(t *testing.T) {
	e := newTestEngine(t, nil)
	words := testWords()
	require.NoError(t, e.Initialize(context.Background(), words))

	// Seed the buffer with two words directly; the session flow only ever
	// holds the word currently being retried.
	e.retry.Add(words[2], Spell)
	e.retry.Add(words[3], Fill)

	seen := map[string]bool{}
	for e.RetryPending() > 0 {
		q, err := e.NextQuestion()
		require.NoError(t, err)
		assert.Contains(t, []string{"cherry", "durian"}, q.Word.Term)
		seen[q.Word.Term] = true
		_, err = e.SubmitAnswer(context.Background(), q.Answer())
		require.NoError(t, err)
	}
	assert.Len(t, seen, 2)

	q, err := e.NextQuestion()
	require.NoError(t, err)
	assert.Equal(t, "apple", q.Word.Term)
}

func TestRetryServesOnlyFailedTypes(t *testing.T) {
	e := newTestEngine(t, nil)
	require.NoError(t, e.Initialize(context.Background(), testWords()))

	for _, fail := range []bool{false, true, false, true} {
		q, err := e.NextQuestion()
		require.NoError(t, err)
		ans := q.Answer()
		if fail {
			ans = wrongAnswer(q)
		}
		_, err = e.SubmitAnswer(context.Background(), ans)
		require.NoError(t, err)
	}

	entry, ok := e.retry.Find("apple")
	require.True(t, ok)
	assert.Equal(t, []QuestionType{ChooseMeaning, Spell}, entry.FailedTypes)

	q1, _ := answerCorrectly(t, e)
	q2, _ := answerCorrectly(t, e)
	assert.Equal(t, "apple", q1.Word.Term)
	assert.Equal(t, ChooseMeaning, q1.Type)
	assert.Equal(t, "apple", q2.Word.Term)
	assert.Equal(t, Spell, q2.Type)
	assert.True(t, e.mastery.IsMastered("apple"))
	assert.Equal(t, 0, e.RetryPending())
}

func TestWrongThenRightAcrossRetryRounds(t *testing.T) {
	e := newTestEngine(t, nil)
	require.NoError(t, e.Initialize(context.Background(), testWords()))

	// Apple: fail Fill twice (once in intro, once on retry), then pass.
	for range 2 {
		answerCorrectly(t, e)
	}
	q, err := e.NextQuestion()
	require.NoError(t, err)
	require.Equal(t, Fill, q.Type)
	_, err = e.SubmitAnswer(context.Background(), "nope")
	require.NoError(t, err)
	answerCorrectly(t, e)

	q, err = e.NextQuestion()
	require.NoError(t, err)
	assert.Equal(t, "apple", q.Word.Term)
	assert.Equal(t, Fill, q.Type)
	_, err = e.SubmitAnswer(context.Background(), "nope")
	require.NoError(t, err)

	entry, ok := e.retry.Find("apple")
	require.True(t, ok)
	assert.Equal(t, []QuestionType{Fill}, entry.FailedTypes, "failed types must stay a set")

	q, res := answerCorrectly(t, e)
	assert.Equal(t, Fill, q.Type)
	assert.True(t, res.NewlyMastered)

	snap := e.Snapshot()
	assert.Equal(t, 2, snap.Wrong)
	assert.Equal(t, 4, snap.Correct)
}

func TestProtocolErrors(t *testing.T) {
	e := newTestEngine(t, nil)
	require.NoError(t, e.Initialize(context.Background(), testWords()))

	_, err := e.SubmitAnswer(context.Background(), "apple")
	assert.ErrorIs(t, err, ErrProtocol)

	q, err := e.NextQuestion()
	require.NoError(t, err)

	_, err = e.NextQuestion()
	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "next question", pe.Op)
	assert.Same(t, q, e.Pending(), "pending question must survive misuse")

	_, err = e.SubmitAnswer(context.Background(), q.Answer())
	require.NoError(t, err)
	_, err = e.SubmitAnswer(context.Background(), q.Answer())
	assert.ErrorIs(t, err, ErrProtocol)
}

func TestCounterFailuresDoNotBlock(t *testing.T) {
	counter := &failingCounter{
		loadErr: errors.New("disk gone"),
		saveErr: errors.New("disk gone"),
	}
	e := newTestEngine(t, counter)
	require.NoError(t, e.Initialize(context.Background(), testWords()))

	snap := e.Snapshot()
	assert.False(t, snap.CounterAvailable)
	assert.Equal(t, 0, snap.TotalMastered)

	for range 16 {
		answerCorrectly(t, e)
	}
	assert.True(t, e.Completed())
	assert.Equal(t, 4, e.TotalMastered(), "in-memory total must not revert")
	assert.Empty(t, counter.saves, "saves are skipped after a failed load")
}

// flakyCounter fails the first n loads and accepts every save.
type flakyCounter struct {
	stored    int
	loadFails int
}

func (c *flakyCounter) Load(context.Context, string) (int, error) {
	if c.loadFails > 0 {
		c.loadFails--
		return 0, errors.New("database is locked")
	}
	return c.stored, nil
}

func (c *flakyCounter) Save(_ context.Context, _ string, v int) error {
	c.stored = v
	return nil
}

func TestFailedLoadNeverLowersStoredTotal(t *testing.T) {
	counter := &flakyCounter{stored: 57, loadFails: 1}
	e := newTestEngine(t, counter)
	require.NoError(t, e.Initialize(context.Background(), testWords()))
	require.False(t, e.Snapshot().CounterAvailable)

	for range 4 {
		answerCorrectly(t, e)
	}
	assert.Equal(t, 1, e.TotalMastered())
	assert.Equal(t, 57, counter.stored)

	require.NoError(t, e.Initialize(context.Background(), testWords()))
	assert.True(t, e.Snapshot().CounterAvailable)
	assert.Equal(t, 57, e.TotalMastered())

	for range 4 {
		answerCorrectly(t, e)
	}
	assert.Equal(t, 58, counter.stored)
}

func TestFailedReloadClearsPreviousTotal(t *testing.T) {
	counter := &flakyCounter{stored: 9}
	e := newTestEngine(t, counter)
	require.NoError(t, e.Initialize(context.Background(), testWords()))
	require.Equal(t, 9, e.TotalMastered())

	counter.loadFails = 1
	require.NoError(t, e.Initialize(context.Background(), testWords()))
	assert.False(t, e.Snapshot().CounterAvailable)
	assert.Equal(t, 0, e.TotalMastered())
}

func TestReinitializeDiscardsState(t *testing.T) {
	counter := NewMemoryCounter()
	e := newTestEngine(t, counter)
	require.NoError(t, e.Initialize(context.Background(), testWords()))
	gen := e.Generation()

	q, err := e.NextQuestion()
	require.NoError(t, err)
	_, err = e.SubmitAnswer(context.Background(), wrongAnswer(q))
	require.NoError(t, err)
	_, err = e.NextQuestion()
	require.NoError(t, err)

	require.NoError(t, e.Initialize(context.Background(), testWords()))
	assert.Greater(t, e.Generation(), gen)

	snap := e.Snapshot()
	assert.Equal(t, 0, snap.Wrong)
	assert.Equal(t, 0, snap.Correct)
	assert.Empty(t, snap.Retry)
	assert.Len(t, snap.MainQueue, 4)
	assert.Nil(t, e.Pending())

	q, err = e.NextQuestion()
	require.NoError(t, err)
	assert.Equal(t, "apple", q.Word.Term)
	assert.Equal(t, ChooseTerm, q.Type)
}

func TestSnapshotIsACopy(t *testing.T) {
	e := newTestEngine(t, nil)
	require.NoError(t, e.Initialize(context.Background(), testWords()))
	_, err := e.NextQuestion()
	require.NoError(t, err)

	snap := e.Snapshot()
	require.NotNil(t, snap.CurrentWord)
	assert.Equal(t, "apple", snap.CurrentWord.Term)
	assert.Equal(t, []QuestionType{ChooseMeaning, Fill, Spell}, snap.PendingTypes)
	assert.Len(t, snap.MainQueue, 3)

	snap.MainQueue[0].Term = "mutated"
	assert.Equal(t, "banana", e.Snapshot().MainQueue[0].Term)
}
