package drill

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand/v2"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/wordiz/internal/coach"
	core "github.com/abhisek/wordiz/internal/drill"
	"github.com/abhisek/wordiz/internal/llm"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screens/summary"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/vocab"
)

type fakeEvents struct {
	sessions []store.SessionEventData
	answers  []store.AnswerEventData
	mastery  []store.MasteryEventData
	err      error
}

func (f *fakeEvents) AppendSessionEvent(_ context.Context, d store.SessionEventData) error {
	f.sessions = append(f.sessions, d)
	return f.err
}

func (f *fakeEvents) AppendAnswerEvent(_ context.Context, d store.AnswerEventData) error {
	f.answers = append(f.answers, d)
	return f.err
}

func (f *fakeEvents) AppendMasteryEvent(_ context.Context, d store.MasteryEventData) error {
	f.mastery = append(f.mastery, d)
	return f.err
}

type fakeSpeaker struct {
	said []string
}

func (f *fakeSpeaker) Pronounce(text string) { f.said = append(f.said, text) }

func testWords(n int) []vocab.Word {
	all := []vocab.Word{
		{Term: "apple", Meaning: "苹果"},
		{Term: "banana", Meaning: "香蕉"},
		{Term: "cherry", Meaning: "樱桃"},
		{Term: "durian", Meaning: "榴莲"},
		{Term: "elderberry", Meaning: "接骨木果"},
	}
	return all[:n]
}

type harness struct {
	screen  *DrillScreen
	events  *fakeEvents
	speaker *fakeSpeaker
	counter *core.MemoryCounter
}

func newHarness(t *testing.T, words []vocab.Word, plan int) *harness {
	t.Helper()
	h := &harness{
		events:  &fakeEvents{},
		speaker: &fakeSpeaker{},
		counter: core.NewMemoryCounter(),
	}
	h.screen = New(Deps{
		Words:   words,
		Counter: h.counter,
		Events:  h.events,
		Speaker: h.speaker,
		Logger:  slog.New(slog.DiscardHandler),
		Rand:    rand.New(rand.NewPCG(7, 11)),
	}, plan)
	h.screen.Update(startMsg{})
	return h
}

func numberKey(i int) tea.KeyPressMsg {
	r := rune('1' + i)
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// answer responds to the current question and ends the cooldown. It
// returns the command produced when the next question was requested.
func (h *harness) answer(t *testing.T, correct bool) tea.Cmd {
	t.Helper()
	s := h.screen
	require.Equal(t, phaseQuestion, s.phase, "no question showing")
	q := s.question

	if q.Type.IsChoice() {
		idx := q.CorrectIndex()
		if !correct {
			idx = (idx + 1) % len(q.Options)
		}
		s.Update(numberKey(idx))
	} else {
		text := q.Answer()
		if !correct {
			text = "zzz"
		}
		s.input.Model.SetValue(text)
		s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	}
	require.Equal(t, phaseFeedback, s.phase)
	require.Equal(t, correct, s.result.Correct)

	_, cmd := s.Update(cooldownDoneMsg{generation: s.engine.Generation(), answer: s.answers})
	return cmd
}

func summaryFrom(t *testing.T, cmd tea.Cmd) summary.Result {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok, "expected summary screen replacement")
	sum, ok := msg.Screen.(*summary.SummaryScreen)
	require.True(t, ok)
	st := sum.Status()
	return summary.Result{TotalMastered: st.TotalMastered, Points: st.Points, Plan: st.Goal, Mastered: st.GoalDone}
}

func TestDrill_PerfectSession(t *testing.T) {
	h := newHarness(t, testWords(4), 5)

	var cmd tea.Cmd
	for i := 0; i < 16; i++ {
		cmd = h.answer(t, true)
	}
	res := summaryFrom(t, cmd)

	assert.Equal(t, 4, res.Mastered)
	assert.Equal(t, 4, res.TotalMastered)
	assert.Equal(t, 160, res.Points)

	total, _ := h.counter.Load(context.Background(), core.TotalMasteredKey)
	assert.Equal(t, 4, total)

	require.Len(t, h.events.sessions, 2)
	assert.Equal(t, store.SessionStart, h.events.sessions[0].Action)
	assert.Equal(t, store.SessionEnd, h.events.sessions[1].Action)
	assert.Equal(t, 16, h.events.sessions[1].CorrectAnswers)
	assert.Equal(t, h.events.sessions[0].SessionID, h.events.sessions[1].SessionID)
	assert.Len(t, h.events.answers, 16)
	assert.Len(t, h.events.mastery, 4)
	assert.Equal(t, 4, h.events.mastery[3].TotalMastered)

	// Every correct answer is pronounced.
	assert.Len(t, h.speaker.said, 16)
}

func TestDrill_GoalReachedEarnsBonus(t *testing.T) {
	h := newHarness(t, testWords(5), 5)

	var cmd tea.Cmd
	for i := 0; i < 20; i++ {
		cmd = h.answer(t, true)
	}
	res := summaryFrom(t, cmd)

	assert.Equal(t, 5, res.Mastered)
	assert.Equal(t, 200, res.Points)
	assert.True(t, h.events.sessions[1].GoalReached)
}

func TestDrill_WrongAnswerRetriesWord(t *testing.T) {
	h := newHarness(t, testWords(4), 5)
	first := h.screen.question.Word.Term

	h.answer(t, false)

	snap := h.screen.engine.Snapshot()
	require.Len(t, snap.Retry, 1)
	assert.Equal(t, first, snap.Retry[0].Word.Term)
	assert.Equal(t, []string{first}, h.screen.missed)
	assert.Empty(t, h.speaker.said)

	require.Len(t, h.events.answers, 1)
	ans := h.events.answers[0]
	assert.False(t, ans.Correct)
	assert.Equal(t, first, ans.Term)
	assert.NotEmpty(t, ans.Expected)

	h.screen.showQueue = true
	assert.Contains(t, h.screen.View(120, 30), "Retry (1)")
}

func TestDrill_StaleCooldownIgnored(t *testing.T) {
	h := newHarness(t, testWords(4), 5)
	s := h.screen
	q := s.question
	s.Update(numberKeyOrEnter(s, q))
	require.Equal(t, phaseFeedback, s.phase)

	s.Update(cooldownDoneMsg{generation: s.engine.Generation() - 1, answer: s.answers})
	assert.Equal(t, phaseFeedback, s.phase)

	s.Update(cooldownDoneMsg{generation: s.engine.Generation(), answer: s.answers - 1})
	assert.Equal(t, phaseFeedback, s.phase)

	s.Update(cooldownDoneMsg{generation: s.engine.Generation(), answer: s.answers})
	assert.Equal(t, phaseQuestion, s.phase)
}

// numberKeyOrEnter submits whatever is currently typed or picks option 1.
func numberKeyOrEnter(s *DrillScreen, q *core.Question) tea.Msg {
	if q.Type.IsChoice() {
		return numberKey(0)
	}
	s.input.Model.SetValue("x")
	return tea.KeyPressMsg{Code: tea.KeyEnter}
}

func TestDrill_EscapeBeforeAnsweringLeaves(t *testing.T) {
	h := newHarness(t, testWords(4), 5)

	_, cmd := h.screen.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
	require.Len(t, h.events.sessions, 2)
	assert.Equal(t, store.SessionEnd, h.events.sessions[1].Action)
}

func TestDrill_EscapeAsksToConfirm(t *testing.T) {
	h := newHarness(t, testWords(4), 5)
	h.answer(t, true)

	h.screen.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Equal(t, phaseQuitConfirm, h.screen.phase)
	assert.Contains(t, h.screen.View(100, 30), "End this session?")

	h.screen.Update(tea.KeyPressMsg{Code: 'n', Text: "n"})
	assert.Equal(t, phaseQuestion, h.screen.phase)

	h.screen.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	_, cmd := h.screen.Update(tea.KeyPressMsg{Code: 'y', Text: "y"})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
	assert.Len(t, h.events.sessions, 2)

	// A second abandon does not write another end event.
	h.screen.Abandon()
	assert.Len(t, h.events.sessions, 2)
}

func TestDrill_RestartStartsNewGeneration(t *testing.T) {
	h := newHarness(t, testWords(4), 5)
	h.answer(t, true)
	gen := h.screen.engine.Generation()

	h.screen.Update(tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl})

	assert.Equal(t, gen+1, h.screen.engine.Generation())
	assert.Equal(t, 0, h.screen.goal.Points())
	assert.Equal(t, phaseQuestion, h.screen.phase)
	require.Len(t, h.events.sessions, 3)
	assert.Equal(t, store.SessionStart, h.events.sessions[2].Action)
	assert.NotEqual(t, h.events.sessions[0].SessionID, h.events.sessions[2].SessionID)
}

func TestDrill_InsufficientPool(t *testing.T) {
	h := newHarness(t, testWords(3), 5)

	assert.Equal(t, phaseError, h.screen.phase)
	assert.Contains(t, h.screen.View(100, 30), "Cannot start the drill")
	assert.Empty(t, h.events.sessions)
}

func TestDrill_EmptyListGoesToSummary(t *testing.T) {
	s := New(Deps{Logger: slog.New(slog.DiscardHandler)}, 5)
	_, cmd := s.Update(startMsg{})
	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Contains(t, msg.Screen.View(80, 24), "Nothing to practise")
}

func TestDrill_PronounceDoesNotRevealAnswer(t *testing.T) {
	h := newHarness(t, testWords(4), 5)
	s := h.screen
	require.Equal(t, core.ChooseTerm, s.question.Type)

	s.Update(tea.KeyPressMsg{Code: 'p', Mod: tea.ModCtrl})
	assert.Empty(t, h.speaker.said)

	s.Update(numberKey(s.question.CorrectIndex()))
	s.Update(tea.KeyPressMsg{Code: 'p', Mod: tea.ModCtrl})
	assert.Equal(t, []string{s.question.Word.Term, s.question.Word.Term}, h.speaker.said)
}

func TestDrill_TabTogglesQueuePanel(t *testing.T) {
	h := newHarness(t, testWords(4), 5)
	assert.NotContains(t, h.screen.View(120, 30), "Up next")

	h.screen.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	assert.Contains(t, h.screen.View(120, 30), "Up next (3)")
}

func TestDrill_CoachTipShownAfterMisses(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"mnemonic":"Apple starts with A.","example":"An apple fell."}`),
	})
	cfg := coach.DefaultConfig()
	cfg.MissThreshold = 1
	svc := coach.NewService(mock, cfg, slog.New(slog.DiscardHandler))

	h := newHarness(t, testWords(4), 5)
	h.screen.deps.Coach = svc

	h.answer(t, false)
	require.True(t, h.screen.tipPolling)

	deadline := time.Now().Add(5 * time.Second)
	for h.screen.tip == nil && time.Now().Before(deadline) {
		h.screen.Update(tipPollMsg{generation: h.screen.engine.Generation()})
		time.Sleep(10 * time.Millisecond)
	}
	require.NotNil(t, h.screen.tip)
	assert.False(t, h.screen.tipPolling)
	assert.Equal(t, "Apple starts with A.", h.screen.tip.Mnemonic)
	assert.Contains(t, h.screen.View(120, 40), "An apple fell.")
}

func TestDrill_EventFailuresDoNotStopDrill(t *testing.T) {
	h := newHarness(t, testWords(4), 5)
	h.events.err = errors.New("disk full")

	h.answer(t, true)
	assert.Equal(t, phaseQuestion, h.screen.phase)
}

func TestDrill_StatusReflectsSession(t *testing.T) {
	h := newHarness(t, testWords(4), 10)
	h.counter.Save(context.Background(), core.TotalMasteredKey, 7)
	h.screen.Update(startMsg{})

	for i := 0; i < 4; i++ {
		h.answer(t, true)
	}
	st := h.screen.Status()
	assert.Equal(t, 8, st.TotalMastered)
	assert.Equal(t, 40, st.Points)
	assert.Equal(t, 10, st.Goal)
	assert.Equal(t, 1, st.GoalDone)
}
