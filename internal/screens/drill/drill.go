package drill

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/abhisek/wordiz/internal/coach"
	core "github.com/abhisek/wordiz/internal/drill"
	"github.com/abhisek/wordiz/internal/goal"
	"github.com/abhisek/wordiz/internal/router"
	"github.com/abhisek/wordiz/internal/screen"
	"github.com/abhisek/wordiz/internal/screens/summary"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/ui/components"
	"github.com/abhisek/wordiz/internal/ui/layout"
)

type phase int

const (
	phaseLoading phase = iota
	phaseQuestion
	phaseFeedback
	phaseQuitConfirm
	phaseError
)

// DrillScreen runs one vocabulary session against a core engine.
type DrillScreen struct {
	deps   Deps
	engine *core.Engine
	goal   *goal.Tracker

	phase     phase
	prevPhase phase
	question  *core.Question
	result    *core.Result
	input     components.TextInput
	choice    components.MultiChoice
	showQueue bool
	errMsg    string

	sessionID   string
	startedAt   time.Time
	shownAt     time.Time
	answers     int
	goalJustHit bool
	missed      []string
	missedSet   map[string]bool

	tip        *coach.Tip
	tipPolling bool
	tipPolls   int

	now func() time.Time
}

var _ screen.Screen = (*DrillScreen)(nil)
var _ screen.KeyHintProvider = (*DrillScreen)(nil)
var _ screen.StatusProvider = (*DrillScreen)(nil)
var _ screen.EscapeHandler = (*DrillScreen)(nil)
var _ screen.Abandoner = (*DrillScreen)(nil)

// New creates a drill over deps.Words with a daily plan of plan words.
// An invalid plan falls back to goal.DefaultPlan.
func New(deps Deps, plan int) *DrillScreen {
	deps = deps.withDefaults()
	tracker, err := goal.NewTracker(plan)
	if err != nil {
		deps.Logger.Warn("invalid daily plan, using default", "plan", plan, "error", err)
		tracker, _ = goal.NewTracker(goal.DefaultPlan)
	}
	return &DrillScreen{
		deps: deps,
		engine: core.NewEngine(core.Options{
			Counter:   deps.Counter,
			Logger:    deps.Logger,
			Rand:      deps.Rand,
			Evaluator: deps.Evaluator,
		}),
		goal:  tracker,
		input: components.NewTextInput("type your answer", 64),
		now:   time.Now,
	}
}

func (s *DrillScreen) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return startMsg{} },
		s.input.Init(),
	)
}

func (s *DrillScreen) Title() string {
	return "Drill"
}

func (s *DrillScreen) Status() layout.Status {
	return layout.Status{
		TotalMastered: s.engine.TotalMastered(),
		Points:        s.goal.Points(),
		Goal:          s.goal.Plan(),
		GoalDone:      s.goal.Completed(),
	}
}

func (s *DrillScreen) HandlesEscape() bool { return true }

func (s *DrillScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseQuitConfirm:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case phaseError:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}

	hints := []layout.KeyHint{}
	if s.phase == phaseQuestion {
		if s.question != nil && s.question.Type.IsChoice() {
			hints = append(hints, layout.KeyHint{Key: "1-4", Description: "Answer"})
		} else {
			hints = append(hints, layout.KeyHint{Key: "Enter", Description: "Submit"})
		}
	}
	return append(hints,
		layout.KeyHint{Key: "Tab", Description: "Queue"},
		layout.KeyHint{Key: "Ctrl+P", Description: "Pronounce"},
		layout.KeyHint{Key: "Ctrl+R", Description: "Restart"},
		layout.KeyHint{Key: "Esc", Description: "Quit"},
	)
}

func (s *DrillScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case startMsg:
		return s, s.start()

	case cooldownDoneMsg:
		if msg.generation != s.engine.Generation() || msg.answer != s.answers || s.phase != phaseFeedback {
			return s, nil
		}
		return s, s.advance()

	case tipPollMsg:
		return s, s.pollTip(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseQuestion && s.question != nil && !s.question.Type.IsChoice() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *DrillScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.phase == phaseQuitConfirm {
		switch key {
		case "y", "Y", "enter":
			s.endSession()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "n", "N", "esc":
			s.phase = s.prevPhase
		}
		return s, nil
	}

	switch key {
	case "esc":
		if s.phase == phaseError || s.answers == 0 {
			s.endSession()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		s.prevPhase = s.phase
		s.phase = phaseQuitConfirm
		return s, nil
	case "tab":
		s.showQueue = !s.showQueue
		return s, nil
	case "ctrl+r":
		s.endSession()
		return s, s.start()
	case "ctrl+p":
		s.pronounce()
		return s, nil
	}

	if s.phase != phaseQuestion || s.question == nil {
		return s, nil
	}

	if s.question.Type.IsChoice() {
		var cmd tea.Cmd
		s.choice, cmd = s.choice.Update(msg)
		if s.choice.Submitted {
			return s, tea.Batch(cmd, s.submit(s.choice.Chosen()))
		}
		return s, cmd
	}

	if key == "enter" {
		return s, s.submit(s.input.Value())
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// start begins a fresh session on the engine.
func (s *DrillScreen) start() tea.Cmd {
	ctx := context.Background()

	s.goal.Reset()
	s.answers = 0
	s.goalJustHit = false
	s.missed = nil
	s.missedSet = make(map[string]bool)
	s.tip = nil
	s.tipPolling = false
	s.result = nil
	s.question = nil
	s.errMsg = ""
	if s.deps.Coach != nil {
		s.deps.Coach.Reset()
	}

	if err := s.engine.Initialize(ctx, s.deps.Words); err != nil {
		s.deps.Logger.Error("drill initialization failed", "error", err)
		s.errMsg = err.Error()
		s.phase = phaseError
		return nil
	}

	s.sessionID = uuid.New().String()
	s.startedAt = s.now()
	s.record(func(ctx context.Context, events EventRecorder) error {
		return events.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID: s.sessionID,
			Action:    store.SessionStart,
			Plan:      s.goal.Plan(),
			WordCount: len(s.deps.Words),
		})
	})

	return s.advance()
}

// advance asks the engine for the next question or finishes the session.
func (s *DrillScreen) advance() tea.Cmd {
	q, err := s.engine.NextQuestion()
	if core.IsComplete(err) {
		return s.finish()
	}
	if err != nil {
		s.deps.Logger.Error("next question failed", "error", err)
		s.errMsg = err.Error()
		s.phase = phaseError
		return nil
	}

	s.question = q
	s.result = nil
	s.goalJustHit = false
	if s.tip != nil && s.tip.Term != q.Word.Term {
		s.tip = nil
	}
	s.shownAt = s.now()
	s.phase = phaseQuestion

	if q.Type.IsChoice() {
		s.choice = components.NewMultiChoice(q.Options)
		return nil
	}
	return s.input.Reset()
}

// submit grades raw and schedules the end of the feedback pause.
func (s *DrillScreen) submit(raw string) tea.Cmd {
	ctx := context.Background()

	res, err := s.engine.SubmitAnswer(ctx, raw)
	if err != nil {
		s.deps.Logger.Error("submit answer failed", "error", err)
		s.errMsg = err.Error()
		s.phase = phaseError
		return nil
	}

	s.answers++
	s.result = &res
	s.phase = phaseFeedback
	if res.Question.Type.IsChoice() {
		s.choice.Reveal(res.Question.CorrectIndex())
	} else {
		s.input.Submit(res.Correct)
	}
	s.goalJustHit = s.goal.Record(res.Correct, res.NewlyMastered, s.engine.RetryPending())

	term := res.Question.Word.Term
	elapsed := s.now().Sub(s.shownAt)
	s.record(func(ctx context.Context, events EventRecorder) error {
		return events.AppendAnswerEvent(ctx, store.AnswerEventData{
			SessionID:    s.sessionID,
			Term:         term,
			QuestionType: res.Question.Type.String(),
			Expected:     res.Expected,
			Given:        res.Given,
			Correct:      res.Correct,
			TimeMs:       elapsed.Milliseconds(),
		})
	})
	if res.NewlyMastered {
		total := s.engine.TotalMastered()
		s.record(func(ctx context.Context, events EventRecorder) error {
			return events.AppendMasteryEvent(ctx, store.MasteryEventData{
				SessionID:     s.sessionID,
				Term:          term,
				TotalMastered: total,
			})
		})
	}

	cmds := []tea.Cmd{s.cooldown()}
	if res.Correct {
		s.deps.Speaker.Pronounce(term)
	} else {
		if !s.missedSet[term] {
			s.missedSet[term] = true
			s.missed = append(s.missed, term)
		}
		if s.deps.Coach.RecordMiss(ctx, res.Question.Word, raw) && !s.tipPolling {
			s.tipPolling = true
			s.tipPolls = 0
			cmds = append(cmds, s.tipTick())
		}
	}
	return tea.Batch(cmds...)
}

func (s *DrillScreen) cooldown() tea.Cmd {
	msg := cooldownDoneMsg{generation: s.engine.Generation(), answer: s.answers}
	if s.deps.Cooldown == 0 {
		return func() tea.Msg { return msg }
	}
	return tea.Tick(s.deps.Cooldown, func(time.Time) tea.Msg { return msg })
}

func (s *DrillScreen) tipTick() tea.Cmd {
	gen := s.engine.Generation()
	return tea.Tick(tipPollInterval, func(time.Time) tea.Msg { return tipPollMsg{generation: gen} })
}

func (s *DrillScreen) pollTip(msg tipPollMsg) tea.Cmd {
	if !s.tipPolling || msg.generation != s.engine.Generation() {
		return nil
	}
	if tip, ok := s.deps.Coach.ConsumeTip(); ok {
		s.tip = tip
		s.tipPolling = false
		return nil
	}
	s.tipPolls++
	if s.tipPolls >= tipPollLimit {
		s.tipPolling = false
		return nil
	}
	return s.tipTick()
}

// pronounce speaks the current term unless that would give the answer away.
func (s *DrillScreen) pronounce() {
	if s.question == nil {
		return
	}
	if s.phase == phaseFeedback || s.question.Type == core.ChooseMeaning {
		s.deps.Speaker.Pronounce(s.question.Word.Term)
	}
}

func (s *DrillScreen) finish() tea.Cmd {
	s.endSession()
	res := s.buildResult()
	deps, plan := s.deps, s.goal.Plan()
	again := func() screen.Screen { return New(deps, plan) }
	next := summary.New(res, again)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (s *DrillScreen) buildResult() summary.Result {
	snap := s.engine.Snapshot()
	return summary.Result{
		WordCount:     snap.PoolSize,
		Correct:       snap.Correct,
		Wrong:         snap.Wrong,
		Mastered:      snap.MasteredSession,
		TotalMastered: snap.TotalMastered,
		Points:        s.goal.Points(),
		Plan:          s.goal.Plan(),
		GoalReached:   s.goal.Reached(),
		Duration:      s.now().Sub(s.startedAt),
		Missed:        append([]string(nil), s.missed...),
	}
}

// Abandon records the end of an unfinished session.
func (s *DrillScreen) Abandon() {
	s.endSession()
}

// endSession writes the session end event once per session.
func (s *DrillScreen) endSession() {
	if s.sessionID == "" {
		return
	}
	id := s.sessionID
	s.sessionID = ""

	snap := s.engine.Snapshot()
	data := store.SessionEventData{
		SessionID:      id,
		Action:         store.SessionEnd,
		Plan:           s.goal.Plan(),
		WordCount:      snap.PoolSize,
		CorrectAnswers: snap.Correct,
		WrongAnswers:   snap.Wrong,
		Mastered:       snap.MasteredSession,
		Points:         s.goal.Points(),
		GoalReached:    s.goal.Reached(),
		DurationSecs:   int(s.now().Sub(s.startedAt).Seconds()),
	}
	s.record(func(ctx context.Context, events EventRecorder) error {
		return events.AppendSessionEvent(ctx, data)
	})
}

// record persists an event if a repo is configured. Failures are logged
// and never interrupt the drill.
func (s *DrillScreen) record(fn func(context.Context, EventRecorder) error) {
	if s.deps.Events == nil {
		return
	}
	if err := fn(context.Background(), s.deps.Events); err != nil {
		s.deps.Logger.Warn("failed to record event", "session", s.sessionID, "error", err)
	}
}
