package drill

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/abhisek/wordiz/internal/vocab"
)

// Options configures an Engine. Zero values are usable: no persistence,
// the default logger and a time-seeded random source.
type Options struct {
	Counter   Counter
	Logger    *slog.Logger
	Rand      *rand.Rand
	Evaluator EvaluatorOptions
}

// Result is the outcome of a submitted answer.
type Result struct {
	Question      *Question
	Given         string
	Correct       bool
	Expected      string
	NewlyMastered bool
	Completed     bool
}

// Snapshot is a read-only view of the engine state for display.
type Snapshot struct {
	Generation       uint64
	PoolSize         int
	MainQueue        []vocab.Word
	Retry            []RetryEntry
	CurrentWord      *vocab.Word
	PendingTypes     []QuestionType
	Correct          int
	Wrong            int
	Introduced       int
	MasteredSession  int
	TotalMastered    int
	CounterAvailable bool
	Completed        bool
}

// Engine schedules questions for a drill session. It is a synchronous
// state machine driven by alternating NextQuestion and SubmitAnswer calls.
// It is not safe for concurrent use.
type Engine struct {
	counter   Counter
	logger    *slog.Logger
	rng       *rand.Rand
	evaluator *Evaluator

	pool      *vocab.Pool
	generator *Generator
	mainQueue []vocab.Word
	retry     *RetryBuffer
	mastery   *MasteryTracker
	types     typeQueue
	current   *vocab.Word
	pending   *Question

	correct    int
	wrong      int
	introduced int

	totalMastered    int
	counterAvailable bool
	completed        bool
	generation       uint64
}

// NewEngine creates an engine. Call Initialize before asking for questions.
func NewEngine(opts Options) *Engine {
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		counter:   opts.Counter,
		logger:    logger,
		rng:       rng,
		evaluator: NewEvaluator(opts.Evaluator),
		retry:     NewRetryBuffer(rng),
		mastery:   NewMasteryTracker(),
		completed: true,
	}
}

// Initialize discards all session state and starts a new session over
// words in the given order. An empty list yields a session that is already
// complete. A list with fewer than MinPoolSize words returns an
// *InsufficientPoolError and leaves the engine completed.
func (e *Engine) Initialize(ctx context.Context, words []vocab.Word) error {
	e.generation++
	e.pool = nil
	e.generator = nil
	e.mainQueue = nil
	e.retry = NewRetryBuffer(e.rng)
	e.mastery = NewMasteryTracker()
	e.types.reset(nil)
	e.current = nil
	e.pending = nil
	e.correct, e.wrong, e.introduced = 0, 0, 0
	e.completed = true

	e.loadTotal(ctx)

	if len(words) == 0 {
		return nil
	}
	if len(words) < MinPoolSize {
		return &InsufficientPoolError{Size: len(words), Need: MinPoolSize}
	}

	pool, err := vocab.NewPool(words)
	if err != nil {
		return err
	}
	e.pool = pool
	e.generator = NewGenerator(pool, e.rng)
	e.mainQueue = pool.Words()
	e.completed = false

	e.logger.Debug("drill session initialized",
		"words", pool.Len(),
		"generation", e.generation,
		"total_mastered", e.totalMastered,
	)
	return nil
}

// NextQuestion returns the next question. The current word keeps being
// served until its queued types are exhausted; after that the retry buffer
// takes priority over unseen words. Returns ErrSessionComplete when nothing
// is left.
func (e *Engine) NextQuestion() (*Question, error) {
	if e.pending != nil {
		return nil, &ProtocolError{Op: "next question", Reason: "previous question not answered"}
	}
	if e.completed {
		return nil, ErrSessionComplete
	}

	if e.current == nil || e.types.len() == 0 {
		if !e.selectWord() {
			e.finish()
			return nil, ErrSessionComplete
		}
	}

	t, _ := e.types.peek()
	q, err := e.generator.Build(*e.current, t)
	if err != nil {
		return nil, err
	}
	e.types.pop()
	e.pending = q
	return q, nil
}

func (e *Engine) selectWord() bool {
	if entry, ok := e.retry.PickRandom(); ok {
		w := entry.Word
		e.current = &w
		e.types.reset(entry.FailedTypes)
		return true
	}

	if len(e.mainQueue) > 0 {
		w := e.mainQueue[0]
		e.mainQueue = e.mainQueue[1:]
		e.current = &w
		e.types.reset(AllTypes[:])
		e.introduced++
		return true
	}

	return false
}

// SubmitAnswer grades raw against the pending question and updates mastery
// and the retry buffer.
func (e *Engine) SubmitAnswer(ctx context.Context, raw string) (Result, error) {
	if e.pending == nil {
		return Result{}, &ProtocolError{Op: "submit answer", Reason: "no question pending"}
	}
	q := e.pending
	e.pending = nil

	res := Result{
		Question: q,
		Given:    raw,
		Expected: q.Answer(),
		Correct:  e.evaluator.Evaluate(q.Word, q.Type, raw),
	}

	if res.Correct {
		e.correct++
		if e.mastery.RecordPass(q.Word.Term, q.Type) {
			res.NewlyMastered = true
			e.totalMastered++
			e.saveTotal(ctx)
		}
		e.retry.Remove(q.Word, q.Type)
	} else {
		e.wrong++
		e.retry.Add(q.Word, q.Type)
	}

	if e.types.len() == 0 && e.retry.Size() == 0 && len(e.mainQueue) == 0 {
		e.finish()
	}
	res.Completed = e.completed
	return res, nil
}

func (e *Engine) finish() {
	e.completed = true
	e.current = nil
	e.types.reset(nil)
}

func (e *Engine) loadTotal(ctx context.Context) {
	if e.counter == nil {
		return
	}
	n, err := e.counter.Load(ctx, TotalMasteredKey)
	if err != nil {
		e.logger.Warn("mastered counter unavailable", "error", err)
		e.totalMastered = 0
		e.counterAvailable = false
		return
	}
	e.totalMastered = n
	e.counterAvailable = true
}

// saveTotal persists the running total. It is skipped when the initial load
// failed, since the in-memory value no longer extends the stored one.
func (e *Engine) saveTotal(ctx context.Context) {
	if e.counter == nil || !e.counterAvailable {
		return
	}
	if err := e.counter.Save(ctx, TotalMasteredKey, e.totalMastered); err != nil {
		e.logger.Warn("failed to persist mastered counter",
			"error", err,
			"value", e.totalMastered,
		)
	}
}

// Pending returns the question awaiting an answer, if any.
func (e *Engine) Pending() *Question { return e.pending }

// Completed reports whether the session has no questions left.
func (e *Engine) Completed() bool { return e.completed }

// Generation increases on every Initialize. Callers tag delayed work with
// it and drop the work if the generation has moved on.
func (e *Engine) Generation() uint64 { return e.generation }

// TotalMastered returns the cross-session mastered total.
func (e *Engine) TotalMastered() int { return e.totalMastered }

// RetryPending returns the number of words waiting in the retry buffer.
func (e *Engine) RetryPending() int { return e.retry.Size() }

// Passed returns the types term has passed this session.
func (e *Engine) Passed(term string) []QuestionType { return e.mastery.Passed(term) }

// Snapshot returns a copy of the observable state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Generation:       e.generation,
		Retry:            e.retry.Entries(),
		PendingTypes:     e.types.items(),
		Correct:          e.correct,
		Wrong:            e.wrong,
		Introduced:       e.introduced,
		MasteredSession:  e.mastery.MasteredCount(),
		TotalMastered:    e.totalMastered,
		CounterAvailable: e.counterAvailable,
		Completed:        e.completed,
	}
	if e.pool != nil {
		s.PoolSize = e.pool.Len()
	}
	s.MainQueue = make([]vocab.Word, len(e.mainQueue))
	copy(s.MainQueue, e.mainQueue)
	if e.current != nil {
		w := *e.current
		s.CurrentWord = &w
	}
	return s
}

// IsComplete reports whether err signals the end of a session.
func IsComplete(err error) bool { return errors.Is(err, ErrSessionComplete) }
