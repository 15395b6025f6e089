package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Session actions.
const (
	SessionStart = "start"
	SessionEnd   = "end"
)

// SessionEventData captures a drill session starting or ending.
type SessionEventData struct {
	SessionID      string
	Action         string
	Plan           int
	WordCount      int
	CorrectAnswers int
	WrongAnswers   int
	Mastered       int
	Points         int
	GoalReached    bool
	DurationSecs   int
}

// SessionEvent is a stored session event.
type SessionEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionEventData
}

// AnswerEventData captures one graded answer.
type AnswerEventData struct {
	SessionID    string
	Term         string
	QuestionType string
	Expected     string
	Given        string
	Correct      bool
	TimeMs       int64
}

// MasteryEventData captures a word reaching full mastery.
type MasteryEventData struct {
	SessionID     string
	Term          string
	TotalMastered int
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM calls by purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// TypeAccuracy is the answer accuracy for one question type.
type TypeAccuracy struct {
	QuestionType string
	Attempts     int
	Correct      int
}

// Rate returns the fraction of correct attempts.
func (a TypeAccuracy) Rate() float64 {
	if a.Attempts == 0 {
		return 0
	}
	return float64(a.Correct) / float64(a.Attempts)
}

// MissedWord is a term with its number of wrong answers.
type MissedWord struct {
	Term   string
	Misses int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AppendMasteryEvent(ctx context.Context, data MasteryEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	QuerySessionEvents(ctx context.Context, opts QueryOpts) ([]SessionEvent, error)
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns the event with id, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)

	// TypeAccuracy returns answer accuracy grouped by question type.
	TypeAccuracy(ctx context.Context) ([]TypeAccuracy, error)

	// MostMissed returns the terms with the most wrong answers, worst first.
	MostMissed(ctx context.Context, limit int) ([]MissedWord, error)

	// MasteredTerms returns the distinct terms that have ever been mastered.
	MasteredTerms(ctx context.Context) ([]string, error)
}
