package drill

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/abhisek/wordiz/internal/coach"
	core "github.com/abhisek/wordiz/internal/drill"
	"github.com/abhisek/wordiz/internal/speech"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/vocab"
)

// EventRecorder is the part of store.EventRepo a drill writes to.
type EventRecorder interface {
	AppendSessionEvent(ctx context.Context, data store.SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data store.AnswerEventData) error
	AppendMasteryEvent(ctx context.Context, data store.MasteryEventData) error
}

// Deps are the collaborators a drill session needs. Only Words is
// required; nil collaborators disable their feature.
type Deps struct {
	Words     []vocab.Word
	Counter   core.Counter
	Events    EventRecorder
	Speaker   speech.Speaker
	Coach     *coach.Service
	Logger    *slog.Logger
	Evaluator core.EvaluatorOptions
	Cooldown  time.Duration
	// Rand seeds question generation; nil picks a random seed.
	Rand *rand.Rand
}

func (d Deps) withDefaults() Deps {
	if d.Speaker == nil {
		d.Speaker = speech.Nop{}
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Cooldown < 0 {
		d.Cooldown = 0
	}
	return d
}
