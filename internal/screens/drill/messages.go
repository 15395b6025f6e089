package drill

import "time"

// startMsg asks the screen to (re)initialize the engine.
type startMsg struct{}

// cooldownDoneMsg ends the feedback pause. Ticks from an older session or
// an earlier answer are ignored.
type cooldownDoneMsg struct {
	generation uint64
	answer     int
}

// tipPollMsg checks the coach for a finished tip.
type tipPollMsg struct {
	generation uint64
}

const (
	tipPollInterval = 300 * time.Millisecond
	tipPollLimit    = 100
)
