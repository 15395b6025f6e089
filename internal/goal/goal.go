// Package goal tracks the learner's daily plan and points for a session.
package goal

import (
	"fmt"
	"slices"
	"time"
)

// PlanSizes are the daily plans a learner can choose from.
var PlanSizes = []int{5, 10, 15, 20}

const (
	// DefaultPlan is the plan preselected on the home screen.
	DefaultPlan = 5

	// PointsPerCorrect is awarded for each correct answer before the goal
	// is reached.
	PointsPerCorrect = 10

	// BonusPointsPerCorrect is awarded for each correct answer once the
	// goal has been reached.
	BonusPointsPerCorrect = 15
)

// ValidPlan reports whether n is one of PlanSizes.
func ValidPlan(n int) bool {
	return slices.Contains(PlanSizes, n)
}

// Tracker accumulates progress toward a daily plan. The goal is reached once
// the learner has mastered at least Plan words and has no words waiting for
// retry.
type Tracker struct {
	plan      int
	completed int
	points    int
	reachedAt time.Time
	now       func() time.Time
}

// NewTracker creates a tracker for the given plan size.
func NewTracker(plan int) (*Tracker, error) {
	if !ValidPlan(plan) {
		return nil, fmt.Errorf("goal: plan must be one of %v, got %d", PlanSizes, plan)
	}
	return &Tracker{plan: plan, now: time.Now}, nil
}

// Record applies one graded answer. retryPending is the number of words
// still in the retry buffer after the answer. It returns true when this
// answer reached the goal.
func (t *Tracker) Record(correct, newlyMastered bool, retryPending int) bool {
	if correct {
		if t.Reached() {
			t.points += BonusPointsPerCorrect
		} else {
			t.points += PointsPerCorrect
		}
	}
	if newlyMastered {
		t.completed++
	}

	if t.Reached() || t.completed < t.plan || retryPending > 0 {
		return false
	}
	t.reachedAt = t.now()
	return true
}

// Plan returns the chosen plan size.
func (t *Tracker) Plan() int { return t.plan }

// Completed returns the number of words mastered this session.
func (t *Tracker) Completed() int { return t.completed }

// Points returns the points earned this session.
func (t *Tracker) Points() int { return t.points }

// Reached reports whether the goal has been reached.
func (t *Tracker) Reached() bool { return !t.reachedAt.IsZero() }

// ReachedAt returns when the goal was reached, or the zero time.
func (t *Tracker) ReachedAt() time.Time { return t.reachedAt }

// AwaitingRetry reports whether the plan count is met but the goal is held
// back by words still waiting for retry.
func (t *Tracker) AwaitingRetry(retryPending int) bool {
	return !t.Reached() && t.completed >= t.plan && retryPending > 0
}

// Progress returns completion toward the plan in [0, 1].
func (t *Tracker) Progress() float64 {
	return min(float64(t.completed)/float64(t.plan), 1)
}

// Reset clears progress, keeping the plan.
func (t *Tracker) Reset() {
	t.completed = 0
	t.points = 0
	t.reachedAt = time.Time{}
}
