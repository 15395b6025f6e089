package drill

// MasteryTracker records which question types each word has passed during
// a session. It never forgets a pass and does not track failures.
type MasteryTracker struct {
	passed   map[string]typeSet
	mastered int
}

// NewMasteryTracker returns an empty tracker.
func NewMasteryTracker() *MasteryTracker {
	return &MasteryTracker{passed: make(map[string]typeSet)}
}

// RecordPass marks type t as passed for term. It returns true only on the
// call that completes all four types for the word.
func (m *MasteryTracker) RecordPass(term string, t QuestionType) bool {
	before := m.passed[term]
	after := before.with(t)
	m.passed[term] = after

	if !before.full() && after.full() {
		m.mastered++
		return true
	}
	return false
}

// Passed returns the types term has passed, in canonical order.
func (m *MasteryTracker) Passed(term string) []QuestionType {
	return m.passed[term].types()
}

// IsMastered reports whether term has passed every type.
func (m *MasteryTracker) IsMastered(term string) bool {
	return m.passed[term].full()
}

// MasteredCount returns the number of words mastered this session.
func (m *MasteryTracker) MasteredCount() int { return m.mastered }
