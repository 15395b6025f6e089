// Package drill implements the adaptive vocabulary drill: question
// generation, answer evaluation, the retry buffer and per-word mastery.
package drill

import (
	"fmt"
	"time"
)

// QuestionType is one of the four ways a word is tested.
type QuestionType int

const (
	// ChooseTerm shows the meaning and asks the learner to pick the term.
	ChooseTerm QuestionType = iota
	// ChooseMeaning shows the term and asks the learner to pick the meaning.
	ChooseMeaning
	// Fill shows the leading part of the term and asks for the rest.
	Fill
	// Spell shows the meaning and asks for the full term.
	Spell
)

// NumTypes is the number of question types a word must pass to be mastered.
const NumTypes = 4

// AllTypes lists every question type in the order a fresh word is tested.
var AllTypes = [NumTypes]QuestionType{ChooseTerm, ChooseMeaning, Fill, Spell}

// DefaultCooldown is the pause between answering and the next question.
const DefaultCooldown = 700 * time.Millisecond

// TotalMasteredKey is the counter key for the cross-session mastered total.
const TotalMasteredKey = "totalMasteredCount"

var typeNames = [NumTypes]string{"choose-term", "choose-meaning", "fill", "spell"}

var typeLabels = [NumTypes]string{"Pick the word", "Pick the meaning", "Fill in the blank", "Spell it"}

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	return t >= ChooseTerm && t <= Spell
}

func (t QuestionType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("QuestionType(%d)", int(t))
	}
	return typeNames[t]
}

// Label is the human-readable instruction for the type.
func (t QuestionType) Label() string {
	if !t.Valid() {
		return t.String()
	}
	return typeLabels[t]
}

// IsChoice reports whether the type is answered by picking an option.
func (t QuestionType) IsChoice() bool {
	return t == ChooseTerm || t == ChooseMeaning
}

// ParseQuestionType is the inverse of QuestionType.String.
func ParseQuestionType(s string) (QuestionType, error) {
	for i, name := range typeNames {
		if name == s {
			return QuestionType(i), nil
		}
	}
	return 0, fmt.Errorf("drill: unknown question type %q", s)
}

// typeSet is a set of question types stored as a bitmask.
type typeSet uint8

func (s typeSet) has(t QuestionType) bool { return s&(1<<t) != 0 }

func (s typeSet) with(t QuestionType) typeSet { return s | 1<<t }

func (s typeSet) len() int {
	n := 0
	for _, t := range AllTypes {
		if s.has(t) {
			n++
		}
	}
	return n
}

func (s typeSet) full() bool { return s.len() == NumTypes }

// types returns the members in canonical order.
func (s typeSet) types() []QuestionType {
	out := make([]QuestionType, 0, NumTypes)
	for _, t := range AllTypes {
		if s.has(t) {
			out = append(out, t)
		}
	}
	return out
}
