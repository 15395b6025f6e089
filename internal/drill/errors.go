package drill

import (
	"errors"
	"fmt"
)

// Sentinel errors. Typed errors below unwrap to these.
var (
	ErrInsufficientPool = errors.New("drill: insufficient word pool")
	ErrProtocol         = errors.New("drill: protocol violation")
	ErrSessionComplete  = errors.New("drill: session complete")
)

// InsufficientPoolError is returned when the pool is too small to build
// distractors for a choice question.
type InsufficientPoolError struct {
	Size int
	Need int
}

func (e *InsufficientPoolError) Error() string {
	return fmt.Sprintf("drill: word pool has %d usable words, need at least %d", e.Size, e.Need)
}

func (e *InsufficientPoolError) Unwrap() error { return ErrInsufficientPool }

// ProtocolError is returned when the engine's operations are called out of
// order, such as answering with no question pending.
type ProtocolError struct {
	Op     string
	Reason string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("drill: %s: %s", e.Op, e.Reason)
}

func (e *ProtocolError) Unwrap() error { return ErrProtocol }
