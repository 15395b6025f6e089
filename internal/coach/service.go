package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/abhisek/wordiz/internal/llm"
	"github.com/abhisek/wordiz/internal/vocab"
)

// Purpose labels coach calls in the LLM event log.
const Purpose = "memory-tip"

// Service tracks misses per word and generates tips asynchronously.
// At most one tip is held; a newer result replaces an unconsumed one.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   *slog.Logger

	mu        sync.Mutex
	misses    map[string][]string
	requested map[string]bool
	pending   *Tip
	err       error
	ready     bool
	// epoch increments on Reset; results from older requests are dropped.
	epoch uint64
}

// NewService creates a coach. A nil provider yields a service that never
// requests tips.
func NewService(provider llm.Provider, cfg Config, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MissThreshold < 1 {
		cfg.MissThreshold = 1
	}
	return &Service{
		provider:  provider,
		cfg:       cfg,
		logger:    logger,
		misses:    make(map[string][]string),
		requested: make(map[string]bool),
	}
}

// Enabled reports whether the service has a provider.
func (s *Service) Enabled() bool {
	return s != nil && s.provider != nil
}

// RecordMiss notes a wrong answer for word. When the word reaches the miss
// threshold for the first time this session a tip request is started and
// RecordMiss returns true.
func (s *Service) RecordMiss(ctx context.Context, word vocab.Word, given string) bool {
	if !s.Enabled() {
		return false
	}

	s.mu.Lock()
	s.misses[word.Term] = append(s.misses[word.Term], given)
	mistakes := s.misses[word.Term]
	trigger := len(mistakes) >= s.cfg.MissThreshold && !s.requested[word.Term]
	if trigger {
		s.requested[word.Term] = true
	}
	s.mu.Unlock()

	if trigger {
		s.RequestTip(ctx, TipInput{Word: word, Mistakes: append([]string(nil), mistakes...)})
	}
	return trigger
}

// Misses returns how many times term was missed this session.
func (s *Service) Misses(term string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.misses[term])
}

// RequestTip starts tip generation in the background.
func (s *Service) RequestTip(ctx context.Context, input TipInput) {
	s.mu.Lock()
	epoch := s.epoch
	s.mu.Unlock()

	go func() {
		tip, err := s.Generate(ctx, input)
		if err != nil {
			s.logger.Warn("memory tip failed", "term", input.Word.Term, "error", err)
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if epoch != s.epoch {
			s.logger.Debug("dropping tip from previous session", "term", input.Word.Term)
			return
		}
		s.pending = tip
		s.err = err
		s.ready = true
	}()
}

// ConsumeTip returns the pending tip if one is ready and clears the slot.
func (s *Service) ConsumeTip() (*Tip, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil, false
	}
	tip := s.pending
	s.pending = nil
	s.ready = false
	s.err = nil
	return tip, tip != nil
}

// Reset forgets all misses and any pending tip, for a new session.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.epoch++
	s.misses = make(map[string][]string)
	s.requested = make(map[string]bool)
	s.pending = nil
	s.err = nil
	s.ready = false
}

type tipOutput struct {
	Mnemonic string `json:"mnemonic"`
	Example  string `json:"example"`
}

// Generate requests a tip synchronously. It ignores the miss counts and
// the pending slot.
func (s *Service) Generate(ctx context.Context, input TipInput) (*Tip, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("tip generation: no LLM provider configured")
	}

	ctx = llm.WithPurpose(ctx, Purpose)

	req := llm.Request{
		System:      tipSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: buildTipUserMessage(input)}},
		Schema:      TipSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("tip generation: %w", err)
	}

	var out tipOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse tip response: %w", err)
	}

	return &Tip{
		Term:     input.Word.Term,
		Mnemonic: out.Mnemonic,
		Example:  out.Example,
	}, nil
}
