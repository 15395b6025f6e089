// Package speech pronounces words through a local text-to-speech program.
package speech

import (
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Placeholder in a command template is replaced by the text to speak.
const Placeholder = "{text}"

// DefaultTimeout bounds a single utterance.
const DefaultTimeout = 5 * time.Second

// ErrNoCommand is returned when no speech program is configured or found.
var ErrNoCommand = errors.New("speech: no text-to-speech command available")

// Speaker says text aloud. Pronounce never blocks and never fails; problems
// are logged by the implementation.
type Speaker interface {
	Pronounce(text string)
}

// Nop is a Speaker that stays silent.
type Nop struct{}

func (Nop) Pronounce(string) {}

// runFunc executes a command and waits for it to finish.
type runFunc func(ctx context.Context, name string, args ...string) error

func execRun(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// CommandSpeaker runs an external program for each utterance. Starting a
// new utterance cancels the one still playing.
type CommandSpeaker struct {
	name    string
	args    []string
	timeout time.Duration
	logger  *slog.Logger
	run     runFunc

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewCommandSpeaker parses a command template such as "espeak -s 140 {text}".
func NewCommandSpeaker(command string, timeout time.Duration, logger *slog.Logger) (*CommandSpeaker, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return nil, ErrNoCommand
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CommandSpeaker{
		name:    fields[0],
		args:    fields[1:],
		timeout: timeout,
		logger:  logger,
		run:     execRun,
	}, nil
}

func (s *CommandSpeaker) argsFor(text string) []string {
	args := make([]string, 0, len(s.args)+1)
	substituted := false
	for _, a := range s.args {
		if strings.Contains(a, Placeholder) {
			a = strings.ReplaceAll(a, Placeholder, text)
			substituted = true
		}
		args = append(args, a)
	}
	if !substituted {
		args = append(args, text)
	}
	return args
}

// Pronounce starts speaking text in the background.
func (s *CommandSpeaker) Pronounce(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.mu.Unlock()

	args := s.argsFor(text)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		if err := s.run(ctx, s.name, args...); err != nil && ctx.Err() == nil {
			s.logger.Warn("pronounce failed", "command", s.name, "text", text, "error", err)
		}
	}()
}

// Wait blocks until every started utterance has finished.
func (s *CommandSpeaker) Wait() {
	s.wg.Wait()
}

// Close stops any utterance in progress and waits for it to exit.
func (s *CommandSpeaker) Close() error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()
	s.wg.Wait()
	return nil
}

// candidates are tried in order by DetectCommand.
var candidates = []string{"espeak-ng", "espeak", "spd-say"}

var lookPath = exec.LookPath

// DetectCommand returns a command template for the first speech program
// found on this machine.
func DetectCommand() (string, error) {
	if runtime.GOOS == "darwin" {
		if _, err := lookPath("say"); err == nil {
			return "say " + Placeholder, nil
		}
	}
	for _, c := range candidates {
		if _, err := lookPath(c); err == nil {
			return c + " " + Placeholder, nil
		}
	}
	return "", ErrNoCommand
}

// Options selects a Speaker implementation.
type Options struct {
	Enabled bool
	Command string
	Timeout time.Duration
}

// New returns a Speaker for opts, falling back to Nop when speech is
// disabled or no program is available.
func New(opts Options, logger *slog.Logger) Speaker {
	if logger == nil {
		logger = slog.Default()
	}
	if !opts.Enabled {
		return Nop{}
	}

	command := opts.Command
	if command == "" {
		detected, err := DetectCommand()
		if err != nil {
			logger.Info("pronunciation disabled", "reason", err)
			return Nop{}
		}
		command = detected
	}

	s, err := NewCommandSpeaker(command, opts.Timeout, logger)
	if err != nil {
		logger.Info("pronunciation disabled", "reason", err)
		return Nop{}
	}
	return s
}
