package speech

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os/exec"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

type recorder struct {
	mu    sync.Mutex
	calls []call
	block bool
}

func (r *recorder) run(ctx context.Context, name string, args ...string) error {
	r.mu.Lock()
	r.calls = append(r.calls, call{name: name, args: args})
	block := r.block
	r.mu.Unlock()
	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	return nil
}

func (r *recorder) snapshot() []call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]call(nil), r.calls...)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCommandSpeakerArgs(t *testing.T) {
	tests := []struct {
		command  string
		wantName string
		wantArgs []string
	}{
		{command: "espeak {text}", wantName: "espeak", wantArgs: []string{"elephant"}},
		{command: "say", wantName: "say", wantArgs: []string{"elephant"}},
		{command: "espeak -s 140 -v en", wantName: "espeak", wantArgs: []string{"-s", "140", "-v", "en", "elephant"}},
		{command: "tts --say={text} --fast", wantName: "tts", wantArgs: []string{"--say=elephant", "--fast"}},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			rec := &recorder{}
			s, err := NewCommandSpeaker(tt.command, time.Second, quietLogger())
			require.NoError(t, err)
			s.run = rec.run

			s.Pronounce("  elephant ")
			s.Wait()

			calls := rec.snapshot()
			require.Len(t, calls, 1)
			assert.Equal(t, tt.wantName, calls[0].name)
			assert.Equal(t, tt.wantArgs, calls[0].args)
		})
	}
}

func TestPronounceIgnoresBlank(t *testing.T) {
	rec := &recorder{}
	s, err := NewCommandSpeaker("say", time.Second, quietLogger())
	require.NoError(t, err)
	s.run = rec.run

	s.Pronounce("   ")
	s.Wait()
	assert.Empty(t, rec.snapshot())
}

func TestPronounceCancelsPrevious(t *testing.T) {
	rec := &recorder{block: true}
	s, err := NewCommandSpeaker("say", 10*time.Second, quietLogger())
	require.NoError(t, err)
	s.run = rec.run

	s.Pronounce("apple")
	s.Pronounce("banana")
	require.NoError(t, s.Close())

	assert.Len(t, rec.snapshot(), 2)
}

func TestPronounceTimeout(t *testing.T) {
	rec := &recorder{block: true}
	s, err := NewCommandSpeaker("say", 20*time.Millisecond, quietLogger())
	require.NoError(t, err)
	s.run = rec.run

	done := make(chan struct{})
	go func() {
		s.Pronounce("apple")
		s.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("utterance did not time out")
	}
}

func TestNewCommandSpeakerEmpty(t *testing.T) {
	_, err := NewCommandSpeaker("  ", time.Second, nil)
	assert.ErrorIs(t, err, ErrNoCommand)
}

func TestDetectCommand(t *testing.T) {
	orig := lookPath
	t.Cleanup(func() { lookPath = orig })

	lookPath = func(name string) (string, error) {
		if name == "espeak" {
			return "/usr/bin/espeak", nil
		}
		return "", exec.ErrNotFound
	}
	cmd, err := DetectCommand()
	require.NoError(t, err)
	assert.Equal(t, "espeak {text}", cmd)

	lookPath = func(string) (string, error) { return "", errors.New("missing") }
	_, err = DetectCommand()
	assert.ErrorIs(t, err, ErrNoCommand)
}

func TestNewFallsBackToNop(t *testing.T) {
	assert.IsType(t, Nop{}, New(Options{Enabled: false, Command: "say"}, quietLogger()))
	assert.IsType(t, &CommandSpeaker{}, New(Options{Enabled: true, Command: "say {text}"}, quietLogger()))

	orig := lookPath
	t.Cleanup(func() { lookPath = orig })
	lookPath = func(string) (string, error) { return "", exec.ErrNotFound }
	assert.IsType(t, Nop{}, New(Options{Enabled: true}, quietLogger()))

	// Nop must be safe to call.
	Nop{}.Pronounce("apple")
}
