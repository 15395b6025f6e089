package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/wordiz/internal/app"
	"github.com/abhisek/wordiz/internal/coach"
	"github.com/abhisek/wordiz/internal/config"
	"github.com/abhisek/wordiz/internal/drill"
	"github.com/abhisek/wordiz/internal/llm"
	drillscreen "github.com/abhisek/wordiz/internal/screens/drill"
	"github.com/abhisek/wordiz/internal/speech"
	"github.com/abhisek/wordiz/internal/store"
	"github.com/abhisek/wordiz/internal/vocab"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}

	// The TUI owns the terminal, so logs go to a file.
	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(filepath.Dir(dbPath), "wordiz.log")
	}
	log, logCloser, err := setupLogger(cfg, io.Discard)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	words, err := vocab.Load(cfg.Words)
	if err != nil {
		return err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	speaker := speech.New(speech.Options{
		Enabled: cfg.Speech.Enabled,
		Command: cfg.Speech.Command,
		Timeout: cfg.Speech.Timeout,
	}, log)
	if c, ok := speaker.(io.Closer); ok {
		defer c.Close()
	}

	plan := cfg.Drill.DailyGoal
	if g, err := cmd.Flags().GetInt("goal"); err == nil && g != 0 {
		plan = g
	}

	log.Info("starting drill app",
		"db", dbPath,
		"words", len(words),
		"plan", plan,
	)

	return app.Run(app.Options{
		Drill: drillscreen.Deps{
			Words:     words,
			Counter:   st.StateRepo(),
			Events:    eventRepo,
			Speaker:   speaker,
			Coach:     newCoach(ctx, cfg, eventRepo, log),
			Logger:    log,
			Evaluator: drill.EvaluatorOptions{TrimSpace: cfg.Drill.TrimAnswers},
			Cooldown:  cfg.Drill.Cooldown,
		},
		Plan:     plan,
		Sessions: eventRepo,
	})
}

// newCoach returns a tip service when coaching is enabled and an LLM is
// configured, otherwise nil. The app works without it.
func newCoach(ctx context.Context, cfg *config.Config, sink llm.EventSink, log *slog.Logger) *coach.Service {
	if !cfg.Coach.Enabled {
		return nil
	}
	llmCfg, ok := llm.Resolve()
	if !ok {
		log.Info("memory tips disabled", "reason", "no LLM API key configured")
		return nil
	}
	provider, err := llm.NewProvider(ctx, llmCfg, sink, log)
	if err != nil {
		log.Warn("memory tips disabled", "error", err)
		return nil
	}

	coachCfg := coach.DefaultConfig()
	coachCfg.MissThreshold = cfg.Coach.MissThreshold
	return coach.NewService(provider, coachCfg, log)
}
