// Package config loads wordiz settings from defaults, an optional config
// file and WORDIZ_* environment variables.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	// DB is the SQLite database path. Empty means the XDG default.
	DB string `mapstructure:"db"`

	// Words is a JSON word list. Empty means the built-in list.
	Words string `mapstructure:"words"`

	Log    LogConfig    `mapstructure:"log"`
	Drill  DrillConfig  `mapstructure:"drill"`
	Speech SpeechConfig `mapstructure:"speech"`
	Coach  CoachConfig  `mapstructure:"coach"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`

	// File receives log output. The TUI owns the terminal, so play logs go
	// next to the database when this is empty.
	File string `mapstructure:"file"`
}

// DrillConfig tunes the drill session.
type DrillConfig struct {
	TrimAnswers bool          `mapstructure:"trim_answers"`
	Cooldown    time.Duration `mapstructure:"cooldown" validate:"gte=0,lte=10s"`
	DailyGoal   int           `mapstructure:"daily_goal" validate:"oneof=5 10 15 20"`
}

// SpeechConfig configures pronunciation.
type SpeechConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Command is the text-to-speech program. {text} is replaced with the
	// word; without a placeholder the word is appended. Empty means
	// auto-detect.
	Command string        `mapstructure:"command"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// CoachConfig configures LLM memory tips.
type CoachConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MissThreshold int  `mapstructure:"miss_threshold" validate:"gte=1"`
}
