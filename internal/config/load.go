package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/abhisek/wordiz/internal/drill"
	"github.com/abhisek/wordiz/internal/goal"
)

// EnvPrefix is prepended to every environment override, e.g. WORDIZ_LOG_LEVEL.
const EnvPrefix = "WORDIZ"

var validate = validator.New()

func setDefaults(v *viper.Viper) {
	v.SetDefault("db", "")
	v.SetDefault("words", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("drill.trim_answers", false)
	v.SetDefault("drill.cooldown", drill.DefaultCooldown)
	v.SetDefault("drill.daily_goal", goal.DefaultPlan)
	v.SetDefault("speech.enabled", true)
	v.SetDefault("speech.command", "")
	v.SetDefault("speech.timeout", "5s")
	v.SetDefault("coach.enabled", true)
	v.SetDefault("coach.miss_threshold", 2)
}

// Load builds the configuration. When path is empty, config.yaml is looked
// up in the user config directory and silently skipped if absent. An
// explicit path must exist. Environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Dir returns the wordiz config directory:
// $XDG_CONFIG_HOME/wordiz, falling back to ~/.config/wordiz.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "wordiz"), nil
}
