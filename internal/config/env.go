package config

import (
	"fmt"
	"os"
	"strings"
)

// loadFromEnv overrides config from TODOS_* environment variables and
// records them in sources.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	setString := func(env, field string, target *string) {
		if v := os.Getenv(env); v != "" {
			*target = v
			sources[field] = SourceEnv
		}
	}
	setBool := func(env, field string, target *bool) error {
		v, ok := os.LookupEnv(env)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		b, err := parseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
		*target = b
		sources[field] = SourceEnv
		return nil
	}

	setString("TODOS_DEFAULT_TAB", "default_tab", &cfg.DefaultTab)
	setString("TODOS_EDIT_SWITCH", "edit_switch", &cfg.EditSwitch)
	setString("TODOS_LOG_DIR", "log_dir", &cfg.LogDir)
	setString("TODOS_LOG_LEVEL", "log_level", &cfg.LogLevel)
	setString("TODOS_LOG_FORMAT", "log_format", &cfg.LogFormat)

	bools := []struct {
		env, field string
		target     *bool
	}{
		{"TODOS_SEED_EXAMPLES", "seed_examples", &cfg.SeedExamples},
		{"TODOS_MOUSE", "mouse", &cfg.Mouse},
		{"TODOS_ALT_SCREEN", "alt_screen", &cfg.AltScreen},
		{"TODOS_LOG_TIMESTAMPS", "log_timestamps", &cfg.LogTimestamps},
		{"TODOS_LOG_CALLER", "log_caller", &cfg.LogCaller},
	}
	for _, b := range bools {
		if err := setBool(b.env, b.field, b.target); err != nil {
			return err
		}
	}
	return nil
}

// parseBool parses a boolean from a string.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}
