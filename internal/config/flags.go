package config

import (
	"flag"
)

// flagFields maps flag names to config field names for source tracking.
var flagFields = map[string]string{
	"seed-examples":  "seed_examples",
	"tab":            "default_tab",
	"edit-switch":    "edit_switch",
	"mouse":          "mouse",
	"alt-screen":     "alt_screen",
	"log-dir":        "log_dir",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines the config flags on fs, parses args and records every
// flag that was set explicitly. Callers may register their own flags on fs
// first and read the positional arguments from fs.Args afterwards.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("todos", flag.ContinueOnError)
	}

	// Store
	fs.BoolVar(&cfg.SeedExamples, "seed-examples", cfg.SeedExamples, "Start with the example tasks")
	fs.StringVar(&cfg.DefaultTab, "tab", cfg.DefaultTab, "Starting tab: all, active or completed")
	fs.StringVar(&cfg.EditSwitch, "edit-switch", cfg.EditSwitch, "Running edit on switch: commit or cancel")

	// Terminal
	fs.BoolVar(&cfg.Mouse, "mouse", cfg.Mouse, "Enable mouse support")
	fs.BoolVar(&cfg.AltScreen, "alt-screen", cfg.AltScreen, "Use the alternate screen buffer")

	// Logging
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Session log directory")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: text, json, logfmt")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Include timestamps in log output")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Include caller location in log output")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if field, ok := flagFields[f.Name]; ok && sources != nil {
			sources[field] = SourceFlag
		}
	})
	return nil
}
