package config

import (
	"errors"
	"fmt"

	"github.com/nibzard/todos-go/internal/logging"
	"github.com/nibzard/todos-go/internal/todo"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, lowest priority first.
	Files []string
}

// Default values.
const (
	DefaultSeedExamples = true
	DefaultTab          = string(todo.TabAll)
	DefaultEditSwitch   = string(todo.SwitchCommit)
	DefaultMouse        = true
	DefaultAltScreen    = true
	DefaultLogDir       = "~/.todos/logs"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// Config holds the full configuration for todos.
type Config struct {
	// Store
	SeedExamples bool   `toml:"seed_examples"`
	DefaultTab   string `toml:"default_tab"`
	EditSwitch   string `toml:"edit_switch"`

	// Terminal
	Mouse     bool `toml:"mouse"`
	AltScreen bool `toml:"alt_screen"`

	// Logging
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Computed (not from config file)
	ProjectRoot string `toml:"-"`
}

// Tab returns the configured starting tab.
func (c *Config) Tab() todo.Tab {
	tab, err := todo.ParseTab(c.DefaultTab)
	if err != nil {
		return todo.TabAll
	}
	return tab
}

// SwitchPolicy returns what starting a second edit does with the first one.
func (c *Config) SwitchPolicy() todo.SwitchPolicy {
	p, err := todo.ParseSwitchPolicy(c.EditSwitch)
	if err != nil {
		return todo.SwitchCommit
	}
	return p
}

// StoreOptions returns the store options implied by the configuration.
func (c *Config) StoreOptions() []todo.Option {
	opts := []todo.Option{
		todo.WithTab(c.Tab()),
		todo.WithSwitchPolicy(c.SwitchPolicy()),
	}
	if c.SeedExamples {
		opts = append(opts, todo.WithExampleTasks())
	}
	return opts
}

// Validate reports every invalid value in the configuration.
func (c *Config) Validate() error {
	var errs []error
	if _, err := todo.ParseTab(c.DefaultTab); err != nil {
		errs = append(errs, fmt.Errorf("default_tab: %w", err))
	}
	if _, err := todo.ParseSwitchPolicy(c.EditSwitch); err != nil {
		errs = append(errs, fmt.Errorf("edit_switch: %w", err))
	}
	if !logging.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("log_level: unknown level %q", c.LogLevel))
	}
	if !logging.ValidFormat(c.LogFormat) {
		errs = append(errs, fmt.Errorf("log_format: unknown format %q", c.LogFormat))
	}
	return errors.Join(errs...)
}
