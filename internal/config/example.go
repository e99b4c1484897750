package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todos configuration file
# Values can be overridden by TODOS_* environment variables or CLI flags

# Start with the two example tasks
seed_examples = true

# Tab shown at startup: all, active or completed
default_tab = "all"

# What happens to a running edit when another task is edited: commit or cancel
edit_switch = "commit"

# Terminal behaviour
mouse = true
alt_screen = true

# Session logs (supports ~ expansion and %VAR% on Windows)
log_dir = "~/.todos/logs"
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
