// Package cmd implements the CLI command structure for todos.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todos-go/internal/config"
	"github.com/nibzard/todos-go/internal/logging"
	"github.com/nibzard/todos-go/internal/script"
	"github.com/nibzard/todos-go/internal/todo"
	"github.com/nibzard/todos-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Output streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the todos CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todos", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// No subcommand opens the interactive list.
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "run":
		return runCommand(cfg, remainingArgs)
	case "demo":
		return demoCommand(cfg, remainingArgs)
	case "validate":
		return validateCommand(ctx, remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "logs":
		return logsCommand(ctx, cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// consoleLogger logs to stderr so stdout stays machine readable.
func consoleLogger(cfg *config.Config) *log.Logger {
	return logging.FromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
}

// tuiCommand launches the interactive list. The screen owns stdout, so the
// session logs to a file under the log directory.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todos tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if !ui.IsTTY(os.Stdout) {
		return ui.ErrNoTTY
	}

	session, err := logging.NewSessionLog(cfg.LogDir, cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("creating session log: %w", err)
	}
	defer session.Close()

	logger := logging.FromConfig(session.Writer(), cfg.LogLevel, cfg.LogFormat, true, cfg.LogCaller)
	logger.Info("session started", "id", session.SessionID, "tab", cfg.Tab(), "edit_switch", cfg.SwitchPolicy())

	store := todo.NewStore(append(cfg.StoreOptions(), todo.WithLogger(logger))...)
	err = ui.RunTUI(ctx, cfg, store, logger)
	logger.Info("session ended", "tasks", store.Len(), "version", store.Version())
	return err
}

// replayOptions are the flags shared by run and demo.
type replayOptions struct {
	json  bool
	trace bool
}

func replayFlags(name string) (*flag.FlagSet, *replayOptions) {
	opts := &replayOptions{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.json, "json", false, "Print the final snapshot as JSON")
	fs.BoolVar(&opts.trace, "trace", false, "Print every step")
	return fs, opts
}

// runCommand replays a script file.
func runCommand(cfg *config.Config, args []string) error {
	fs, opts := replayFlags("todos run")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return fmt.Errorf("run requires a script file")
	}
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}

	s, err := script.Load(remaining[0])
	if err != nil {
		return fmt.Errorf("loading script: %w", err)
	}
	return replay(cfg, s, opts)
}

// demoCommand replays the built-in scenario.
func demoCommand(cfg *config.Config, args []string) error {
	fs, opts := replayFlags("todos demo")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return replay(cfg, script.Demo(), opts)
}

func replay(cfg *config.Config, s *script.Script, opts *replayOptions) error {
	logger := consoleLogger(cfg)
	store := s.NewStore(
		todo.WithSwitchPolicy(cfg.SwitchPolicy()),
		todo.WithLogger(logger),
	)

	var observe script.Observer
	if opts.trace {
		observe = func(step int, action todo.Action, snap todo.Snapshot) {
			printStep(stdout, step, action, snap, opts.json)
		}
	}

	final, err := script.Run(store, s, observe)
	if err != nil {
		return err
	}
	logger.Debug("script finished", "actions", len(s.Actions), "version", final.Version)

	if opts.json {
		return writeJSON(stdout, final)
	}
	if opts.trace {
		fmt.Fprintln(stdout)
	}
	printSnapshot(stdout, final)
	return nil
}

// validateCommand checks script files against the schema without running them.
func validateCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("todos validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	workers := fs.Int("j", 0, "Files to validate at once (0 = number of CPUs)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("validate requires at least one script file")
	}

	failed := 0
	for _, l := range script.LoadAll(ctx, fs.Args(), *workers) {
		if l.Err != nil {
			failed++
			fmt.Fprintf(stdout, "FAIL %s\n", l.Path)
			for _, line := range strings.Split(l.Err.Error(), "\n") {
				fmt.Fprintf(stdout, "  %s\n", line)
			}
			continue
		}
		fmt.Fprintf(stdout, "ok   %s (%d actions)\n", l.Path, len(l.Script.Actions))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d scripts failed validation", failed, fs.NArg())
	}
	return nil
}

// configCommand prints the effective configuration and where each value came from.
func configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("todos config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *example {
		fmt.Fprint(stdout, config.ExampleConfig())
		return nil
	}

	cfg := cws.Config
	rows := []struct {
		key   string
		value interface{}
	}{
		{"seed_examples", cfg.SeedExamples},
		{"default_tab", cfg.DefaultTab},
		{"edit_switch", cfg.EditSwitch},
		{"mouse", cfg.Mouse},
		{"alt_screen", cfg.AltScreen},
		{"log_dir", cfg.LogDir},
		{"log_level", cfg.LogLevel},
		{"log_format", cfg.LogFormat},
		{"log_timestamps", cfg.LogTimestamps},
		{"log_caller", cfg.LogCaller},
	}
	for _, row := range rows {
		fmt.Fprintf(stdout, "%-15s %-20v (%s)\n", row.key, row.value, cws.Sources[row.key])
	}
	if file := cws.ConfigFile(); file != "" {
		fmt.Fprintf(stdout, "\nconfig file: %s\n", file)
	}
	return nil
}

// logsCommand tails the latest session log.
func logsCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todos logs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logDir, err := logging.FindLogDir(cfg.LogDir, cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("finding log directory: %w", err)
	}
	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(stdout, "No log files found.")
		return nil
	}

	fmt.Fprintf(stdout, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(stdout, "(Ctrl+C to stop)")
	}
	fmt.Fprintln(stdout)

	return logging.TailLog(ctx, stdout, logPath, *n, *follow)
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "todos version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "todos - a terminal task list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todos [options] [command] [command options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui               Open the interactive list (default command)")
	fmt.Fprintln(w, "  run <script>      Replay a JSON or YAML script and print the result")
	fmt.Fprintln(w, "  demo              Replay the built-in scenario")
	fmt.Fprintln(w, "  validate <file>   Check scripts without running them")
	fmt.Fprintln(w, "  config            Show the effective configuration")
	fmt.Fprintln(w, "  logs              Show the latest session log")
	fmt.Fprintln(w, "  version           Show version information")
	fmt.Fprintln(w, "  help              Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run and Demo Options:")
	fmt.Fprintln(w, "  -json    Print the final snapshot as JSON")
	fmt.Fprintln(w, "  -trace   Print every step")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Validate Options:")
	fmt.Fprintln(w, "  -j int   Files to validate at once (0 = number of CPUs)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options:")
	fmt.Fprintln(w, "  -example Print an example config file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logs Options:")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printStep prints one trace line, or one JSON object per line with asJSON.
func printStep(w io.Writer, step int, action todo.Action, snap todo.Snapshot, asJSON bool) {
	if asJSON {
		data, err := json.Marshal(struct {
			Step     int           `json:"step"`
			Action   todo.Action   `json:"action"`
			Snapshot todo.Snapshot `json:"snapshot"`
		}{step, action, snap})
		if err == nil {
			fmt.Fprintln(w, string(data))
		}
		return
	}
	fmt.Fprintf(w, "%3d  %-28s v%d  %d active, %d completed\n",
		step, action, snap.Version, snap.ActiveCount, snap.CompletedCount)
}

// printSnapshot prints the visible list the way the interactive view shows it.
func printSnapshot(w io.Writer, snap todo.Snapshot) {
	fmt.Fprintf(w, "%s Mark all as complete\n", checkbox(snap.AllCompleted()))
	if len(snap.Visible) == 0 {
		fmt.Fprintln(w, "  (nothing here)")
	}
	positions := make(map[string]int, len(snap.Tasks))
	for i, t := range snap.Tasks {
		positions[t.ID] = i + 1
	}
	for _, t := range snap.Visible {
		line := fmt.Sprintf("%3d. %s %s", positions[t.ID], checkbox(t.Completed()), t.Title)
		if snap.Edit != nil && snap.Edit.TargetID == t.ID {
			line += fmt.Sprintf("  (editing: %q)", snap.Edit.Draft)
		}
		fmt.Fprintln(w, line)
	}

	tabs := make([]string, 0, len(todo.Tabs))
	for _, tab := range todo.Tabs {
		label := tab.Label()
		if tab == snap.Tab {
			label = "[" + label + "]"
		}
		tabs = append(tabs, label)
	}
	footer := todo.ItemsLeft(snap.ActiveCount) + "  " + strings.Join(tabs, " ")
	if snap.CompletedCount > 0 {
		footer += "  Clear completed"
	}
	fmt.Fprintln(w, footer)
}

func checkbox(checked bool) string {
	if checked {
		return "[x]"
	}
	return "[ ]"
}
