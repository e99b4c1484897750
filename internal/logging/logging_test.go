// Package logging provides tests for logger setup, session logs and tail output.
package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

// TestParseLevel tests log level parsing.
func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"DEBUG", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

// TestParseFormatter tests formatter parsing.
func TestParseFormatter(t *testing.T) {
	tests := []struct {
		input string
		want  log.Formatter
	}{
		{"json", log.JSONFormatter},
		{"logfmt", log.LogfmtFormatter},
		{"text", log.TextFormatter},
		{"", log.TextFormatter},
		{"yaml", log.TextFormatter},
	}
	for _, tt := range tests {
		if got := ParseFormatter(tt.input); got != tt.want {
			t.Errorf("ParseFormatter(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestValidLevelAndFormat(t *testing.T) {
	if !ValidLevel("Warn") || ValidLevel("loud") {
		t.Error("ValidLevel mismatch")
	}
	if !ValidFormat("logfmt") || ValidFormat("xml") {
		t.Error("ValidFormat mismatch")
	}
}

// TestFromConfig tests that the configured level filters output.
func TestFromConfig(t *testing.T) {
	var buf bytes.Buffer
	logger := FromConfig(&buf, "warn", "logfmt", false, false)

	logger.Info("hidden message")
	logger.Warn("shown message", "id", "T1")

	got := buf.String()
	if strings.Contains(got, "hidden message") {
		t.Errorf("expected info to be filtered, got %q", got)
	}
	if !strings.Contains(got, "shown message") || !strings.Contains(got, "id=T1") {
		t.Errorf("expected warn line with fields, got %q", got)
	}
}

func TestDiscard(t *testing.T) {
	// Must not panic.
	Discard().Error("dropped")
}

// TestNewSessionLog tests creating a session log.
func TestNewSessionLog(t *testing.T) {
	t.Run("successful creation with valid paths", func(t *testing.T) {
		baseDir := t.TempDir()
		workDir := t.TempDir()

		session, err := NewSessionLog(baseDir, workDir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer session.Close()

		if session.Dir == "" || session.SessionID == "" || session.LogPath == "" {
			t.Errorf("expected fields to be set, got %+v", session)
		}
		if !strings.HasPrefix(session.LogPath, baseDir) {
			t.Errorf("expected log under %s, got %s", baseDir, session.LogPath)
		}
		if _, err := os.Stat(session.LogPath); err != nil {
			t.Errorf("log file not created: %v", err)
		}
	})

	t.Run("empty base dir returns error", func(t *testing.T) {
		_, err := NewSessionLog("", t.TempDir())
		if err == nil {
			t.Fatal("expected error for empty base dir, got nil")
		}
		if !strings.Contains(err.Error(), "empty") {
			t.Errorf("expected empty dir error, got %v", err)
		}
	})

	t.Run("creates nested log directory", func(t *testing.T) {
		baseDir := filepath.Join(t.TempDir(), "new-logs", "nested")
		session, err := NewSessionLog(baseDir, t.TempDir())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		defer session.Close()
		if _, err := os.Stat(session.Dir); err != nil {
			t.Errorf("log dir not created: %v", err)
		}
	})

	t.Run("writer receives log lines", func(t *testing.T) {
		session, err := NewSessionLog(t.TempDir(), t.TempDir())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		logger := New(session.Writer(), Options{Level: log.DebugLevel, Formatter: log.LogfmtFormatter})
		logger.Debug("task added", "id", "T1")
		if err := session.Close(); err != nil {
			t.Fatalf("close failed: %v", err)
		}

		data, err := os.ReadFile(session.LogPath)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), "task added") {
			t.Errorf("expected log line in file, got %q", data)
		}
	})
}

func TestSessionLogNil(t *testing.T) {
	var s *SessionLog
	if err := s.Close(); err != nil {
		t.Errorf("expected nil close error, got %v", err)
	}
	if s.Writer() == nil {
		t.Error("expected discard writer for nil session")
	}
}

// TestFindLatestLog tests finding the latest log file.
func TestFindLatestLog(t *testing.T) {
	t.Run("finds latest log in directory", func(t *testing.T) {
		logDir := t.TempDir()
		base := time.Now().Add(-time.Hour)
		files := []string{"20240101-120000-100.log", "20240101-120001-101.log", "20240101-120002-102.log"}
		for i, f := range files {
			path := filepath.Join(logDir, f)
			if err := os.WriteFile(path, []byte("test"), 0644); err != nil {
				t.Fatal(err)
			}
			mod := base.Add(time.Duration(i) * time.Minute)
			if err := os.Chtimes(path, mod, mod); err != nil {
				t.Fatal(err)
			}
		}

		latest, err := FindLatestLog(logDir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if filepath.Base(latest) != "20240101-120002-102.log" {
			t.Errorf("expected newest log, got %s", latest)
		}
	})

	t.Run("returns empty for non-existent directory", func(t *testing.T) {
		latest, err := FindLatestLog(filepath.Join(t.TempDir(), "missing"))
		if err != nil {
			t.Fatalf("expected no error for non-existent dir, got %v", err)
		}
		if latest != "" {
			t.Errorf("expected empty path, got %s", latest)
		}
	})

	t.Run("ignores other files and subdirectories", func(t *testing.T) {
		logDir := t.TempDir()
		os.WriteFile(filepath.Join(logDir, "session.log"), []byte("log"), 0644)
		os.WriteFile(filepath.Join(logDir, "readme.txt"), []byte("readme"), 0644)
		os.Mkdir(filepath.Join(logDir, "subdir.log"), 0755)

		latest, err := FindLatestLog(logDir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if filepath.Base(latest) != "session.log" {
			t.Errorf("expected session.log, got %s", latest)
		}
	})

	t.Run("returns empty for empty directory", func(t *testing.T) {
		latest, err := FindLatestLog(t.TempDir())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if latest != "" {
			t.Errorf("expected empty path for empty directory, got %s", latest)
		}
	})
}

// TestTailLog tests tailing log files.
func TestTailLog(t *testing.T) {
	ctx := context.Background()

	t.Run("tails entire file when n=0", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "test.log")
		content := "line1\nline2\nline3\n"
		if err := os.WriteFile(logFile, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		var buf bytes.Buffer
		if err := TailLog(ctx, &buf, logFile, 0, false); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if buf.String() != content {
			t.Errorf("got %q, want %q", buf.String(), content)
		}
	})

	t.Run("tails last n lines", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "test.log")
		if err := os.WriteFile(logFile, []byte("line1\nline2\nline3\nline4\nline5\n"), 0644); err != nil {
			t.Fatal(err)
		}

		var buf bytes.Buffer
		if err := TailLog(ctx, &buf, logFile, 2, false); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got, want := buf.String(), "line4\nline5\n"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("n larger than file returns everything", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "test.log")
		if err := os.WriteFile(logFile, []byte("only\nlines"), 0644); err != nil {
			t.Fatal(err)
		}

		var buf bytes.Buffer
		if err := TailLog(ctx, &buf, logFile, 10, false); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got, want := buf.String(), "only\nlines"; got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("returns error for non-existent file", func(t *testing.T) {
		var buf bytes.Buffer
		if err := TailLog(ctx, &buf, filepath.Join(t.TempDir(), "missing.log"), 0, false); err == nil {
			t.Fatal("expected error for non-existent file, got nil")
		}
	})

	t.Run("follow mode stops with context", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "test.log")
		if err := os.WriteFile(logFile, []byte("initial\n"), 0644); err != nil {
			t.Fatal(err)
		}

		followCtx, cancel := context.WithCancel(ctx)
		var buf bytes.Buffer
		done := make(chan error, 1)
		go func() {
			done <- TailLog(followCtx, &buf, logFile, 0, true)
		}()

		time.Sleep(50 * time.Millisecond)
		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := f.WriteString("appended line\n"); err != nil {
			t.Fatal(err)
		}
		f.Close()
		time.Sleep(250 * time.Millisecond)

		cancel()
		if err := <-done; err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		got := buf.String()
		if !strings.Contains(got, "initial") || !strings.Contains(got, "appended") {
			t.Errorf("expected initial and appended content, got %q", got)
		}
	})
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"my-project", "my-project"},
		{"My Project!", "My_Project"},
		{"a  b", "a_b"},
		{"", "project"},
		{"***", "project"},
	}
	for _, tt := range tests {
		if got := slugify(tt.input); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

// TestResolveProjectRoot tests the resolveProjectRoot helper.
func TestResolveProjectRoot(t *testing.T) {
	t.Run("uses work dir when no git", func(t *testing.T) {
		workDir := t.TempDir()
		if got := resolveProjectRoot(workDir); got != workDir {
			t.Errorf("resolveProjectRoot() = %s, want %s", got, workDir)
		}
	})

	t.Run("empty work dir returns dot", func(t *testing.T) {
		if got := resolveProjectRoot(""); got != "." {
			t.Errorf("resolveProjectRoot() = %s, want .", got)
		}
	})
}

// TestProjectSlug tests the projectSlug helper.
func TestProjectSlug(t *testing.T) {
	slug := projectSlug("/my/project")
	parts := strings.Split(slug, "-")
	if len(parts) < 2 {
		t.Fatalf("expected slug with hash, got %s", slug)
	}
	if hash := parts[len(parts)-1]; len(hash) != 8 {
		t.Errorf("expected 8-char hash, got %s", hash)
	}
	if projectSlug("/my/project") != slug {
		t.Error("expected stable slug")
	}
}
