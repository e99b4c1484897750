package todo

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MinTitleLength is the minimum number of runes a trimmed title must have.
const MinTitleLength = 2

// Status represents a task status.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Toggle returns the opposite status.
func (s Status) Toggle() Status {
	if s == StatusCompleted {
		return StatusActive
	}
	return StatusCompleted
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusCompleted
}

// ParseStatus parses a status name.
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusActive:
		return StatusActive, nil
	case StatusCompleted:
		return StatusCompleted, nil
	default:
		return "", fmt.Errorf("invalid status %q, must be one of: active, completed", s)
	}
}

// Tab is the view filter applied to the task list.
type Tab string

const (
	TabAll       Tab = "all"
	TabActive    Tab = "active"
	TabCompleted Tab = "completed"
)

// Tabs lists the tabs in display order.
var Tabs = []Tab{TabAll, TabActive, TabCompleted}

// Valid reports whether t is a known tab.
func (t Tab) Valid() bool {
	return t == TabAll || t == TabActive || t == TabCompleted
}

// Label returns the tab name as shown in the footer.
func (t Tab) Label() string {
	switch t {
	case TabActive:
		return "Active"
	case TabCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// ParseTab parses a tab name.
func ParseTab(s string) (Tab, error) {
	switch Tab(strings.ToLower(strings.TrimSpace(s))) {
	case TabAll:
		return TabAll, nil
	case TabActive:
		return TabActive, nil
	case TabCompleted:
		return TabCompleted, nil
	default:
		return "", fmt.Errorf("invalid tab %q, must be one of: all, active, completed", s)
	}
}

// BulkToggle remembers the target of the last toggle-all.
// It is not derived from the tasks and can disagree with them after
// individual toggles.
type BulkToggle string

const (
	BulkNone      BulkToggle = "none"
	BulkActive    BulkToggle = "active"
	BulkCompleted BulkToggle = "completed"
)

// SwitchPolicy decides what happens to a running edit when another task
// is put into edit mode.
type SwitchPolicy string

const (
	// SwitchCommit commits the running edit first.
	SwitchCommit SwitchPolicy = "commit"
	// SwitchCancel discards the running edit first.
	SwitchCancel SwitchPolicy = "cancel"
)

// ParseSwitchPolicy parses a switch policy name.
func ParseSwitchPolicy(s string) (SwitchPolicy, error) {
	switch SwitchPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case SwitchCommit:
		return SwitchCommit, nil
	case SwitchCancel:
		return SwitchCancel, nil
	default:
		return "", fmt.Errorf("invalid edit switch policy %q, must be one of: commit, cancel", s)
	}
}

// Task represents a single task in the list.
type Task struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Status Status `json:"status"`
}

// IsZero returns true if the task is empty (has no ID).
func (t *Task) IsZero() bool {
	return t.ID == ""
}

// Completed reports whether the task is done.
func (t Task) Completed() bool {
	return t.Status == StatusCompleted
}

// EditSession is an in-progress inline edit of one task's title.
type EditSession struct {
	TargetID string `json:"target_id"`
	Draft    string `json:"draft"`
}

// NormalizeTitle trims title and reports whether it is long enough to keep.
func NormalizeTitle(title string) (string, bool) {
	trimmed := strings.TrimSpace(title)
	return trimmed, utf8.RuneCountInString(trimmed) >= MinTitleLength
}
