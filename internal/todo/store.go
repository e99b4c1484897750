package todo

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// maxIDAttempts bounds how often Add asks the generator for an unused id.
const maxIDAttempts = 8

// Store owns the task list, the current tab and the edit session.
// A Store is not safe for concurrent use; all calls must come from the
// goroutine that owns it.
type Store struct {
	tasks   []Task
	tab     Tab
	bulk    BulkToggle
	edit    *EditSession
	policy  SwitchPolicy
	newID   func() string
	issued  map[string]struct{}
	pending []Task
	version uint64
	logger  *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithTasks seeds the store. Tasks without an id get a fresh one, tasks
// with a duplicate id or an invalid title are skipped, and an unknown
// status is treated as active.
func WithTasks(tasks []Task) Option {
	return func(s *Store) {
		s.pending = append(s.pending, tasks...)
	}
}

// WithExampleTasks seeds the two starter tasks shown on first launch.
func WithExampleTasks() Option {
	return WithTasks(ExampleTasks())
}

// WithIDGenerator replaces the uuid-based id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithSwitchPolicy sets what StartEdit does with a running edit.
func WithSwitchPolicy(p SwitchPolicy) Option {
	return func(s *Store) {
		if p == SwitchCommit || p == SwitchCancel {
			s.policy = p
		}
	}
}

// WithTab sets the initial tab.
func WithTab(tab Tab) Option {
	return func(s *Store) {
		if tab.Valid() {
			s.tab = tab
		}
	}
}

// WithLogger sets the logger used for state change records.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// ExampleTasks returns the starter tasks without ids.
func ExampleTasks() []Task {
	return []Task{
		{Title: "Taste JavaScript", Status: StatusActive},
		{Title: "Buy a unicorn", Status: StatusCompleted},
	}
}

// NewStore creates an empty store on the "all" tab.
func NewStore(opts ...Option) *Store {
	s := &Store{
		tab:    TabAll,
		bulk:   BulkNone,
		policy: SwitchCommit,
		newID:  uuid.NewString,
		issued: make(map[string]struct{}),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	// Seeds are applied last so they use the configured id generator.
	s.seed(s.pending)
	s.pending = nil
	return s
}

func (s *Store) seed(tasks []Task) {
	for _, t := range tasks {
		title, ok := NormalizeTitle(t.Title)
		if !ok {
			continue
		}
		id := t.ID
		if id == "" {
			id = s.freshID()
			if id == "" {
				continue
			}
		} else if _, dup := s.issued[id]; dup {
			continue
		}
		status := t.Status
		if !status.Valid() {
			status = StatusActive
		}
		s.issued[id] = struct{}{}
		s.tasks = append(s.tasks, Task{ID: id, Title: title, Status: status})
	}
}

// freshID returns an id never seen by this store, or "" if the generator
// keeps producing known ids.
func (s *Store) freshID() string {
	for i := 0; i < maxIDAttempts; i++ {
		id := s.newID()
		if id == "" {
			continue
		}
		if _, used := s.issued[id]; !used {
			return id
		}
	}
	return ""
}

func (s *Store) changed(msg string, keyvals ...interface{}) {
	s.version++
	s.logger.Debug(msg, append(keyvals, "version", s.version)...)
}

func (s *Store) index(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Add appends an active task with the trimmed title. Titles shorter than
// MinTitleLength are ignored.
func (s *Store) Add(title string) (string, bool) {
	trimmed, ok := NormalizeTitle(title)
	if !ok {
		s.logger.Debug("title too short, ignoring add", "title", title)
		return "", false
	}
	id := s.freshID()
	if id == "" {
		s.logger.Warn("no unused task id available, ignoring add")
		return "", false
	}
	s.issued[id] = struct{}{}
	s.tasks = append(s.tasks, Task{ID: id, Title: trimmed, Status: StatusActive})
	s.changed("task added", "id", id, "count", len(s.tasks))
	return id, true
}

// ToggleStatus flips the status of the task with id.
func (s *Store) ToggleStatus(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Status = s.tasks[i].Status.Toggle()
	s.changed("task toggled", "id", id, "status", s.tasks[i].Status)
	return true
}

// ToggleAll sets every task to completed, or to active if the previous
// toggle-all completed them. The direction comes from the remembered
// BulkToggle, not from the current statuses.
func (s *Store) ToggleAll() {
	target := StatusCompleted
	next := BulkCompleted
	if s.bulk == BulkCompleted {
		target = StatusActive
		next = BulkActive
	}
	for i := range s.tasks {
		s.tasks[i].Status = target
	}
	s.bulk = next
	s.changed("all tasks toggled", "status", target, "count", len(s.tasks))
}

// Delete removes the task with id. Deleting the task under edit ends the
// edit session.
func (s *Store) Delete(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	if s.edit != nil && s.edit.TargetID == id {
		s.edit = nil
	}
	s.changed("task deleted", "id", id, "count", len(s.tasks))
	return true
}

// ClearCompleted removes every completed task and returns how many were
// removed.
func (s *Store) ClearCompleted() int {
	kept := s.tasks[:0]
	removed := 0
	for _, t := range s.tasks {
		if t.Status == StatusCompleted {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	// Zero the tail so removed tasks are not retained by the backing array.
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = Task{}
	}
	s.tasks = kept
	if removed == 0 {
		return 0
	}
	if s.edit != nil && s.index(s.edit.TargetID) < 0 {
		s.edit = nil
	}
	s.changed("completed tasks cleared", "removed", removed, "count", len(s.tasks))
	return removed
}

// SetTab selects the view filter. Unknown tabs are ignored.
func (s *Store) SetTab(tab Tab) {
	if !tab.Valid() || tab == s.tab {
		return
	}
	s.tab = tab
	s.changed("tab selected", "tab", tab)
}

// Tasks returns a copy of the task list in insertion order.
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Task returns the task with id.
func (s *Store) Task(id string) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Tab returns the current tab.
func (s *Store) Tab() Tab {
	return s.tab
}

// BulkToggle returns the remembered toggle-all direction.
func (s *Store) BulkToggle() BulkToggle {
	return s.bulk
}

// SwitchPolicy returns the policy StartEdit applies to a running edit.
func (s *Store) SwitchPolicy() SwitchPolicy {
	return s.policy
}

// Version increases every time the store changes.
func (s *Store) Version() uint64 {
	return s.version
}

// Visible returns the tasks shown on the current tab.
func (s *Store) Visible() []Task {
	return Visible(s.tasks, s.tab)
}

// ActiveCount returns the number of active tasks.
func (s *Store) ActiveCount() int {
	return ActiveCount(s.tasks)
}

// CompletedCount returns the number of completed tasks.
func (s *Store) CompletedCount() int {
	return CompletedCount(s.tasks)
}

// Resolve maps a reference to a task id. A reference is a 1-based position
// in the full list, an exact id, or an exact title (first match wins).
// It returns "" when nothing matches.
func (s *Store) Resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n >= 1 && n <= len(s.tasks) {
			return s.tasks[n-1].ID
		}
		return ""
	}
	if i := s.index(ref); i >= 0 {
		return ref
	}
	for _, t := range s.tasks {
		if t.Title == ref {
			return t.ID
		}
	}
	return ""
}
