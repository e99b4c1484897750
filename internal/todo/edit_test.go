package todo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func title(t *testing.T, s *Store, id string) string {
	t.Helper()
	task, ok := s.Task(id)
	require.True(t, ok, "task %s not found", id)
	return task.Title
}

func TestStartEditInitializesDraft(t *testing.T) {
	s := newTestStore(WithExampleTasks())
	require.True(t, s.StartEdit("T2"))

	edit, ok := s.Edit()
	require.True(t, ok)
	assert.Equal(t, EditSession{TargetID: "T2", Draft: "Buy a unicorn"}, edit)
	assert.True(t, s.Editing("T2"))
	assert.False(t, s.Editing("T1"))
}

func TestStartEditUnknownID(t *testing.T) {
	s := newTestStore(WithExampleTasks())
	assert.False(t, s.StartEdit("missing"))
	_, ok := s.Edit()
	assert.False(t, ok)
}

func TestStartThenCancelLeavesTitle(t *testing.T) {
	s := newTestStore(WithExampleTasks())
	require.True(t, s.StartEdit("T1"))
	s.UpdateDraft("something else")
	s.CancelEdit()

	assert.Equal(t, "Taste JavaScript", title(t, s, "T1"))
	_, ok := s.Edit()
	assert.False(t, ok)
}

func TestCommitEdit(t *testing.T) {
	tests := []struct {
		name    string
		draft   string
		want    string
		written bool
	}{
		{name: "short title", draft: "ok", want: "ok", written: true},
		{name: "trimmed", draft: "  Taste Go  ", want: "Taste Go", written: true},
		{name: "one rune", draft: "a", want: "Taste JavaScript", written: false},
		{name: "padded one rune", draft: " a ", want: "Taste JavaScript", written: false},
		{name: "empty", draft: "", want: "Taste JavaScript", written: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(WithExampleTasks())
			require.True(t, s.StartEdit("T1"))
			s.UpdateDraft(tt.draft)
			assert.Equal(t, "Taste JavaScript", title(t, s, "T1"), "draft does not touch the task")

			assert.Equal(t, tt.written, s.CommitEdit())
			assert.Equal(t, tt.want, title(t, s, "T1"))
			task, _ := s.Task("T1")
			assert.Equal(t, StatusActive, task.Status, "commit never touches status")
			_, editing := s.Edit()
			assert.False(t, editing)
		})
	}
}

func TestEditCommandsWhileIdle(t *testing.T) {
	s := newTestStore(WithExampleTasks())
	before := s.Snapshot()

	s.UpdateDraft("ignored")
	assert.False(t, s.CommitEdit())
	s.CancelEdit()
	assert.False(t, s.OutsideInteraction())
	assert.False(t, s.ConfirmKey())

	assert.Equal(t, before, s.Snapshot())
}

func TestOutsideInteractionCommits(t *testing.T) {
	for _, trigger := range []struct {
		name string
		fn   func(*Store) bool
	}{
		{name: "commit", fn: (*Store).CommitEdit},
		{name: "outside interaction", fn: (*Store).OutsideInteraction},
		{name: "confirm key", fn: (*Store).ConfirmKey},
	} {
		t.Run(trigger.name, func(t *testing.T) {
			s := newTestStore(WithExampleTasks())
			require.True(t, s.StartEdit("T1"))
			s.UpdateDraft("Taste Go")
			assert.True(t, trigger.fn(s))
			assert.Equal(t, "Taste Go", title(t, s, "T1"))
			_, editing := s.Edit()
			assert.False(t, editing)
		})
	}
}

func TestStartEditSwitchCommitsPrevious(t *testing.T) {
	s := newTestStore(WithExampleTasks())
	require.True(t, s.StartEdit("T1"))
	s.UpdateDraft("Taste Go")

	require.True(t, s.StartEdit("T2"))
	assert.Equal(t, "Taste Go", title(t, s, "T1"))
	edit, ok := s.Edit()
	require.True(t, ok)
	assert.Equal(t, EditSession{TargetID: "T2", Draft: "Buy a unicorn"}, edit)
}

func TestStartEditSwitchCancelPolicy(t *testing.T) {
	s := newTestStore(WithExampleTasks(), WithSwitchPolicy(SwitchCancel))
	require.True(t, s.StartEdit("T1"))
	s.UpdateDraft("Taste Go")

	require.True(t, s.StartEdit("T2"))
	assert.Equal(t, "Taste JavaScript", title(t, s, "T1"))
	assert.True(t, s.Editing("T2"))
}

func TestStartEditSameTaskKeepsDraft(t *testing.T) {
	s := newTestStore(WithExampleTasks())
	require.True(t, s.StartEdit("T1"))
	s.UpdateDraft("halfway")
	require.True(t, s.StartEdit("T1"))

	edit, _ := s.Edit()
	assert.Equal(t, "halfway", edit.Draft)
	assert.Equal(t, "Taste JavaScript", title(t, s, "T1"))
}

func TestStartEditUnknownKeepsRunningEdit(t *testing.T) {
	s := newTestStore(WithExampleTasks())
	require.True(t, s.StartEdit("T1"))
	s.UpdateDraft("draft")
	assert.False(t, s.StartEdit("missing"))

	edit, ok := s.Edit()
	require.True(t, ok)
	assert.Equal(t, "draft", edit.Draft)
}

func TestParseSwitchPolicy(t *testing.T) {
	p, err := ParseSwitchPolicy("Cancel")
	require.NoError(t, err)
	assert.Equal(t, SwitchCancel, p)
	_, err = ParseSwitchPolicy("save")
	assert.Error(t, err)
}
