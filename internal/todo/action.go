package todo

import (
	"errors"
	"fmt"
)

// ErrUnknownAction is returned by Dispatch for an action type it does not know.
var ErrUnknownAction = errors.New("unknown action")

// ActionType names a user action.
type ActionType string

const (
	ActionAdd            ActionType = "add"
	ActionToggle         ActionType = "toggle"
	ActionToggleAll      ActionType = "toggle_all"
	ActionDelete         ActionType = "delete"
	ActionClearCompleted ActionType = "clear_completed"
	ActionSetTab         ActionType = "set_tab"
	ActionEditStart      ActionType = "edit_start"
	ActionEditUpdate     ActionType = "edit_update"
	ActionEditCommit     ActionType = "edit_commit"
	ActionEditCancel     ActionType = "edit_cancel"
	ActionOutsideClick   ActionType = "outside_click"
	ActionKeyCommit      ActionType = "key_commit"
)

// ActionTypes lists every action type Dispatch accepts.
var ActionTypes = []ActionType{
	ActionAdd,
	ActionToggle,
	ActionToggleAll,
	ActionDelete,
	ActionClearCompleted,
	ActionSetTab,
	ActionEditStart,
	ActionEditUpdate,
	ActionEditCommit,
	ActionEditCancel,
	ActionOutsideClick,
	ActionKeyCommit,
}

// Action is one user event. Ref selects the target task for toggle, delete
// and edit_start (see Store.Resolve).
type Action struct {
	Type  ActionType `json:"type" yaml:"type"`
	Ref   string     `json:"ref,omitempty" yaml:"ref,omitempty"`
	Title string     `json:"title,omitempty" yaml:"title,omitempty"`
	Text  string     `json:"text,omitempty" yaml:"text,omitempty"`
	Tab   Tab        `json:"tab,omitempty" yaml:"tab,omitempty"`
}

// String returns a short description for traces.
func (a Action) String() string {
	switch a.Type {
	case ActionAdd:
		return fmt.Sprintf("add %q", a.Title)
	case ActionToggle, ActionDelete, ActionEditStart:
		return fmt.Sprintf("%s %s", a.Type, a.Ref)
	case ActionEditUpdate:
		return fmt.Sprintf("edit_update %q", a.Text)
	case ActionSetTab:
		return fmt.Sprintf("set_tab %s", a.Tab)
	default:
		return string(a.Type)
	}
}

// Dispatch applies a single action. Actions that miss their target are
// no-ops, exactly like the matching Store methods.
func (s *Store) Dispatch(a Action) error {
	switch a.Type {
	case ActionAdd:
		s.Add(a.Title)
	case ActionToggle:
		s.ToggleStatus(s.Resolve(a.Ref))
	case ActionToggleAll:
		s.ToggleAll()
	case ActionDelete:
		s.Delete(s.Resolve(a.Ref))
	case ActionClearCompleted:
		s.ClearCompleted()
	case ActionSetTab:
		s.SetTab(a.Tab)
	case ActionEditStart:
		s.StartEdit(s.Resolve(a.Ref))
	case ActionEditUpdate:
		s.UpdateDraft(a.Text)
	case ActionEditCommit:
		s.CommitEdit()
	case ActionEditCancel:
		s.CancelEdit()
	case ActionOutsideClick:
		s.OutsideInteraction()
	case ActionKeyCommit:
		s.ConfirmKey()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
	return nil
}
