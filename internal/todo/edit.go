package todo

// Edit returns the running edit session, if any.
func (s *Store) Edit() (EditSession, bool) {
	if s.edit == nil {
		return EditSession{}, false
	}
	return *s.edit, true
}

// Editing reports whether the task with id is being edited.
func (s *Store) Editing(id string) bool {
	return s.edit != nil && s.edit.TargetID == id
}

// StartEdit puts the task with id into edit mode with its current title as
// the draft. A running edit on another task is committed or cancelled first,
// depending on the switch policy. Starting the task already being edited
// keeps its draft.
func (s *Store) StartEdit(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	if s.edit != nil {
		if s.edit.TargetID == id {
			return true
		}
		if s.policy == SwitchCancel {
			s.CancelEdit()
		} else {
			s.CommitEdit()
		}
		// Committing never removes tasks, but look the target up again anyway.
		if i = s.index(id); i < 0 {
			return false
		}
	}
	s.edit = &EditSession{TargetID: id, Draft: s.tasks[i].Title}
	s.changed("edit started", "id", id)
	return true
}

// UpdateDraft replaces the draft title. It does nothing when no edit runs.
func (s *Store) UpdateDraft(text string) {
	if s.edit == nil || s.edit.Draft == text {
		return
	}
	s.edit.Draft = text
	s.changed("draft updated", "id", s.edit.TargetID)
}

// CommitEdit ends the edit session. A draft that is long enough after
// trimming becomes the task title; a shorter draft is dropped and the task
// keeps its title. It reports whether the title was written.
func (s *Store) CommitEdit() bool {
	if s.edit == nil {
		return false
	}
	session := *s.edit
	s.edit = nil

	title, ok := NormalizeTitle(session.Draft)
	i := s.index(session.TargetID)
	if !ok || i < 0 {
		s.changed("edit abandoned", "id", session.TargetID)
		return false
	}
	s.tasks[i].Title = title
	s.changed("edit committed", "id", session.TargetID)
	return true
}

// CancelEdit ends the edit session without touching the task.
func (s *Store) CancelEdit() {
	if s.edit == nil {
		return
	}
	id := s.edit.TargetID
	s.edit = nil
	s.changed("edit cancelled", "id", id)
}

// OutsideInteraction is called when the user interacts with anything other
// than the row being edited. It commits the edit; clicking away saves.
func (s *Store) OutsideInteraction() bool {
	return s.CommitEdit()
}

// ConfirmKey is called for the confirm key (Enter) while editing.
func (s *Store) ConfirmKey() bool {
	return s.CommitEdit()
}
