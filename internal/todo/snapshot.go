package todo

// Snapshot is a copy of the store state at one version. Later store
// changes never show through a snapshot.
type Snapshot struct {
	Version        uint64       `json:"version"`
	Tab            Tab          `json:"tab"`
	Bulk           BulkToggle   `json:"bulk_toggle"`
	Tasks          []Task       `json:"tasks"`
	Visible        []Task       `json:"visible"`
	ActiveCount    int          `json:"active_count"`
	CompletedCount int          `json:"completed_count"`
	Edit           *EditSession `json:"edit,omitempty"`
}

// Snapshot copies the current state.
func (s *Store) Snapshot() Snapshot {
	snap := Snapshot{
		Version:        s.version,
		Tab:            s.tab,
		Bulk:           s.bulk,
		Tasks:          s.Tasks(),
		Visible:        Visible(s.tasks, s.tab),
		ActiveCount:    ActiveCount(s.tasks),
		CompletedCount: CompletedCount(s.tasks),
	}
	if s.edit != nil {
		edit := *s.edit
		snap.Edit = &edit
	}
	return snap
}

// AllCompleted reports whether the toggle-all control shows as checked.
// Like the remembered direction it follows, it can disagree with the
// tasks after individual toggles.
func (s Snapshot) AllCompleted() bool {
	return s.Bulk == BulkCompleted
}
