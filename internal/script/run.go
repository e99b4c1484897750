package script

import (
	"fmt"

	"github.com/nibzard/todos-go/internal/todo"
)

// Observer is called after every step with the 1-based step number, the
// action just applied and the resulting snapshot.
type Observer func(step int, action todo.Action, snap todo.Snapshot)

// NewStore creates a store in the script's starting state. Extra options are
// applied before the script's own seeds.
func (s *Script) NewStore(opts ...todo.Option) *todo.Store {
	return todo.NewStore(append(opts, s.Options()...)...)
}

// Run dispatches every action in order and returns the final snapshot.
// It stops at the first action the store rejects.
func Run(store *todo.Store, s *Script, observe Observer) (todo.Snapshot, error) {
	for i, action := range s.Actions {
		if err := store.Dispatch(action); err != nil {
			return store.Snapshot(), fmt.Errorf("step %d: %w", i+1, err)
		}
		if observe != nil {
			observe(i+1, action, store.Snapshot())
		}
	}
	return store.Snapshot(), nil
}
