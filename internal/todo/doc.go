// Package todo holds the in-memory task list and its derived views.
//
// A Store is the single owner of the list. Every user action maps to one
// Store method (or one Action passed to Dispatch), runs to completion and
// leaves the store in a consistent state; callers re-read a Snapshot after
// each call instead of holding references into the store.
//
// # Task Status Values
//
//   - "active": the task still needs doing
//   - "completed": the task is done
//
// # Tabs
//
// The current Tab selects which tasks Visible returns:
//
//   - "all": every task, in insertion order
//   - "active": only active tasks
//   - "completed": only completed tasks
//
// # Rejected Input
//
// Nothing in this package returns an error for a bad target. A title shorter
// than MinTitleLength, an unknown id or an edit command while no edit is in
// progress leave the store unchanged. The only error is ErrUnknownAction,
// returned by Dispatch for an action type it does not know.
//
// # Inline Editing
//
// At most one task is edited at a time. The draft lives in the EditSession
// until it is committed (Enter, or any interaction outside the edited row) or
// cancelled (Esc). A committed draft shorter than MinTitleLength is dropped and
// the task keeps its title.
package todo
