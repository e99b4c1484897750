package todo

import "fmt"

// Visible returns the tasks shown on tab, keeping their relative order.
// The result never aliases tasks.
func Visible(tasks []Task, tab Tab) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		switch tab {
		case TabActive:
			if t.Status != StatusActive {
				continue
			}
		case TabCompleted:
			if t.Status != StatusCompleted {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// ActiveCount returns the number of active tasks ("items left").
func ActiveCount(tasks []Task) int {
	return countStatus(tasks, StatusActive)
}

// CompletedCount returns the number of completed tasks.
func CompletedCount(tasks []Task) int {
	return countStatus(tasks, StatusCompleted)
}

func countStatus(tasks []Task, status Status) int {
	n := 0
	for _, t := range tasks {
		if t.Status == status {
			n++
		}
	}
	return n
}

// ItemsLeft formats the active counter for the footer.
func ItemsLeft(n int) string {
	if n == 1 {
		return "1 item left"
	}
	return fmt.Sprintf("%d items left", n)
}
