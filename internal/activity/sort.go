package activity

import "github.com/tOgg1/trackinbox/internal/models"

// SortEvents moves the first project-change event to the front,
// keeping the relative order of everything else. A project move is
// the most significant change in a group and renders first regardless
// of when it happened. Without a project change the order is returned
// unchanged.
func SortEvents(events []models.Activity) []models.Activity {
	idx := -1
	for i, e := range events {
		if e.Category == models.CategoryProject {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return events
	}

	out := make([]models.Activity, 0, len(events))
	out = append(out, events[idx])
	out = append(out, events[:idx]...)
	out = append(out, events[idx+1:]...)
	return out
}
