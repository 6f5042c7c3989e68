package activity

import (
	"sort"

	"github.com/tOgg1/trackinbox/internal/models"
)

// BuildThreadGroups runs a thread's activities through the full
// pipeline: flatten messages, group by author/concern/time, foreground
// project changes, merge same-field runs, split by concern. The result
// is what the list renders for the thread, newest group first. A
// thread whose activities split into nothing yields nil and is simply
// omitted from the list.
func BuildThreadGroups(t models.Thread) []ThreadGroup {
	var activities []models.Activity
	messageOf := make(map[string]models.Message)
	for _, m := range t.Messages {
		for _, a := range m.Activities {
			activities = append(activities, a)
			messageOf[a.ID] = m
		}
	}
	if len(activities) == 0 {
		return nil
	}

	// Newest first; stable so same-timestamp activities keep their
	// server order.
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Timestamp > activities[j].Timestamp
	})

	fold := Fold{
		OnAdd: func(g Group, a models.Activity) Group {
			m, ok := messageOf[a.ID]
			if !ok {
				return g
			}
			for _, have := range g.Messages {
				if have.ID == m.ID {
					return g
				}
			}
			g.Messages = append(g.Messages, m)
			return g
		},
	}

	var out []ThreadGroup
	for _, g := range GroupActivities(activities, fold) {
		events := MergeActivities(SortEvents(g.Events))
		out = append(out, SplitActivities(events, messageOf)...)
	}
	return out
}
