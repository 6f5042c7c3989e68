// Package activity turns a flat activity stream into renderable
// conversation groups: group, sort, merge, split.
package activity

import (
	"time"

	"github.com/tOgg1/trackinbox/internal/models"
)

// Grouping windows. An activity joins the running group only while it
// is within the window of the group's first activity; comments group
// more generously than field changes.
const (
	commentGroupWindow = 2 * time.Hour
	defaultGroupWindow = 10 * time.Minute
)

// Group is a run of activities by one author, of one concern class,
// within one time window. Derived and ephemeral; never persisted.
type Group struct {
	// Head is the newest activity in the group.
	Head models.Activity

	// Events are the group's activities, newest first.
	Events []models.Activity

	// Messages are the messages that produced Events, in first-seen
	// order, each present once.
	Messages []models.Message
}

// Fold customizes grouping. Both funcs are pure: they receive a group
// value and return the group to carry forward, so no caller state is
// mutated from inside the reducer.
type Fold struct {
	// OnAdd runs after an activity is appended to the running group.
	OnAdd func(g Group, a models.Activity) Group

	// OnComplete runs when a group closes, before it is emitted.
	OnComplete func(g Group) Group
}

func groupWindow(class models.Class) time.Duration {
	if class == models.ClassComment {
		return commentGroupWindow
	}
	return defaultGroupWindow
}

// sameGroup reports whether a continues the run started at head.
func sameGroup(head, a models.Activity) bool {
	if head.Author.ID != a.Author.ID {
		return false
	}
	if head.Category.Class() != a.Category.Class() {
		return false
	}
	window := groupWindow(head.Category.Class())
	return a.Timestamp-head.Timestamp <= window.Milliseconds()
}

// GroupActivities groups a reverse-chronological activity stream.
// The input is newest first; internally the stream is reversed so
// groups form from their oldest member, then the result is reversed
// back so both the group list and each group's events come out newest
// first. An empty input yields nil.
func GroupActivities(activities []models.Activity, fold Fold) []Group {
	if len(activities) == 0 {
		return nil
	}

	oldest := make([]models.Activity, len(activities))
	for i, a := range activities {
		oldest[len(activities)-1-i] = a
	}

	var groups []Group
	var current Group
	var start models.Activity
	open := false

	complete := func(g Group) {
		for i, j := 0, len(g.Events)-1; i < j; i, j = i+1, j-1 {
			g.Events[i], g.Events[j] = g.Events[j], g.Events[i]
		}
		g.Head = g.Events[0]
		if fold.OnComplete != nil {
			g = fold.OnComplete(g)
		}
		groups = append(groups, g)
	}

	for _, a := range oldest {
		if open && !sameGroup(start, a) {
			complete(current)
			open = false
		}
		if !open {
			current = Group{}
			start = a
			open = true
		}
		current.Events = append(current.Events, a)
		if fold.OnAdd != nil {
			current = fold.OnAdd(current, a)
		}
	}
	if open {
		complete(current)
	}

	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}
	return groups
}
