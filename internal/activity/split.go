package activity

import "github.com/tOgg1/trackinbox/internal/models"

// ThreadGroup is a single-concern slice of a merged group, consumed
// directly by one renderer. Derived and ephemeral.
type ThreadGroup struct {
	Class     models.Class
	Head      models.Activity
	Author    models.User
	Timestamp int64

	// Events are the merged activities of this concern, in the order
	// they appeared in the split input.
	Events []models.Activity

	// Messages are the messages that produced Events, each once.
	Messages []models.Message

	// Concern payloads, populated from Head where present.
	Comment *models.Comment
	Work    *models.WorkItem
	Entity  *models.Entity
}

// splitConcerns lists the concerns that render as separate list
// items, in display order.
var splitConcerns = []models.Class{
	models.ClassComment,
	models.ClassHistory,
	models.ClassWork,
	models.ClassCreated,
}

// SplitActivities splits a merged group into one ThreadGroup per
// concern present. messageOf maps activity id to owning message so
// each output group carries the messages that produced it. Input with
// no recognizable concern yields nil; callers skip such threads
// rather than treating them as errors.
func SplitActivities(merged []models.Activity, messageOf map[string]models.Message) []ThreadGroup {
	byClass := make(map[models.Class][]models.Activity)
	for _, a := range merged {
		byClass[a.Category.Class()] = append(byClass[a.Category.Class()], a)
	}

	var out []ThreadGroup
	for _, class := range splitConcerns {
		events := byClass[class]
		if len(events) == 0 {
			continue
		}
		head := events[0]
		g := ThreadGroup{
			Class:     class,
			Head:      head,
			Author:    head.Author,
			Timestamp: head.Timestamp,
			Events:    events,
			Comment:   head.Comment,
			Work:      head.Work,
			Entity:    head.Target(),
		}
		seen := make(map[string]bool)
		for _, e := range events {
			m, ok := messageOf[e.ID]
			if !ok || seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			g.Messages = append(g.Messages, m)
		}
		out = append(out, g)
	}
	return out
}
