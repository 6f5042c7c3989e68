// Package inbox is the engine tying the pieces together: the load
// pipeline, the seen/read synchronizer and the mute toggle.
package inbox

import "github.com/tOgg1/trackinbox/internal/models"

// Classification tells a renderer how to present a thread.
type Classification struct {
	// Kind selects the renderer and merge strategy.
	Kind models.ThreadKind

	// BottomPositioned places the referenced entity below the change
	// as a jump-to footer instead of as the thread title.
	BottomPositioned bool
}

// Classifier classifies threads for rendering. The merged
// notifications display mode is fixed at construction rather than
// read from global state.
type Classifier struct {
	mergedNotifications bool
}

// NewClassifier creates a classifier for the given display mode.
func NewClassifier(mergedNotifications bool) *Classifier {
	return &Classifier{mergedNotifications: mergedNotifications}
}

// Classify is pure and stable for the lifetime of a thread value.
// Reaction and mention threads position their entity at the bottom;
// subscription threads use it as the title. Merged notifications mode
// forces title positioning for everything.
func (c *Classifier) Classify(t models.Thread) Classification {
	kind := t.Kind
	if kind == "" {
		kind = models.ResolveThreadKind(t.ID)
	}
	bottom := kind == models.KindReaction || kind == models.KindMention
	if c.mergedNotifications {
		bottom = false
	}
	return Classification{Kind: kind, BottomPositioned: bottom}
}
