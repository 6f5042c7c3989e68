package activity

import "github.com/tOgg1/trackinbox/internal/models"

// mergeable reports whether two adjacent activities record changes to
// the same field and can collapse into one composite change. Only
// history activities merge; comments, work records and creations stay
// distinct.
func mergeable(a, b models.Activity) bool {
	if a.Category.Class() != models.ClassHistory || b.Category.Class() != models.ClassHistory {
		return false
	}
	return a.Category == b.Category && a.Field == b.Field
}

// MergeActivities collapses adjacent same-field changes into single
// composite activities whose added/removed lists concatenate the
// run's values in first-seen order. Idempotent: a merged list has no
// adjacent mergeable pair left, so merging again is a no-op.
func MergeActivities(events []models.Activity) []models.Activity {
	if len(events) < 2 {
		return events
	}

	out := make([]models.Activity, 0, len(events))
	for _, e := range events {
		if n := len(out); n > 0 && mergeable(out[n-1], e) {
			prev := models.CloneActivity(out[n-1])
			prev.Added = append(prev.Added, e.Added...)
			prev.Removed = append(prev.Removed, e.Removed...)
			out[n-1] = prev
			continue
		}
		out = append(out, e)
	}
	return out
}
