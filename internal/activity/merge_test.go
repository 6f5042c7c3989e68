package activity

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tOgg1/trackinbox/internal/models"
)

func fieldChange(id, field string, added, removed []models.Value) models.Activity {
	return models.Activity{
		ID:       id,
		Category: models.CategoryCustomField,
		Field:    field,
		Added:    added,
		Removed:  removed,
	}
}

func TestMergeActivitiesCollapsesSameFieldRun(t *testing.T) {
	events := []models.Activity{
		fieldChange("e1", "State", []models.Value{{ID: "v1", Name: "Open"}}, []models.Value{{ID: "v0", Name: "New"}}),
		fieldChange("e2", "State", []models.Value{{ID: "v2", Name: "Fixed"}}, []models.Value{{ID: "v1", Name: "Open"}}),
		fieldChange("e3", "Assignee", []models.Value{{ID: "u1", Name: "alice"}}, nil),
	}

	merged := MergeActivities(events)
	require.Len(t, merged, 2)

	require.Equal(t, "e1", merged[0].ID)
	require.Equal(t, []models.Value{{ID: "v1", Name: "Open"}, {ID: "v2", Name: "Fixed"}}, merged[0].Added)
	require.Equal(t, []models.Value{{ID: "v0", Name: "New"}, {ID: "v1", Name: "Open"}}, merged[0].Removed)
	require.Equal(t, "e3", merged[1].ID)
}

func TestMergeActivitiesDoesNotMergeAcrossFields(t *testing.T) {
	events := []models.Activity{
		fieldChange("e1", "State", nil, nil),
		fieldChange("e2", "Assignee", nil, nil),
		fieldChange("e3", "State", nil, nil),
	}
	require.Len(t, MergeActivities(events), 3)
}

func TestMergeActivitiesDoesNotMergeComments(t *testing.T) {
	events := []models.Activity{
		{ID: "c1", Category: models.CategoryComment},
		{ID: "c2", Category: models.CategoryComment},
	}
	require.Len(t, MergeActivities(events), 2)
}

func TestMergeActivitiesIdempotent(t *testing.T) {
	events := []models.Activity{
		fieldChange("e1", "State", []models.Value{{ID: "v1"}}, nil),
		fieldChange("e2", "State", []models.Value{{ID: "v2"}}, nil),
		fieldChange("e3", "Assignee", []models.Value{{ID: "u1"}}, nil),
		{ID: "c1", Category: models.CategoryComment},
	}

	once := MergeActivities(events)
	twice := MergeActivities(once)
	require.Equal(t, once, twice)
}

func TestMergeActivitiesDoesNotMutateInput(t *testing.T) {
	events := []models.Activity{
		fieldChange("e1", "State", []models.Value{{ID: "v1"}}, nil),
		fieldChange("e2", "State", []models.Value{{ID: "v2"}}, nil),
	}

	_ = MergeActivities(events)
	require.Len(t, events[0].Added, 1, "input activity must stay untouched")
}
