package inbox

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tOgg1/trackinbox/internal/models"
)

func TestClassify(t *testing.T) {
	c := NewClassifier(false)

	tests := []struct {
		name       string
		thread     models.Thread
		wantKind   models.ThreadKind
		wantBottom bool
	}{
		{
			name:     "subscription thread",
			thread:   models.Thread{ID: "S-1", Kind: models.KindSubscription},
			wantKind: models.KindSubscription,
		},
		{
			name:       "reaction thread",
			thread:     models.Thread{ID: "R-1", Kind: models.KindReaction},
			wantKind:   models.KindReaction,
			wantBottom: true,
		},
		{
			name:       "mention thread",
			thread:     models.Thread{ID: "M-1", Kind: models.KindMention},
			wantKind:   models.KindMention,
			wantBottom: true,
		},
		{
			name:     "unrecognized prefix defaults to subscription",
			thread:   models.Thread{ID: "X-1"},
			wantKind: models.KindSubscription,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.thread)
			require.Equal(t, tt.wantKind, got.Kind)
			require.Equal(t, tt.wantBottom, got.BottomPositioned)
		})
	}
}

func TestClassifyUnresolvedKindFallsBackToID(t *testing.T) {
	c := NewClassifier(false)
	got := c.Classify(models.Thread{ID: "R-7"})
	require.Equal(t, models.KindReaction, got.Kind)
	require.True(t, got.BottomPositioned)
}

func TestClassifyMergedNotificationsForcesTitlePosition(t *testing.T) {
	c := NewClassifier(true)

	for _, id := range []string{"S-1", "R-1", "M-1"} {
		got := c.Classify(models.Thread{ID: id})
		require.False(t, got.BottomPositioned, "thread %s", id)
	}
}
