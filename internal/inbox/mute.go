package inbox

import (
	"context"

	"github.com/tOgg1/trackinbox/internal/models"
)

// MuteToggle flips a thread's muted flag optimistically and returns
// the authoritative value. Offline, the flip is reverted and the
// opposite of the requested value is returned, signalling that no
// change occurred. When the remote result disagrees with the request
// the local state is re-set to the authoritative value.
func (e *Engine) MuteToggle(ctx context.Context, threadID string, muted bool) (bool, error) {
	e.store.SetThreadMuted(threadID, muted)

	if !e.conn.IsConnected() {
		e.store.SetThreadMuted(threadID, !muted)
		return !muted, nil
	}

	actual, err := e.remote.MuteToggle(ctx, threadID, muted)
	if err != nil {
		e.store.SetThreadMuted(threadID, !muted)
		return !muted, err
	}
	if actual != muted {
		e.store.SetThreadMuted(threadID, actual)
	}

	e.recorder.Event("inbox.thread.mute", map[string]string{"thread": threadID})
	return actual, nil
}

// AddCommentReaction adds an emoji reaction to a comment; the
// returned reaction is the server's authoritative value.
func (e *Engine) AddCommentReaction(ctx context.Context, entityID, commentID, reaction string) (models.Reaction, error) {
	return e.remote.AddCommentReaction(ctx, entityID, commentID, reaction)
}

// RemoveCommentReaction removes a reaction by id.
func (e *Engine) RemoveCommentReaction(ctx context.Context, entityID, commentID, reactionID string) error {
	return e.remote.RemoveCommentReaction(ctx, entityID, commentID, reactionID)
}
