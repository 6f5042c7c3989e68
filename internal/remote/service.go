// Package remote defines the inbox service the engine talks to and
// provides its HTTP implementation.
package remote

import (
	"context"

	"github.com/tOgg1/trackinbox/internal/models"
)

// Service is the remote inbox API. Implementations must return thread
// values with Kind already resolved so the rest of the engine never
// re-parses thread ids.
type Service interface {
	// GetThreads fetches one page of threads. folder may be the
	// synthetic all folder; cursor zero means the first page.
	GetThreads(ctx context.Context, folder models.FolderID, cursor int64, unreadOnly bool) ([]models.Thread, error)

	// GetFolders fetches the per-folder seen/notified watermarks.
	GetFolders(ctx context.Context) ([]models.Folder, error)

	// UpdateFolders advances lastSeen on one concrete folder.
	UpdateFolders(ctx context.Context, folder models.FolderID, lastSeen int64) error

	// SaveAllAsSeen advances lastSeen on every folder at once.
	SaveAllAsSeen(ctx context.Context, lastSeen int64) error

	// MuteToggle sets a thread's muted flag and returns the
	// authoritative resulting value.
	MuteToggle(ctx context.Context, threadID string, muted bool) (bool, error)

	// MarkMessages sets the read flag on a batch of messages.
	MarkMessages(ctx context.Context, refs []models.MessageRef, read bool) error

	// AddCommentReaction adds an emoji reaction to a comment.
	AddCommentReaction(ctx context.Context, entityID, commentID, reaction string) (models.Reaction, error)

	// RemoveCommentReaction removes a reaction by id.
	RemoveCommentReaction(ctx context.Context, entityID, commentID, reactionID string) error
}

// Connectivity reports whether the device currently has a network
// path, readable at call time.
type Connectivity interface {
	IsConnected() bool
}
