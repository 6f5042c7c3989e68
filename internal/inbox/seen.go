package inbox

import (
	"context"

	"github.com/tOgg1/trackinbox/internal/models"
)

// MarkFolderSeen advances the folder's lastSeen watermark. The target
// is the explicit date when given, the folder's lastNotified
// otherwise; for the synthetic all folder without a date it is the
// maximum lastNotified across the concrete folders. Local state
// updates first; the remote call is made only when online and its
// failure is logged, never rolled back. Seen state is best effort by
// design.
func (e *Engine) MarkFolderSeen(ctx context.Context, folder models.FolderID, date int64) {
	target := date
	if target == 0 {
		target = e.seenTarget(folder)
	}
	if target == 0 {
		return
	}

	e.mu.Lock()
	affected := []models.FolderID{folder}
	if folder.Synthetic() {
		affected = append(models.ConcreteFolders(), models.FolderAll)
	}
	for _, id := range affected {
		f := e.folders[id]
		f.ID = id
		f.LastSeen = target
		e.folders[id] = f
	}
	e.mu.Unlock()

	e.recorder.Event("inbox.folder.seen", map[string]string{"folder": string(folder)})

	if !e.conn.IsConnected() {
		return
	}

	var err error
	if folder.Synthetic() {
		err = e.remote.SaveAllAsSeen(ctx, target)
	} else {
		err = e.remote.UpdateFolders(ctx, folder, target)
	}
	if err != nil {
		e.logger.Warn().Err(err).Str("folder", string(folder)).Msg("failed to mark folder seen remotely")
	}
}

func (e *Engine) seenTarget(folder models.FolderID) int64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !folder.Synthetic() {
		return e.folders[folder].LastNotified
	}
	var target int64
	for _, id := range models.ConcreteFolders() {
		if n := e.folders[id].LastNotified; n > target {
			target = n
		}
	}
	return target
}

// ToggleMessagesRead flips the read flag on the named messages of a
// thread. The flip lands in the live store immediately so badges
// react, then the remote call follows; its failure is logged and the
// optimistic state stands.
func (e *Engine) ToggleMessagesRead(ctx context.Context, threadID string, messageIDs []string, read bool) {
	if len(messageIDs) == 0 {
		return
	}
	if _, ok := e.store.SetMessagesRead(threadID, messageIDs, read); !ok {
		e.logger.Debug().Str("thread", threadID).Msg("read toggle for thread not in store")
	}

	e.recorder.Event("inbox.messages.read", map[string]string{"thread": threadID})

	if !e.conn.IsConnected() {
		return
	}
	refs := make([]models.MessageRef, len(messageIDs))
	for i, id := range messageIDs {
		refs[i] = models.MessageRef{ID: id}
	}
	if err := e.remote.MarkMessages(ctx, refs, read); err != nil {
		e.logger.Warn().Err(err).Str("thread", threadID).Msg("failed to mark messages remotely")
	}
}
