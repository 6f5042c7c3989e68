package inbox

import (
	"context"
	"errors"
	"strconv"

	"github.com/tOgg1/trackinbox/internal/models"
	"github.com/tOgg1/trackinbox/internal/store"
)

// LoadInboxThreads fetches one page for the folder and applies it to
// the live store and the persisted snapshot. A zero cursor is a reset
// load that replaces the folder's list; a non-zero cursor appends.
// Offline the call is a silent no-op: no error is surfaced and no
// state changes. A failed fetch is stored in the folder's state and
// returned; the previous thread list stays intact.
func (e *Engine) LoadInboxThreads(ctx context.Context, folder models.FolderID, cursor int64) error {
	if folder == "" {
		folder = models.FolderAll
	}
	if !e.conn.IsConnected() {
		e.logger.Debug().Str("folder", string(folder)).Msg("offline, skipping load")
		return nil
	}

	more := cursor > 0
	if err := e.store.BeginLoad(folder, more); err != nil {
		if errors.Is(err, store.ErrLoadInFlight) || errors.Is(err, store.ErrNoMoreData) {
			return nil
		}
		return err
	}

	unreadOnly := e.cache.UnreadOnly(ctx)
	threads, err := e.remote.GetThreads(ctx, folder, cursor, unreadOnly)
	e.store.FinishLoad(folder, more, err)
	if err != nil {
		e.logger.Warn().Err(err).Str("folder", string(folder)).Msg("thread load failed")
		return err
	}

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.syncSeen(context.WithoutCancel(ctx), folder)
	}()

	e.store.SetNotifications(folder, threads, !more)

	snapshot := e.store.Snapshot(folder)
	prefix := snapshot.Threads
	if len(prefix) > e.config.MaxCachedThreads {
		prefix = prefix[:e.config.MaxCachedThreads]
	}
	if err := e.cache.PutThreads(ctx, folder, prefix); err != nil {
		e.logger.Warn().Err(err).Str("folder", string(folder)).Msg("failed to persist thread snapshot")
	}

	e.recorder.Event("inbox.threads.loaded", map[string]string{
		"folder": string(folder),
		"count":  strconv.Itoa(len(threads)),
		"reset":  strconv.FormatBool(!more),
	})
	return nil
}

// LoadMore fetches the next page using the notified timestamp of the
// folder's last cached thread as the cursor. Without more data, or
// with a load-more already in flight for the folder, it is a no-op.
func (e *Engine) LoadMore(ctx context.Context, folder models.FolderID) error {
	cursor := e.store.Cursor(folder)
	if cursor == 0 {
		return nil
	}
	return e.LoadInboxThreads(ctx, folder, cursor)
}

// syncSeen refreshes folder watermarks and marks the just-loaded
// folder seen. Both steps are best effort.
func (e *Engine) syncSeen(ctx context.Context, folder models.FolderID) {
	if err := e.RefreshFolders(ctx); err != nil {
		e.logger.Warn().Err(err).Msg("failed to refresh folders")
	}
	e.MarkFolderSeen(ctx, folder, 0)
}

// Bootstrap seeds the live store from the persisted snapshot so the
// first paint happens before any network round trip. Cached data
// keeps its prefix-only nature; the next successful load replaces it.
func (e *Engine) Bootstrap(ctx context.Context) error {
	snap, err := e.cache.Load(ctx)
	if err != nil {
		return err
	}
	for id, threads := range snap.Folders {
		e.store.SetNotifications(id, threads, true)
	}
	return nil
}

// SetUnreadOnly persists the unread-only filter; it applies to every
// subsequent fetch.
func (e *Engine) SetUnreadOnly(ctx context.Context, unreadOnly bool) error {
	return e.cache.SetUnreadOnly(ctx, unreadOnly)
}

// OnConnectivityRestored retries folders whose last load failed.
// This is the only retry path; failed loads otherwise wait for an
// explicit refresh.
func (e *Engine) OnConnectivityRestored(ctx context.Context) {
	for _, id := range []models.FolderID{models.FolderAll, models.FolderDirect, models.FolderSubscription} {
		if e.store.Snapshot(id).Err == nil {
			continue
		}
		e.store.ClearError(id)
		if err := e.LoadInboxThreads(ctx, id, 0); err != nil {
			e.logger.Warn().Err(err).Str("folder", string(id)).Msg("retry after reconnect failed")
		}
	}
}
