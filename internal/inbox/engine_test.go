package inbox

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tOgg1/trackinbox/internal/cache"
	"github.com/tOgg1/trackinbox/internal/db"
	"github.com/tOgg1/trackinbox/internal/models"
	"github.com/tOgg1/trackinbox/internal/remote"
	"github.com/tOgg1/trackinbox/internal/store"
)

type threadsCall struct {
	folder     models.FolderID
	cursor     int64
	unreadOnly bool
}

type seenCall struct {
	folder   models.FolderID
	lastSeen int64
}

type fakeRemote struct {
	mu sync.Mutex

	threadsFn func(folder models.FolderID, cursor int64, unreadOnly bool) ([]models.Thread, error)
	foldersFn func() ([]models.Folder, error)
	muteFn    func(threadID string, muted bool) (bool, error)
	markErr   error

	threadsCalls []threadsCall
	seenCalls    []seenCall
	allSeenCalls []int64
	markedRead   [][]models.MessageRef
}

func (f *fakeRemote) GetThreads(ctx context.Context, folder models.FolderID, cursor int64, unreadOnly bool) ([]models.Thread, error) {
	f.mu.Lock()
	f.threadsCalls = append(f.threadsCalls, threadsCall{folder, cursor, unreadOnly})
	f.mu.Unlock()
	if f.threadsFn == nil {
		return nil, nil
	}
	return f.threadsFn(folder, cursor, unreadOnly)
}

func (f *fakeRemote) GetFolders(ctx context.Context) ([]models.Folder, error) {
	if f.foldersFn == nil {
		return nil, nil
	}
	return f.foldersFn()
}

func (f *fakeRemote) UpdateFolders(ctx context.Context, folder models.FolderID, lastSeen int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seenCalls = append(f.seenCalls, seenCall{folder, lastSeen})
	return nil
}

func (f *fakeRemote) SaveAllAsSeen(ctx context.Context, lastSeen int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.allSeenCalls = append(f.allSeenCalls, lastSeen)
	return nil
}

func (f *fakeRemote) MuteToggle(ctx context.Context, threadID string, muted bool) (bool, error) {
	if f.muteFn == nil {
		return muted, nil
	}
	return f.muteFn(threadID, muted)
}

func (f *fakeRemote) MarkMessages(ctx context.Context, refs []models.MessageRef, read bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markedRead = append(f.markedRead, refs)
	return f.markErr
}

func (f *fakeRemote) AddCommentReaction(ctx context.Context, entityID, commentID, reaction string) (models.Reaction, error) {
	return models.Reaction{ID: "rc-1", Reaction: reaction}, nil
}

func (f *fakeRemote) RemoveCommentReaction(ctx context.Context, entityID, commentID, reactionID string) error {
	return nil
}

func (f *fakeRemote) threadsCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.threadsCalls)
}

func pagedThreads(prefix string, offset, n int) []models.Thread {
	out := make([]models.Thread, n)
	for i := range out {
		out[i] = models.Thread{
			ID:       fmt.Sprintf("%s-%d", prefix, offset+i),
			Kind:     models.ResolveThreadKind(prefix + "-"),
			Notified: int64(1000 + offset + i),
			Messages: []models.Message{{ID: fmt.Sprintf("m-%d", offset+i)}},
		}
	}
	return out
}

type engineFixture struct {
	engine *Engine
	remote *fakeRemote
	conn   *remote.Flag
	cache  *cache.Cache
}

func newFixture(t *testing.T) *engineFixture {
	t.Helper()
	fake := &fakeRemote{}
	conn := remote.NewFlag(true)
	ca := cache.New(db.NewMemoryBlobStore())
	eng := New(DefaultConfig(), store.New(models.PageSize), ca, fake, conn, nil)
	return &engineFixture{engine: eng, remote: fake, conn: conn, cache: ca}
}

func TestLoadInboxThreadsOfflineIsSilentNoOp(t *testing.T) {
	fx := newFixture(t)
	fx.conn.Set(false)

	err := fx.engine.LoadInboxThreads(context.Background(), models.FolderDirect, 0)
	require.NoError(t, err)
	require.Zero(t, fx.remote.threadsCallCount(), "no remote call while offline")

	state := fx.engine.Store().Snapshot(models.FolderDirect)
	require.Empty(t, state.Threads)
	require.False(t, state.Loaded)
	require.NoError(t, state.Err)
}

func TestLoadInboxThreadsResetLoad(t *testing.T) {
	fx := newFixture(t)
	fx.remote.threadsFn = func(folder models.FolderID, cursor int64, unreadOnly bool) ([]models.Thread, error) {
		return pagedThreads("S", 0, models.PageSize), nil
	}
	fx.remote.foldersFn = func() ([]models.Folder, error) {
		return []models.Folder{
			{ID: models.FolderDirect, LastNotified: 10},
			{ID: models.FolderSubscription, LastNotified: 7},
		}, nil
	}

	err := fx.engine.LoadInboxThreads(context.Background(), models.FolderAll, 0)
	require.NoError(t, err)
	fx.engine.Wait()

	state := fx.engine.Store().Snapshot(models.FolderAll)
	require.Len(t, state.Threads, models.PageSize)
	require.True(t, state.HasMore)

	// The loaded folder was marked seen with the max lastNotified.
	fx.remote.mu.Lock()
	require.Equal(t, []int64{10}, fx.remote.allSeenCalls)
	fx.remote.mu.Unlock()

	// The snapshot was persisted for the next cold start.
	cached, err := fx.cache.Threads(context.Background(), models.FolderAll)
	require.NoError(t, err)
	require.Len(t, cached, models.PageSize)
}

func TestLoadInboxThreadsErrorIsStoredAndListKept(t *testing.T) {
	fx := newFixture(t)
	fx.remote.threadsFn = func(folder models.FolderID, cursor int64, unreadOnly bool) ([]models.Thread, error) {
		return pagedThreads("S", 0, 3), nil
	}
	require.NoError(t, fx.engine.LoadInboxThreads(context.Background(), models.FolderAll, 0))
	fx.engine.Wait()

	loadErr := errors.New("boom")
	fx.remote.threadsFn = func(folder models.FolderID, cursor int64, unreadOnly bool) ([]models.Thread, error) {
		return nil, loadErr
	}

	err := fx.engine.LoadInboxThreads(context.Background(), models.FolderAll, 0)
	require.ErrorIs(t, err, loadErr)

	state := fx.engine.Store().Snapshot(models.FolderAll)
	require.ErrorIs(t, state.Err, loadErr)
	require.Len(t, state.Threads, 3, "failed load keeps the previous list")
}

func TestLoadMoreUsesLastThreadCursor(t *testing.T) {
	fx := newFixture(t)
	fx.remote.threadsFn = func(folder models.FolderID, cursor int64, unreadOnly bool) ([]models.Thread, error) {
		if cursor == 0 {
			return pagedThreads("S", 0, models.PageSize), nil
		}
		return pagedThreads("S", models.PageSize-1, 4), nil
	}

	ctx := context.Background()
	require.NoError(t, fx.engine.LoadInboxThreads(ctx, models.FolderAll, 0))
	require.NoError(t, fx.engine.LoadMore(ctx, models.FolderAll))
	fx.engine.Wait()

	fx.remote.mu.Lock()
	require.Len(t, fx.remote.threadsCalls, 2)
	// Cursor is the notified timestamp of the last cached thread.
	require.Equal(t, int64(1000+models.PageSize-1), fx.remote.threadsCalls[1].cursor)
	fx.remote.mu.Unlock()

	state := fx.engine.Store().Snapshot(models.FolderAll)
	require.Len(t, state.Threads, models.PageSize-1+4)
	require.False(t, state.HasMore)
}

func TestLoadMoreWithoutDataIsNoOp(t *testing.T) {
	fx := newFixture(t)
	require.NoError(t, fx.engine.LoadMore(context.Background(), models.FolderAll))
	require.Zero(t, fx.remote.threadsCallCount())
}

func TestLoadPassesUnreadOnlyFilter(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	require.NoError(t, fx.engine.SetUnreadOnly(ctx, true))

	require.NoError(t, fx.engine.LoadInboxThreads(ctx, models.FolderDirect, 0))
	fx.engine.Wait()

	fx.remote.mu.Lock()
	require.True(t, fx.remote.threadsCalls[0].unreadOnly)
	fx.remote.mu.Unlock()
}

func TestMarkFolderSeenSyntheticUsesMaxLastNotified(t *testing.T) {
	fx := newFixture(t)
	fx.conn.Set(false)
	fx.engine.SetFolder(models.Folder{ID: models.FolderDirect, LastNotified: 10})
	fx.engine.SetFolder(models.Folder{ID: models.FolderSubscription, LastNotified: 7})

	fx.engine.MarkFolderSeen(context.Background(), models.FolderAll, 0)

	// Local state updated even though offline; no remote call made.
	direct, _ := fx.engine.Folder(models.FolderDirect)
	sub, _ := fx.engine.Folder(models.FolderSubscription)
	require.Equal(t, int64(10), direct.LastSeen)
	require.Equal(t, int64(10), sub.LastSeen)
	require.Empty(t, fx.remote.allSeenCalls)
}

func TestMarkFolderSeenConcreteFolderOnline(t *testing.T) {
	fx := newFixture(t)
	fx.engine.SetFolder(models.Folder{ID: models.FolderDirect, LastNotified: 42})

	fx.engine.MarkFolderSeen(context.Background(), models.FolderDirect, 0)

	direct, _ := fx.engine.Folder(models.FolderDirect)
	require.Equal(t, int64(42), direct.LastSeen)
	require.Equal(t, []seenCall{{models.FolderDirect, 42}}, fx.remote.seenCalls)
}

func TestMarkFolderSeenExplicitDate(t *testing.T) {
	fx := newFixture(t)
	fx.engine.SetFolder(models.Folder{ID: models.FolderDirect, LastNotified: 42})

	fx.engine.MarkFolderSeen(context.Background(), models.FolderDirect, 99)

	direct, _ := fx.engine.Folder(models.FolderDirect)
	require.Equal(t, int64(99), direct.LastSeen)
}

func TestToggleMessagesReadOptimistic(t *testing.T) {
	fx := newFixture(t)
	fx.engine.Store().SetNotifications(models.FolderAll, pagedThreads("S", 0, 2), true)

	fx.engine.ToggleMessagesRead(context.Background(), "S-0", []string{"m-0"}, true)

	state := fx.engine.Store().Snapshot(models.FolderAll)
	require.True(t, state.Threads[0].Messages[0].Read)
	require.Equal(t, [][]models.MessageRef{{{ID: "m-0"}}}, fx.remote.markedRead)
}

func TestToggleMessagesReadOfflineKeepsLocalFlip(t *testing.T) {
	fx := newFixture(t)
	fx.conn.Set(false)
	fx.engine.Store().SetNotifications(models.FolderAll, pagedThreads("S", 0, 1), true)

	fx.engine.ToggleMessagesRead(context.Background(), "S-0", []string{"m-0"}, true)

	require.True(t, fx.engine.Store().Snapshot(models.FolderAll).Threads[0].Messages[0].Read)
	require.Empty(t, fx.remote.markedRead, "no remote call while offline")
}

func TestToggleMessagesReadFailureNotRolledBack(t *testing.T) {
	fx := newFixture(t)
	fx.remote.markErr = errors.New("boom")
	fx.engine.Store().SetNotifications(models.FolderAll, pagedThreads("S", 0, 1), true)

	fx.engine.ToggleMessagesRead(context.Background(), "S-0", []string{"m-0"}, true)

	require.True(t, fx.engine.Store().Snapshot(models.FolderAll).Threads[0].Messages[0].Read,
		"optimistic read state stands on remote failure")
}

func TestMuteToggleOfflineSignalsRevert(t *testing.T) {
	fx := newFixture(t)
	fx.conn.Set(false)
	fx.engine.Store().SetNotifications(models.FolderAll, pagedThreads("S", 0, 1), true)

	muted, err := fx.engine.MuteToggle(context.Background(), "S-0", true)
	require.NoError(t, err)
	require.False(t, muted, "offline returns the opposite: no change occurred")
	require.False(t, fx.engine.Store().Snapshot(models.FolderAll).Threads[0].Muted)
}

func TestMuteToggleReconcilesWithRemote(t *testing.T) {
	fx := newFixture(t)
	fx.remote.muteFn = func(threadID string, muted bool) (bool, error) {
		return false, nil // server disagrees
	}
	fx.engine.Store().SetNotifications(models.FolderAll, pagedThreads("S", 0, 1), true)

	muted, err := fx.engine.MuteToggle(context.Background(), "S-0", true)
	require.NoError(t, err)
	require.False(t, muted)
	require.False(t, fx.engine.Store().Snapshot(models.FolderAll).Threads[0].Muted,
		"local state re-set to the authoritative value")
}

func TestMuteToggleRemoteErrorReverts(t *testing.T) {
	fx := newFixture(t)
	muteErr := errors.New("boom")
	fx.remote.muteFn = func(threadID string, muted bool) (bool, error) {
		return false, muteErr
	}
	fx.engine.Store().SetNotifications(models.FolderAll, pagedThreads("S", 0, 1), true)

	muted, err := fx.engine.MuteToggle(context.Background(), "S-0", true)
	require.ErrorIs(t, err, muteErr)
	require.False(t, muted)
	require.False(t, fx.engine.Store().Snapshot(models.FolderAll).Threads[0].Muted)
}

func TestBootstrapSeedsStoreFromSnapshot(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	require.NoError(t, fx.cache.PutThreads(ctx, models.FolderDirect, pagedThreads("M", 0, 3)))

	require.NoError(t, fx.engine.Bootstrap(ctx))

	state := fx.engine.Store().Snapshot(models.FolderDirect)
	require.Len(t, state.Threads, 3)
	require.Equal(t, models.KindMention, state.Threads[0].Kind)
}

func TestOnConnectivityRestoredRetriesFailedFolder(t *testing.T) {
	fx := newFixture(t)
	loadErr := errors.New("boom")
	fx.remote.threadsFn = func(folder models.FolderID, cursor int64, unreadOnly bool) ([]models.Thread, error) {
		return nil, loadErr
	}
	require.Error(t, fx.engine.LoadInboxThreads(context.Background(), models.FolderDirect, 0))

	fx.remote.threadsFn = func(folder models.FolderID, cursor int64, unreadOnly bool) ([]models.Thread, error) {
		return pagedThreads("M", 0, 2), nil
	}
	fx.engine.OnConnectivityRestored(context.Background())
	fx.engine.Wait()

	state := fx.engine.Store().Snapshot(models.FolderDirect)
	require.NoError(t, state.Err)
	require.Len(t, state.Threads, 2)
}
