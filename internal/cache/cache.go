// Package cache persists a bounded snapshot of inbox threads so the
// next session can paint the list before the network responds. The
// snapshot is a prefix only; the live store is authoritative once a
// load succeeds.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/tOgg1/trackinbox/internal/db"
	"github.com/tOgg1/trackinbox/internal/models"
)

const blobKey = "inboxThreadsCache"

// Snapshot is the persisted document.
type Snapshot struct {
	// Folders maps folder id to the most recent threads, bounded to
	// the cache limit.
	Folders map[models.FolderID][]models.Thread `json:"folders"`

	// LastVisited is when the inbox last loaded successfully, epoch
	// milliseconds.
	LastVisited int64 `json:"lastVisited"`

	// UnreadOnly is the persisted unread-only filter toggle, passed
	// to every fetch.
	UnreadOnly bool `json:"unreadOnly"`
}

// Cache wraps the blob store with read-modify-write snapshot updates.
// Updates are serialized by a mutex so two writers cannot interleave
// on the shared document.
type Cache struct {
	mu    sync.Mutex
	store db.BlobStore
	limit int
	now   func() time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithNow overrides the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLimit overrides the per-folder thread bound.
func WithLimit(limit int) Option {
	return func(c *Cache) {
		if limit > 0 {
			c.limit = limit
		}
	}
}

// New creates a Cache over the given blob store.
func New(store db.BlobStore, opts ...Option) *Cache {
	c := &Cache{
		store: store,
		limit: models.MaxCachedThreads,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache) read(ctx context.Context) (Snapshot, error) {
	blob, err := c.store.Read(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to read cache blob: %w", err)
	}
	raw, ok := blob[blobKey]
	if !ok {
		return Snapshot{Folders: make(map[models.FolderID][]models.Thread)}, nil
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode cache snapshot: %w", err)
	}
	if snap.Folders == nil {
		snap.Folders = make(map[models.FolderID][]models.Thread)
	}
	return snap, nil
}

func (c *Cache) write(ctx context.Context, snap Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode cache snapshot: %w", err)
	}
	return c.store.Write(ctx, db.Blob{blobKey: raw})
}

// Load returns the full persisted snapshot. Thread kinds are resolved
// on the way out so cached threads behave like freshly ingested ones.
func (c *Cache) Load(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.read(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	for id, threads := range snap.Folders {
		for i := range threads {
			threads[i].ResolveKind()
		}
		snap.Folders[id] = threads
	}
	return snap, nil
}

// PutThreads stores the folder's thread prefix, bounded to the cache
// limit, and stamps lastVisited.
func (c *Cache) PutThreads(ctx context.Context, id models.FolderID, threads []models.Thread) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.read(ctx)
	if err != nil {
		return err
	}
	if len(threads) > c.limit {
		threads = threads[:c.limit]
	}
	snap.Folders[id] = models.CloneThreads(threads)
	snap.LastVisited = c.now().UnixMilli()
	return c.write(ctx, snap)
}

// Threads returns the cached prefix for a folder, possibly empty.
func (c *Cache) Threads(ctx context.Context, id models.FolderID) ([]models.Thread, error) {
	snap, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Folders[id], nil
}

// SetUnreadOnly persists the unread-only filter toggle.
func (c *Cache) SetUnreadOnly(ctx context.Context, unreadOnly bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.read(ctx)
	if err != nil {
		return err
	}
	snap.UnreadOnly = unreadOnly
	return c.write(ctx, snap)
}

// UnreadOnly reads the persisted unread-only filter toggle. Errors
// degrade to false: a broken cache never blocks a load.
func (c *Cache) UnreadOnly(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap, err := c.read(ctx)
	if err != nil {
		return false
	}
	return snap.UnreadOnly
}
