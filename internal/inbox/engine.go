package inbox

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tOgg1/trackinbox/internal/analytics"
	"github.com/tOgg1/trackinbox/internal/cache"
	"github.com/tOgg1/trackinbox/internal/logging"
	"github.com/tOgg1/trackinbox/internal/models"
	"github.com/tOgg1/trackinbox/internal/remote"
	"github.com/tOgg1/trackinbox/internal/store"
)

// Config contains engine settings.
type Config struct {
	// PageSize is the number of threads requested per page.
	PageSize int

	// MaxCachedThreads bounds the persisted per-folder prefix.
	MaxCachedThreads int

	// MergedNotifications enables the merged display mode, threaded
	// into the classifier at construction.
	MergedNotifications bool
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		PageSize:         models.PageSize,
		MaxCachedThreads: models.MaxCachedThreads,
	}
}

// Engine owns the live folder store, the persisted snapshot and the
// optimistic synchronization against the remote service. All remote
// failures outside the primary load path are logged, never surfaced.
type Engine struct {
	config     Config
	store      *store.Store
	cache      *cache.Cache
	remote     remote.Service
	conn       remote.Connectivity
	classifier *Classifier
	recorder   analytics.Recorder
	logger     zerolog.Logger

	mu      sync.Mutex
	folders map[models.FolderID]models.Folder

	// wg tracks fire-and-forget goroutines so tests can drain them.
	wg sync.WaitGroup
}

// New creates an engine. recorder may be nil, in which case events
// are discarded.
func New(cfg Config, st *store.Store, ca *cache.Cache, svc remote.Service, conn remote.Connectivity, rec analytics.Recorder) *Engine {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultConfig().PageSize
	}
	if cfg.MaxCachedThreads <= 0 {
		cfg.MaxCachedThreads = DefaultConfig().MaxCachedThreads
	}
	if rec == nil {
		rec = analytics.Noop{}
	}
	return &Engine{
		config:     cfg,
		store:      st,
		cache:      ca,
		remote:     svc,
		conn:       conn,
		classifier: NewClassifier(cfg.MergedNotifications),
		recorder:   rec,
		logger:     logging.Component("inbox"),
		folders:    make(map[models.FolderID]models.Folder),
	}
}

// Store exposes the live folder store for the list view.
func (e *Engine) Store() *store.Store {
	return e.store
}

// Classify tells the caller how to render a thread.
func (e *Engine) Classify(t models.Thread) Classification {
	return e.classifier.Classify(t)
}

// Folder returns the locally known watermarks for a folder.
func (e *Engine) Folder(id models.FolderID) (models.Folder, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	f, ok := e.folders[id]
	return f, ok
}

// SetFolder seeds or overwrites local folder watermarks. Used by
// tests and by hosts that receive folder state out of band.
func (e *Engine) SetFolder(f models.Folder) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.folders[f.ID] = f
}

// RefreshFolders fetches folder watermarks from the remote service
// and replaces the local view. Offline it is a silent no-op.
func (e *Engine) RefreshFolders(ctx context.Context) error {
	if !e.conn.IsConnected() {
		return nil
	}
	folders, err := e.remote.GetFolders(ctx)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, f := range folders {
		e.folders[f.ID] = f
	}
	return nil
}

// Wait blocks until all fire-and-forget work has finished. Tests use
// it; production callers normally never need to.
func (e *Engine) Wait() {
	e.wg.Wait()
}
