// Package store holds the live per-folder thread lists. It is the
// single source of truth the list view reads and the load pipeline
// writes. State is keyed by folder id; a slow response for one folder
// can never corrupt another's list.
package store

import (
	"errors"
	"sync"

	"github.com/tOgg1/trackinbox/internal/models"
)

// Store errors.
var (
	ErrLoadInFlight = errors.New("load already in flight for folder")
	ErrNoMoreData   = errors.New("folder has no more data")
)

// FolderState is a point-in-time snapshot of one folder. Threads are
// deep copies; mutating a snapshot never touches the store.
type FolderState struct {
	Threads     []models.Thread
	HasMore     bool
	Loaded      bool
	Loading     bool
	LoadingMore bool
	Err         error
}

type folderState struct {
	threads     []models.Thread
	hasMore     bool
	loaded      bool
	loading     bool
	loadingMore bool
	err         error
}

// Store is the Folder Cache Store. Safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	pageSize int
	folders  map[models.FolderID]*folderState
}

// New creates an empty store. pageSize <= 0 falls back to the
// product default.
func New(pageSize int) *Store {
	if pageSize <= 0 {
		pageSize = models.PageSize
	}
	return &Store{
		pageSize: pageSize,
		folders:  make(map[models.FolderID]*folderState),
	}
}

func (s *Store) folder(id models.FolderID) *folderState {
	fs, ok := s.folders[id]
	if !ok {
		fs = &folderState{}
		s.folders[id] = fs
	}
	return fs
}

// Snapshot returns the folder's current state. A folder that has
// never been loaded reads as empty with no more data, never as a
// missing value.
func (s *Store) Snapshot(id models.FolderID) FolderState {
	s.mu.Lock()
	defer s.mu.Unlock()

	fs, ok := s.folders[id]
	if !ok {
		return FolderState{Threads: []models.Thread{}}
	}
	return FolderState{
		Threads:     models.CloneThreads(fs.threads),
		HasMore:     fs.hasMore,
		Loaded:      fs.loaded,
		Loading:     fs.loading,
		LoadingMore: fs.loadingMore,
		Err:         fs.err,
	}
}

// BeginLoad marks a load in flight. For a load-more it additionally
// requires that the folder has more data and that no other load-more
// for the same folder is running, which is what prevents the
// duplicate-page race.
func (s *Store) BeginLoad(id models.FolderID, more bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fs := s.folder(id)
	if more {
		if !fs.hasMore {
			return ErrNoMoreData
		}
		if fs.loadingMore || fs.loading {
			return ErrLoadInFlight
		}
		fs.loadingMore = true
		return nil
	}
	if fs.loading {
		return ErrLoadInFlight
	}
	fs.loading = true
	fs.err = nil
	return nil
}

// FinishLoad clears the in-flight flag and records the outcome. A
// failed load keeps the previous thread list intact.
func (s *Store) FinishLoad(id models.FolderID, more bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fs := s.folder(id)
	if more {
		fs.loadingMore = false
	} else {
		fs.loading = false
	}
	fs.err = err
}

// SetNotifications applies a fetched page. With reset the folder's
// list is replaced outright; otherwise the last element of the
// current list is dropped (it was the sentinel the cursor re-fetches)
// and the page is appended. hasMore is true only for a full page.
func (s *Store) SetNotifications(id models.FolderID, threads []models.Thread, reset bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fs := s.folder(id)
	page := models.CloneThreads(threads)
	if reset {
		fs.threads = page
	} else {
		current := fs.threads
		if len(current) > 0 {
			current = current[:len(current)-1]
		}
		fs.threads = append(current, page...)
	}
	fs.hasMore = len(threads) == s.pageSize
	fs.loaded = true
}

// Cursor returns the pagination cursor for the folder: the notified
// timestamp of the last cached thread, or zero when the list is
// empty.
func (s *Store) Cursor(id models.FolderID) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	fs, ok := s.folders[id]
	if !ok || len(fs.threads) == 0 {
		return 0
	}
	return fs.threads[len(fs.threads)-1].Notified
}

// UpdateThread replaces the thread with the same id in every folder
// that holds it. Used by the optimistic read and mute paths so badges
// react before the remote call resolves.
func (s *Store) UpdateThread(t models.Thread) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, fs := range s.folders {
		for i := range fs.threads {
			if fs.threads[i].ID == t.ID {
				fs.threads[i] = models.CloneThread(t)
			}
		}
	}
}

// SetThreadMuted flips the muted flag on the thread wherever cached
// and returns the updated thread, if found anywhere.
func (s *Store) SetThreadMuted(threadID string, muted bool) (models.Thread, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found models.Thread
	ok := false
	for _, fs := range s.folders {
		for i := range fs.threads {
			if fs.threads[i].ID == threadID {
				fs.threads[i].Muted = muted
				found = models.CloneThread(fs.threads[i])
				ok = true
			}
		}
	}
	return found, ok
}

// SetMessagesRead flips the read flag on the named messages of a
// thread wherever it is cached and returns the updated thread, if
// found anywhere. Applying the same flip twice is a no-op, which is
// what makes the optimistic path safe to repeat.
func (s *Store) SetMessagesRead(threadID string, messageIDs []string, read bool) (models.Thread, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make(map[string]bool, len(messageIDs))
	for _, id := range messageIDs {
		ids[id] = true
	}

	var found models.Thread
	ok := false
	for _, fs := range s.folders {
		for i := range fs.threads {
			if fs.threads[i].ID != threadID {
				continue
			}
			for j := range fs.threads[i].Messages {
				if ids[fs.threads[i].Messages[j].ID] {
					fs.threads[i].Messages[j].Read = read
				}
			}
			found = models.CloneThread(fs.threads[i])
			ok = true
		}
	}
	return found, ok
}

// FindThread returns a copy of the thread from the first folder that
// holds it.
func (s *Store) FindThread(threadID string) (models.Thread, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, fs := range s.folders {
		for i := range fs.threads {
			if fs.threads[i].ID == threadID {
				return models.CloneThread(fs.threads[i]), true
			}
		}
	}
	return models.Thread{}, false
}

// UnreadCount sums unread messages across the folder's cached
// threads.
func (s *Store) UnreadCount(id models.FolderID) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	fs, ok := s.folders[id]
	if !ok {
		return 0
	}
	n := 0
	for _, t := range fs.threads {
		n += t.UnreadCount()
	}
	return n
}

// ClearError drops a stored load error for the folder.
func (s *Store) ClearError(id models.FolderID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fs, ok := s.folders[id]; ok {
		fs.err = nil
	}
}
