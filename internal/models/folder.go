package models

// FolderID names a notification view.
type FolderID string

const (
	// FolderAll is synthetic: it aggregates the two concrete folders
	// and is requested remotely as the absence of a folder id.
	FolderAll FolderID = "all"

	// FolderDirect holds mentions and reactions.
	FolderDirect FolderID = "direct"

	// FolderSubscription holds issue/article activity digests.
	FolderSubscription FolderID = "subscription"
)

// ConcreteFolders are the folders that exist server-side.
func ConcreteFolders() []FolderID {
	return []FolderID{FolderDirect, FolderSubscription}
}

// Valid reports whether id names a known folder.
func (f FolderID) Valid() bool {
	switch f {
	case FolderAll, FolderDirect, FolderSubscription:
		return true
	}
	return false
}

// Synthetic reports whether the folder is the aggregate "all" view.
func (f FolderID) Synthetic() bool {
	return f == FolderAll
}

// Folder carries the per-folder seen/notified watermarks.
// lastSeen <= lastNotified is the target state after a successful
// mark-seen, but the two may diverge while offline.
type Folder struct {
	ID           FolderID `json:"id"`
	LastNotified int64    `json:"lastNotified"`
	LastSeen     int64    `json:"lastSeen"`
}
