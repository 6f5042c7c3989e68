package models

import "strings"

// Pagination and cache bounds.
const (
	// PageSize is the number of threads requested per page. A page
	// of exactly this size means more data may exist.
	PageSize = 16

	// MaxCachedThreads bounds the per-folder prefix persisted for
	// instant cold-start rendering.
	MaxCachedThreads = 30
)

// ThreadKind classifies a thread by what produced it.
type ThreadKind string

const (
	// KindSubscription is an issue/article activity digest.
	KindSubscription ThreadKind = "subscription"

	// KindReaction is a reactions-to-your-comment thread.
	KindReaction ThreadKind = "reaction"

	// KindMention is a you-were-mentioned thread.
	KindMention ThreadKind = "mention"
)

// Thread id prefixes assigned by the server.
const (
	subscriptionIDPrefix = "S-"
	reactionIDPrefix     = "R-"
	mentionIDPrefix      = "M-"
)

// ResolveThreadKind maps a thread id to its kind. Ids without a
// recognized prefix default to subscription.
func ResolveThreadKind(id string) ThreadKind {
	switch {
	case strings.HasPrefix(id, reactionIDPrefix):
		return KindReaction
	case strings.HasPrefix(id, mentionIDPrefix):
		return KindMention
	case strings.HasPrefix(id, subscriptionIDPrefix):
		return KindSubscription
	default:
		return KindSubscription
	}
}

// MessageRef addresses a message for remote read-state updates.
type MessageRef struct {
	ID string `json:"id"`
}

// Message is the smallest remotely-addressable unit for marking read.
// One message may carry several activities recorded together.
type Message struct {
	ID         string     `json:"id"`
	Activities []Activity `json:"activities"`
	Read       bool       `json:"read"`
	Timestamp  int64      `json:"timestamp"`
}

// Subject ties a thread to the entity it is about.
type Subject struct {
	Target Entity `json:"target"`
}

// Thread is one notification conversation unit. Threads are created
// server-side and fetched in pages; locally only Muted and each
// message's Read flag ever change.
type Thread struct {
	// ID carries the server's kind prefix.
	ID string `json:"id"`

	// Kind is resolved from ID once at ingestion and carried here so
	// classification never re-parses the id.
	Kind ThreadKind `json:"kind"`

	// Notified is the thread's last notification timestamp, epoch
	// milliseconds. Doubles as the pagination cursor.
	Notified int64 `json:"notified"`

	Muted    bool      `json:"muted"`
	Subject  Subject   `json:"subject"`
	Messages []Message `json:"messages"`
}

// ResolveKind stamps Kind from the id prefix. Call once at ingestion.
func (t *Thread) ResolveKind() {
	t.Kind = ResolveThreadKind(t.ID)
}

// UnreadCount returns the number of unread messages in the thread.
func (t Thread) UnreadCount() int {
	n := 0
	for _, m := range t.Messages {
		if !m.Read {
			n++
		}
	}
	return n
}

// CloneMessage returns a deep copy of a message.
func CloneMessage(m Message) Message {
	out := m
	if len(m.Activities) > 0 {
		out.Activities = make([]Activity, len(m.Activities))
		for i, a := range m.Activities {
			out.Activities[i] = CloneActivity(a)
		}
	}
	return out
}

// CloneThread returns a deep copy of a thread.
func CloneThread(t Thread) Thread {
	out := t
	if len(t.Messages) > 0 {
		out.Messages = make([]Message, len(t.Messages))
		for i, m := range t.Messages {
			out.Messages[i] = CloneMessage(m)
		}
	}
	return out
}

// CloneThreads returns a deep copy of a thread slice.
func CloneThreads(threads []Thread) []Thread {
	if threads == nil {
		return nil
	}
	out := make([]Thread, len(threads))
	for i, t := range threads {
		out[i] = CloneThread(t)
	}
	return out
}
