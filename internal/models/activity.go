// Package models defines the value types of the inbox threads engine.
package models

// Category identifies the kind of change an activity records.
type Category string

const (
	// Comment activity
	CategoryComment Category = "comment"

	// Entity creation activities
	CategoryIssueCreated   Category = "issue.created"
	CategoryArticleCreated Category = "article.created"

	// History (field change) activities
	CategoryProject     Category = "field.project"
	CategoryCustomField Category = "field.custom"
	CategorySummary     Category = "field.summary"
	CategoryDescription Category = "field.description"
	CategoryTag         Category = "field.tag"
	CategoryLink        Category = "field.link"
	CategoryAttachment  Category = "field.attachment"
	CategorySprint      Category = "field.sprint"

	// Work record activity
	CategoryWorkItem Category = "work.item"

	// Reaction activity
	CategoryReaction Category = "reaction"
)

// Class buckets categories into the concerns the splitter renders separately.
type Class string

const (
	ClassComment  Class = "comment"
	ClassHistory  Class = "history"
	ClassWork     Class = "work"
	ClassCreated  Class = "created"
	ClassReaction Class = "reaction"
)

// Class returns the rendering concern a category belongs to.
// Unknown categories are treated as history so a new server-side
// category degrades to a generic field change instead of vanishing.
func (c Category) Class() Class {
	switch c {
	case CategoryComment:
		return ClassComment
	case CategoryIssueCreated, CategoryArticleCreated:
		return ClassCreated
	case CategoryWorkItem:
		return ClassWork
	case CategoryReaction:
		return ClassReaction
	default:
		return ClassHistory
	}
}

// User identifies the author of an activity.
type User struct {
	ID       string `json:"id"`
	Login    string `json:"login"`
	FullName string `json:"fullName,omitempty"`
	Avatar   string `json:"avatarUrl,omitempty"`
}

// Value is one element of an activity's added/removed lists.
type Value struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Reaction is a single emoji reaction attached to a comment.
type Reaction struct {
	ID       string `json:"id"`
	Reaction string `json:"reaction"`
	Author   User   `json:"author"`
}

// Comment is the comment payload carried by a comment activity.
type Comment struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Reactions []Reaction `json:"reactions,omitempty"`
}

// WorkItem is the work record payload carried by a work activity.
type WorkItem struct {
	ID       string `json:"id"`
	Date     int64  `json:"date"`
	Duration int    `json:"duration"`
	Text     string `json:"text,omitempty"`
}

// Entity is the issue or article an activity or thread refers to.
type Entity struct {
	ID         string `json:"id"`
	IDReadable string `json:"idReadable,omitempty"`
	Summary    string `json:"summary,omitempty"`
}

// Activity is one atomic change event. Immutable once received; it
// belongs to exactly one Message.
type Activity struct {
	// ID is the server-assigned activity identifier.
	ID string `json:"id"`

	// Timestamp is when the change happened, epoch milliseconds.
	Timestamp int64 `json:"timestamp"`

	// Author is who made the change.
	Author User `json:"author"`

	// Category identifies what kind of change this is.
	Category Category `json:"category"`

	// Field names the changed field for history activities. Two
	// history activities merge only when Field matches.
	Field string `json:"field,omitempty"`

	// Added and Removed carry the field values this change added
	// or removed.
	Added   []Value `json:"added,omitempty"`
	Removed []Value `json:"removed,omitempty"`

	// Payloads, at most one set per category.
	Comment *Comment  `json:"comment,omitempty"`
	Work    *WorkItem `json:"work,omitempty"`
	Issue   *Entity   `json:"issue,omitempty"`
	Article *Entity   `json:"article,omitempty"`
}

// Target returns the entity the activity refers to, issue first.
func (a Activity) Target() *Entity {
	if a.Issue != nil {
		return a.Issue
	}
	return a.Article
}

// CloneActivity returns a deep copy of an activity.
func CloneActivity(a Activity) Activity {
	out := a
	if len(a.Added) > 0 {
		out.Added = append([]Value(nil), a.Added...)
	}
	if len(a.Removed) > 0 {
		out.Removed = append([]Value(nil), a.Removed...)
	}
	if a.Comment != nil {
		c := *a.Comment
		if len(a.Comment.Reactions) > 0 {
			c.Reactions = append([]Reaction(nil), a.Comment.Reactions...)
		}
		out.Comment = &c
	}
	if a.Work != nil {
		w := *a.Work
		out.Work = &w
	}
	if a.Issue != nil {
		e := *a.Issue
		out.Issue = &e
	}
	if a.Article != nil {
		e := *a.Article
		out.Article = &e
	}
	return out
}
