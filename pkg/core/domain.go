// Package core holds the MyAgri domain: records, the in-memory record store
// and the service that keeps the store in sync with a storage adapter.
package core

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Kind tells which screen a record belongs to.
type Kind string

const (
	KindActivity Kind = "activity"
	KindFAQ      Kind = "faq"
	KindResource Kind = "resource"
)

// Category is the closed enumeration a record is classified under.
// The valid values depend on the record Kind.
type Category string

// Activity categories.
const (
	CategoryTask  Category = "task"
	CategoryEvent Category = "event"
	CategoryNote  Category = "note"
)

// Help center (FAQ) categories.
const (
	CategoryAnalyse   Category = "analyse"
	CategoryCompte    Category = "compte"
	CategoryOutils    Category = "outils"
	CategoryTechnique Category = "technique"
	CategorySupport   Category = "support"
)

// Help resource types.
const (
	CategoryGuide   Category = "guide"
	CategoryArticle Category = "article"
	CategoryVideo   Category = "video"
	CategoryOutil   Category = "outil"
)

var categoriesByKind = map[Kind][]Category{
	KindActivity: {CategoryTask, CategoryEvent, CategoryNote},
	KindFAQ:      {CategoryAnalyse, CategoryCompte, CategoryOutils, CategoryTechnique, CategorySupport},
	KindResource: {CategoryGuide, CategoryArticle, CategoryVideo, CategoryOutil},
}

// Categories returns the categories allowed for a kind.
func Categories(k Kind) []Category {
	return slices.Clone(categoriesByKind[k])
}

// ValidFor reports whether c belongs to the enumeration of kind k.
func (c Category) ValidFor(k Kind) bool {
	return slices.Contains(categoriesByKind[k], c)
}

// Status is the progress of a task-like record.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// ParseStatus maps user input onto a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusPending, StatusInProgress, StatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("unknown status %q", s)
}

// Priority of an activity.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// DateLayout is the calendar layout used for Record.Date.
const DateLayout = time.DateOnly

// Record is the central entity of the domain: an activity, a FAQ entry or a
// help resource. ID is assigned by the Store and never changes.
type Record struct {
	ID       string   `json:"id" yaml:"id"`
	Kind     Kind     `json:"kind" yaml:"kind"`
	Title    string   `json:"title" yaml:"title"`
	Body     string   `json:"body,omitempty" yaml:"body,omitempty"`
	Tags     []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Category Category `json:"category,omitempty" yaml:"category,omitempty"`
	Status   Status   `json:"status,omitempty" yaml:"status,omitempty"`
	Priority Priority `json:"priority,omitempty" yaml:"priority,omitempty"`
	Date     string   `json:"date,omitempty" yaml:"date,omitempty"`
	URL      string   `json:"url,omitempty" yaml:"url,omitempty"`
}

// Clone returns a copy that shares no memory with r.
func (r Record) Clone() Record {
	r.Tags = slices.Clone(r.Tags)
	return r
}

// HasTag reports whether the record carries tag.
func (r Record) HasTag(tag string) bool {
	return slices.Contains(r.Tags, tag)
}

// Draft is a record that has not been stored yet.
type Draft struct {
	Kind     Kind
	Title    string
	Body     string
	Tags     []string
	Category Category
	Status   Status
	Priority Priority
	Date     string
	URL      string
}

// Defaults applied to activity drafts.
const (
	DefaultActivityBody = "Nouvelle activité à compléter"
	DefaultActivityTag  = "nouvelle"
)

// record materializes the draft with its defaults.
// Only activities get defaults; other kinds are stored as given.
func (d Draft) record(id string, now time.Time) Record {
	r := Record{
		ID:       id,
		Kind:     d.Kind,
		Title:    d.Title,
		Body:     d.Body,
		Tags:     slices.Clone(d.Tags),
		Category: d.Category,
		Status:   d.Status,
		Priority: d.Priority,
		Date:     d.Date,
		URL:      d.URL,
	}
	if r.Kind == "" {
		r.Kind = KindActivity
	}
	if r.Kind != KindActivity {
		return r
	}
	if r.Body == "" {
		r.Body = DefaultActivityBody
	}
	if len(r.Tags) == 0 {
		r.Tags = []string{DefaultActivityTag}
	}
	if r.Category == "" {
		r.Category = CategoryTask
	}
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	if r.Status == "" {
		r.Status = StatusPending
	}
	if r.Date == "" {
		r.Date = now.Format(DateLayout)
	}
	return r
}

// EventType represents the type of change applied to the store.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change in the store.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}

type contextKey string

// ChangeReasonKey is the context key for passing a human readable reason
// along with a write. Adapters may log it.
const ChangeReasonKey contextKey = "change_reason"
