package archive

import (
	"strings"
	"time"
)

// Defaults applied when a record leaves a field out.
const (
	DefaultFolder    = "Uncategorised"
	DefaultAuthor    = "Unknown"
	DefaultRecipient = "All"
	UnknownMessageID = "unknown"
)

// Attachment is a file linked from a message.
type Attachment struct {
	Href  string
	Label string
	Size  string
}

// Message is one post within a thread.
type Message struct {
	ID         string
	From       string
	To         string
	FromStatus string
	ToStatus   string
	// ProfileKey looks up the author's profile; empty when the record had no author.
	ProfileKey  string
	RawDate     string
	Date        *time.Time
	Content     string
	Images      []string
	Attachments []Attachment
	// InReplyTo references another message id in the same thread. It is
	// never validated.
	InReplyTo string
}

// Thread is a forum topic. Messages keep capture order; that order is
// authoritative and never re-sorted.
type Thread struct {
	ID         string
	Title      string
	Folder     string
	FolderSlug string
	Views      string
	Messages   []Message

	FirstDate   *time.Time
	LastDate    *time.Time
	FirstAuthor string
	Snippet     string
}

// MessageCount returns the number of messages in the thread.
func (t *Thread) MessageCount() int { return len(t.Messages) }

// ReplyCount is the message count minus the opening post, floored at zero.
func (t *Thread) ReplyCount() int {
	return max(len(t.Messages)-1, 0)
}

// PageName is the file name of the thread's page inside threads/.
func (t *Thread) PageName() string {
	return pageNameReplacer.Replace(t.ID) + ".html"
}

var pageNameReplacer = strings.NewReplacer("/", "_", "\\", "_")

// Folder groups threads sharing a folder name.
type Folder struct {
	Name    string
	Slug    string
	Threads []*Thread
}

// MessageTotal sums message counts across the folder's threads.
func (f *Folder) MessageTotal() int {
	total := 0
	for _, t := range f.Threads {
		total += t.MessageCount()
	}
	return total
}

// PageName is the file name of the folder's page inside folders/.
func (f *Folder) PageName() string { return f.Slug + ".html" }
