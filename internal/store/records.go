package store

import (
	"gopkg.in/yaml.v3"
)

// Text is a YAML scalar read as its literal text regardless of the type the
// YAML resolver would infer, so ids like 1234.5 and views like 00017 survive
// unchanged. Nulls, sequences and mappings decode to the empty string.
type Text string

// UnmarshalYAML implements yaml.Unmarshaler.
func (t *Text) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		*t = ""
		return nil
	}
	*t = Text(node.Value)
	return nil
}

// String returns the scalar text.
func (t Text) String() string { return string(t) }

// ThreadRecord is one threads/<name>.yaml file.
type ThreadRecord struct {
	// Scraper key, spelled as the scraper wrote it.
	TheadID  Text            `yaml:"thead_id"`
	ThreadID Text            `yaml:"thread_id"`
	Metadata ThreadMetadata  `yaml:"metadata"`
	Messages []MessageRecord `yaml:"messages"`

	// Stem is the record file name without extension.
	Stem string `yaml:"-"`
}

// ThreadMetadata is the metadata block of a thread record.
type ThreadMetadata struct {
	Topic  Text `yaml:"topic"`
	Folder Text `yaml:"folder"`
	Views  Text `yaml:"views"`
}

// MessageRecord is one entry of a thread's message list, in capture order.
type MessageRecord struct {
	ID          Text               `yaml:"id"`
	From        Text               `yaml:"from"`
	To          Text               `yaml:"to"`
	FromStatus  Text               `yaml:"from_status"`
	ToStatus    Text               `yaml:"to_status"`
	Date        Text               `yaml:"date"`
	Content     Text               `yaml:"content"`
	Images      []Text             `yaml:"images"`
	Attachments []AttachmentRecord `yaml:"attachments"`
	InReplyTo   Text               `yaml:"in_reply_to"`
}

// AttachmentRecord is a file linked from a message.
type AttachmentRecord struct {
	Href Text `yaml:"href"`
	Name Text `yaml:"name"`
	Size Text `yaml:"size"`
}

// ProfileRecord is one profiles/<author key>.yaml file: label to value pairs.
type ProfileRecord map[string]Text
