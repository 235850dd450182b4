package archive

import (
	"strings"

	"forumarchive/internal/store"
	"forumarchive/internal/textutil"
)

// BuildOptions tunes derived fields.
type BuildOptions struct {
	SnippetLength int
}

// BuildThread converts a decoded record into a Thread. ok is false when the
// record has no messages; such threads are dropped from the export entirely.
func BuildThread(rec store.ThreadRecord, opts BuildOptions) (thread *Thread, ok bool) {
	if len(rec.Messages) == 0 {
		return nil, false
	}

	id := firstNonEmpty(
		strings.TrimSpace(rec.TheadID.String()),
		strings.TrimSpace(rec.ThreadID.String()),
		rec.Stem,
	)
	messages := make([]Message, 0, len(rec.Messages))
	for _, m := range rec.Messages {
		messages = append(messages, buildMessage(m))
	}

	first := rec.Messages[0]
	thread = &Thread{
		ID:          id,
		Title:       firstNonEmpty(strings.TrimSpace(rec.Metadata.Topic.String()), "Thread "+id),
		Folder:      firstNonEmpty(strings.TrimSpace(rec.Metadata.Folder.String()), DefaultFolder),
		Views:       normalizeViews(rec.Metadata.Views.String()),
		Messages:    messages,
		FirstDate:   messages[0].Date,
		LastDate:    messages[len(messages)-1].Date,
		FirstAuthor: strings.TrimSpace(first.From.String()),
		Snippet:     textutil.Snippet(first.Content.String(), opts.SnippetLength),
	}
	return thread, true
}

func buildMessage(m store.MessageRecord) Message {
	from, fromStatus := defaultName(m.From.String(), m.FromStatus.String(), DefaultAuthor)
	to, toStatus := defaultName(m.To.String(), m.ToStatus.String(), DefaultRecipient)
	msg := Message{
		ID:         firstNonEmpty(strings.TrimSpace(m.ID.String()), UnknownMessageID),
		From:       from,
		To:         to,
		FromStatus: fromStatus,
		ToStatus:   toStatus,
		ProfileKey: ProfileKey(m.From.String()),
		RawDate:    strings.TrimSpace(m.Date.String()),
		Date:       store.ParseDate(m.Date.String()),
		Content:    m.Content.String(),
		InReplyTo:  strings.TrimSpace(m.InReplyTo.String()),
	}
	for _, img := range m.Images {
		if url := strings.TrimSpace(img.String()); url != "" {
			msg.Images = append(msg.Images, url)
		}
	}
	for _, a := range m.Attachments {
		href := strings.TrimSpace(a.Href.String())
		if href == "" {
			continue
		}
		msg.Attachments = append(msg.Attachments, Attachment{
			Href:  href,
			Label: firstNonEmpty(strings.TrimSpace(a.Name.String()), href),
			Size:  strings.TrimSpace(a.Size.String()),
		})
	}
	return msg
}

// defaultName substitutes fallback for an absent name. A substituted name
// carries no status.
func defaultName(name, status, fallback string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback, ""
	}
	return name, strings.TrimSpace(status)
}

// normalizeViews treats empty and zero view counts as unknown.
func normalizeViews(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.Trim(raw, "0") == "" {
		return ""
	}
	return raw
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
