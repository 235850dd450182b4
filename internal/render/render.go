package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"forumarchive/internal/archive"
	"forumarchive/internal/textutil"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

//go:embed assets/style.css
var stylesheet []byte

// StylesheetPath is where the stylesheet lands relative to the export root.
const StylesheetPath = "assets/style.css"

const (
	rootBase   = ""
	nestedBase = "../"

	// DefaultPreviewCount is the number of thread cards shown per folder on
	// the index page.
	DefaultPreviewCount = 6
)

// AssetResolver maps a remote asset URL to an export-relative path. ok is
// false when the binary was never captured; err reports I/O failures only.
type AssetResolver interface {
	Resolve(url string) (rel string, ok bool, err error)
}

// Options configures a Renderer.
type Options struct {
	SiteTitle    string
	Description  string
	PreviewCount int
	Assets       AssetResolver
	Profiles     archive.Profiles
	// Now stamps page footers. Defaults to time.Now.
	Now func() time.Time
}

// Renderer produces HTML documents from archive entities. A Renderer is safe
// for concurrent use when its AssetResolver is.
type Renderer struct {
	opts Options
	tmpl *template.Template
}

// New parses the embedded templates.
func New(opts Options) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	if opts.PreviewCount <= 0 {
		opts.PreviewCount = DefaultPreviewCount
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Assets == nil {
		opts.Assets = noAssets{}
	}
	return &Renderer{opts: opts, tmpl: tmpl}, nil
}

// Stylesheet returns the embedded CSS.
func Stylesheet() []byte {
	return bytes.Clone(stylesheet)
}

type page struct {
	PageTitle   string
	SiteTitle   string
	Base        string
	GeneratedAt string
}

func (r *Renderer) page(title, base string) page {
	pageTitle := r.opts.SiteTitle
	if title != "" && title != r.opts.SiteTitle {
		pageTitle = title + " | " + r.opts.SiteTitle
	}
	return page{
		PageTitle:   pageTitle,
		SiteTitle:   r.opts.SiteTitle,
		Base:        base,
		GeneratedAt: r.opts.Now().Format(footerLayout),
	}
}

func (r *Renderer) execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

type cardView struct {
	Href    string
	Title   string
	Author  string
	Snippet string
	Stats   string
}

type sectionView struct {
	Name     string
	Subtitle string
	Href     string
	Cards    []cardView
}

type indexView struct {
	page
	Description string
	Sections    []sectionView
}

// RenderIndex renders index.html. folders should already be in display order.
func (r *Renderer) RenderIndex(folders []*archive.Folder) ([]byte, error) {
	view := indexView{
		page:        r.page("", rootBase),
		Description: r.opts.Description,
	}
	for _, folder := range folders {
		section := sectionView{
			Name:     folder.Name,
			Subtitle: folderSubtitle(folder),
			Href:     "folders/" + folder.PageName(),
		}
		for _, thread := range folder.Recent(r.opts.PreviewCount) {
			section.Cards = append(section.Cards, cardView{
				Href:    "threads/" + thread.PageName(),
				Title:   thread.Title,
				Author:  authorLabel(thread.FirstAuthor),
				Snippet: thread.Snippet,
				Stats:   cardStats(thread),
			})
		}
		view.Sections = append(view.Sections, section)
	}
	return r.execute("index", view)
}

type rowView struct {
	ID      string
	Href    string
	Title   string
	Posted  string
	Author  string
	Replies int
}

type folderView struct {
	page
	Name     string
	Subtitle string
	Rows     []rowView
}

// RenderFolder renders folders/<slug>.html with every thread in reading order.
func (r *Renderer) RenderFolder(folder *archive.Folder) ([]byte, error) {
	view := folderView{
		page:     r.page(folder.Name, nestedBase),
		Name:     folder.Name,
		Subtitle: folderSubtitle(folder),
	}
	for _, thread := range folder.Listing() {
		view.Rows = append(view.Rows, rowView{
			ID:      thread.ID,
			Href:    nestedBase + "threads/" + thread.PageName(),
			Title:   thread.Title,
			Posted:  ShortDate(thread.FirstDate),
			Author:  authorLabel(thread.FirstAuthor),
			Replies: thread.ReplyCount(),
		})
	}
	return r.execute("folder", view)
}

type replyView struct {
	ID     string
	Anchor string
}

type attachmentView struct {
	Href  string
	Label string
	Size  string
	Local bool
}

type messageView struct {
	ID          string
	Anchor      string
	Author      DisplayName
	Recipient   DisplayName
	Timestamp   string
	Position    int
	Total       int
	ReplyTo     *replyView
	Content     template.HTML
	Profile     []archive.ProfileDetail
	Attachments []attachmentView
}

type threadView struct {
	page
	ID           string
	Title        string
	Folder       string
	FolderHref   string
	MessageCount int
	Views        string
	FirstPosted  string
	LastUpdated  string
	Messages     []messageView
}

// RenderThread renders threads/<id>.html. Asset references are resolved as a
// side effect; an asset that was never captured keeps its remote URL.
func (r *Renderer) RenderThread(thread *archive.Thread) ([]byte, error) {
	view := threadView{
		page:         r.page(thread.Title, nestedBase),
		ID:           thread.ID,
		Title:        thread.Title,
		Folder:       thread.Folder,
		FolderHref:   nestedBase + "folders/" + thread.FolderSlug + ".html",
		MessageCount: thread.MessageCount(),
		Views:        thread.Views,
		FirstPosted:  LongTimestamp(thread.FirstDate),
		LastUpdated:  LongTimestamp(thread.LastDate),
	}
	if view.Views == "" {
		view.Views = unknownLongDate
	}

	total := len(thread.Messages)
	for i := range thread.Messages {
		msg, err := r.message(&thread.Messages[i], i+1, total)
		if err != nil {
			return nil, fmt.Errorf("thread %s: %w", thread.ID, err)
		}
		view.Messages = append(view.Messages, msg)
	}
	return r.execute("thread", view)
}

func (r *Renderer) message(m *archive.Message, position, total int) (messageView, error) {
	content, err := r.rewriteImages(m.Content, m.Images)
	if err != nil {
		return messageView{}, err
	}
	view := messageView{
		ID:        m.ID,
		Anchor:    Anchor(m.ID),
		Author:    SplitName(m.From, m.FromStatus),
		Recipient: SplitName(m.To, m.ToStatus),
		Timestamp: messageTimestamp(m),
		Position:  position,
		Total:     total,
		Content:   template.HTML(content),
		Profile:   r.opts.Profiles.Details(m.ProfileKey),
	}
	if m.InReplyTo != "" {
		view.ReplyTo = &replyView{ID: m.InReplyTo, Anchor: Anchor(m.InReplyTo)}
	}
	for _, a := range m.Attachments {
		att := attachmentView{Href: a.Href, Label: a.Label, Size: a.Size}
		rel, ok, err := r.opts.Assets.Resolve(a.Href)
		if err != nil {
			return messageView{}, err
		}
		if ok {
			att.Href = nestedBase + rel
			att.Local = true
		}
		view.Attachments = append(view.Attachments, att)
	}
	return view, nil
}

// rewriteImages substitutes every literal occurrence of a resolved image URL.
func (r *Renderer) rewriteImages(content string, images []string) (string, error) {
	for _, url := range images {
		rel, ok, err := r.opts.Assets.Resolve(url)
		if err != nil {
			return "", err
		}
		if ok {
			content = strings.ReplaceAll(content, url, nestedBase+rel)
		}
	}
	return content, nil
}

func messageTimestamp(m *archive.Message) string {
	if m.Date != nil {
		return LongTimestamp(m.Date)
	}
	if m.RawDate != "" {
		return m.RawDate
	}
	return "unknown"
}

func authorLabel(raw string) string {
	return SplitName(raw, "").Primary
}

func folderSubtitle(folder *archive.Folder) string {
	return textutil.CountLabel(len(folder.Threads), "thread") + " | " +
		textutil.CountLabel(folder.MessageTotal(), "message")
}

func cardStats(thread *archive.Thread) string {
	parts := []string{textutil.CountLabel(thread.MessageCount(), "message")}
	if thread.LastDate != nil {
		parts = append(parts, "Last activity "+LongTimestamp(thread.LastDate))
	}
	if thread.Views != "" {
		parts = append(parts, thread.Views+" views")
	}
	return strings.Join(parts, " | ")
}

type noAssets struct{}

func (noAssets) Resolve(string) (string, bool, error) { return "", false, nil }
