package archive

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"forumarchive/internal/logging"
	"forumarchive/internal/textutil"
)

// FolderSet buckets threads by folder name and assigns each folder a unique
// slug. The first folder to claim a slug keeps it; a later folder whose name
// reduces to the same slug gets a numeric suffix ("general-2") instead of
// being merged into the first. Thread ids are unique across the set: adding a
// thread whose id is already present replaces the earlier one.
type FolderSet struct {
	byName map[string]*Folder
	byID   map[string]*Thread
	order  []*Folder
	slugs  map[string]string
	logger *slog.Logger
}

// NewFolderSet returns an empty set.
func NewFolderSet(logger *slog.Logger) *FolderSet {
	return &FolderSet{
		byName: make(map[string]*Folder),
		byID:   make(map[string]*Thread),
		slugs:  make(map[string]string),
		logger: logging.NewComponentLogger(logger, "folders"),
	}
}

// Add assigns thread to its folder, creating the folder on first sight, and
// records the folder slug on the thread.
func (s *FolderSet) Add(thread *Thread) *Folder {
	name := thread.Folder
	if name == "" {
		name = DefaultFolder
	}
	if prev, ok := s.byID[thread.ID]; ok {
		s.remove(prev)
	}
	folder, ok := s.byName[name]
	if !ok {
		folder = &Folder{Name: name, Slug: s.claimSlug(name)}
		s.byName[name] = folder
		s.order = append(s.order, folder)
	}
	folder.Threads = append(folder.Threads, thread)
	thread.FolderSlug = folder.Slug
	s.byID[thread.ID] = thread
	return folder
}

// Thread returns the thread currently held for id.
func (s *FolderSet) Thread(id string) (*Thread, bool) {
	t, ok := s.byID[id]
	return t, ok
}

func (s *FolderSet) remove(thread *Thread) {
	name := thread.Folder
	if name == "" {
		name = DefaultFolder
	}
	folder, ok := s.byName[name]
	if !ok {
		return
	}
	folder.Threads = slices.DeleteFunc(folder.Threads, func(t *Thread) bool { return t == thread })
	if len(folder.Threads) > 0 {
		return
	}
	// An emptied folder gives up its slug.
	delete(s.byName, name)
	delete(s.slugs, folder.Slug)
	s.order = slices.DeleteFunc(s.order, func(f *Folder) bool { return f == folder })
}

func (s *FolderSet) claimSlug(name string) string {
	base := textutil.Slugify(name)
	slug := base
	for n := 2; ; n++ {
		owner, taken := s.slugs[slug]
		if !taken {
			break
		}
		if n == 2 {
			logging.WarnWithContext(s.logger, "folder slug collision", "folder_slug_collision",
				logging.String("folder", name),
				logging.String("existing_folder", owner),
				logging.String("slug", base),
				logging.String(logging.FieldImpact, "folder page written under a suffixed slug"),
			)
		}
		slug = fmt.Sprintf("%s-%d", base, n)
	}
	s.slugs[slug] = name
	return slug
}

// Len returns the number of folders.
func (s *FolderSet) Len() int { return len(s.order) }

// Folders returns folders ordered case-insensitively by display name.
func (s *FolderSet) Folders() []*Folder {
	caser := cases.Lower(language.Und)
	keys := make(map[*Folder]string, len(s.order))
	for _, f := range s.order {
		keys[f] = caser.String(f.Name)
	}
	out := slices.Clone(s.order)
	slices.SortStableFunc(out, func(a, b *Folder) int {
		if c := cmp.Compare(keys[a], keys[b]); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// Listing returns the folder's threads in reading order: ascending by first
// post date with undated threads last, ties broken by ascending id.
func (f *Folder) Listing() []*Thread {
	out := slices.Clone(f.Threads)
	slices.SortStableFunc(out, CompareByFirstPost)
	return out
}

// Recent returns the folder's threads most recently active first: descending
// by last post date with undated threads last, ties broken by descending id.
// limit <= 0 returns every thread.
func (f *Folder) Recent(limit int) []*Thread {
	out := slices.Clone(f.Threads)
	slices.SortStableFunc(out, CompareByRecentActivity)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// CompareByFirstPost orders threads for the full folder listing.
func CompareByFirstPost(a, b *Thread) int {
	if c := compareDates(a.FirstDate, b.FirstDate, true); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// CompareByRecentActivity orders threads for front-page previews.
func CompareByRecentActivity(a, b *Thread) int {
	if c := compareDates(a.LastDate, b.LastDate, false); c != 0 {
		return c
	}
	return cmp.Compare(b.ID, a.ID)
}

// compareDates orders known dates ascending or descending and always places
// unknown dates after known ones.
func compareDates(a, b *time.Time, ascending bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	c := a.Compare(*b)
	if !ascending {
		c = -c
	}
	return c
}
