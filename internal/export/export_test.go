package export_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"forumarchive/internal/contenthash"
	"forumarchive/internal/export"
	"forumarchive/internal/testsupport"
)

const generalThread = `thead_id: "1001"
metadata:
  topic: Welcome
  folder: General
  views: 12
messages:
  - id: "1001.1"
    from: "Alice (guest) unread"
    to: All
    date: "Mon Jan 01 10:30:00 2024"
    content: "<p>Hello everyone</p>"
  - id: "1001.2"
    from: Bob
    to: Alice
    date: "Tue Jan  2 11:00:00 2024"
    content: "<p>Hi Alice</p>"
    in_reply_to: "1001.1"
`

func fixedNow() time.Time { return time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC) }

func runExport(t *testing.T, opts export.Options) *export.Summary {
	t.Helper()
	opts.Now = fixedNow
	summary, err := export.Run(context.Background(), opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return summary
}

func contains(t *testing.T, doc string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(doc, fragment) {
			t.Errorf("missing %q in\n%s", fragment, doc)
		}
	}
}

func TestRunMissingThreadsDir(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutThreadsDir())
	_, err := export.Run(context.Background(), export.OptionsFromConfig(cfg, nil))
	if !errors.Is(err, export.ErrThreadsDirMissing) {
		t.Fatalf("expected ErrThreadsDirMissing, got %v", err)
	}
	if _, statErr := os.Stat(cfg.Paths.OutputDir); !os.IsNotExist(statErr) {
		t.Fatalf("output directory written before precondition check: %v", statErr)
	}
}

func TestRunGeneralThread(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteThread(t, cfg.Paths.StoreDir, "1001", generalThread)
	testsupport.WriteProfile(t, cfg.Paths.StoreDir, "Bob", "Location: Leeds\nMember Since: 2001\nEmail: bob@example.com\n")

	summary := runExport(t, export.OptionsFromConfig(cfg, nil))
	if summary.Threads != 1 || summary.Messages != 2 || summary.FolderCount() != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.RunID == "" {
		t.Fatal("expected a run id")
	}

	out := cfg.Paths.OutputDir
	page := testsupport.ReadFile(t, filepath.Join(out, "threads", "1001.html"))
	contains(t, page,
		`<span class="msg-author-name">Alice</span> <span class="msg-recipient-extra">(guest)</span> <span class="msg-status">unread</span>`,
		`(<a href="#msg-1001-1">1 of 2</a>)`,
		`(<a href="#msg-1001-2">2 of 2</a>)`,
		`<article class="message" id="msg-1001-1">`,
		`in reply to <a href="#msg-1001-1">1001.1</a>`,
		`<span class="msg-date-time">Jan 01, 2024 10:30AM</span>`,
		`<dt>Views</dt><dd>12</dd>`,
		`<div class="profile-meta">Member Since: 2001 | Location: Leeds</div>`,
	)
	if strings.Contains(page, "bob@example.com") {
		t.Fatal("profile field outside the allow-list was rendered")
	}

	folder := testsupport.ReadFile(t, filepath.Join(out, "folders", "general.html"))
	contains(t, folder,
		`<a href="../threads/1001.html">Welcome</a>`,
		`<td>1/1/24</td><td>Alice</td><td class="replies">1</td>`,
	)

	index := testsupport.ReadFile(t, filepath.Join(out, "index.html"))
	contains(t, index,
		`<h1>Test Archive</h1>`,
		`href="folders/general.html">Show All</a>`,
		`<a class="thread-card" href="threads/1001.html">`,
		`Export generated on 2025-02-03 04:05:06.`,
	)

	css := testsupport.ReadFile(t, filepath.Join(out, "assets", "style.css"))
	if !strings.Contains(css, ".thread-card") {
		t.Fatal("stylesheet not written")
	}
}

func TestRunResolvesAttachments(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := cfg.Paths.StoreDir
	found := "http://files.example.com/manual.pdf"
	missing := "http://files.example.com/lost.zip"
	image := "http://img.example.com/photo.jpg"
	foundName := testsupport.WriteAsset(t, store, found, []byte("pdf"))
	imageName := testsupport.WriteAsset(t, store, image, []byte("jpg"))

	testsupport.WriteThread(t, store, "2002", `thead_id: "2002"
metadata:
  topic: Files
messages:
  - id: "2002.1"
    from: Carol
    content: '<img src="`+image+`">'
    images: ["`+image+`"]
    attachments:
      - href: "`+found+`"
        name: manual.pdf
        size: 3 KB
      - href: "`+missing+`"
`)

	summary := runExport(t, export.OptionsFromConfig(cfg, nil))
	if summary.AssetsCopied != 2 || summary.AssetsMissing != 1 {
		t.Fatalf("unexpected asset counts: %+v", summary)
	}

	out := cfg.Paths.OutputDir
	if got := testsupport.ReadFile(t, filepath.Join(out, "files", foundName)); got != "pdf" {
		t.Fatalf("copied attachment = %q", got)
	}
	page := testsupport.ReadFile(t, filepath.Join(out, "threads", "2002.html"))
	contains(t, page,
		`<a href="../files/`+foundName+`" download>manual.pdf</a> (3 KB)`,
		`<a href="`+missing+`">`+missing+`</a> (remote)`,
		`<img src="../files/`+imageName+`">`,
		`<a href="../folders/uncategorised.html">Uncategorised</a>`,
	)
	if _, err := os.Stat(filepath.Join(out, "files", contenthash.Name(missing))); !os.IsNotExist(err) {
		t.Fatalf("missing asset should not be created: %v", err)
	}
}

func TestRunSkipsEmptyAndInvalidRecords(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := cfg.Paths.StoreDir
	testsupport.WriteThread(t, store, "a-empty", "thead_id: \"500\"\nmetadata:\n  folder: Ghosts\nmessages: []\n")
	testsupport.WriteThread(t, store, "b-blank", "")
	testsupport.WriteThread(t, store, "c-broken", "messages: [unterminated\n")
	testsupport.WriteThread(t, store, "d-real", generalThread)

	summary := runExport(t, export.OptionsFromConfig(cfg, nil))
	if summary.Threads != 1 || summary.Skipped != 2 || summary.Invalid != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	out := cfg.Paths.OutputDir
	for _, name := range []string{"threads/500.html", "threads/a-empty.html", "threads/b-blank.html", "folders/ghosts.html"} {
		if _, err := os.Stat(filepath.Join(out, filepath.FromSlash(name))); !os.IsNotExist(err) {
			t.Errorf("%s should not exist: %v", name, err)
		}
	}
	index := testsupport.ReadFile(t, filepath.Join(out, "index.html"))
	if strings.Contains(index, "Ghosts") {
		t.Fatal("empty thread's folder appeared on the index")
	}
}

func TestRunDuplicateThreadIDLaterRecordWins(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := cfg.Paths.StoreDir
	testsupport.WriteThread(t, store, "a-first", "thead_id: \"77\"\nmetadata:\n  folder: Cellar\nmessages:\n  - from: Ann\n")
	testsupport.WriteThread(t, store, "b-second", "thead_id: \"77\"\nmetadata:\n  folder: Lobby\nmessages:\n  - from: Bea\n  - from: Cy\n")

	summary := runExport(t, export.OptionsFromConfig(cfg, nil))
	if summary.Threads != 1 || summary.Messages != 2 || summary.FolderCount() != 1 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	out := cfg.Paths.OutputDir
	page := testsupport.ReadFile(t, filepath.Join(out, "threads", "77.html"))
	contains(t, page, "Bea", "Cy")
	if strings.Contains(page, "Ann") {
		t.Fatal("earlier record leaked into the thread page")
	}
	if _, err := os.Stat(filepath.Join(out, "folders", "cellar.html")); !os.IsNotExist(err) {
		t.Fatalf("folder emptied by the duplicate should not be written: %v", err)
	}
	lobby := testsupport.ReadFile(t, filepath.Join(out, "folders", "lobby.html"))
	if strings.Count(lobby, `href="../threads/77.html"`) != 1 {
		t.Fatalf("expected thread listed once in\n%s", lobby)
	}
}

func TestRunAbsentAuthorHasNoStatus(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteThread(t, cfg.Paths.StoreDir, "31", "thead_id: \"31\"\nmessages:\n  - id: \"31.1\"\n    from_status: unread\n    to_status: unread\n")

	runExport(t, export.OptionsFromConfig(cfg, nil))
	page := testsupport.ReadFile(t, filepath.Join(cfg.Paths.OutputDir, "threads", "31.html"))
	contains(t, page, `<span class="msg-author-name">Unknown</span>`)
	if strings.Contains(page, `class="msg-status"`) {
		t.Fatalf("absent names should carry no status:\n%s", page)
	}
}

func TestRunThreadIDFallsBackToFileStem(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteThread(t, cfg.Paths.StoreDir, "stem-42", "metadata:\n  folder: Misc\nmessages:\n  - from: Dee\n")

	runExport(t, export.OptionsFromConfig(cfg, nil))
	page := testsupport.ReadFile(t, filepath.Join(cfg.Paths.OutputDir, "threads", "stem-42.html"))
	contains(t, page, `<h2>Thread stem-42</h2>`, `<article class="message" id="msg-unknown">`)
}

func TestRunEmptyArchive(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	summary := runExport(t, export.OptionsFromConfig(cfg, nil))
	if summary.Threads != 0 || summary.FolderCount() != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	index := testsupport.ReadFile(t, filepath.Join(cfg.Paths.OutputDir, "index.html"))
	contains(t, index, "No forums were captured in this archive.")
}

func TestRunRecordsCatalog(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCatalog())
	testsupport.WriteThread(t, cfg.Paths.StoreDir, "1001", generalThread)

	summary := runExport(t, export.OptionsFromConfig(cfg, nil))
	if summary.CatalogPath != cfg.Catalog.Path {
		t.Fatalf("catalog path = %q, want %q", summary.CatalogPath, cfg.Catalog.Path)
	}

	c := testsupport.MustOpenCatalog(t, cfg.Catalog.Path)
	run, err := c.LatestRun(context.Background())
	if err != nil || run == nil {
		t.Fatalf("LatestRun = %v, %v", run, err)
	}
	if run.ID != summary.RunID || run.Threads != 1 || run.Messages != 2 {
		t.Fatalf("unexpected run: %#v", run)
	}
	rows, err := c.FolderThreads(context.Background(), "general")
	if err != nil || len(rows) != 1 || rows[0].ReplyCount != 1 {
		t.Fatalf("FolderThreads = %#v, %v", rows, err)
	}
}

func TestRunRejectsLockedOutput(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := os.MkdirAll(cfg.Paths.OutputDir, 0o755); err != nil {
		t.Fatal(err)
	}
	held := flock.New(filepath.Join(cfg.Paths.OutputDir, export.LockFileName))
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("TryLock = %v, %v", ok, err)
	}
	t.Cleanup(func() { _ = held.Unlock() })

	_, err = export.Run(context.Background(), export.OptionsFromConfig(cfg, nil))
	if !errors.Is(err, export.ErrOutputLocked) {
		t.Fatalf("expected ErrOutputLocked, got %v", err)
	}
}

func TestRunIsRepeatable(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteThread(t, cfg.Paths.StoreDir, "1001", generalThread)

	runExport(t, export.OptionsFromConfig(cfg, nil))
	first := testsupport.ReadFile(t, filepath.Join(cfg.Paths.OutputDir, "threads", "1001.html"))
	runExport(t, export.OptionsFromConfig(cfg, nil))
	second := testsupport.ReadFile(t, filepath.Join(cfg.Paths.OutputDir, "threads", "1001.html"))
	if first != second {
		t.Fatal("thread page differs between identical runs")
	}
}
