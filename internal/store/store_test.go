package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"forumarchive/internal/logging"
)

func writeRecord(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, time.January, 1, 10, 30, 0, 0, time.UTC)
	tests := []struct {
		raw  string
		want *time.Time
	}{
		{raw: "Mon Jan 01 10:30:00 2024", want: &want},
		{raw: "Mon Jan  1 10:30:00 2024", want: &want},
		{raw: "Mon Jan 1 10:30:00 2024", want: &want},
		{raw: "  Mon Jan 01 10:30:00 2024  ", want: &want},
		{raw: "", want: nil},
		{raw: "yesterday", want: nil},
		{raw: "2024-01-01 10:30", want: nil},
	}
	for _, tc := range tests {
		got := ParseDate(tc.raw)
		switch {
		case tc.want == nil && got != nil:
			t.Fatalf("ParseDate(%q) = %v, want nil", tc.raw, got)
		case tc.want != nil && got == nil:
			t.Fatalf("ParseDate(%q) = nil, want %v", tc.raw, tc.want)
		case tc.want != nil && !got.Equal(*tc.want):
			t.Fatalf("ParseDate(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestLoadThreadKeepsScalarText(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ThreadsDir, "1001.yaml")
	writeRecord(t, path, `
thead_id: 1001
metadata:
  topic: Hello
  folder: ~
  views: 017
messages:
  - id: 1001.1
    from: Alice (guest) unread
    date: Mon Jan 01 10:30:00 2024
    content: "<p>Hi</p>"
    images: ["http://example.com/a.png", null]
    attachments:
      - href: http://example.com/file.zip
        size: 12 KB
  - id: 1001.2
    from: Bob
    in_reply_to: 1001.1
    attachments: ~
`)

	s := Open(root, logging.NewNop())
	rec, err := s.LoadThread(path)
	if err != nil {
		t.Fatalf("LoadThread: %v", err)
	}
	if rec.Stem != "1001" || rec.TheadID != "1001" {
		t.Fatalf("unexpected ids: stem=%q thead_id=%q", rec.Stem, rec.TheadID)
	}
	if rec.Metadata.Folder != "" {
		t.Fatalf("expected null folder to decode empty, got %q", rec.Metadata.Folder)
	}
	if rec.Metadata.Views != "017" {
		t.Fatalf("expected literal views text, got %q", rec.Metadata.Views)
	}
	if len(rec.Messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(rec.Messages))
	}
	first := rec.Messages[0]
	if first.ID != "1001.1" {
		t.Fatalf("expected float-looking id preserved, got %q", first.ID)
	}
	if len(first.Images) != 2 || first.Images[1] != "" {
		t.Fatalf("unexpected images: %#v", first.Images)
	}
	if len(first.Attachments) != 1 || first.Attachments[0].Size != "12 KB" || first.Attachments[0].Name != "" {
		t.Fatalf("unexpected attachments: %#v", first.Attachments)
	}
	if rec.Messages[1].InReplyTo != "1001.1" {
		t.Fatalf("unexpected in_reply_to: %q", rec.Messages[1].InReplyTo)
	}
}

func TestLoadThreadEmptyFile(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ThreadsDir, "empty.yaml")
	writeRecord(t, path, "\n")

	rec, err := Open(root, nil).LoadThread(path)
	if err != nil {
		t.Fatalf("LoadThread: %v", err)
	}
	if len(rec.Messages) != 0 || rec.Stem != "empty" {
		t.Fatalf("unexpected record: %#v", rec)
	}
}

func TestLoadThreadMalformed(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ThreadsDir, "bad.yaml")
	writeRecord(t, path, "messages: [unterminated\n")

	if _, err := Open(root, nil).LoadThread(path); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestThreadFilesSortedAndFiltered(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"b.yaml", "a.yml", "c.txt", "10.yaml", "2.yaml"} {
		writeRecord(t, filepath.Join(root, ThreadsDir, name), "messages: []\n")
	}
	if err := os.MkdirAll(filepath.Join(root, ThreadsDir, "sub.yaml"), 0o755); err != nil {
		t.Fatal(err)
	}

	paths, err := Open(root, nil).ThreadFiles()
	if err != nil {
		t.Fatalf("ThreadFiles: %v", err)
	}
	var names []string
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	want := []string{"10.yaml", "2.yaml", "a.yml", "b.yaml"}
	if len(names) != len(want) {
		t.Fatalf("got %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("got %v, want %v", names, want)
		}
	}
}

func TestLoadProfiles(t *testing.T) {
	root := t.TempDir()
	writeRecord(t, filepath.Join(root, ProfilesDir, "Alice.yaml"), "Member Since: 2001\nLocation: Leeds\n")
	writeRecord(t, filepath.Join(root, ProfilesDir, "Bob_Team.yaml"), "")
	writeRecord(t, filepath.Join(root, ProfilesDir, "broken.yaml"), "- not\n- a mapping\n")

	profiles, err := Open(root, logging.NewNop()).LoadProfiles()
	if err != nil {
		t.Fatalf("LoadProfiles: %v", err)
	}
	if got := profiles["Alice"]["Member Since"]; got != "2001" {
		t.Fatalf("unexpected member since: %q", got)
	}
	if _, ok := profiles["Bob_Team"]; !ok {
		t.Fatal("expected empty profile to be present")
	}
	if _, ok := profiles["broken"]; ok {
		t.Fatal("expected malformed profile to be skipped")
	}
}

func TestLoadProfilesMissingDirectory(t *testing.T) {
	profiles, err := Open(t.TempDir(), nil).LoadProfiles()
	if err != nil {
		t.Fatalf("LoadProfiles: %v", err)
	}
	if len(profiles) != 0 {
		t.Fatalf("expected empty table, got %v", profiles)
	}
}
