package store

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"forumarchive/internal/logging"
)

// Store directory names.
const (
	ThreadsDir  = "threads"
	ProfilesDir = "profiles"
	FilesDir    = "files"
)

var recordExtensions = []string{".yaml", ".yml"}

// Store is a read-only view of a scraper output directory.
type Store struct {
	root   string
	logger *slog.Logger
}

// Open returns a Store rooted at root. It does not touch the filesystem;
// callers check preconditions with ThreadsPath.
func Open(root string, logger *slog.Logger) *Store {
	return &Store{root: root, logger: logging.NewComponentLogger(logger, "store")}
}

// Root returns the store directory.
func (s *Store) Root() string { return s.root }

// ThreadsPath returns the threads directory.
func (s *Store) ThreadsPath() string { return filepath.Join(s.root, ThreadsDir) }

// ProfilesPath returns the profiles directory.
func (s *Store) ProfilesPath() string { return filepath.Join(s.root, ProfilesDir) }

// FilesPath returns the hashed binaries directory.
func (s *Store) FilesPath() string { return filepath.Join(s.root, FilesDir) }

// ThreadFiles lists thread record paths sorted lexicographically by file name.
func (s *Store) ThreadFiles() ([]string, error) {
	return listRecords(s.ThreadsPath())
}

// LoadThread decodes one thread record. An empty file yields a record with no
// messages rather than an error.
func (s *Store) LoadThread(path string) (ThreadRecord, error) {
	var rec ThreadRecord
	if err := decodeFile(path, &rec); err != nil {
		return ThreadRecord{}, err
	}
	rec.Stem = stem(path)
	return rec, nil
}

// LoadProfiles reads every profile record into a table keyed by file stem. A
// missing profiles directory yields an empty table. Records that fail to
// decode are skipped with a warning.
func (s *Store) LoadProfiles() (map[string]ProfileRecord, error) {
	profiles := make(map[string]ProfileRecord)
	paths, err := listRecords(s.ProfilesPath())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("no profiles directory", logging.String("path", s.ProfilesPath()))
			return profiles, nil
		}
		return nil, err
	}
	for _, path := range paths {
		var rec ProfileRecord
		if err := decodeFile(path, &rec); err != nil {
			logging.WarnWithContext(s.logger, "skipping unreadable profile", "profile_decode_failed",
				logging.String("path", path),
				logging.Error(err),
				logging.String(logging.FieldImpact, "author details omitted from messages"),
			)
			continue
		}
		if rec == nil {
			rec = ProfileRecord{}
		}
		profiles[stem(path)] = rec
	}
	return profiles, nil
}

func listRecords(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !isRecord(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Slice(paths, func(i, j int) bool {
		return filepath.Base(paths[i]) < filepath.Base(paths[j])
	})
	return paths, nil
}

func isRecord(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range recordExtensions {
		if ext == want {
			return true
		}
	}
	return false
}

func decodeFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
