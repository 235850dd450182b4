package archive

import (
	"strings"

	"forumarchive/internal/store"
)

// ProfileLabels is the allow-list of profile fields surfaced on message pages,
// in display order.
var ProfileLabels = []string{"Member Since", "Last visit", "Location", "Interests"}

// ProfileDetail is one label/value pair shown under a message.
type ProfileDetail struct {
	Label string
	Value string
}

// Profiles is the read-only author profile table keyed by ProfileKey. It is
// built once per run and may be shared across concurrent renders.
type Profiles map[string]map[string]string

// ProfileKey derives the profile file stem for an author display name.
func ProfileKey(name string) string {
	return strings.ReplaceAll(name, "/", "_")
}

// NewProfiles copies decoded profile records into a lookup table.
func NewProfiles(records map[string]store.ProfileRecord) Profiles {
	profiles := make(Profiles, len(records))
	for key, rec := range records {
		fields := make(map[string]string, len(rec))
		for label, value := range rec {
			fields[label] = strings.TrimSpace(value.String())
		}
		profiles[key] = fields
	}
	return profiles
}

// Details returns the allow-listed, non-empty fields for key. A missing
// profile yields nil.
func (p Profiles) Details(key string) []ProfileDetail {
	if key == "" {
		return nil
	}
	fields, ok := p[key]
	if !ok {
		return nil
	}
	var details []ProfileDetail
	for _, label := range ProfileLabels {
		if value := fields[label]; value != "" {
			details = append(details, ProfileDetail{Label: label, Value: value})
		}
	}
	return details
}
