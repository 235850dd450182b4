package render

import "strings"

const (
	unreadStatus  = "unread"
	unknownName   = "Unknown"
	unreadSuffix  = " " + unreadStatus
	extraOpenRune = "("
)

// DisplayName is an author or recipient string split into its parts.
type DisplayName struct {
	Primary string
	Extra   string
	Status  string
}

// SplitName parses a raw display name as the scraper captured it.
//
// When status is empty and raw ends with " unread" (any case), the suffix is
// detached and Status becomes "unread". The remainder is then checked for a
// trailing parenthetical group: if it ends with ")" and the segment starting
// at the first "(" has balanced parentheses and something precedes it, that
// segment becomes Extra. An empty name yields Primary "Unknown" with no Extra
// or Status.
func SplitName(raw, status string) DisplayName {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DisplayName{Primary: unknownName}
	}

	status = strings.TrimSpace(status)
	if status == "" && hasFoldSuffix(raw, unreadSuffix) {
		raw = strings.TrimRight(raw[:len(raw)-len(unreadStatus)], " \t\r\n")
		status = unreadStatus
	}
	if strings.EqualFold(status, unreadStatus) {
		status = unreadStatus
	}

	name := DisplayName{Primary: raw, Status: status}
	if strings.HasSuffix(raw, ")") {
		if idx := strings.Index(raw, extraOpenRune); idx > 0 {
			segment := strings.TrimSpace(raw[idx:])
			primary := strings.TrimSpace(raw[:idx])
			if primary != "" && strings.Count(segment, "(") == strings.Count(segment, ")") {
				name.Primary = primary
				name.Extra = segment
			}
		}
	}
	return name
}

// Anchor returns the fragment identifier for a message id.
func Anchor(messageID string) string {
	return "msg-" + strings.ReplaceAll(messageID, ".", "-")
}

func hasFoldSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
