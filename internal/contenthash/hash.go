package contenthash

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
)

// extensionPattern matches a trailing dot followed by one to five characters
// that are not '.', '/', '?', '&', '=' or '-'.
var extensionPattern = regexp.MustCompile(`(\.[^./?&=\-]{1,5})$`)

// SplitExtension separates url into the hashed prefix and the trailing
// extension (including the dot). ext is empty when the URL has none.
func SplitExtension(url string) (prefix, ext string) {
	loc := extensionPattern.FindStringSubmatchIndex(url)
	if loc == nil {
		return url, ""
	}
	return url[:loc[2]], url[loc[2]:loc[3]]
}

// Name returns the file name the scraper stored url under.
func Name(url string) string {
	prefix, ext := SplitExtension(url)
	sum := sha1.Sum([]byte(prefix))
	return hex.EncodeToString(sum[:]) + ext
}
