// Package contenthash maps remote asset URLs to the content-addressed file
// names the forum scraper used when it saved binaries, and copies matching
// binaries into an export tree on first reference.
//
// The naming rule is a compatibility contract with an external, frozen store
// layout: the SHA-1 hex digest of the URL without its trailing extension,
// followed by that extension verbatim. Changing it breaks every existing
// archive.
package contenthash
