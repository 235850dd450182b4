// Package export drives one full rebuild of the static archive.
//
// Run checks that the store has a threads directory, takes an exclusive lock
// on the output directory, then makes a single pass over thread records in
// file-name order: each record is loaded, built into a Thread, rendered, and
// written before the next is read. Folder and index pages are rendered once
// every thread has been seen. Files from earlier exports are overwritten but
// never removed.
package export
