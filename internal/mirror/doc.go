// Package mirror keeps a surface tree in step with a plain-text file.
//
// A file is read as paragraphs: runs of non-blank lines separated by one or
// more blank lines. Each paragraph maps to one block element holding a single
// text node under the mirror's root. Apply diffs the paragraphs currently on
// the surface against new content and performs the smallest edit, so the
// changes reach observers as ordinary mutation records, the same way an
// out-of-band edit would.
//
// Watcher turns file writes into content deliveries, debounced so that a
// burst of writes from an editor produces one Apply.
package mirror
