// Package ui is the interactive front end of branchwipe.
//
// [Run] opens a bubbletea view of the repository's local branches backed by
// a [branch.Store]. The view keeps its own copy of the branch names and
// updates it only from the store's observer notifications, which arrive as
// messages. Store calls run inside commands, one at a time: while one is in
// flight, delete and refresh keys are ignored.
//
// # Keys
//
//   - j/k, arrows: move
//   - d: delete the selected branch (git branch -D)
//   - r: reload the list from git
//   - /: fuzzy filter, enter keeps the filter, esc clears it
//   - y: copy the branch name to the clipboard
//   - q, ctrl+c: quit
//
// When confirmation is enabled, d asks y/N before deleting.
package ui
