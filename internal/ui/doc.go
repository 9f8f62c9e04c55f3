// Package ui groups the terminal presentation used by forkup.
//
//   - static: plain tables for plans, scans and history
//   - progress: spinner and progress bar drawn on stderr while repositories
//     are processed
//   - prompt: the yes/no confirmation shown before applying a plan
//   - styles: shared colors and status rendering
//
// Everything interactive renders to stderr so stdout stays pipeable
// (forkup sync --script | sh).
package ui
