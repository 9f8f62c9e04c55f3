// Package prompt provides simple interactive prompts.
//
// Available prompts:
//   - [Confirm]: Yes/No confirmation prompt
package prompt
