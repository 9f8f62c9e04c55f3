// Package rewire decides how each repository's remotes should change and
// carries those changes out.
//
// # Classification
//
// A repository is classified by its origin remote:
//
//   - no-origin: there is no remote named origin
//   - invalid: origin does not parse as a hosted repository URL
//   - unmanaged: origin points at a host without a configured forge
//   - own: origin's owner is the acting user on that host
//   - third-party: anything else
//
// Hosts written as SSH config aliases ("github.com-work") belong to the
// host they extend, and the alias is kept when rewriting in SSH form.
//
// # Planning and applying
//
// [Engine.Plan] is read-only. It lists remotes and, for third-party
// repositories, looks up the user's fork on the forge. [Engine.Apply] runs
// the planned actions in order (fork, origin, upstream) and stops at the
// first failure for that repository. [Engine.Run] processes many
// repositories, skipping and continuing past individual failures, and
// aggregates them into a single error.
//
// # Upstream policy
//
//   - normalize: third-party repos get upstream pointing at the original
//     repository; own repos get an existing upstream rewritten to the
//     selected protocol, or removed when it duplicates origin
//   - keep: an existing upstream is left alone, a missing one is added for
//     third-party repos
//   - remove: upstream is removed if present
package rewire
