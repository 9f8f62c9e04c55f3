// Package remote parses git remote URLs into host, owner and repository
// components and formats canonical remote URLs.
//
// Supported input forms:
//
//   - scp-like SSH: git@github.com:owner/repo.git, github.com-work:owner/repo
//   - ssh://[user@]host[:port]/owner/repo.git (also git+ssh://, ssh+git://)
//   - https://[user[:pass]@]host[:port]/owner/repo.git (also http://, git://)
//
// The owner is every path segment but the last, so GitLab subgroups such as
// group/subgroup/repo yield owner "group/subgroup". Local paths and file://
// URLs have no owner and are rejected with [ErrUnparseable].
package remote
