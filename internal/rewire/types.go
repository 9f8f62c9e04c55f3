package rewire

import (
	"context"
	"fmt"
)

// Policy decides what happens to an existing upstream remote.
type Policy string

const (
	PolicyNormalize Policy = "normalize"
	PolicyKeep      Policy = "keep"
	PolicyRemove    Policy = "remove"
)

// Kind classifies a repository by its origin.
type Kind string

const (
	KindOwn        Kind = "own"
	KindThirdParty Kind = "third-party"
	KindUnmanaged  Kind = "unmanaged"
	KindNoOrigin   Kind = "no-origin"
	KindInvalid    Kind = "invalid"
)

// Status is the outcome for a single repository.
type Status string

const (
	StatusUnchanged Status = "unchanged"
	StatusPlanned   Status = "planned"
	StatusApplied   Status = "applied"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Op is a single mutation.
type Op string

const (
	OpFork         Op = "fork"
	OpSetURL       Op = "set-url"
	OpAddRemote    Op = "add-remote"
	OpRemoveRemote Op = "remove-remote"
)

// Action is one planned mutation of a repository or the forge.
type Action struct {
	Op     Op     `json:"op"`
	Remote string `json:"remote,omitempty"`
	URL    string `json:"url,omitempty"`
	OldURL string `json:"old_url,omitempty"`
	Repo   string `json:"repo,omitempty"` // owner/repo being forked
}

func (a Action) String() string {
	switch a.Op {
	case OpFork:
		return "fork " + a.Repo
	case OpSetURL:
		return fmt.Sprintf("set %s -> %s", a.Remote, a.URL)
	case OpAddRemote:
		return fmt.Sprintf("add %s -> %s", a.Remote, a.URL)
	case OpRemoveRemote:
		return "remove " + a.Remote
	default:
		return string(a.Op)
	}
}

// Invert returns the action that undoes a, or false for forks which are
// never deleted.
func (a Action) Invert() (Action, bool) {
	switch a.Op {
	case OpSetURL:
		return Action{Op: OpSetURL, Remote: a.Remote, URL: a.OldURL, OldURL: a.URL}, true
	case OpAddRemote:
		return Action{Op: OpRemoveRemote, Remote: a.Remote, OldURL: a.URL}, true
	case OpRemoveRemote:
		return Action{Op: OpAddRemote, Remote: a.Remote, URL: a.OldURL}, true
	default:
		return Action{}, false
	}
}

// Result is the plan and outcome for one repository.
type Result struct {
	Path    string   `json:"path"`
	Kind    Kind     `json:"kind"`
	Host    string   `json:"host,omitempty"`
	Owner   string   `json:"owner,omitempty"`
	Repo    string   `json:"repo,omitempty"`
	User    string   `json:"user,omitempty"`
	Status  Status   `json:"status"`
	Reason  string   `json:"reason,omitempty"`
	Actions []Action `json:"actions,omitempty"`
	Applied []Action `json:"applied,omitempty"`
	Error   string   `json:"error,omitempty"`
	Err     error    `json:"-"`
}

// FullName returns "owner/repo" of the origin, or "" when unknown.
func (r *Result) FullName() string {
	if r.Owner == "" {
		return ""
	}
	return r.Owner + "/" + r.Repo
}

func (r *Result) skip(kind Kind, format string, args ...any) {
	r.Kind = kind
	r.Status = StatusSkipped
	r.Reason = fmt.Sprintf(format, args...)
}

func (r *Result) fail(err error) {
	r.Status = StatusFailed
	r.Err = err
	r.Error = err.Error()
}

// Git is the subset of git remote operations the engine needs.
type Git interface {
	ListRemotes(ctx context.Context, dir string) (map[string]string, error)
	SetRemoteURL(ctx context.Context, dir, name, url string) error
	AddRemote(ctx context.Context, dir, name, url string) error
	RemoveRemote(ctx context.Context, dir, name string) error
}
