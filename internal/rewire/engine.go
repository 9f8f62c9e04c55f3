package rewire

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/raphi011/forkup/internal/forge"
	"github.com/raphi011/forkup/internal/git"
	"github.com/raphi011/forkup/internal/log"
	"github.com/raphi011/forkup/internal/remote"
)

// Options configure the decisions made by the engine.
type Options struct {
	// Users maps each managed host to the acting user.
	Users map[string]string
	// Protocol is the form rewritten URLs take.
	Protocol remote.Protocol
	// Upstream is the upstream remote policy.
	Upstream Policy
	// Fork enables creating missing forks.
	Fork bool
}

// Engine plans and applies remote rewiring.
type Engine struct {
	Git    Git
	Forges map[string]forge.Forge // managed host -> forge
	Options

	// ForkWait is the delay between checks for a freshly created fork.
	ForkWait time.Duration
	// ForkChecks is how many times the fork is looked up after creation.
	ForkChecks int
}

// New returns an engine using the git CLI.
func New(forges map[string]forge.Forge, opts Options) *Engine {
	return &Engine{
		Git:        git.CLI{},
		Forges:     forges,
		Options:    opts,
		ForkWait:   2 * time.Second,
		ForkChecks: 5,
	}
}

// ManagedHost maps a remote host to the entry of managed it belongs to.
// SSH config aliases of the form "<host>-<suffix>" count as the host; the
// longest matching host wins.
func ManagedHost[V any](host string, managed map[string]V) (string, bool) {
	if _, ok := managed[host]; ok {
		return host, true
	}
	best := ""
	for h := range managed {
		if strings.HasPrefix(host, h+"-") && len(h) > len(best) {
			best = h
		}
	}
	return best, best != ""
}

func (e *Engine) managedHost(host string) (string, bool) {
	return ManagedHost(host, e.Forges)
}

// urlFor formats owner/repo on the managed host. In SSH form an alias
// written in the current remote is kept so per-account keys keep working.
func (e *Engine) urlFor(managed string, current remote.Remote, owner, repo string) string {
	host := managed
	if e.Protocol == remote.SSH && current.Protocol == remote.SSH && current.Host != managed {
		host = current.Host
	}
	return remote.Format(host, owner, repo, e.Protocol)
}

// Classify reports the kind of the repository at path from its origin
// remote alone. It neither contacts the forge nor mutates anything.
func (e *Engine) Classify(ctx context.Context, path string) Result {
	res, _, _ := e.classify(ctx, path)
	if res.Status == "" {
		res.Status = StatusUnchanged
	}
	return res
}

// classify fills in Kind, Host, Owner, Repo and User. A non-empty Status
// means the repository needs no further planning.
func (e *Engine) classify(ctx context.Context, path string) (Result, map[string]string, remote.Remote) {
	res := Result{Path: path}

	remotes, err := e.Git.ListRemotes(ctx, path)
	if err != nil {
		res.fail(err)
		return res, nil, remote.Remote{}
	}

	originURL, ok := remotes[git.Origin]
	if !ok {
		res.skip(KindNoOrigin, "no %s remote", git.Origin)
		return res, remotes, remote.Remote{}
	}

	origin, err := remote.Parse(originURL)
	if err != nil {
		res.skip(KindInvalid, "cannot parse %s URL %q", git.Origin, originURL)
		return res, remotes, origin
	}

	res.Owner, res.Repo = origin.Owner, origin.Repo
	host, ok := e.managedHost(origin.Host)
	if !ok {
		res.Host = origin.Host
		res.skip(KindUnmanaged, "host %s is not managed", origin.Host)
		return res, remotes, origin
	}

	res.Host = host
	res.User = e.Users[host]
	if res.User == "" {
		res.fail(fmt.Errorf("no acting user for host %s", host))
		return res, remotes, origin
	}

	if strings.EqualFold(origin.Owner, res.User) {
		res.Kind = KindOwn
	} else {
		res.Kind = KindThirdParty
	}
	return res, remotes, origin
}

// Plan inspects the repository at path and decides what to change.
// It never mutates anything.
func (e *Engine) Plan(ctx context.Context, path string) Result {
	res, remotes, origin := e.classify(ctx, path)
	if res.Status != "" {
		return res
	}
	host := res.Host
	originURL := remotes[git.Origin]

	upstreamURL, hasUpstream := remotes[git.Upstream]

	if res.Kind == KindOwn {
		if want := e.urlFor(host, origin, origin.Owner, origin.Repo); originURL != want {
			res.Actions = append(res.Actions, Action{Op: OpSetURL, Remote: git.Origin, URL: want, OldURL: originURL})
		}
		if hasUpstream {
			res.Actions = append(res.Actions, e.planOwnUpstream(ctx, host, origin, upstreamURL)...)
		}
	} else {
		f := e.Forges[host]
		forkName := res.User + "/" + origin.Repo

		existing, err := f.GetRepo(ctx, host, forkName)
		switch {
		case errors.Is(err, forge.ErrNotFound):
			if !e.Fork {
				res.skip(KindThirdParty, "no fork %s and forking is disabled", forkName)
				return res
			}
			res.Actions = append(res.Actions, Action{Op: OpFork, Repo: origin.FullName()})
		case err != nil:
			res.fail(fmt.Errorf("look up %s: %w", forkName, err))
			return res
		case !existing.IsForkOf(origin.FullName()):
			res.skip(KindThirdParty, "%s exists but is not a fork of %s", existing.FullName, origin.FullName())
			return res
		}

		res.Actions = append(res.Actions, Action{
			Op:     OpSetURL,
			Remote: git.Origin,
			URL:    e.urlFor(host, origin, res.User, origin.Repo),
			OldURL: originURL,
		})

		target := e.urlFor(host, origin, origin.Owner, origin.Repo)
		switch {
		case e.Upstream == PolicyRemove:
			if hasUpstream {
				res.Actions = append(res.Actions, Action{Op: OpRemoveRemote, Remote: git.Upstream, OldURL: upstreamURL})
			}
		case !hasUpstream:
			res.Actions = append(res.Actions, Action{Op: OpAddRemote, Remote: git.Upstream, URL: target})
		case e.Upstream == PolicyNormalize && upstreamURL != target:
			res.Actions = append(res.Actions, Action{Op: OpSetURL, Remote: git.Upstream, URL: target, OldURL: upstreamURL})
		}
	}

	if len(res.Actions) == 0 {
		res.Status = StatusUnchanged
	} else {
		res.Status = StatusPlanned
	}
	log.FromContext(ctx).Debug("planned", "path", path, "kind", res.Kind, "actions", len(res.Actions))
	return res
}

// planOwnUpstream handles an existing upstream on a repository the user owns.
func (e *Engine) planOwnUpstream(ctx context.Context, host string, origin remote.Remote, upstreamURL string) []Action {
	switch e.Upstream {
	case PolicyKeep:
		return nil
	case PolicyRemove:
		return []Action{{Op: OpRemoveRemote, Remote: git.Upstream, OldURL: upstreamURL}}
	}

	l := log.FromContext(ctx)
	up, err := remote.Parse(upstreamURL)
	if err != nil {
		l.Debug("leaving upstream alone", "reason", "unparseable", "url", upstreamURL)
		return nil
	}
	upHost, ok := e.managedHost(up.Host)
	if !ok {
		l.Debug("leaving upstream alone", "reason", "unmanaged host", "url", upstreamURL)
		return nil
	}

	upCanon, originCanon := up, origin
	upCanon.Host, originCanon.Host = upHost, host
	if upCanon.SameRepo(originCanon) {
		return []Action{{Op: OpRemoveRemote, Remote: git.Upstream, OldURL: upstreamURL}}
	}
	if want := e.urlFor(upHost, up, up.Owner, up.Repo); want != upstreamURL {
		return []Action{{Op: OpSetURL, Remote: git.Upstream, URL: want, OldURL: upstreamURL}}
	}
	return nil
}

// Apply executes the planned actions of res in order. It stops at the first
// failing action and marks the result failed.
func (e *Engine) Apply(ctx context.Context, res *Result) error {
	if res.Status != StatusPlanned {
		return nil
	}

	for _, a := range res.Actions {
		if err := e.apply(ctx, res, a); err != nil {
			err = fmt.Errorf("%s: %w", a, err)
			res.fail(err)
			return err
		}
		res.Applied = append(res.Applied, a)
	}
	res.Status = StatusApplied
	return nil
}

func (e *Engine) apply(ctx context.Context, res *Result, a Action) error {
	switch a.Op {
	case OpFork:
		return e.fork(ctx, res, a.Repo)
	case OpSetURL:
		return e.Git.SetRemoteURL(ctx, res.Path, a.Remote, a.URL)
	case OpAddRemote:
		return e.Git.AddRemote(ctx, res.Path, a.Remote, a.URL)
	case OpRemoveRemote:
		return e.Git.RemoveRemote(ctx, res.Path, a.Remote)
	default:
		return fmt.Errorf("unknown action %q", a.Op)
	}
}

// fork creates the fork and waits until it shows up under the user.
func (e *Engine) fork(ctx context.Context, res *Result, parent string) error {
	f := e.Forges[res.Host]
	if err := f.Fork(ctx, res.Host, parent); err != nil {
		return err
	}

	forkName := res.User + "/" + res.Repo
	checks := max(e.ForkChecks, 1)
	for i := range checks {
		repo, err := f.GetRepo(ctx, res.Host, forkName)
		if err == nil {
			if !repo.IsForkOf(parent) {
				return fmt.Errorf("%s exists but is not a fork of %s", repo.FullName, parent)
			}
			return nil
		}
		if !errors.Is(err, forge.ErrNotFound) {
			return err
		}
		if i < checks-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(e.ForkWait):
			}
		}
	}
	return fmt.Errorf("fork of %s was created but %s is not visible (renamed fork?)", parent, forkName)
}

// Run plans every path and, unless dryRun, applies the plan right away.
// onResult is called after each repository. The returned error aggregates
// failed repositories; skipped ones are not errors.
func (e *Engine) Run(ctx context.Context, paths []string, dryRun bool, onResult func(Result)) ([]Result, error) {
	results := make([]Result, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return results, multierror.Append(Errors(results), err)
		}
		res := e.Plan(ctx, p)
		if !dryRun {
			_ = e.Apply(ctx, &res)
		}
		if onResult != nil {
			onResult(res)
		}
		results = append(results, res)
	}
	return results, Errors(results)
}

// ApplyAll applies previously planned results in place.
func (e *Engine) ApplyAll(ctx context.Context, results []Result, onResult func(Result)) error {
	for i := range results {
		if err := ctx.Err(); err != nil {
			return multierror.Append(Errors(results), err)
		}
		if results[i].Status != StatusPlanned {
			continue
		}
		_ = e.Apply(ctx, &results[i])
		if onResult != nil {
			onResult(results[i])
		}
	}
	return Errors(results)
}

// Revert undoes actions previously applied to the repository at path, in
// reverse order. Forks are left in place.
func (e *Engine) Revert(ctx context.Context, path string, applied []Action, dryRun bool) Result {
	res := Result{Path: path, Status: StatusUnchanged}
	for i := len(applied) - 1; i >= 0; i-- {
		if inv, ok := applied[i].Invert(); ok {
			res.Actions = append(res.Actions, inv)
		}
	}
	if len(res.Actions) == 0 {
		return res
	}
	res.Status = StatusPlanned
	if dryRun {
		return res
	}
	_ = e.Apply(ctx, &res)
	return res
}

// Errors aggregates the errors of failed results, or returns nil.
func Errors(results []Result) error {
	var errs *multierror.Error
	for _, r := range results {
		if r.Status == StatusFailed {
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", r.Path, r.Err))
		}
	}
	return errs.ErrorOrNil()
}
