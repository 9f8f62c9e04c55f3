package rewire

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/raphi011/forkup/internal/forge"
	"github.com/raphi011/forkup/internal/remote"
)

const testUser = "me"

func newTestEngine(g *fakeGit, f *fakeForge, opts Options) *Engine {
	if opts.Users == nil {
		opts.Users = map[string]string{"github.com": testUser}
	}
	if opts.Protocol == "" {
		opts.Protocol = remote.SSH
	}
	if opts.Upstream == "" {
		opts.Upstream = PolicyNormalize
	}
	return &Engine{
		Git:        g,
		Forges:     map[string]forge.Forge{"github.com": f},
		Options:    opts,
		ForkChecks: 2,
	}
}

func TestPlan(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		remotes    map[string]string
		forgeRepos map[string]string // full name -> parent
		opts       Options
		wantKind   Kind
		wantStatus Status
		wantReason string
		want       []Action
	}{
		{
			name:       "no origin",
			remotes:    map[string]string{"upstream": "git@github.com:a/b.git"},
			wantKind:   KindNoOrigin,
			wantStatus: StatusSkipped,
		},
		{
			name:       "unparseable origin",
			remotes:    map[string]string{"origin": "/srv/git/local"},
			wantKind:   KindInvalid,
			wantStatus: StatusSkipped,
		},
		{
			name:       "unmanaged host",
			remotes:    map[string]string{"origin": "git@example.org:a/b.git"},
			wantKind:   KindUnmanaged,
			wantStatus: StatusSkipped,
		},
		{
			name:       "own repo already canonical",
			remotes:    map[string]string{"origin": "git@github.com:me/tool.git"},
			wantKind:   KindOwn,
			wantStatus: StatusUnchanged,
		},
		{
			name:       "own repo owner differs in case",
			remotes:    map[string]string{"origin": "git@github.com:ME/tool.git"},
			wantKind:   KindOwn,
			wantStatus: StatusUnchanged,
		},
		{
			name:       "own repo https to ssh",
			remotes:    map[string]string{"origin": "https://github.com/me/tool"},
			wantKind:   KindOwn,
			wantStatus: StatusPlanned,
			want: []Action{
				{Op: OpSetURL, Remote: "origin", URL: "git@github.com:me/tool.git", OldURL: "https://github.com/me/tool"},
			},
		},
		{
			name: "own repo upstream duplicates origin",
			remotes: map[string]string{
				"origin":   "git@github.com:me/tool.git",
				"upstream": "https://github.com/me/tool.git",
			},
			wantKind:   KindOwn,
			wantStatus: StatusPlanned,
			want: []Action{
				{Op: OpRemoveRemote, Remote: "upstream", OldURL: "https://github.com/me/tool.git"},
			},
		},
		{
			name: "own repo upstream normalized",
			remotes: map[string]string{
				"origin":   "git@github.com:me/tool.git",
				"upstream": "https://github.com/other/tool",
			},
			wantKind:   KindOwn,
			wantStatus: StatusPlanned,
			want: []Action{
				{Op: OpSetURL, Remote: "upstream", URL: "git@github.com:other/tool.git", OldURL: "https://github.com/other/tool"},
			},
		},
		{
			name: "own repo upstream kept",
			remotes: map[string]string{
				"origin":   "git@github.com:me/tool.git",
				"upstream": "https://github.com/me/tool.git",
			},
			opts:       Options{Upstream: PolicyKeep},
			wantKind:   KindOwn,
			wantStatus: StatusUnchanged,
		},
		{
			name: "own repo upstream on unmanaged host left alone",
			remotes: map[string]string{
				"origin":   "git@github.com:me/tool.git",
				"upstream": "https://example.org/other/tool.git",
			},
			wantKind:   KindOwn,
			wantStatus: StatusUnchanged,
		},
		{
			name:       "third party with fork",
			remotes:    map[string]string{"origin": "https://github.com/acme/widget.git"},
			forgeRepos: map[string]string{"me/widget": "acme/widget"},
			wantKind:   KindThirdParty,
			wantStatus: StatusPlanned,
			want: []Action{
				{Op: OpSetURL, Remote: "origin", URL: "git@github.com:me/widget.git", OldURL: "https://github.com/acme/widget.git"},
				{Op: OpAddRemote, Remote: "upstream", URL: "git@github.com:acme/widget.git"},
			},
		},
		{
			name:       "third party without fork",
			remotes:    map[string]string{"origin": "git@github.com:acme/widget.git"},
			wantKind:   KindThirdParty,
			wantStatus: StatusPlanned,
			want: []Action{
				{Op: OpFork, Repo: "acme/widget"},
				{Op: OpSetURL, Remote: "origin", URL: "git@github.com:me/widget.git", OldURL: "git@github.com:acme/widget.git"},
				{Op: OpAddRemote, Remote: "upstream", URL: "git@github.com:acme/widget.git"},
			},
		},
		{
			name:       "third party without fork and forking disabled",
			remotes:    map[string]string{"origin": "git@github.com:acme/widget.git"},
			opts:       Options{Fork: false},
			wantKind:   KindThirdParty,
			wantStatus: StatusSkipped,
			wantReason: "forking is disabled",
		},
		{
			name:       "name collision with unrelated repo",
			remotes:    map[string]string{"origin": "git@github.com:acme/widget.git"},
			forgeRepos: map[string]string{"me/widget": ""},
			wantKind:   KindThirdParty,
			wantStatus: StatusSkipped,
			wantReason: "not a fork of acme/widget",
		},
		{
			name: "third party upstream normalized",
			remotes: map[string]string{
				"origin":   "git@github.com:acme/widget.git",
				"upstream": "https://github.com/acme/widget",
			},
			forgeRepos: map[string]string{"me/widget": "acme/widget"},
			wantKind:   KindThirdParty,
			wantStatus: StatusPlanned,
			want: []Action{
				{Op: OpSetURL, Remote: "origin", URL: "git@github.com:me/widget.git", OldURL: "git@github.com:acme/widget.git"},
				{Op: OpSetURL, Remote: "upstream", URL: "git@github.com:acme/widget.git", OldURL: "https://github.com/acme/widget"},
			},
		},
		{
			name: "third party upstream kept",
			remotes: map[string]string{
				"origin":   "git@github.com:acme/widget.git",
				"upstream": "https://github.com/acme/widget",
			},
			forgeRepos: map[string]string{"me/widget": "acme/widget"},
			opts:       Options{Upstream: PolicyKeep},
			wantKind:   KindThirdParty,
			wantStatus: StatusPlanned,
			want: []Action{
				{Op: OpSetURL, Remote: "origin", URL: "git@github.com:me/widget.git", OldURL: "git@github.com:acme/widget.git"},
			},
		},
		{
			name: "third party upstream removed",
			remotes: map[string]string{
				"origin":   "git@github.com:acme/widget.git",
				"upstream": "https://github.com/acme/widget",
			},
			forgeRepos: map[string]string{"me/widget": "acme/widget"},
			opts:       Options{Upstream: PolicyRemove},
			wantKind:   KindThirdParty,
			wantStatus: StatusPlanned,
			want: []Action{
				{Op: OpSetURL, Remote: "origin", URL: "git@github.com:me/widget.git", OldURL: "git@github.com:acme/widget.git"},
				{Op: OpRemoveRemote, Remote: "upstream", OldURL: "https://github.com/acme/widget"},
			},
		},
		{
			name:       "ssh alias preserved",
			remotes:    map[string]string{"origin": "git@github.com-work:acme/widget.git"},
			forgeRepos: map[string]string{"me/widget": "acme/widget"},
			wantKind:   KindThirdParty,
			wantStatus: StatusPlanned,
			want: []Action{
				{Op: OpSetURL, Remote: "origin", URL: "git@github.com-work:me/widget.git", OldURL: "git@github.com-work:acme/widget.git"},
				{Op: OpAddRemote, Remote: "upstream", URL: "git@github.com-work:acme/widget.git"},
			},
		},
		{
			name: "own repo upstream duplicates origin through alias",
			remotes: map[string]string{
				"origin":   "git@github.com-work:me/tool.git",
				"upstream": "https://github.com/Me/Tool.git",
			},
			wantKind:   KindOwn,
			wantStatus: StatusPlanned,
			want: []Action{
				{Op: OpRemoveRemote, Remote: "upstream", OldURL: "https://github.com/Me/Tool.git"},
			},
		},
		{
			name:       "ssh alias dropped for https",
			remotes:    map[string]string{"origin": "git@github.com-work:me/tool.git"},
			opts:       Options{Protocol: remote.HTTPS},
			wantKind:   KindOwn,
			wantStatus: StatusPlanned,
			want: []Action{
				{Op: OpSetURL, Remote: "origin", URL: "https://github.com/me/tool.git", OldURL: "git@github.com-work:me/tool.git"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			g := newFakeGit()
			g.repo("/src/r", tt.remotes)
			f := newFakeForge(testUser)
			for name, parent := range tt.forgeRepos {
				f.add(name, parent)
			}
			opts := tt.opts
			if tt.wantReason != "forking is disabled" {
				opts.Fork = true
			}
			e := newTestEngine(g, f, opts)

			res := e.Plan(context.Background(), "/src/r")

			if res.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", res.Kind, tt.wantKind)
			}
			if res.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q (reason %q, error %q)", res.Status, tt.wantStatus, res.Reason, res.Error)
			}
			if tt.wantReason != "" && !strings.Contains(res.Reason, tt.wantReason) {
				t.Errorf("Reason = %q, want it to contain %q", res.Reason, tt.wantReason)
			}
			if diff := cmp.Diff(tt.want, res.Actions); diff != "" {
				t.Errorf("Actions mismatch (-want +got):\n%s", diff)
			}
			if len(g.calls) != 0 {
				t.Errorf("Plan mutated the repository: %v", g.calls)
			}
			if len(f.forks) != 0 {
				t.Errorf("Plan created forks: %v", f.forks)
			}
		})
	}
}

func TestPlan_Failures(t *testing.T) {
	t.Parallel()

	t.Run("list remotes fails", func(t *testing.T) {
		t.Parallel()
		g := newFakeGit()
		g.listErr = errors.New("not a git repository")
		e := newTestEngine(g, newFakeForge(testUser), Options{Fork: true})

		res := e.Plan(context.Background(), "/src/r")
		if res.Status != StatusFailed || res.Err == nil {
			t.Fatalf("Status = %q, Err = %v, want failed", res.Status, res.Err)
		}
	})

	t.Run("fork lookup fails", func(t *testing.T) {
		t.Parallel()
		g := newFakeGit()
		g.repo("/src/r", map[string]string{"origin": "git@github.com:acme/widget.git"})
		f := newFakeForge(testUser)
		f.lookupErr = errors.New("HTTP 502")
		e := newTestEngine(g, f, Options{Fork: true})

		res := e.Plan(context.Background(), "/src/r")
		if res.Status != StatusFailed {
			t.Fatalf("Status = %q, want failed", res.Status)
		}
		if !strings.Contains(res.Error, "me/widget") {
			t.Errorf("Error = %q, want it to name the fork", res.Error)
		}
	})

	t.Run("no user for host", func(t *testing.T) {
		t.Parallel()
		g := newFakeGit()
		g.repo("/src/r", map[string]string{"origin": "git@github.com:acme/widget.git"})
		e := newTestEngine(g, newFakeForge(testUser), Options{Users: map[string]string{}})

		res := e.Plan(context.Background(), "/src/r")
		if res.Status != StatusFailed {
			t.Fatalf("Status = %q, want failed", res.Status)
		}
	})
}

func TestApply_ForkAndRewire(t *testing.T) {
	t.Parallel()

	g := newFakeGit()
	g.repo("/src/r", map[string]string{"origin": "https://github.com/acme/widget.git"})
	f := newFakeForge(testUser)
	e := newTestEngine(g, f, Options{Fork: true})
	ctx := context.Background()

	res := e.Plan(ctx, "/src/r")
	if err := e.Apply(ctx, &res); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	if res.Status != StatusApplied {
		t.Errorf("Status = %q, want applied", res.Status)
	}
	if diff := cmp.Diff([]string{"acme/widget"}, f.forks); diff != "" {
		t.Errorf("forks mismatch (-want +got):\n%s", diff)
	}
	want := map[string]string{
		"origin":   "git@github.com:me/widget.git",
		"upstream": "git@github.com:acme/widget.git",
	}
	if diff := cmp.Diff(want, g.remotes["/src/r"]); diff != "" {
		t.Errorf("remotes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(res.Actions, res.Applied); diff != "" {
		t.Errorf("Applied mismatch (-want +got):\n%s", diff)
	}

	// A second pass has nothing to do.
	again := e.Plan(ctx, "/src/r")
	if again.Status != StatusUnchanged {
		t.Errorf("second Plan Status = %q, want unchanged (actions %v)", again.Status, again.Actions)
	}
}

func TestApply_ForkNotVisible(t *testing.T) {
	t.Parallel()

	g := newFakeGit()
	g.repo("/src/r", map[string]string{"origin": "git@github.com:acme/widget.git"})
	f := newFakeForge(testUser)
	f.hideForks = true
	e := newTestEngine(g, f, Options{Fork: true})
	ctx := context.Background()

	res := e.Plan(ctx, "/src/r")
	err := e.Apply(ctx, &res)
	if err == nil {
		t.Fatal("Apply() expected error when fork does not show up")
	}
	if res.Status != StatusFailed {
		t.Errorf("Status = %q, want failed", res.Status)
	}
	if len(res.Applied) != 0 {
		t.Errorf("Applied = %v, want none", res.Applied)
	}
	if len(g.calls) != 0 {
		t.Errorf("origin was rewritten despite missing fork: %v", g.calls)
	}
	// one lookup while planning, ForkChecks after forking
	if f.lookups != 1+e.ForkChecks {
		t.Errorf("lookups = %d, want %d", f.lookups, 1+e.ForkChecks)
	}
}

func TestApply_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()

	g := newFakeGit()
	g.repo("/src/r", map[string]string{"origin": "git@github.com:acme/widget.git"})
	g.failOn = "add"
	f := newFakeForge(testUser)
	f.add("me/widget", "acme/widget")
	e := newTestEngine(g, f, Options{Fork: true})
	ctx := context.Background()

	res := e.Plan(ctx, "/src/r")
	if err := e.Apply(ctx, &res); err == nil {
		t.Fatal("Apply() expected error")
	}
	if len(res.Applied) != 1 || res.Applied[0].Remote != "origin" {
		t.Errorf("Applied = %v, want only the origin change", res.Applied)
	}
	if !strings.Contains(res.Error, "add upstream") {
		t.Errorf("Error = %q, want it to name the failed action", res.Error)
	}
}

func TestRun_DryRunNeverMutates(t *testing.T) {
	t.Parallel()

	g := newFakeGit()
	g.repo("/src/a", map[string]string{"origin": "git@github.com:acme/a.git"})
	g.repo("/src/b", map[string]string{"origin": "https://github.com/me/b"})
	g.repo("/src/c", map[string]string{"origin": "git@github.com:acme/c.git", "upstream": "https://github.com/acme/c"})
	f := newFakeForge(testUser)
	f.add("me/c", "acme/c")
	e := newTestEngine(g, f, Options{Fork: true, Upstream: PolicyRemove})

	var seen []string
	results, err := e.Run(context.Background(), []string{"/src/a", "/src/b", "/src/c"}, true, func(r Result) {
		seen = append(seen, r.Path)
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(g.calls) != 0 {
		t.Errorf("dry run mutated repositories: %v", g.calls)
	}
	if len(f.forks) != 0 {
		t.Errorf("dry run created forks: %v", f.forks)
	}
	if diff := cmp.Diff([]string{"/src/a", "/src/b", "/src/c"}, seen); diff != "" {
		t.Errorf("callback order mismatch (-want +got):\n%s", diff)
	}
	for _, r := range results {
		if r.Status != StatusPlanned {
			t.Errorf("%s: Status = %q, want planned", r.Path, r.Status)
		}
	}
}

func TestRun_ContinuesPastFailures(t *testing.T) {
	t.Parallel()

	g := newFakeGit()
	g.repo("/src/a", map[string]string{"origin": "git@github.com:acme/a.git"})
	g.repo("/src/b", map[string]string{"origin": "https://github.com/me/b"})
	g.repo("/src/c", map[string]string{"origin": "git@example.org:x/y.git"})
	f := newFakeForge(testUser)
	f.forkErr = errors.New("forking disabled by organization")
	e := newTestEngine(g, f, Options{Fork: true})

	results, err := e.Run(context.Background(), []string{"/src/a", "/src/b", "/src/c"}, false, nil)
	if err == nil {
		t.Fatal("Run() expected aggregated error")
	}
	if !strings.Contains(err.Error(), "/src/a") {
		t.Errorf("error %q does not name the failed repository", err)
	}

	want := []Status{StatusFailed, StatusApplied, StatusSkipped}
	var got []Status
	for _, r := range results {
		got = append(got, r.Status)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("statuses mismatch (-want +got):\n%s", diff)
	}
	if g.remotes["/src/b"]["origin"] != "git@github.com:me/b.git" {
		t.Errorf("own repo origin = %q, want normalized", g.remotes["/src/b"]["origin"])
	}
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	g := newFakeGit()
	g.repo("/src/a", map[string]string{"origin": "git@github.com:me/a.git"})
	e := newTestEngine(g, newFakeForge(testUser), Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := e.Run(ctx, []string{"/src/a"}, true, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if len(results) != 0 {
		t.Errorf("results = %v, want none", results)
	}
}

func TestApplyAll(t *testing.T) {
	t.Parallel()

	g := newFakeGit()
	g.repo("/src/a", map[string]string{"origin": "https://github.com/me/a"})
	g.repo("/src/b", map[string]string{"origin": "git@github.com:me/b.git"})
	e := newTestEngine(g, newFakeForge(testUser), Options{})
	ctx := context.Background()

	results, err := e.Run(ctx, []string{"/src/a", "/src/b"}, true, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var applied []string
	if err := e.ApplyAll(ctx, results, func(r Result) { applied = append(applied, r.Path) }); err != nil {
		t.Fatalf("ApplyAll() error = %v", err)
	}
	if diff := cmp.Diff([]string{"/src/a"}, applied); diff != "" {
		t.Errorf("applied mismatch (-want +got):\n%s", diff)
	}
	if results[0].Status != StatusApplied || results[1].Status != StatusUnchanged {
		t.Errorf("statuses = %q, %q", results[0].Status, results[1].Status)
	}
}

func TestRevert(t *testing.T) {
	t.Parallel()

	g := newFakeGit()
	before := map[string]string{"origin": "https://github.com/acme/widget.git"}
	g.repo("/src/r", map[string]string{"origin": before["origin"]})
	f := newFakeForge(testUser)
	e := newTestEngine(g, f, Options{Fork: true})
	ctx := context.Background()

	res := e.Plan(ctx, "/src/r")
	if err := e.Apply(ctx, &res); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	dry := e.Revert(ctx, "/src/r", res.Applied, true)
	if dry.Status != StatusPlanned || len(dry.Actions) != 2 {
		t.Fatalf("dry Revert = %+v, want two planned actions", dry)
	}

	rev := e.Revert(ctx, "/src/r", res.Applied, false)
	if rev.Status != StatusApplied {
		t.Fatalf("Revert Status = %q (error %q)", rev.Status, rev.Error)
	}
	if diff := cmp.Diff(before, g.remotes["/src/r"]); diff != "" {
		t.Errorf("remotes after revert mismatch (-want +got):\n%s", diff)
	}
	if len(f.forks) != 1 {
		t.Errorf("forks = %v, revert must not touch forks", f.forks)
	}
}

func TestActionInvert(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     Action
		want   Action
		wantOK bool
	}{
		{
			name:   "set-url swaps",
			in:     Action{Op: OpSetURL, Remote: "origin", URL: "new", OldURL: "old"},
			want:   Action{Op: OpSetURL, Remote: "origin", URL: "old", OldURL: "new"},
			wantOK: true,
		},
		{
			name:   "add becomes remove",
			in:     Action{Op: OpAddRemote, Remote: "upstream", URL: "u"},
			want:   Action{Op: OpRemoveRemote, Remote: "upstream", OldURL: "u"},
			wantOK: true,
		},
		{
			name:   "remove becomes add",
			in:     Action{Op: OpRemoveRemote, Remote: "upstream", OldURL: "u"},
			want:   Action{Op: OpAddRemote, Remote: "upstream", URL: "u"},
			wantOK: true,
		},
		{
			name: "fork is kept",
			in:   Action{Op: OpFork, Repo: "a/b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := tt.in.Invert()
			if ok != tt.wantOK {
				t.Fatalf("Invert() ok = %v, want %v", ok, tt.wantOK)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Invert() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	t.Parallel()

	if err := Errors([]Result{{Status: StatusSkipped}, {Status: StatusApplied}}); err != nil {
		t.Errorf("Errors() = %v, want nil for skips", err)
	}

	cause := errors.New("boom")
	err := Errors([]Result{{Path: "/a", Status: StatusFailed, Err: cause}, {Path: "/b", Status: StatusSkipped}})
	if !errors.Is(err, cause) {
		t.Errorf("Errors() = %v, want it to wrap the cause", err)
	}
}

func TestManagedHost(t *testing.T) {
	t.Parallel()

	hosts := map[string]string{"github.com": "github", "git.example.com": "gitlab", "git.example.com-eu": "gitlab"}
	tests := []struct {
		host   string
		want   string
		wantOK bool
	}{
		{"github.com", "github.com", true},
		{"github.com-work", "github.com", true},
		{"git.example.com-eu", "git.example.com-eu", true},
		{"git.example.com-eu-2", "git.example.com-eu", true},
		{"github.company.com", "", false},
		{"gitlab.com", "", false},
	}
	for _, tt := range tests {
		got, ok := ManagedHost(tt.host, hosts)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ManagedHost(%q) = %q, %v, want %q, %v", tt.host, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	g := newFakeGit()
	g.repo("/src/own", map[string]string{"origin": "https://github.com/me/tool"})
	g.repo("/src/third", map[string]string{"origin": "git@github.com:acme/widget.git"})
	g.repo("/src/other", map[string]string{"origin": "git@example.org:x/y.git"})
	f := newFakeForge(testUser)
	e := newTestEngine(g, f, Options{Fork: true})

	tests := []struct {
		path       string
		wantKind   Kind
		wantStatus Status
	}{
		{"/src/own", KindOwn, StatusUnchanged},
		{"/src/third", KindThirdParty, StatusUnchanged},
		{"/src/other", KindUnmanaged, StatusSkipped},
		{"/src/missing", KindNoOrigin, StatusSkipped},
	}
	for _, tt := range tests {
		res := e.Classify(context.Background(), tt.path)
		if res.Kind != tt.wantKind || res.Status != tt.wantStatus {
			t.Errorf("Classify(%s) = %q/%q, want %q/%q", tt.path, res.Kind, res.Status, tt.wantKind, tt.wantStatus)
		}
		if len(res.Actions) != 0 {
			t.Errorf("Classify(%s) planned actions %v", tt.path, res.Actions)
		}
	}
	if f.lookups != 0 {
		t.Errorf("Classify contacted the forge %d times", f.lookups)
	}
}
