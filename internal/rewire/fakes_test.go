package rewire

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/raphi011/forkup/internal/forge"
)

// fakeGit keeps remotes per directory in memory and records mutations.
type fakeGit struct {
	mu      sync.Mutex
	remotes map[string]map[string]string
	listErr error
	failOn  string // "set-url", "add", "remove"
	calls   []string
}

func newFakeGit() *fakeGit {
	return &fakeGit{remotes: map[string]map[string]string{}}
}

func (g *fakeGit) repo(dir string, remotes map[string]string) {
	g.remotes[dir] = remotes
}

func (g *fakeGit) ListRemotes(_ context.Context, dir string) (map[string]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.listErr != nil {
		return nil, g.listErr
	}
	out := map[string]string{}
	for k, v := range g.remotes[dir] {
		out[k] = v
	}
	return out, nil
}

func (g *fakeGit) mutate(op, dir, name, url string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, strings.TrimSpace(fmt.Sprintf("%s %s %s %s", op, dir, name, url)))
	if g.failOn == op {
		return errors.New(op + " failed")
	}
	r := g.remotes[dir]
	if r == nil {
		r = map[string]string{}
		g.remotes[dir] = r
	}
	switch op {
	case "set-url", "add":
		r[name] = url
	case "remove":
		delete(r, name)
	}
	return nil
}

func (g *fakeGit) SetRemoteURL(_ context.Context, dir, name, url string) error {
	return g.mutate("set-url", dir, name, url)
}

func (g *fakeGit) AddRemote(_ context.Context, dir, name, url string) error {
	return g.mutate("add", dir, name, url)
}

func (g *fakeGit) RemoveRemote(_ context.Context, dir, name string) error {
	return g.mutate("remove", dir, name, "")
}

// fakeForge serves repositories from memory. Fork registers the fork
// unless hideForks is set.
type fakeForge struct {
	mu        sync.Mutex
	repos     map[string]*forge.Repo // lowercased full name
	user      string
	lookupErr error
	forkErr   error
	hideForks bool
	forks     []string
	lookups   int
}

func newFakeForge(user string) *fakeForge {
	return &fakeForge{repos: map[string]*forge.Repo{}, user: user}
}

func (f *fakeForge) add(fullName, parent string) {
	f.repos[strings.ToLower(fullName)] = &forge.Repo{FullName: fullName, IsFork: parent != "", Parent: parent}
}

func (f *fakeForge) Name() string { return "fake" }

func (f *fakeForge) Check(context.Context, string) error { return nil }

func (f *fakeForge) CurrentUser(context.Context, string) (string, error) { return f.user, nil }

func (f *fakeForge) GetRepo(_ context.Context, _, fullName string) (*forge.Repo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	r, ok := f.repos[strings.ToLower(fullName)]
	if !ok {
		return nil, forge.ErrNotFound
	}
	return r, nil
}

func (f *fakeForge) Fork(_ context.Context, _, fullName string) error {
	f.mu.Lock()
	f.forks = append(f.forks, fullName)
	f.mu.Unlock()
	if f.forkErr != nil {
		return f.forkErr
	}
	if !f.hideForks {
		_, repo, _ := strings.Cut(fullName, "/")
		f.add(f.user+"/"+repo, fullName)
	}
	return nil
}

func (f *fakeForge) ForkCommand(host, fullName string) []string {
	return []string{"fake", "fork", host, fullName}
}
