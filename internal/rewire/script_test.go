package rewire

import (
	"strings"
	"testing"
)

func TestScript(t *testing.T) {
	t.Parallel()

	e := newTestEngine(newFakeGit(), newFakeForge(testUser), Options{})
	results := []Result{
		{
			Path:   "/src/my repo",
			Kind:   KindThirdParty,
			Host:   "github.com",
			Status: StatusPlanned,
			Actions: []Action{
				{Op: OpFork, Repo: "acme/widget"},
				{Op: OpSetURL, Remote: "origin", URL: "git@github.com:me/widget.git"},
				{Op: OpRemoveRemote, Remote: "upstream"},
			},
		},
		{Path: "/src/skipped", Status: StatusSkipped},
		{Path: "/src/done", Status: StatusUnchanged},
	}

	got := e.Script(results)

	for _, want := range []string{
		"#!/bin/sh\nset -e\n",
		"# /src/my repo (third-party)",
		"fake fork github.com acme/widget",
		"git -C '/src/my repo' remote set-url origin git@github.com:me/widget.git",
		"git -C '/src/my repo' remote remove upstream",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Script() missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "/src/skipped") || strings.Contains(got, "/src/done") {
		t.Errorf("Script() includes repositories without planned actions:\n%s", got)
	}
}

func TestShellQuote(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", "''"},
		{"origin", "origin"},
		{"git@github.com:me/r.git", "git@github.com:me/r.git"},
		{"--clone=false", "--clone=false"},
		{"a b", "'a b'"},
		{"it's", `'it'\''s'`},
		{"$HOME", "'$HOME'"},
	}

	for _, tt := range tests {
		if got := shellQuote(tt.in); got != tt.want {
			t.Errorf("shellQuote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
