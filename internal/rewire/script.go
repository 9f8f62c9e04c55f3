package rewire

import (
	"fmt"
	"strings"
)

// Script renders planned actions as a POSIX shell script that performs the
// same changes by hand.
func (e *Engine) Script(results []Result) string {
	var b strings.Builder
	b.WriteString("#!/bin/sh\nset -e\n")

	for _, r := range results {
		if r.Status != StatusPlanned || len(r.Actions) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n# %s (%s)\n", r.Path, r.Kind)
		for _, a := range r.Actions {
			b.WriteString(e.scriptLine(r, a))
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func (e *Engine) scriptLine(r Result, a Action) string {
	git := []string{"git", "-C", r.Path, "remote"}
	var argv []string
	switch a.Op {
	case OpFork:
		f, ok := e.Forges[r.Host]
		if !ok {
			return "# fork " + a.Repo + ": no forge for " + r.Host
		}
		argv = f.ForkCommand(r.Host, a.Repo)
	case OpSetURL:
		argv = append(git, "set-url", a.Remote, a.URL)
	case OpAddRemote:
		argv = append(git, "add", a.Remote, a.URL)
	case OpRemoveRemote:
		argv = append(git, "remove", a.Remote)
	default:
		return "# unknown action " + string(a.Op)
	}

	quoted := make([]string, len(argv))
	for i, arg := range argv {
		quoted[i] = shellQuote(arg)
	}
	return strings.Join(quoted, " ")
}

// shellQuote quotes s for POSIX sh, leaving simple words untouched.
func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	safe := true
	for _, c := range s {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || strings.ContainsRune("@%+=:,./-_", c)) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
