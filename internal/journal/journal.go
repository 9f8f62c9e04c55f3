// Package journal records remote changes made by sync so they can be
// listed and reverted later.
//
// The journal is a single JSON file (by default ~/.forkup/journal.json).
// Writers take an exclusive file lock and replace the file atomically.
// Only the most recent [MaxRuns] runs are kept.
package journal

import (
	"fmt"
	"slices"
	"time"

	"github.com/raphi011/forkup/internal/rewire"
	"github.com/raphi011/forkup/internal/storage"
)

// MaxRuns is how many runs are retained.
const MaxRuns = 50

// Entry is one applied action.
type Entry struct {
	RunID  string    `json:"run_id"`
	Time   time.Time `json:"time"`
	Path   string    `json:"path"`
	Op     rewire.Op `json:"op"`
	Remote string    `json:"remote,omitempty"`
	OldURL string    `json:"old_url,omitempty"`
	NewURL string    `json:"new_url,omitempty"`
	Repo   string    `json:"repo,omitempty"`
}

// Action converts e back into the action it records.
func (e Entry) Action() rewire.Action {
	return rewire.Action{Op: e.Op, Remote: e.Remote, URL: e.NewURL, OldURL: e.OldURL, Repo: e.Repo}
}

// Journal is the on-disk document.
type Journal struct {
	Entries []Entry `json:"entries"`
}

// Run summarizes the entries of one run.
type Run struct {
	ID      string
	Time    time.Time
	Repos   int
	Actions int
}

// NewRunID returns a sortable run identifier for t.
func NewRunID(t time.Time) string {
	return t.UTC().Format("20060102T150405.000Z")
}

// FromResult returns entries for the actions applied to res.
func FromResult(runID string, t time.Time, res rewire.Result) []Entry {
	entries := make([]Entry, 0, len(res.Applied))
	for _, a := range res.Applied {
		entries = append(entries, Entry{
			RunID:  runID,
			Time:   t,
			Path:   res.Path,
			Op:     a.Op,
			Remote: a.Remote,
			OldURL: a.OldURL,
			NewURL: a.URL,
			Repo:   a.Repo,
		})
	}
	return entries
}

// Load reads the journal at path. A missing file is an empty journal.
func Load(path string) (*Journal, error) {
	var j Journal
	if _, err := storage.LoadJSON(path, &j); err != nil {
		return nil, fmt.Errorf("load journal: %w", err)
	}
	return &j, nil
}

// Append adds entries to the journal at path and prunes old runs.
func Append(path string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	var j Journal
	err := storage.Update(path, &j, func(bool) error {
		j.Entries = append(j.Entries, entries...)
		j.prune(MaxRuns)
		return nil
	})
	if err != nil {
		return fmt.Errorf("append journal: %w", err)
	}
	return nil
}

// prune drops entries of all but the newest n runs.
func (j *Journal) prune(n int) {
	runs := j.Runs()
	if len(runs) <= n {
		return
	}
	keep := make(map[string]bool, n)
	for _, r := range runs[len(runs)-n:] {
		keep[r.ID] = true
	}
	j.Entries = slices.DeleteFunc(j.Entries, func(e Entry) bool { return !keep[e.RunID] })
}

// Runs returns run summaries, oldest first.
func (j *Journal) Runs() []Run {
	var runs []Run
	index := map[string]int{}
	repos := map[string]map[string]bool{}

	for _, e := range j.Entries {
		i, ok := index[e.RunID]
		if !ok {
			i = len(runs)
			index[e.RunID] = i
			runs = append(runs, Run{ID: e.RunID, Time: e.Time})
			repos[e.RunID] = map[string]bool{}
		}
		runs[i].Actions++
		if !repos[e.RunID][e.Path] {
			repos[e.RunID][e.Path] = true
			runs[i].Repos++
		}
		if e.Time.Before(runs[i].Time) {
			runs[i].Time = e.Time
		}
	}

	slices.SortStableFunc(runs, func(a, b Run) int { return a.Time.Compare(b.Time) })
	return runs
}

// LastRun returns the ID of the newest run, or "" if the journal is empty.
func (j *Journal) LastRun() string {
	runs := j.Runs()
	if len(runs) == 0 {
		return ""
	}
	return runs[len(runs)-1].ID
}

// EntriesForRun returns the entries of run id in the order they were applied.
func (j *Journal) EntriesForRun(id string) []Entry {
	var out []Entry
	for _, e := range j.Entries {
		if e.RunID == id {
			out = append(out, e)
		}
	}
	return out
}

// ByPath groups entries by repository path, keeping applied order within
// each repository. Paths are returned in first-seen order.
func ByPath(entries []Entry) (paths []string, actions map[string][]rewire.Action) {
	actions = map[string][]rewire.Action{}
	for _, e := range entries {
		if _, ok := actions[e.Path]; !ok {
			paths = append(paths, e.Path)
		}
		actions[e.Path] = append(actions[e.Path], e.Action())
	}
	return paths, actions
}
