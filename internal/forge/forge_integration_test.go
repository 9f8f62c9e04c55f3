//go:build integration

package forge

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"
)

// testRepo is an existing repository readable by the authenticated gh user,
// e.g. "cli/cli".
var testRepo string

func TestMain(m *testing.M) {
	testRepo = os.Getenv("FORKUP_TEST_GITHUB_REPO")
	if testRepo == "" {
		os.Exit(0) // skip all tests
	}
	os.Exit(m.Run())
}

func TestGitHub_Check(t *testing.T) {
	t.Parallel()

	gh := &GitHub{}
	if err := gh.Check(context.Background(), "github.com"); err != nil {
		t.Errorf("Check() error = %v, want nil", err)
	}
}

func TestGitHub_CurrentUser(t *testing.T) {
	t.Parallel()

	gh := &GitHub{}
	login, err := gh.CurrentUser(context.Background(), "github.com")
	if err != nil {
		t.Fatalf("CurrentUser() error = %v", err)
	}
	if login == "" {
		t.Error("CurrentUser() returned empty login")
	}
}

func TestGitHub_GetRepo(t *testing.T) {
	t.Parallel()

	gh := &GitHub{}
	repo, err := gh.GetRepo(context.Background(), "github.com", testRepo)
	if err != nil {
		t.Fatalf("GetRepo() error = %v", err)
	}
	if repo.FullName == "" {
		t.Error("GetRepo() FullName is empty")
	}
}

func TestGitHub_GetRepo_NotFound(t *testing.T) {
	t.Parallel()

	gh := &GitHub{}
	missing := fmt.Sprintf("%s-missing-%d", testRepo, time.Now().UnixNano())
	_, err := gh.GetRepo(context.Background(), "github.com", missing)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetRepo() error = %v, want ErrNotFound", err)
	}
}
