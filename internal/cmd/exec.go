package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/raphi011/forkup/internal/log"
)

// Error is returned when an external command exits unsuccessfully.
type Error struct {
	Name   string
	Args   []string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s %s failed: %s", e.Name, firstArg(e.Args), e.Stderr)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Name, firstArg(e.Args), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ExitCode returns the process exit code, or -1 if the command did not run.
func (e *Error) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// StderrOf returns the captured stderr of a failed command, or "".
func StderrOf(err error) string {
	var cmdErr *Error
	if errors.As(err, &cmdErr) {
		return cmdErr.Stderr
	}
	return ""
}

// firstArg skips global -C/--hostname style flags so errors name the subcommand.
func firstArg(args []string) string {
	for i := 0; i < len(args); i++ {
		if args[i] == "-C" {
			i++
			continue
		}
		return args[i]
	}
	return ""
}

// RunContext runs name with args in dir, discarding stdout.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	_, err := OutputContext(ctx, dir, name, args...)
	return err
}

// OutputContext runs name with args in dir and returns stdout.
// An empty dir runs in the current working directory.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	err := c.Run()
	done(time.Since(start))

	if err != nil {
		return stdout.Bytes(), &Error{
			Name:   name,
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return stdout.Bytes(), nil
}
