package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/raphi011/branchwipe/internal/log"
)

// ErrEmptyCommand is returned when no program is given.
var ErrEmptyCommand = errors.New("empty command")

// Result holds the captured output of a finished process.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Success reports whether the process exited with status 0.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// StderrText returns stderr with surrounding whitespace removed.
func (r Result) StderrText() string {
	return strings.TrimSpace(string(r.Stderr))
}

// LaunchError reports that a process could not be started at all.
type LaunchError struct {
	Dir  string
	Argv []string
	Err  error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch %q in %s: %v", strings.Join(e.Argv, " "), e.Dir, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Invoker runs a command in a working directory.
type Invoker interface {
	Exec(ctx context.Context, dir string, argv ...string) (Result, error)
}

// ExecInvoker is the Invoker backed by os/exec.
type ExecInvoker struct{}

// Exec implements Invoker.
func (ExecInvoker) Exec(ctx context.Context, dir string, argv ...string) (Result, error) {
	return Exec(ctx, dir, argv...)
}

// Exec runs argv[0] with the remaining arguments in dir and waits for it.
// A non-zero exit status is reported in Result.ExitCode, not as an error.
//
// ctx is only checked before launch. A started process runs to completion
// and its result is returned even if ctx ends meanwhile.
func Exec(ctx context.Context, dir string, argv ...string) (Result, error) {
	if len(argv) == 0 || argv[0] == "" {
		return Result{}, ErrEmptyCommand
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	done := log.FromContext(ctx).Command(dir, argv[0], argv[1:]...)
	start := time.Now()

	var stdout, stderr bytes.Buffer
	c := exec.Command(argv[0], argv[1:]...)
	c.Dir = dir
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	done(time.Since(start))

	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return Result{}, &LaunchError{Dir: dir, Argv: argv, Err: err}
	}
	return res, nil
}

// RunContext executes a command and returns stderr in the error message if it fails.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	_, err := OutputContext(ctx, dir, name, args...)
	return err
}

// OutputContext executes a command and returns stdout, with stderr in the error if it fails.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	res, err := Exec(ctx, dir, append([]string{name}, args...)...)
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		if msg := res.StderrText(); msg != "" {
			return nil, errors.New(msg)
		}
		return nil, fmt.Errorf("%s exited with status %d", name, res.ExitCode)
	}
	return res.Stdout, nil
}
