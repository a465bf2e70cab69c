package scaffold

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Runner runs a command in a working directory and returns its output
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands as child processes
type ExecRunner struct {
	// Additional environment variables, in KEY=value form
	Env []string
}

var _ Runner = (*ExecRunner)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	// Lines of stderr included in an error
	stderrTail = 20
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Run the command, returning stdout. On failure the error includes the
// tail of stderr.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = append(append(os.Environ(), "FORCE_COLOR=0", "CI=1"), r.Env...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if tail := tail(stderr.String(), stderrTail); tail != "" {
			return stdout.Bytes(), fmt.Errorf("%s: %w: %s", name, err, tail)
		}
		return stdout.Bytes(), fmt.Errorf("%s: %w", name, err)
	}
	return stdout.Bytes(), nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func tail(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
