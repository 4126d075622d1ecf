// Package kubectl reads cluster topology by shelling out to the kubectl CLI.
package kubectl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// ErrTimeout is returned when an invocation exceeds its deadline.
var ErrTimeout = errors.New("kubectl invocation timed out")

// Runner executes a CLI invocation and returns its stdout.
type Runner interface {
	Run(ctx context.Context, args ...string) ([]byte, error)
}

// ExecRunner runs Binary as a child process. A non-zero Timeout bounds each
// invocation on top of whatever deadline ctx already carries.
type ExecRunner struct {
	Binary  string
	Timeout time.Duration
}

// Run executes the binary with args. Stderr is captured and folded into the
// returned error on failure.
func (r ExecRunner) Run(ctx context.Context, args ...string) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// don't let an orphaned grandchild holding the pipes outlive the deadline
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%s %s: %w", r.Binary, strings.Join(args, " "), ErrTimeout)
		}
		return nil, fmt.Errorf("%s %s: %w (stderr: %s)",
			r.Binary, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
