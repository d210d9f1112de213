package deps

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Runner executes external commands. Injected so installers that shell
// out (the language-runtime check, the project generator) are testable
// without a host toolchain.
type Runner interface {
	// Output runs the command and returns its captured stdout.
	Output(ctx context.Context, name string, args ...string) (string, error)

	// Run runs the command with stdio wired through to the user.
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner runs commands on the host.
type ExecRunner struct {
	Dir string // working directory, "" for the current one
}

// Output runs the command and returns stdout. On failure the trimmed
// stderr text becomes the error message when present, since tools like
// pip put the useful diagnostics there.
func (r ExecRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s", msg)
		}
		return "", err
	}
	return stdout.String(), nil
}

// Run runs the command interactively, passing the user's stdio through.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
