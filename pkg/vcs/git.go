// Package vcs reads the checked out revision from the local working copy.
package vcs

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Git reads revisions from a git working tree using the git CLI.
type Git struct {
	dir string
}

// NewGit targets the working tree at dir. An empty dir means the current directory.
func NewGit(dir string) *Git {
	if len(dir) == 0 {
		dir = "."
	}
	return &Git{dir: dir}
}

func (g *Git) Dir() string {
	return g.dir
}

// CurrentRevision returns the full SHA of HEAD.
func (g *Git) CurrentRevision(ctx context.Context) (string, error) {
	out, err := g.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (g *Git) run(ctx context.Context, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	command := exec.CommandContext(ctx, "git", append([]string{"-C", g.dir}, args...)...)
	command.Stdout = &stdout
	command.Stderr = &stderr

	if err := command.Run(); err != nil {
		return "", fmt.Errorf("git %s in %s: %w (stderr: %s)",
			strings.Join(args, " "), g.dir, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
