package programmer

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Script is a file a Step needs on disk before it runs.
type Script struct {
	Name string
	Body string
}

// Step is a single external command.
type Step struct {
	Program string
	Args    []string
	Script  *Script
}

func (s Step) String() string {
	parts := append([]string{s.Program}, s.Args...)
	for i, p := range parts {
		if strings.ContainsAny(p, " ;{}\"") {
			parts[i] = fmt.Sprintf("%q", p)
		}
	}
	return strings.Join(parts, " ")
}

// Plan is the ordered list of steps for one programming operation.
type Plan struct {
	Steps []Step
}

// Runner executes plans. Steps run in the caller's working directory, so
// relative bitstream and image paths resolve as given.
type Runner struct {
	WorkDir string // scripts are written here; defaults to a temp dir
	Stdout  io.Writer
	Stderr  io.Writer
	DryRun  bool
}

// Run executes every step in order and stops at the first failure.
func (r *Runner) Run(ctx context.Context, plan Plan) error {
	stdout, stderr := r.Stdout, r.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	if r.DryRun {
		for _, step := range plan.Steps {
			if step.Script != nil {
				fmt.Fprintf(stdout, "# %s\n%s", step.Script.Name, step.Script.Body)
			}
			fmt.Fprintln(stdout, step.String())
		}
		return nil
	}

	dir := r.WorkDir
	if dir == "" {
		tmp, err := os.MkdirTemp("", "otb-program-")
		if err != nil {
			return fmt.Errorf("programmer: work dir: %w", err)
		}
		defer os.RemoveAll(tmp)
		dir = tmp
	}
	dir, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("programmer: work dir: %w", err)
	}

	for _, step := range plan.Steps {
		args := step.Args
		if step.Script != nil {
			path := filepath.Join(dir, step.Script.Name)
			if err := os.WriteFile(path, []byte(step.Script.Body), 0o644); err != nil {
				return fmt.Errorf("programmer: write %s: %w", step.Script.Name, err)
			}
			args = scriptArgs(step.Args, step.Script.Name, path)
		}
		cmd := exec.CommandContext(ctx, step.Program, args...)
		cmd.Stdout = stdout
		cmd.Stderr = stderr
		if err := cmd.Run(); err != nil {
			return fmt.Errorf("programmer: %s: %w", step.Program, err)
		}
	}
	return nil
}

// scriptArgs replaces references to a script by its written path.
func scriptArgs(args []string, name, path string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if a == name {
			a = path
		}
		out[i] = a
	}
	return out
}
