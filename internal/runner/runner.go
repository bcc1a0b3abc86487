// Package runner starts the external analysis programs (plumed, gmx) the
// tools delegate to.
package runner

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Command is one external program invocation.
type Command struct {
	Name  string
	Args  []string
	Dir   string
	Stdin string
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

type Runner interface {
	Run(ctx context.Context, c Command) ([]byte, error)
}

// Exec runs commands with os/exec.
type Exec struct{}

func (Exec) Run(ctx context.Context, c Command) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	if c.Stdin != "" {
		cmd.Stdin = strings.NewReader(c.Stdin)
	}
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return out.Bytes(), fmt.Errorf("%s: %w\n%s", c, err, strings.TrimSpace(out.String()))
	}
	return out.Bytes(), nil
}

// DryRun records commands without running them.
type DryRun struct {
	Commands []Command
}

func (d *DryRun) Run(_ context.Context, c Command) ([]byte, error) {
	d.Commands = append(d.Commands, c)
	return nil, nil
}
