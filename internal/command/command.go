// Package command runs external programs on behalf of the watcher.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes an external program and returns its standard output.
type Runner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Exec runs programs with os/exec.
type Exec struct{}

// errEmptyName is returned when no program is given.
var errEmptyName = errors.New("command name must not be empty")

// Output runs name with args and returns stdout. A non-zero exit status is an
// error carrying the trimmed stderr of the program.
func (Exec) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	if name == "" {
		return nil, errEmptyName
	}

	var stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, fmt.Errorf("run %s: %w: %s", name, err, msg)
		}

		return out, fmt.Errorf("run %s: %w", name, err)
	}

	return out, nil
}
