// Package instance keeps a single watcher running per machine, so one arrival
// is never announced twice by parallel copies.
package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-ps"
)

// ErrAlreadyRunning is returned when another watcher process is found.
var ErrAlreadyRunning = errors.New("another instance is already running")

// Lister returns the processes of the machine.
type Lister func() ([]ps.Process, error)

// Guard detects other processes running the same executable.
type Guard struct {
	list       Lister
	pid        int
	executable string
}

// NewGuard returns a guard for the current process.
func NewGuard() (*Guard, error) {
	path, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("get executable path: %w", err)
	}

	return newGuard(ps.Processes, os.Getpid(), filepath.Base(path)), nil
}

func newGuard(list Lister, pid int, executable string) *Guard {
	return &Guard{
		list:       list,
		pid:        pid,
		executable: normalizeName(executable),
	}
}

// Check returns ErrAlreadyRunning with the pid of the first other instance found.
func (g *Guard) Check() error {
	processes, err := g.list()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	for _, process := range processes {
		if process.Pid() == g.pid {
			continue
		}

		if normalizeName(process.Executable()) == g.executable {
			return fmt.Errorf("%w: pid %d", ErrAlreadyRunning, process.Pid())
		}
	}

	return nil
}

// normalizeName makes names comparable across platforms: Windows reports
// "name.exe" and Linux truncates comm to 15 characters.
func normalizeName(name string) string {
	name = strings.ToLower(name)
	if runtime.GOOS == "windows" {
		name = strings.TrimSuffix(name, ".exe")
	}

	const linuxCommLength = 15
	if runtime.GOOS == "linux" && len(name) > linuxCommLength {
		name = name[:linuxCommLength]
	}

	return name
}
