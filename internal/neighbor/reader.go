package neighbor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gadsby/notify-arrival/internal/command"
	"github.com/gadsby/notify-arrival/internal/domain/presence"
	"github.com/gadsby/notify-arrival/internal/logger"
)

// hardwarePattern matches six colon-separated groups of one or two hex digits.
const hardwarePattern = `((?:[0-9A-Fa-f]{1,2}:){5}[0-9A-Fa-f]{1,2})`

// errNoCommand is returned when the reader is built without a command.
var errNoCommand = errors.New("neighbor command must not be empty")

// Reader loads the ARP table for one subnet.
type Reader struct {
	runner  command.Runner
	argv    []string
	subnet  presence.Subnet
	matcher *regexp.Regexp
}

// NewReader returns a reader that runs argv through runner.
func NewReader(runner command.Runner, argv []string, subnet presence.Subnet) (*Reader, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, errNoCommand
	}

	return &Reader{
		runner:  runner,
		argv:    argv,
		subnet:  subnet,
		matcher: lineMatcher(subnet),
	}, nil
}

// Read runs the neighbor command and parses its output.
// Any failure of the command is returned as is; there is no retry.
func (r *Reader) Read(ctx context.Context) (presence.AddressTable, error) {
	out, err := r.runner.Output(ctx, r.argv[0], r.argv[1:]...)
	if err != nil {
		return nil, fmt.Errorf("query neighbor table: %w", err)
	}

	table := parse(string(out), r.matcher)

	logger.DebugKV(ctx, "Neighbor table read", "entries", len(table))

	return table, nil
}

// Parse extracts address to hardware id pairs of subnet from command output.
func Parse(output string, subnet presence.Subnet) presence.AddressTable {
	return parse(output, lineMatcher(subnet))
}

func lineMatcher(subnet presence.Subnet) *regexp.Regexp {
	return regexp.MustCompile(`\((` + subnet.Pattern() + `)\).*?\s` + hardwarePattern + `(?:\s|$)`)
}

func parse(output string, matcher *regexp.Regexp) presence.AddressTable {
	table := make(presence.AddressTable)

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		match := matcher.FindStringSubmatch(scanner.Text())
		if match == nil {
			continue
		}

		table[match[1]] = presence.NormalizeHardwareID(match[2])
	}

	return table
}
