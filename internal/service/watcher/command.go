package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/gadsby/notify-arrival/internal/command"
	"github.com/gadsby/notify-arrival/internal/config"
	"github.com/gadsby/notify-arrival/internal/directory"
	"github.com/gadsby/notify-arrival/internal/domain/presence"
	"github.com/gadsby/notify-arrival/internal/logger"
	"github.com/gadsby/notify-arrival/internal/neighbor"
	"github.com/gadsby/notify-arrival/internal/service/instance"
	"github.com/gadsby/notify-arrival/internal/service/notifier"
)

// Options controls a watcher run started from the command line.
type Options struct {
	// ConfigPath is the optional settings file; empty means the default location.
	ConfigPath string
	// NameFile is the hardware id to display name file.
	NameFile string
	// Subnet is the address pattern with one wildcard octet, e.g. 192.168.1.x.
	Subnet string
	// Delay overrides the delay from the settings file when positive.
	Delay time.Duration
	// LogLevel overrides the level from the settings file when set.
	LogLevel string
	// AllowMultiple skips the single-instance check.
	AllowMultiple bool
}

// Run builds the watcher from opts and runs it until ctx is cancelled or a
// fatal error occurs.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "notify-arrival")

	// Load settings from configuration file.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Command line log level overrides config.
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}

	level, ok := logger.ParseLogLevel(cfg.LogLevel)
	if !ok {
		return fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}

	logger.SetLevel(level)

	// Command line delay overrides config.
	if opts.Delay > 0 {
		cfg.Delay = opts.Delay
	}

	// Validate the subnet pattern before running anything.
	subnet, err := presence.ParseSubnet(opts.Subnet)
	if err != nil {
		return err
	}

	// Refuse to announce arrivals twice from parallel copies.
	if !opts.AllowMultiple {
		guard, guardErr := instance.NewGuard()
		if guardErr != nil {
			return guardErr
		}

		if guardErr = guard.Check(); guardErr != nil {
			return guardErr
		}
	}

	// Build the ARP reader, name directory and notifier on one command runner.
	runner := command.Exec{}

	reader, err := neighbor.NewReader(runner, cfg.NeighborCommand, subnet)
	if err != nil {
		return err
	}

	names := directory.NewFile(opts.NameFile)

	ctx = logger.WithKV(ctx, "subnet", subnet.String())

	logger.InfoKV(ctx, "Watching for arrivals", "name_file", names.Path(), "delay", cfg.Delay.String())

	// Run the reconciliation loop until cancellation or a fatal error.
	w := New(subnet, reader, names, notifier.NewShell(runner, cfg), cfg.Delay)

	return w.Loop(ctx)
}
