package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gadsby/notify-arrival/internal/config"
	"github.com/gadsby/notify-arrival/internal/logger"
	"github.com/gadsby/notify-arrival/internal/service/watcher"
	"github.com/gadsby/notify-arrival/internal/version"
)

const delayFlag = "delay"

var (
	// nameFile is the JSON file mapping hardware ids to names.
	nameFile string
	// delaySeconds is the pause between ARP lookups.
	delaySeconds int
	// ipv4Address is the subnet pattern with one wildcard octet.
	ipv4Address string
	// configPath is the optional settings file.
	configPath string
	// logLevel overrides the level from the settings file.
	logLevel string
	// allowMultiple disables the single-instance check.
	allowMultiple bool

	// rootCmd represents the watcher command.
	rootCmd = &cobra.Command{
		Use:   "notify-arrival",
		Short: "Notify when someone connects to the network.",
		Long: `Polls the ARP table of one subnet and announces known devices as they join.

Every cycle the name file is read again, so devices can be added or renamed
without a restart. A device is announced once per arrival with a spoken
message and a desktop notification. A missing or malformed name file is
announced as well and stops the program.`,
		Example: "  notify-arrival -n names.json -i 192.168.1.x -d 10",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &watcher.Options{
				ConfigPath:    configPath,
				NameFile:      nameFile,
				Subnet:        ipv4Address,
				LogLevel:      logLevel,
				AllowMultiple: allowMultiple,
			}

			// The flag only overrides the settings file when given explicitly.
			if cmd.Flags().Changed(delayFlag) {
				delay, err := parseDelay(delaySeconds)
				if err != nil {
					return err
				}

				options.Delay = delay
			}

			if err := watcher.Run(ctx, options); err != nil {
				logger.ErrorKV(ctx, "Watcher stopped", "error", err)
				return err
			}

			return nil
		},
	}
)

// errNonPositiveDelay is returned when --delay is zero or negative.
var errNonPositiveDelay = errors.New("delay must be a positive number of seconds")

// parseDelay converts the --delay flag value to a duration.
func parseDelay(seconds int) (time.Duration, error) {
	if seconds <= 0 {
		return 0, fmt.Errorf("%w: got %d", errNonPositiveDelay, seconds)
	}

	return time.Duration(seconds) * time.Second, nil
}

// Execute runs the notify-arrival CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.Flags()

	flags.StringVarP(&nameFile, "name_file", "n", "", "JSON file containing MAC address and name key value pairs")
	flags.IntVarP(&delaySeconds, delayFlag, "d", int(config.DefaultDelay/time.Second),
		"delay in seconds between arp lookups (positive), longer means less responsive")
	flags.StringVarP(&ipv4Address, "ipv4_address", "i", "", "IPv4 address with 'x' in place of the varying octet")
	flags.StringVarP(&configPath, "config", "c", "",
		"path to settings file (default "+config.DefaultConfigFilename+" if present)")
	flags.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.BoolVar(&allowMultiple, "allow-multiple", false, "allow several instances to run at once")

	for _, name := range []string{"name_file", "ipv4_address"} {
		if err := rootCmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
}
