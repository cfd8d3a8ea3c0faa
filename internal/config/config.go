package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gadsby/notify-arrival/internal/logger"
)

// Config holds the settings shared by the watcher and its notifier.
type Config struct {
	// NeighborCommand is the command and arguments that print the ARP table.
	NeighborCommand []string `yaml:"neighbor_command"`
	// SpeechCommand speaks a message aloud; it is called as `<cmd> -v <voice> <text>`.
	SpeechCommand string `yaml:"speech_command"`
	// VisualCommand shows a desktop notification; it is called with -message and -title.
	VisualCommand string `yaml:"visual_command"`
	// Voice is the speech synthesizer voice.
	Voice string `yaml:"voice"`
	// Delay is the pause between poll cycles.
	Delay time.Duration `yaml:"delay"`
	// LogLevel is the minimum level written by the logger.
	LogLevel string `yaml:"log_level"`
}

const (
	// DefaultConfigFilename is the settings file looked up when no path is given.
	DefaultConfigFilename = "notify-arrival-settings.yaml"

	// DefaultDelay is the pause between poll cycles.
	DefaultDelay = 10 * time.Second

	// DefaultSpeechCommand is the macOS speech synthesizer.
	DefaultSpeechCommand = "say"

	// DefaultVisualCommand is the macOS notification helper.
	DefaultVisualCommand = "terminal-notifier"

	// DefaultVoice is the voice passed to the speech command.
	DefaultVoice = "Daniel"
)

var (
	// errEmptyNeighborCommand is returned when the neighbor command has no program.
	errEmptyNeighborCommand = errors.New("neighbor command must not be empty")
	// errInvalidLogLevel is returned for log levels zap does not know.
	errInvalidLogLevel = errors.New("unknown log level")
)

// Default returns settings populated with defaults only.
func Default() *Config {
	cfg := new(Config)
	_ = Validate(cfg)

	return cfg
}

// Load reads settings from path. A missing file at the default location
// yields defaults; a missing file at an explicit path is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate fills defaults and checks the provided settings.
func Validate(settings *Config) error {
	if settings.NeighborCommand == nil {
		settings.NeighborCommand = []string{"arp", "-a"}
	}

	if len(settings.NeighborCommand) == 0 || settings.NeighborCommand[0] == "" {
		return errEmptyNeighborCommand
	}

	if settings.SpeechCommand == "" {
		settings.SpeechCommand = DefaultSpeechCommand
	}

	if settings.VisualCommand == "" {
		settings.VisualCommand = DefaultVisualCommand
	}

	if settings.Voice == "" {
		settings.Voice = DefaultVoice
	}

	if settings.Delay <= 0 {
		settings.Delay = DefaultDelay
	}

	if _, ok := logger.ParseLogLevel(settings.LogLevel); !ok {
		return fmt.Errorf("%w: %q", errInvalidLogLevel, settings.LogLevel)
	}

	return nil
}
