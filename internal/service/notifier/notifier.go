package notifier

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/gadsby/notify-arrival/internal/command"
	"github.com/gadsby/notify-arrival/internal/config"
	"github.com/gadsby/notify-arrival/internal/logger"
)

// Reason identifies why the watcher is about to exit.
type Reason int

const (
	// ReasonMissing means the name file could not be found.
	ReasonMissing Reason = iota
	// ReasonMalformed means the name file could not be decoded.
	ReasonMalformed
)

const (
	arrivalSpeech = "Someone is here"
	arrivalTitle  = "Someone's Here!"
	failureTitle  = "Error!"
)

// Shell notifies through a speech command and a visual notification command.
type Shell struct {
	runner command.Runner
	speech string
	visual string
	voice  string
}

// NewShell returns a notifier using the commands and voice from cfg.
func NewShell(runner command.Runner, cfg *config.Config) *Shell {
	return &Shell{
		runner: runner,
		speech: cfg.SpeechCommand,
		visual: cfg.VisualCommand,
		voice:  cfg.Voice,
	}
}

// Arrival announces that name joined the network.
func (s *Shell) Arrival(ctx context.Context, name string) error {
	logger.InfoKV(ctx, "Announcing arrival", "name", name)

	if err := s.say(ctx, arrivalSpeech); err != nil {
		return err
	}

	return s.show(ctx, fmt.Sprintf("It's %s", name), arrivalTitle)
}

// Failure announces that the watcher is closing because of reason.
func (s *Shell) Failure(ctx context.Context, reason Reason) error {
	var message, speech string

	switch reason {
	case ReasonMissing:
		message = "Configuration file could not be found. Program will now close."
		speech = "My configuration file is missing! Goodbye."
	case ReasonMalformed:
		message = "Improper configuration file formatting has forced program to close."
		speech = "My configuration file is badly formatted! Goodbye."
	default:
		return fmt.Errorf("unknown failure reason %d", reason)
	}

	if err := s.show(ctx, message, failureTitle); err != nil {
		return err
	}

	return s.say(ctx, speech)
}

func (s *Shell) say(ctx context.Context, text string) error {
	return s.run(ctx, "speak", s.speech, "-v", s.voice, text)
}

func (s *Shell) show(ctx context.Context, message, title string) error {
	return s.run(ctx, "show notification", s.visual, "-message", message, "-title", title)
}

// run executes one notification command. A command that started but exited
// with a non-zero status is only logged; failing to start it is an error.
func (s *Shell) run(ctx context.Context, action, name string, args ...string) error {
	_, err := s.runner.Output(ctx, name, args...)
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		logger.WarnKV(ctx, "Notification command failed", "command", name, "error", err)
		return nil
	}

	return fmt.Errorf("%s: %w", action, err)
}
