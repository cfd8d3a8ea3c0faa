package watcher

import (
	"context"
	"errors"
	"time"

	"github.com/gadsby/notify-arrival/internal/directory"
	"github.com/gadsby/notify-arrival/internal/domain/presence"
	"github.com/gadsby/notify-arrival/internal/logger"
	"github.com/gadsby/notify-arrival/internal/service/notifier"
)

// TableReader returns the current ARP table of the watched subnet.
type TableReader interface {
	Read(ctx context.Context) (presence.AddressTable, error)
}

// NameSource returns the current name directory.
type NameSource interface {
	Load(ctx context.Context) (presence.Directory, error)
}

// Notifier announces arrivals and fatal configuration failures.
type Notifier interface {
	Arrival(ctx context.Context, name string) error
	Failure(ctx context.Context, reason notifier.Reason) error
}

// Watcher holds the collaborators of the reconciliation loop.
// It keeps no presence state itself: records are passed between cycles.
type Watcher struct {
	// addresses is the expanded address space of the subnet.
	addresses []string
	table     TableReader
	names     NameSource
	notifier  Notifier
	// delay is the pause after every cycle.
	delay time.Duration
}

// New returns a watcher for every address of subnet.
func New(subnet presence.Subnet, table TableReader, names NameSource, n Notifier, delay time.Duration) *Watcher {
	return &Watcher{
		addresses: subnet.Addresses(),
		table:     table,
		names:     names,
		notifier:  n,
		delay:     delay,
	}
}

// Init resolves the first set of records without announcing anything.
func (w *Watcher) Init(ctx context.Context) ([]presence.Record, error) {
	table, err := w.table.Read(ctx)
	if err != nil {
		return nil, err
	}

	names, err := w.loadNames(ctx)
	if err != nil {
		return nil, err
	}

	records := presence.Resolve(w.addresses, table, names)

	logger.InfoKV(ctx, "Initial presence resolved", "present", len(presence.PresentNames(records)))

	return records, nil
}

// Poll runs one cycle against the records of the previous one and returns
// the new records. Every arrival is announced before Poll returns.
func (w *Watcher) Poll(ctx context.Context, previous []presence.Record) ([]presence.Record, error) {
	// Reload the name file so edits apply on this cycle.
	names, err := w.loadNames(ctx)
	if err != nil {
		return nil, err
	}

	// Read the ARP table; a failing command ends the loop.
	table, err := w.table.Read(ctx)
	if err != nil {
		return nil, err
	}

	current := presence.Resolve(w.addresses, table, names)

	// Announce names that were not present in the previous cycle.
	for _, name := range Arrivals(previous, current) {
		if err = w.notifier.Arrival(ctx, name); err != nil {
			return nil, err
		}
	}

	logger.DebugKV(ctx, "Poll cycle finished", "neighbors", len(table), "present", len(presence.PresentNames(current)))

	return current, nil
}

// Loop initializes and then polls until ctx is cancelled. Cancellation is a
// clean stop and returns nil; every other error ends the loop.
func (w *Watcher) Loop(ctx context.Context) error {
	// Resolve the starting records without announcing anything.
	records, err := w.Init(ctx)
	if err != nil {
		return stopped(ctx, err)
	}

	// Poll with a fixed delay after every cycle.
	for {
		if err = sleep(ctx, w.delay); err != nil {
			logger.Info(ctx, "Context canceled, exiting")
			return nil
		}

		// Carry the records of this cycle into the next one.
		records, err = w.Poll(ctx, records)
		if err != nil {
			return stopped(ctx, err)
		}
	}
}

// Arrivals returns the names present in current but not in previous, once
// each, in address order. Records without a name never arrive.
func Arrivals(previous, current []presence.Record) []string {
	present := presence.PresentNames(previous)

	var arrivals []string

	for _, record := range current {
		if record.Status != presence.StatusNamed {
			continue
		}

		if _, ok := present[record.Name]; ok {
			continue
		}

		present[record.Name] = struct{}{}
		arrivals = append(arrivals, record.Name)
	}

	return arrivals
}

// loadNames reads the directory and, when the file is missing or malformed,
// emits the matching failure notification before returning the error.
func (w *Watcher) loadNames(ctx context.Context) (presence.Directory, error) {
	names, err := w.names.Load(ctx)
	if err == nil {
		return names, nil
	}

	var reason notifier.Reason

	switch {
	case errors.Is(err, directory.ErrMissing):
		reason = notifier.ReasonMissing
	case errors.Is(err, directory.ErrMalformed):
		reason = notifier.ReasonMalformed
	default:
		return nil, err
	}

	logger.ErrorKV(ctx, "Name directory unusable", "error", err)

	if notifyErr := w.notifier.Failure(ctx, reason); notifyErr != nil {
		return nil, errors.Join(err, notifyErr)
	}

	return nil, err
}

// stopped turns errors caused by cancellation into a clean stop.
func stopped(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		logger.Info(ctx, "Context canceled, exiting")
		return nil
	}

	return err
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
