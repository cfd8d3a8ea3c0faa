// Package watcher runs the reconciliation loop: every cycle it reloads the
// name directory, reads the ARP table, resolves the subnet into presence
// records and announces names that were not present in the previous cycle.
package watcher
