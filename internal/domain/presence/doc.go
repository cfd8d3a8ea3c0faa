// Package presence contains the core domain types of the watcher: canonical
// hardware ids, the subnet pattern with its address space, and the records
// that join the ARP table with the name directory.
package presence
