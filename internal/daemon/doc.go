// Package daemon supervises the background scheduling loop. It enforces
// single-instance execution with a lock file, owns the ledger store and
// scheduler lifecycle, and answers the control queries exposed over IPC.
package daemon
