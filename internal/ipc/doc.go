// Package ipc exposes daemon control over a Unix domain socket using
// JSON-RPC. The CLI dials the socket to query status, pause or resume
// scheduling, stop the daemon, and tail the log file.
package ipc
