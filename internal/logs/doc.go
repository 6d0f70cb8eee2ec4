// Package logs provides file tailing with stable offsets for the CLI and
// daemon. A negative offset means "last N lines"; follow mode polls for new
// lines until the wait budget or context expires. Used by `reclip logs`.
package logs
