// Package preflight verifies the environment before the scheduler
// starts: working directories exist and are writable, enough disk is
// free for downloads, the media binaries resolve, and the remote API
// accepts the configured token.
package preflight
