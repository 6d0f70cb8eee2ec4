// Package notifications pushes operational events to an ntfy topic.
// Without a configured topic every publish is a no-op, so callers
// never branch on whether notifications are enabled.
package notifications
