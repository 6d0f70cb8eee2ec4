// Package reconcile answers "was this source video already
// republished" by inspecting the channel's own uploads. The primary
// signal is the source-URL fragment embedded in every published
// description; a normalized exact-title match is the fallback for
// uploads that predate the fragment. Similar-but-not-exact titles are
// logged and treated as not published, since a duplicate upload is
// recoverable while a wrongly skipped item is silent data loss.
package reconcile
