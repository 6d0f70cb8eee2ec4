// Package youtube talks to the YouTube Data API v3: listing a
// channel's recent uploads, fetching comment threads, publishing
// finished compilations through the resumable upload endpoint, and
// playlist maintenance. The HTTP client is injected so tests run
// against a stub.
package youtube
