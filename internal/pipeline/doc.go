// Package pipeline drives a single catalog item through the full
// clip-compilation workflow: remote and ledger idempotency checks,
// reference extraction, segment selection, media acquisition, cutting
// and stitching, publication, and artifact cleanup. Each item yields
// an Outcome; failures are contained to the item so a batch always
// runs to completion.
package pipeline
