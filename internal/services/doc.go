// Package services defines shared utilities consumed by the pipeline
// orchestrator and external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp source item IDs, stage names, and
//     correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper that classify
//     failures into the pipeline's outcome taxonomy (skip vs retryable
//     failure vs fatal configuration error).
//   - Bounded retry with exponential back-off and jitter for calls the
//     orchestrator wraps directly.
//
// Use these helpers when wiring new pipeline logic so operational
// behaviour stays uniform across stages.
package services
