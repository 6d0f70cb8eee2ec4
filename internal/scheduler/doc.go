// Package scheduler paces the pipeline: it parses the configured
// upload windows, walks the channel catalog in batches, and hands
// unprocessed items to the orchestrator. A shared Control carries
// pause/stop flags and the publish lock between the daemon's signal
// handling and the run loop.
package scheduler
