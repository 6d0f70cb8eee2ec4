// Package logging wires log/slog for the reclip daemon and CLI.
//
// It provides logger construction from configuration (console or JSON
// format, optional log file fan-out), typed attribute helpers so call
// sites stay terse, and context-aware derivation that stamps the
// current item ID, pipeline stage, and request correlation ID onto
// every record.
package logging
