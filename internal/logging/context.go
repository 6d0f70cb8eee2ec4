package logging

import (
	"context"
	"log/slog"

	"reclip/internal/services"
)

// WithContext derives a logger carrying the item ID, stage name, and request
// correlation ID found on ctx. A nil logger yields a no-op logger so call
// sites never need to guard.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return NewNop()
	}
	attrs := make([]Attr, 0, 3)
	if id, ok := services.ItemIDFromContext(ctx); ok {
		attrs = append(attrs, String(FieldItemID, id))
	}
	if stage, ok := services.StageFromContext(ctx); ok {
		attrs = append(attrs, String(FieldStage, stage))
	}
	if requestID, ok := services.RequestIDFromContext(ctx); ok {
		attrs = append(attrs, String(FieldRequestID, requestID))
	}
	if len(attrs) == 0 {
		return logger
	}
	return logger.With(Args(attrs...)...)
}
