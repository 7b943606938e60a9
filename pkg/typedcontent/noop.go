package typedcontent

import (
	"context"
	"log/slog"
)

// NoopEventSink is a no-operation implementation of EventSink
// Useful for production when you don't need event handling or for testing
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-operation event sink
func NewNoopEventSink() EventSink {
	return &NoopEventSink{}
}

// BlockStored does nothing and returns nil
func (n *NoopEventSink) BlockStored(ctx context.Context, id Identifier, block *ContentItemBlock) error {
	return nil
}

// BlockLoaded does nothing and returns nil
func (n *NoopEventSink) BlockLoaded(ctx context.Context, id Identifier, item ContentItem) error {
	return nil
}

// BlockSkipped does nothing and returns nil
func (n *NoopEventSink) BlockSkipped(ctx context.Context, source string, sizeBytes uint64) error {
	return nil
}

// LoggingEventSink is an event sink that logs events but takes no other action
// Useful for development and debugging
type LoggingEventSink struct {
	logger *slog.Logger
}

// NewLoggingEventSink creates a new logging event sink
func NewLoggingEventSink(logger *slog.Logger) EventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingEventSink{logger: logger}
}

// BlockStored logs the stored block
func (l *LoggingEventSink) BlockStored(ctx context.Context, id Identifier, block *ContentItemBlock) error {
	l.logger.Info("block stored", "identifier", id.String(), "kind", block.Item.Kind(), "size_bytes", block.SizeBytes)
	return nil
}

// BlockLoaded logs the loaded block
func (l *LoggingEventSink) BlockLoaded(ctx context.Context, id Identifier, item ContentItem) error {
	l.logger.Info("block loaded", "identifier", id.String(), "kind", item.Kind())
	return nil
}

// BlockSkipped logs the skipped payload
func (l *LoggingEventSink) BlockSkipped(ctx context.Context, source string, sizeBytes uint64) error {
	l.logger.Info("block skipped", "source", source, "size_bytes", sizeBytes)
	return nil
}
