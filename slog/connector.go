package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/placefinder"
)

// Ensure LoggingConnector implements placefinder.Connector.
var _ placefinder.Connector = (*LoggingConnector)(nil)

// LoggingConnector wraps a Connector with logging. Every PlaceFinder it
// returns is wrapped in a LoggingFinder. Credentials are never logged.
type LoggingConnector struct {
	next   placefinder.Connector
	logger *slog.Logger
}

// NewLoggingConnector creates a new LoggingConnector.
func NewLoggingConnector(next placefinder.Connector, logger *slog.Logger) *LoggingConnector {
	return &LoggingConnector{next: next, logger: logger}
}

// ValidateCredential delegates to the wrapped connector and logs the outcome.
func (c *LoggingConnector) ValidateCredential(ctx context.Context, key string) (ok bool) {
	defer func(begin time.Time) {
		c.logger.Info("validate credential",
			"valid", ok,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return c.next.ValidateCredential(ctx, key)
}

// Connect delegates to the wrapped connector and wraps the result.
func (c *LoggingConnector) Connect(ctx context.Context, key string) (placefinder.PlaceFinder, error) {
	finder, err := c.next.Connect(ctx, key)
	if err != nil {
		c.logger.Warn("connect", "code", placefinder.ErrorCode(err), "err", err)
		return nil, err
	}
	c.logger.Debug("connect")
	return NewLoggingFinder(finder, c.logger), nil
}
