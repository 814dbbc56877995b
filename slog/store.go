package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/placefinder"
)

// Ensure LoggingStore implements placefinder.Store.
var _ placefinder.Store = (*LoggingStore)(nil)

// LoggingStore wraps a Store with debug logging.
type LoggingStore struct {
	next   placefinder.Store
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next placefinder.Store, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

func (s *LoggingStore) LoadPlaces(ctx context.Context) (places []*placefinder.PlaceDetails, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("load places",
			"count", len(places),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LoadPlaces(ctx)
}

func (s *LoggingStore) SavePlaces(ctx context.Context, places []*placefinder.PlaceDetails) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("save places",
			"count", len(places),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SavePlaces(ctx, places)
}

func (s *LoggingStore) LoadCredential(ctx context.Context) (key string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("load credential",
			"found", key != "",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LoadCredential(ctx)
}

func (s *LoggingStore) SaveCredential(ctx context.Context, key string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("save credential",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveCredential(ctx, key)
}
