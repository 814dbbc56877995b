// Package slog provides logging decorators for the placefinder interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/placefinder"
)

// Ensure LoggingFinder implements placefinder.PlaceFinder.
var _ placefinder.PlaceFinder = (*LoggingFinder)(nil)

// LoggingFinder wraps a PlaceFinder with request logging.
type LoggingFinder struct {
	next   placefinder.PlaceFinder
	logger *slog.Logger
}

// NewLoggingFinder creates a new LoggingFinder.
func NewLoggingFinder(next placefinder.PlaceFinder, logger *slog.Logger) *LoggingFinder {
	return &LoggingFinder{next: next, logger: logger}
}

// SearchPlaces delegates to the wrapped finder and logs the operation.
func (f *LoggingFinder) SearchPlaces(ctx context.Context, query string) (suggestions []*placefinder.PlaceSuggestion, err error) {
	defer func(begin time.Time) {
		f.log("search places", begin, err,
			"query", query,
			"count", len(suggestions),
		)
	}(time.Now())
	return f.next.SearchPlaces(ctx, query)
}

// FetchPlaceDetails delegates to the wrapped finder and logs the operation.
func (f *LoggingFinder) FetchPlaceDetails(ctx context.Context, placeID, name string) (details *placefinder.PlaceDetails, err error) {
	defer func(begin time.Time) {
		f.log("fetch place details", begin, err,
			"place_id", placeID,
			"name", name,
		)
	}(time.Now())
	return f.next.FetchPlaceDetails(ctx, placeID, name)
}

// RefreshSummary delegates to the wrapped finder and logs the operation.
func (f *LoggingFinder) RefreshSummary(ctx context.Context, place *placefinder.PlaceDetails) (updated *placefinder.PlaceDetails, err error) {
	defer func(begin time.Time) {
		var id string
		if place != nil {
			id = place.ID
		}
		f.log("refresh summary", begin, err, "place_id", id)
	}(time.Now())
	return f.next.RefreshSummary(ctx, place)
}

func (f *LoggingFinder) log(msg string, begin time.Time, err error, args ...any) {
	args = append(args, "duration", time.Since(begin))
	if err != nil {
		args = append(args, "code", placefinder.ErrorCode(err), "err", err)
		f.logger.Warn(msg, args...)
		return
	}
	f.logger.Info(msg, args...)
}
