package mock

import (
	"context"

	"github.com/fwojciec/placefinder"
)

var _ placefinder.PlaceFinder = (*PlaceFinder)(nil)

// PlaceFinder is a mock implementation of placefinder.PlaceFinder.
type PlaceFinder struct {
	SearchPlacesFn      func(ctx context.Context, query string) ([]*placefinder.PlaceSuggestion, error)
	FetchPlaceDetailsFn func(ctx context.Context, placeID, name string) (*placefinder.PlaceDetails, error)
	RefreshSummaryFn    func(ctx context.Context, place *placefinder.PlaceDetails) (*placefinder.PlaceDetails, error)
}

func (f *PlaceFinder) SearchPlaces(ctx context.Context, query string) ([]*placefinder.PlaceSuggestion, error) {
	return f.SearchPlacesFn(ctx, query)
}

func (f *PlaceFinder) FetchPlaceDetails(ctx context.Context, placeID, name string) (*placefinder.PlaceDetails, error) {
	return f.FetchPlaceDetailsFn(ctx, placeID, name)
}

func (f *PlaceFinder) RefreshSummary(ctx context.Context, place *placefinder.PlaceDetails) (*placefinder.PlaceDetails, error) {
	return f.RefreshSummaryFn(ctx, place)
}
