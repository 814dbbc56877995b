package mock

import (
	"context"

	"github.com/fwojciec/placefinder"
)

var _ placefinder.Store = (*Store)(nil)

// Store is a mock implementation of placefinder.Store.
type Store struct {
	LoadPlacesFn     func(ctx context.Context) ([]*placefinder.PlaceDetails, error)
	SavePlacesFn     func(ctx context.Context, places []*placefinder.PlaceDetails) error
	LoadCredentialFn func(ctx context.Context) (string, error)
	SaveCredentialFn func(ctx context.Context, key string) error
}

func (s *Store) LoadPlaces(ctx context.Context) ([]*placefinder.PlaceDetails, error) {
	return s.LoadPlacesFn(ctx)
}

func (s *Store) SavePlaces(ctx context.Context, places []*placefinder.PlaceDetails) error {
	return s.SavePlacesFn(ctx, places)
}

func (s *Store) LoadCredential(ctx context.Context) (string, error) {
	return s.LoadCredentialFn(ctx)
}

func (s *Store) SaveCredential(ctx context.Context, key string) error {
	return s.SaveCredentialFn(ctx, key)
}
