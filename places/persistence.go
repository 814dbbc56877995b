// Package places holds the application state shared by every client:
// the saved place list and the active credential.
package places

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fwojciec/placefinder"
)

// Persistence applies the local storage failure policy on top of a Store.
// Read failures are logged and reported as "no data"; write failures are
// logged and dropped. Callers never see a storage error.
type Persistence struct {
	store  placefinder.Store
	logger *slog.Logger
}

// NewPersistence wraps store. A nil logger discards log output.
func NewPersistence(store placefinder.Store, logger *slog.Logger) *Persistence {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Persistence{store: store, logger: logger}
}

// LoadPlaces returns the stored places, or an empty slice when none are
// stored or they cannot be read. Null, invalid and repeated entries are
// dropped and logged; the first entry for an ID wins.
func (p *Persistence) LoadPlaces(ctx context.Context) []*placefinder.PlaceDetails {
	stored, err := p.store.LoadPlaces(ctx)
	if err != nil {
		p.fail("load places", placefinder.PlacesKey, err)
		return []*placefinder.PlaceDetails{}
	}

	places := make([]*placefinder.PlaceDetails, 0, len(stored))
	seen := make(map[string]struct{}, len(stored))
	for i, place := range stored {
		if place == nil {
			p.fail("load places", placefinder.PlacesKey, fmt.Errorf("entry %d is null", i))
			continue
		}
		if err := place.Validate(); err != nil {
			p.fail("load places", placefinder.PlacesKey, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		if _, ok := seen[place.ID]; ok {
			p.fail("load places", placefinder.PlacesKey, fmt.Errorf("entry %d: duplicate id %q", i, place.ID))
			continue
		}
		seen[place.ID] = struct{}{}
		places = append(places, place)
	}
	return places
}

// SavePlaces writes places.
func (p *Persistence) SavePlaces(ctx context.Context, places []*placefinder.PlaceDetails) {
	if err := p.store.SavePlaces(ctx, places); err != nil {
		p.fail("save places", placefinder.PlacesKey, err)
	}
}

// LoadCredential returns the stored credential and whether one was found.
func (p *Persistence) LoadCredential(ctx context.Context) (string, bool) {
	key, err := p.store.LoadCredential(ctx)
	switch {
	case placefinder.ErrorCode(err) == placefinder.ENOTFOUND:
		return "", false
	case err != nil:
		p.fail("load credential", placefinder.CredentialKey, err)
		return "", false
	}
	return key, key != ""
}

// SaveCredential writes key.
func (p *Persistence) SaveCredential(ctx context.Context, key string) {
	if err := p.store.SaveCredential(ctx, key); err != nil {
		p.fail("save credential", placefinder.CredentialKey, err)
	}
}

func (p *Persistence) fail(op, key string, err error) {
	p.logger.Error("persistence failure",
		"code", placefinder.EPERSIST,
		"op", op,
		"key", key,
		"err", err,
	)
}
