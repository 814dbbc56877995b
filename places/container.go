package places

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/fwojciec/placefinder"
)

// Credential error messages shown to the user.
const (
	EmptyCredentialMessage   = "API Key cannot be empty."
	InvalidCredentialMessage = "Invalid API Key. Please check the key and try again."
	MissingCredentialMessage = "API key required"
)

// Container owns the saved places (newest first) and the active credential
// together with the PlaceFinder bound to it.
//
// Every change to the saved list is written through Persistence before the
// mutating call returns. Listeners registered with Subscribe are notified
// after each change, outside the lock.
type Container struct {
	persist   *Persistence
	connector placefinder.Connector
	logger    *slog.Logger

	mu         sync.RWMutex
	places     []*placefinder.PlaceDetails
	credential string
	finder     placefinder.PlaceFinder

	listenersMu  sync.Mutex
	listeners    map[int]func()
	nextListener int
}

// NewContainer returns an empty Container. Call Open to load stored state.
func NewContainer(persist *Persistence, connector placefinder.Connector, logger *slog.Logger) *Container {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Container{
		persist:   persist,
		connector: connector,
		logger:    logger,
		places:    []*placefinder.PlaceDetails{},
		listeners: make(map[int]func()),
	}
}

// Open loads the saved places and the stored credential. A stored
// credential is bound without being revalidated; if binding fails the
// container starts without an active credential.
func (c *Container) Open(ctx context.Context) {
	places := c.persist.LoadPlaces(ctx)

	var finder placefinder.PlaceFinder
	key, ok := c.persist.LoadCredential(ctx)
	if ok {
		f, err := c.connector.Connect(ctx, key)
		if err != nil {
			c.logger.Warn("stored credential could not be bound", "err", err)
			key = ""
		} else {
			finder = f
		}
	}

	c.mu.Lock()
	c.places = places
	c.credential = key
	c.finder = finder
	c.mu.Unlock()

	c.logger.Debug("state loaded", "places", len(places), "credential", key != "")
	c.notify()
}

// Places returns a copy of the saved places, newest first.
func (c *Container) Places() []*placefinder.PlaceDetails {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*placefinder.PlaceDetails, len(c.places))
	for i, p := range c.places {
		out[i] = p.Clone()
	}
	return out
}

// Place returns a copy of the saved place with id.
func (c *Container) Place(id string) (*placefinder.PlaceDetails, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return c.places[i].Clone(), true
	}
	return nil, false
}

// Has reports whether a place with id is saved.
func (c *Container) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.indexOf(id) >= 0
}

// AddPlace prepends place unless a place with the same ID is already saved.
// It reports whether the list changed.
func (c *Container) AddPlace(ctx context.Context, place *placefinder.PlaceDetails) bool {
	if place == nil {
		return false
	}

	c.mu.Lock()
	if c.indexOf(place.ID) >= 0 {
		c.mu.Unlock()
		return false
	}
	c.places = slices.Insert(c.places, 0, place.Clone())
	c.persist.SavePlaces(ctx, slices.Clone(c.places))
	c.mu.Unlock()

	c.notify()
	return true
}

// DeletePlace removes the place with id. It reports whether the list changed.
func (c *Container) DeletePlace(ctx context.Context, id string) bool {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return false
	}
	c.places = slices.Delete(c.places, i, i+1)
	c.persist.SavePlaces(ctx, slices.Clone(c.places))
	c.mu.Unlock()

	c.notify()
	return true
}

// UpdatePlace replaces the saved place with the same ID. Unknown IDs are
// ignored. It reports whether the list changed.
func (c *Container) UpdatePlace(ctx context.Context, place *placefinder.PlaceDetails) bool {
	if place == nil {
		return false
	}

	c.mu.Lock()
	i := c.indexOf(place.ID)
	if i < 0 {
		c.mu.Unlock()
		return false
	}
	c.places[i] = place.Clone()
	c.persist.SavePlaces(ctx, slices.Clone(c.places))
	c.mu.Unlock()

	c.notify()
	return true
}

// Credential returns the active credential, or "" when none is active.
func (c *Container) Credential() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.credential
}

// Finder returns the PlaceFinder bound to the active credential.
func (c *Container) Finder() (placefinder.PlaceFinder, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.finder == nil {
		return nil, placefinder.Errorf(placefinder.ECREDENTIAL, MissingCredentialMessage)
	}
	return c.finder, nil
}

// SetCredential validates key against the backend and, on success, binds,
// persists and activates it. On failure the previous credential stays active.
func (c *Container) SetCredential(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return placefinder.Errorf(placefinder.EINVALID, EmptyCredentialMessage)
	}

	if !c.connector.ValidateCredential(ctx, key) {
		return placefinder.Errorf(placefinder.ECREDENTIAL, InvalidCredentialMessage)
	}

	finder, err := c.connector.Connect(ctx, key)
	if err != nil {
		c.logger.Error("validated credential could not be bound", "err", err)
		return placefinder.Errorf(placefinder.ECREDENTIAL, InvalidCredentialMessage)
	}

	c.persist.SaveCredential(ctx, key)

	c.mu.Lock()
	c.credential = key
	c.finder = finder
	c.mu.Unlock()

	c.notify()
	return nil
}

// Subscribe registers fn to be called after every state change and returns
// a function that unregisters it.
func (c *Container) Subscribe(fn func()) (cancel func()) {
	c.listenersMu.Lock()
	defer c.listenersMu.Unlock()

	id := c.nextListener
	c.nextListener++
	c.listeners[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			c.listenersMu.Lock()
			delete(c.listeners, id)
			c.listenersMu.Unlock()
		})
	}
}

func (c *Container) notify() {
	c.listenersMu.Lock()
	fns := make([]func(), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.listenersMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// indexOf must be called with mu held.
func (c *Container) indexOf(id string) int {
	return slices.IndexFunc(c.places, func(p *placefinder.PlaceDetails) bool {
		return p.ID == id
	})
}
