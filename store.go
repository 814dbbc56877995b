package placefinder

import "context"

// Storage keys shared by every Store implementation.
const (
	PlacesKey     = "savedPlaces"
	CredentialKey = "geminiApiKey"
)

// Store persists the saved places and the active credential.
type Store interface {
	// LoadPlaces returns the saved places in stored order.
	// Returns an empty slice when nothing has been saved.
	LoadPlaces(ctx context.Context) ([]*PlaceDetails, error)

	// SavePlaces replaces the stored places.
	SavePlaces(ctx context.Context, places []*PlaceDetails) error

	// LoadCredential returns the stored credential.
	// Returns ENOTFOUND if no credential has been stored.
	LoadCredential(ctx context.Context) (string, error)

	// SaveCredential replaces the stored credential.
	SaveCredential(ctx context.Context, key string) error
}
