package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/placefinder"
)

// Compile-time interface verification.
var _ placefinder.Store = (*Store)(nil)

// Store implements placefinder.Store on top of a single key/value table.
type Store struct {
	db *DB
}

// NewStore creates a new Store.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// LoadPlaces returns the saved places.
func (s *Store) LoadPlaces(ctx context.Context) ([]*placefinder.PlaceDetails, error) {
	value, err := s.get(ctx, placefinder.PlacesKey)
	if placefinder.ErrorCode(err) == placefinder.ENOTFOUND {
		return []*placefinder.PlaceDetails{}, nil
	}
	if err != nil {
		return nil, err
	}

	places := []*placefinder.PlaceDetails{}
	if err := json.Unmarshal([]byte(value), &places); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", placefinder.PlacesKey, err)
	}
	return places, nil
}

// SavePlaces replaces the saved places.
func (s *Store) SavePlaces(ctx context.Context, places []*placefinder.PlaceDetails) error {
	if places == nil {
		places = []*placefinder.PlaceDetails{}
	}
	data, err := json.Marshal(places)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", placefinder.PlacesKey, err)
	}
	return s.put(ctx, placefinder.PlacesKey, string(data))
}

// LoadCredential returns the stored credential.
func (s *Store) LoadCredential(ctx context.Context) (string, error) {
	return s.get(ctx, placefinder.CredentialKey)
}

// SaveCredential replaces the stored credential.
func (s *Store) SaveCredential(ctx context.Context, key string) error {
	return s.put(ctx, placefinder.CredentialKey, key)
}

func (s *Store) get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", placefinder.Errorf(placefinder.ENOTFOUND, "%s not stored", key)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) put(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
