package places_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/placefinder"
	"github.com/fwojciec/placefinder/fs"
	"github.com/fwojciec/placefinder/mock"
	"github.com/fwojciec/placefinder/places"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore returns a mock.Store backed by local variables, with accessors
// for the stored places and the number of place writes.
func memStore(t *testing.T, initial []*placefinder.PlaceDetails, key string) (*mock.Store, func() []*placefinder.PlaceDetails, func() int) {
	t.Helper()

	var mu sync.Mutex
	stored, cred, writes := initial, key, 0
	s := &mock.Store{
		LoadPlacesFn: func(context.Context) ([]*placefinder.PlaceDetails, error) {
			mu.Lock()
			defer mu.Unlock()
			return stored, nil
		},
		SavePlacesFn: func(_ context.Context, places []*placefinder.PlaceDetails) error {
			mu.Lock()
			defer mu.Unlock()
			stored = places
			writes++
			return nil
		},
		LoadCredentialFn: func(context.Context) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			if cred == "" {
				return "", placefinder.Errorf(placefinder.ENOTFOUND, "credential not found")
			}
			return cred, nil
		},
		SaveCredentialFn: func(_ context.Context, k string) error {
			mu.Lock()
			defer mu.Unlock()
			cred = k
			return nil
		},
	}
	current := func() []*placefinder.PlaceDetails {
		mu.Lock()
		defer mu.Unlock()
		return stored
	}
	count := func() int {
		mu.Lock()
		defer mu.Unlock()
		return writes
	}
	return s, current, count
}

func acceptingConnector(finder placefinder.PlaceFinder) *mock.Connector {
	return &mock.Connector{
		ValidateCredentialFn: func(context.Context, string) bool { return true },
		ConnectFn: func(context.Context, string) (placefinder.PlaceFinder, error) {
			return finder, nil
		},
	}
}

func place(id, name string) *placefinder.PlaceDetails {
	return &placefinder.PlaceDetails{
		ID:               id,
		Name:             name,
		FormattedAddress: name + " address",
		Types:            []string{"tourist_attraction"},
		Summary:          name + " summary",
	}
}

func ids(places []*placefinder.PlaceDetails) []string {
	out := make([]string, len(places))
	for i, p := range places {
		out[i] = p.ID
	}
	return out
}

func newContainer(t *testing.T, initial []*placefinder.PlaceDetails) (*places.Container, func() []*placefinder.PlaceDetails, func() int) {
	t.Helper()
	store, current, writes := memStore(t, initial, "")
	c := places.NewContainer(places.NewPersistence(store, nil), acceptingConnector(&mock.PlaceFinder{}), nil)
	c.Open(context.Background())
	return c, current, writes
}

func TestContainer_AddPlace(t *testing.T) {
	t.Parallel()

	t.Run("prepends and persists", func(t *testing.T) {
		t.Parallel()

		c, stored, writes := newContainer(t, nil)
		ctx := context.Background()

		assert.True(t, c.AddPlace(ctx, place("p1", "Louvre")))
		assert.True(t, c.AddPlace(ctx, place("p2", "Orsay")))

		assert.Equal(t, []string{"p2", "p1"}, ids(c.Places()))
		assert.Equal(t, []string{"p2", "p1"}, ids(stored()))
		assert.Equal(t, 2, writes())
	})

	t.Run("duplicate id is a no-op", func(t *testing.T) {
		t.Parallel()

		c, _, writes := newContainer(t, nil)
		ctx := context.Background()

		require.True(t, c.AddPlace(ctx, place("p1", "Louvre")))
		dup := place("p1", "Louvre again")

		assert.False(t, c.AddPlace(ctx, dup))

		got := c.Places()
		require.Len(t, got, 1)
		assert.Equal(t, "Louvre", got[0].Name)
		assert.Equal(t, 1, writes())
	})

	t.Run("nil place is ignored", func(t *testing.T) {
		t.Parallel()

		c, _, _ := newContainer(t, nil)
		assert.False(t, c.AddPlace(context.Background(), nil))
	})

	t.Run("stores a copy", func(t *testing.T) {
		t.Parallel()

		c, _, _ := newContainer(t, nil)
		p := place("p1", "Louvre")
		c.AddPlace(context.Background(), p)
		p.Name = "mutated"

		got, ok := c.Place("p1")
		require.True(t, ok)
		assert.Equal(t, "Louvre", got.Name)
	})
}

func TestContainer_DeletePlace(t *testing.T) {
	t.Parallel()

	t.Run("removes every trace of the id", func(t *testing.T) {
		t.Parallel()

		c, stored, _ := newContainer(t, []*placefinder.PlaceDetails{place("p1", "A"), place("p2", "B")})

		assert.True(t, c.DeletePlace(context.Background(), "p1"))

		assert.Equal(t, []string{"p2"}, ids(c.Places()))
		assert.Equal(t, []string{"p2"}, ids(stored()))
		assert.False(t, c.Has("p1"))
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		t.Parallel()

		c, _, writes := newContainer(t, []*placefinder.PlaceDetails{place("p1", "A")})

		assert.False(t, c.DeletePlace(context.Background(), "missing"))
		assert.Equal(t, 0, writes())
	})
}

func TestContainer_UpdatePlace(t *testing.T) {
	t.Parallel()

	t.Run("replaces in place", func(t *testing.T) {
		t.Parallel()

		c, stored, _ := newContainer(t, []*placefinder.PlaceDetails{place("p1", "A"), place("p2", "B")})
		updated := place("p2", "B")
		updated.Summary = "fresh"

		assert.True(t, c.UpdatePlace(context.Background(), updated))

		got := c.Places()
		assert.Equal(t, []string{"p1", "p2"}, ids(got))
		assert.Equal(t, "fresh", got[1].Summary)
		assert.Equal(t, "fresh", stored()[1].Summary)
	})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		t.Parallel()

		c, _, writes := newContainer(t, []*placefinder.PlaceDetails{place("p1", "A")})

		assert.False(t, c.UpdatePlace(context.Background(), place("p9", "Z")))
		assert.Equal(t, []string{"p1"}, ids(c.Places()))
		assert.Equal(t, 0, writes())
	})
}

func TestContainer_SetCredential(t *testing.T) {
	t.Parallel()

	t.Run("empty key is rejected before validation", func(t *testing.T) {
		t.Parallel()

		store, _, _ := memStore(t, nil, "")
		connector := &mock.Connector{
			ValidateCredentialFn: func(context.Context, string) bool {
				t.Fatal("unexpected validation")
				return false
			},
		}
		c := places.NewContainer(places.NewPersistence(store, nil), connector, nil)

		err := c.SetCredential(context.Background(), "   ")

		require.Error(t, err)
		assert.Equal(t, placefinder.EINVALID, placefinder.ErrorCode(err))
		assert.Equal(t, "API Key cannot be empty.", placefinder.ErrorMessage(err))
	})

	t.Run("rejected key leaves state untouched", func(t *testing.T) {
		t.Parallel()

		finder := &mock.PlaceFinder{}
		store, _, _ := memStore(t, nil, "old-key")
		connector := &mock.Connector{
			ValidateCredentialFn: func(context.Context, string) bool { return false },
			ConnectFn: func(context.Context, string) (placefinder.PlaceFinder, error) {
				return finder, nil
			},
		}
		c := places.NewContainer(places.NewPersistence(store, nil), connector, nil)
		c.Open(context.Background())

		err := c.SetCredential(context.Background(), "bad-key")

		require.Error(t, err)
		assert.Equal(t, placefinder.ECREDENTIAL, placefinder.ErrorCode(err))
		assert.Equal(t, "Invalid API Key. Please check the key and try again.", placefinder.ErrorMessage(err))
		assert.Equal(t, "old-key", c.Credential())
		got, err := c.Finder()
		require.NoError(t, err)
		assert.Same(t, finder, got)
	})

	t.Run("accepted key is trimmed, persisted and activated", func(t *testing.T) {
		t.Parallel()

		finder := &mock.PlaceFinder{}
		var savedKey, connectedKey string
		store, _, _ := memStore(t, nil, "")
		store.SaveCredentialFn = func(_ context.Context, k string) error {
			savedKey = k
			return nil
		}
		connector := &mock.Connector{
			ValidateCredentialFn: func(_ context.Context, k string) bool { return k == "good-key" },
			ConnectFn: func(_ context.Context, k string) (placefinder.PlaceFinder, error) {
				connectedKey = k
				return finder, nil
			},
		}
		c := places.NewContainer(places.NewPersistence(store, nil), connector, nil)

		require.NoError(t, c.SetCredential(context.Background(), "  good-key \n"))

		assert.Equal(t, "good-key", savedKey)
		assert.Equal(t, "good-key", connectedKey)
		assert.Equal(t, "good-key", c.Credential())
		got, err := c.Finder()
		require.NoError(t, err)
		assert.Same(t, finder, got)
	})

	t.Run("persistence failure still activates", func(t *testing.T) {
		t.Parallel()

		store, _, _ := memStore(t, nil, "")
		store.SaveCredentialFn = func(context.Context, string) error { return errors.New("disk full") }
		c := places.NewContainer(places.NewPersistence(store, nil), acceptingConnector(&mock.PlaceFinder{}), nil)

		require.NoError(t, c.SetCredential(context.Background(), "key"))
		assert.Equal(t, "key", c.Credential())
	})

	t.Run("connect failure after validation is a credential error", func(t *testing.T) {
		t.Parallel()

		store, _, _ := memStore(t, nil, "")
		connector := &mock.Connector{
			ValidateCredentialFn: func(context.Context, string) bool { return true },
			ConnectFn: func(context.Context, string) (placefinder.PlaceFinder, error) {
				return nil, errors.New("boom")
			},
		}
		c := places.NewContainer(places.NewPersistence(store, nil), connector, nil)

		err := c.SetCredential(context.Background(), "key")

		assert.Equal(t, placefinder.ECREDENTIAL, placefinder.ErrorCode(err))
		assert.Empty(t, c.Credential())
	})
}

func TestContainer_Finder(t *testing.T) {
	t.Parallel()

	c, _, _ := newContainer(t, nil)

	_, err := c.Finder()

	require.Error(t, err)
	assert.Equal(t, placefinder.ECREDENTIAL, placefinder.ErrorCode(err))
	assert.Equal(t, "API key required", placefinder.ErrorMessage(err))
}

func TestContainer_Open(t *testing.T) {
	t.Parallel()

	t.Run("binds stored credential without revalidating", func(t *testing.T) {
		t.Parallel()

		finder := &mock.PlaceFinder{}
		store, _, _ := memStore(t, []*placefinder.PlaceDetails{place("p1", "A")}, "stored-key")
		connector := &mock.Connector{
			ValidateCredentialFn: func(context.Context, string) bool {
				t.Fatal("stored credential must not be revalidated")
				return false
			},
			ConnectFn: func(_ context.Context, k string) (placefinder.PlaceFinder, error) {
				assert.Equal(t, "stored-key", k)
				return finder, nil
			},
		}
		c := places.NewContainer(places.NewPersistence(store, nil), connector, nil)

		c.Open(context.Background())

		assert.Equal(t, "stored-key", c.Credential())
		assert.Equal(t, []string{"p1"}, ids(c.Places()))
	})

	t.Run("damaged stored records are dropped", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		data := `[null, {"_id":"p1","name":"A","formatted_address":"a","types":[],"summary":"s"}, {"_id":"p1","name":"A again","formatted_address":"a","types":[],"summary":"s"}]`
		require.NoError(t, os.WriteFile(filepath.Join(dir, placefinder.PlacesKey), []byte(data), 0600))
		c := places.NewContainer(places.NewPersistence(fs.NewFileStore(dir), nil), &mock.Connector{}, nil)
		ctx := context.Background()

		c.Open(ctx)

		require.NotPanics(t, func() { _ = c.Places() })
		got := c.Places()
		require.Len(t, got, 1)
		assert.Equal(t, "A", got[0].Name)

		assert.True(t, c.DeletePlace(ctx, "p1"))
		assert.False(t, c.Has("p1"))
		assert.Empty(t, c.Places())
	})

	t.Run("unreadable storage starts empty", func(t *testing.T) {
		t.Parallel()

		store := &mock.Store{
			LoadPlacesFn: func(context.Context) ([]*placefinder.PlaceDetails, error) {
				return nil, errors.New("failed to decode savedPlaces")
			},
			LoadCredentialFn: func(context.Context) (string, error) {
				return "", errors.New("io error")
			},
		}
		c := places.NewContainer(places.NewPersistence(store, nil), &mock.Connector{}, nil)

		c.Open(context.Background())

		assert.Empty(t, c.Places())
		assert.Empty(t, c.Credential())
	})
}

func TestContainer_Subscribe(t *testing.T) {
	t.Parallel()

	c, _, _ := newContainer(t, nil)
	ctx := context.Background()

	var calls atomic.Int32
	cancel := c.Subscribe(func() {
		// Reading state from a listener must not deadlock.
		_ = c.Places()
		calls.Add(1)
	})

	c.AddPlace(ctx, place("p1", "A"))
	c.AddPlace(ctx, place("p1", "A"))
	c.UpdatePlace(ctx, place("p1", "A"))
	c.DeletePlace(ctx, "p1")
	assert.Equal(t, int32(3), calls.Load())

	cancel()
	cancel()
	c.AddPlace(ctx, place("p2", "B"))
	assert.Equal(t, int32(3), calls.Load())
}
