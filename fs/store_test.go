package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/placefinder"
	"github.com/fwojciec/placefinder/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Places(t *testing.T) {
	t.Parallel()

	t.Run("returns empty slice when nothing saved", func(t *testing.T) {
		t.Parallel()

		store := fs.NewFileStore(t.TempDir())

		places, err := store.LoadPlaces(context.Background())

		require.NoError(t, err)
		assert.NotNil(t, places)
		assert.Empty(t, places)
	})

	t.Run("round trips places", func(t *testing.T) {
		t.Parallel()

		store := fs.NewFileStore(filepath.Join(t.TempDir(), "nested"))
		ctx := context.Background()

		want := []*placefinder.PlaceDetails{{
			ID:               "p1",
			Name:             "Bà Đá",
			FormattedAddress: "Hanoi",
			Types:            []string{"place_of_worship"},
			Summary:          "A pagoda.",
			Location:         &placefinder.Location{Lat: 21.03, Lng: 105.85},
		}}

		require.NoError(t, store.SavePlaces(ctx, want))

		got, err := store.LoadPlaces(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("leaves no temporary file behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store := fs.NewFileStore(dir)

		require.NoError(t, store.SavePlaces(context.Background(), nil))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, placefinder.PlacesKey, entries[0].Name())
	})

	t.Run("returns error for corrupt file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, placefinder.PlacesKey), []byte("[{"), 0600))

		_, err := fs.NewFileStore(dir).LoadPlaces(context.Background())

		require.Error(t, err)
	})
}

func TestFileStore_Credential(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND when absent", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewFileStore(t.TempDir()).LoadCredential(context.Background())

		assert.Equal(t, placefinder.ENOTFOUND, placefinder.ErrorCode(err))
	})

	t.Run("stores credential with owner-only permissions", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		store := fs.NewFileStore(dir)
		ctx := context.Background()

		require.NoError(t, store.SaveCredential(ctx, "secret"))

		key, err := store.LoadCredential(ctx)
		require.NoError(t, err)
		assert.Equal(t, "secret", key)

		info, err := os.Stat(filepath.Join(dir, placefinder.CredentialKey))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	})
}
