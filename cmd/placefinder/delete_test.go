package main_test

import (
	"testing"

	"github.com/fwojciec/placefinder"
	main "github.com/fwojciec/placefinder/cmd/placefinder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("removes the place from the store", func(t *testing.T) {
		t.Parallel()

		store := &memStore{places: []*placefinder.PlaceDetails{museum()}}
		deps, stdout, _ := newDeps(t, store, nil)

		err := (&main.DeleteCmd{ID: "p1"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "Deleted 'City Museum'\n", stdout.String())
		assert.Empty(t, store.saved())
	})

	t.Run("fails for an unknown id", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(t, &memStore{}, nil)

		err := (&main.DeleteCmd{ID: "nope"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, placefinder.ENOTFOUND, placefinder.ErrorCode(err))
		assert.Equal(t, "error: Place not found.\n", stderr.String())
	})
}
