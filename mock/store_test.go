package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/placefinder"
	"github.com/fwojciec/placefinder/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SavePlaces(t *testing.T) {
	t.Parallel()

	t.Run("delegates to SavePlacesFn", func(t *testing.T) {
		t.Parallel()

		var calledWith []*placefinder.PlaceDetails
		s := &mock.Store{
			SavePlacesFn: func(_ context.Context, places []*placefinder.PlaceDetails) error {
				calledWith = places
				return nil
			},
		}

		places := []*placefinder.PlaceDetails{{ID: "p1", Name: "Louvre"}}
		err := s.SavePlaces(context.Background(), places)

		require.NoError(t, err)
		assert.Equal(t, places, calledWith)
	})
}

func TestConnector_ValidateCredential(t *testing.T) {
	t.Parallel()

	c := &mock.Connector{
		ValidateCredentialFn: func(_ context.Context, key string) bool {
			return key == "good"
		},
	}

	assert.True(t, c.ValidateCredential(context.Background(), "good"))
	assert.False(t, c.ValidateCredential(context.Background(), "bad"))
}
