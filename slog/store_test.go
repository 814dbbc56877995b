package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/placefinder"
	"github.com/fwojciec/placefinder/mock"
	pfslog "github.com/fwojciec/placefinder/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingStore(t *testing.T) {
	t.Parallel()

	t.Run("logs place operations at debug", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Store{
			LoadPlacesFn: func(ctx context.Context) ([]*placefinder.PlaceDetails, error) {
				return []*placefinder.PlaceDetails{{ID: "p1"}}, nil
			},
			SavePlacesFn: func(ctx context.Context, places []*placefinder.PlaceDetails) error {
				return errors.New("disk full")
			},
		}

		store := pfslog.NewLoggingStore(inner, logger)
		got, err := store.LoadPlaces(context.Background())
		require.NoError(t, err)
		assert.Len(t, got, 1)
		err = store.SavePlaces(context.Background(), got)
		require.Error(t, err)

		output := buf.String()
		assert.Contains(t, output, `msg="load places"`)
		assert.Contains(t, output, "count=1")
		assert.Contains(t, output, `msg="save places"`)
		assert.Contains(t, output, `err="disk full"`)
	})

	t.Run("never logs the credential", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Store{
			LoadCredentialFn: func(ctx context.Context) (string, error) { return "secret-key", nil },
			SaveCredentialFn: func(ctx context.Context, key string) error { return nil },
		}

		store := pfslog.NewLoggingStore(inner, logger)
		key, err := store.LoadCredential(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "secret-key", key)
		require.NoError(t, store.SaveCredential(context.Background(), key))

		output := buf.String()
		assert.Contains(t, output, "found=true")
		assert.Contains(t, output, `msg="save credential"`)
		assert.NotContains(t, output, "secret-key")
	})
}
