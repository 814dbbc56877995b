package mock

import (
	"context"

	"github.com/fwojciec/placefinder"
)

var _ placefinder.Connector = (*Connector)(nil)

// Connector is a mock implementation of placefinder.Connector.
type Connector struct {
	ValidateCredentialFn func(ctx context.Context, key string) bool
	ConnectFn            func(ctx context.Context, key string) (placefinder.PlaceFinder, error)
}

func (c *Connector) ValidateCredential(ctx context.Context, key string) bool {
	return c.ValidateCredentialFn(ctx, key)
}

func (c *Connector) Connect(ctx context.Context, key string) (placefinder.PlaceFinder, error) {
	return c.ConnectFn(ctx, key)
}
