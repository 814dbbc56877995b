package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/placefinder"
	"google.golang.org/genai"
)

// Ensure Connector implements placefinder.Connector at compile time.
var _ placefinder.Connector = (*Connector)(nil)

// Connector creates Gemini clients bound to a credential.
type Connector struct {
	opts []Option
	options
}

// NewConnector returns a Connector. The options are applied to every Client
// it creates.
func NewConnector(opts ...Option) *Connector {
	return &Connector{opts: opts, options: newOptions(opts)}
}

// Connect returns a Client bound to key. No request is made.
func (c *Connector) Connect(ctx context.Context, key string) (placefinder.PlaceFinder, error) {
	return c.connect(ctx, key)
}

func (c *Connector) connect(ctx context.Context, key string) (*Client, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, placefinder.Errorf(placefinder.ECREDENTIAL, "API key required")
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      key,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: c.httpOpts,
		HTTPClient:  c.httpClient,
	})
	if err != nil {
		c.logger.Error("failed to create gemini client", "err", err)
		return nil, placefinder.Errorf(placefinder.ECREDENTIAL, "failed to connect to Gemini API")
	}

	return NewClient(gc.Models, c.opts...), nil
}

// ValidateCredential sends a minimal plain-text request with key and reports
// whether the response carried any content. Every failure yields false.
func (c *Connector) ValidateCredential(ctx context.Context, key string) bool {
	client, err := c.connect(ctx, key)
	if err != nil {
		return false
	}
	return client.Ping(ctx)
}

// Ping sends a minimal plain-text request and reports whether the response
// carried any content.
func (c *Client) Ping(ctx context.Context) bool {
	text, err := c.generate(ctx, validationPrompt, nil)
	if err != nil {
		c.logger.Warn("credential validation failed", "err", err)
		return false
	}
	return text != ""
}
