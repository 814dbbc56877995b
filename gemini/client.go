// Package gemini implements placefinder.PlaceFinder and placefinder.Connector
// using Google Gemini structured-schema requests.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/fwojciec/placefinder"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// User-facing failure messages.
const (
	searchFailureMessage  = "Failed to fetch place suggestions from Gemini API."
	detailFailureMessage  = "Failed to fetch place details from Gemini API."
	refreshFailureMessage = "Failed to refresh summary from Gemini API."
	rejectedKeyMessage    = "Gemini API rejected the API key."
)

// Ensure Client implements placefinder.PlaceFinder at compile time.
var _ placefinder.PlaceFinder = (*Client)(nil)

// Generator generates content. *genai.Models satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Option configures a Client or Connector.
type Option func(*options)

type options struct {
	model      string
	limiter    *rate.Limiter
	logger     *slog.Logger
	httpOpts   genai.HTTPOptions
	httpClient *http.Client
}

func newOptions(opts []Option) options {
	o := options{
		model:  DefaultModel,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithModel sets the Gemini model name.
func WithModel(model string) Option {
	return func(o *options) {
		if model != "" {
			o.model = model
		}
	}
}

// WithLimiter paces outbound requests. Requests are not paced by default.
func WithLimiter(l *rate.Limiter) Option {
	return func(o *options) {
		o.limiter = l
	}
}

// WithLogger sets the logger used for request failures and identifier
// mismatches.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithBaseURL points the underlying genai client at a different endpoint.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.httpOpts.BaseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client used by the underlying genai client.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// Client is a PlaceFinder bound to a single credential.
type Client struct {
	models Generator
	options
}

// NewClient returns a Client that sends requests through models.
func NewClient(models Generator, opts ...Option) *Client {
	return &Client{models: models, options: newOptions(opts)}
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// SearchPlaces returns suggestions matching query.
func (c *Client) SearchPlaces(ctx context.Context, query string) ([]*placefinder.PlaceSuggestion, error) {
	if strings.TrimSpace(query) == "" {
		return []*placefinder.PlaceSuggestion{}, nil
	}

	text, err := c.generate(ctx, BuildSearchPrompt(query), SearchSchema())
	if err != nil {
		return nil, c.fail("search", err, placefinder.ESEARCH, searchFailureMessage)
	}

	suggestions, err := decodeSuggestions(text)
	if err != nil {
		return nil, c.fail("search", err, placefinder.ESEARCH, searchFailureMessage)
	}
	return suggestions, nil
}

// FetchPlaceDetails returns details for the place identified by placeID.
// The returned ID is always placeID.
func (c *Client) FetchPlaceDetails(ctx context.Context, placeID, name string) (*placefinder.PlaceDetails, error) {
	text, err := c.generate(ctx, BuildDetailsPrompt(placeID, name), DetailsSchema())
	if err != nil {
		return nil, c.fail("details", err, placefinder.EDETAIL, detailFailureMessage)
	}

	details, err := decodeDetails(text)
	if err != nil {
		return nil, c.fail("details", err, placefinder.EDETAIL, detailFailureMessage)
	}

	if details.ID != placeID {
		c.logger.Warn("mismatched place id, overwriting",
			"requested", placeID,
			"received", details.ID,
		)
		details.ID = placeID
	}
	return details, nil
}

// RefreshSummary returns a copy of place with a newly generated summary.
func (c *Client) RefreshSummary(ctx context.Context, place *placefinder.PlaceDetails) (*placefinder.PlaceDetails, error) {
	if place == nil {
		return nil, placefinder.Errorf(placefinder.EINVALID, "place required")
	}

	text, err := c.generate(ctx, BuildRefreshPrompt(place), SummarySchema())
	if err != nil {
		return nil, c.fail("refresh", err, placefinder.EREFRESH, refreshFailureMessage)
	}

	summary, err := decodeSummary(text)
	if err != nil {
		return nil, c.fail("refresh", err, placefinder.EREFRESH, refreshFailureMessage)
	}

	updated := place.Clone()
	updated.Summary = summary
	return updated, nil
}

// generate sends a single-turn prompt and returns the trimmed response text.
// A nil schema sends a plain-text request.
func (c *Client) generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	var config *genai.GenerateContentConfig
	if schema != nil {
		config = &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		}
	}

	result, err := c.models.GenerateContent(ctx, c.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		config,
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", errors.New("gemini returned nil result")
	}
	return strings.TrimSpace(result.Text()), nil
}

// fail logs the underlying cause and returns the user-facing error for op.
// Rejected credentials are reported as ECREDENTIAL regardless of op.
func (c *Client) fail(op string, cause error, code, message string) error {
	c.logger.Error("gemini request failed", "op", op, "err", cause)
	if IsCredentialError(cause) {
		return placefinder.Errorf(placefinder.ECREDENTIAL, rejectedKeyMessage)
	}
	return placefinder.Errorf(code, "%s", message)
}

func decodeSuggestions(text string) ([]*placefinder.PlaceSuggestion, error) {
	var suggestions []*placefinder.PlaceSuggestion
	if err := decodeStrict(text, &suggestions); err != nil {
		return nil, err
	}
	if suggestions == nil {
		return nil, errors.New("expected a JSON array of suggestions")
	}
	for i, s := range suggestions {
		if s == nil {
			return nil, errors.New("null suggestion in response")
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("suggestion %d: %w", i, err)
		}
	}
	return suggestions, nil
}

func decodeDetails(text string) (*placefinder.PlaceDetails, error) {
	var details *placefinder.PlaceDetails
	if err := decodeStrict(text, &details); err != nil {
		return nil, err
	}
	if details == nil {
		return nil, errors.New("expected a JSON object with place details")
	}
	if err := details.Validate(); err != nil {
		return nil, err
	}
	return details, nil
}

func decodeSummary(text string) (string, error) {
	var resp *struct {
		Summary *string `json:"summary"`
	}
	if err := decodeStrict(text, &resp); err != nil {
		return "", err
	}
	if resp == nil || resp.Summary == nil || strings.TrimSpace(*resp.Summary) == "" {
		return "", errors.New("summary required")
	}
	return *resp.Summary, nil
}

// decodeStrict decodes a single JSON value and rejects trailing data.
func decodeStrict(text string, v any) error {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); err != io.EOF {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}
