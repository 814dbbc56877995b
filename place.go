package placefinder

import (
	"context"
	"errors"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PlaceSuggestion is an unsaved search result. It only lives for the
// duration of a single search response.
type PlaceSuggestion struct {
	PlaceID          string   `json:"place_id" validate:"required"`
	Name             string   `json:"name" validate:"required"`
	FormattedAddress string   `json:"formatted_address" validate:"required"`
	Types            []string `json:"types" validate:"required"`
}

// Validate returns an error if the suggestion is missing required fields.
func (s *PlaceSuggestion) Validate() error {
	return validateStruct("place suggestion", s)
}

// Location is a point in floating-point degrees.
type Location struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// PlaceDetails is a saved place. ID always equals the place_id of the
// suggestion it was fetched for.
type PlaceDetails struct {
	ID               string    `json:"_id" validate:"required"`
	Name             string    `json:"name" validate:"required"`
	FormattedAddress string    `json:"formatted_address" validate:"required"`
	Types            []string  `json:"types" validate:"required"`
	Summary          string    `json:"summary" validate:"required"`
	Location         *Location `json:"location,omitempty"`
}

// Validate returns an error if the place is missing required fields.
func (p *PlaceDetails) Validate() error {
	return validateStruct("place details", p)
}

// Clone returns a deep copy of p.
func (p *PlaceDetails) Clone() *PlaceDetails {
	other := *p
	other.Types = slices.Clone(p.Types)
	if p.Location != nil {
		loc := *p.Location
		other.Location = &loc
	}
	return &other
}

// PlaceFinder talks to a generative language backend on behalf of a single
// credential.
type PlaceFinder interface {
	// SearchPlaces returns suggestions matching query. A blank query returns
	// an empty slice without contacting the backend.
	// Returns ESEARCH on any transport, parse or validation failure.
	SearchPlaces(ctx context.Context, query string) ([]*PlaceSuggestion, error)

	// FetchPlaceDetails returns full details for a suggestion. The returned
	// ID is always placeID.
	// Returns EDETAIL on any transport, parse or validation failure.
	FetchPlaceDetails(ctx context.Context, placeID, name string) (*PlaceDetails, error)

	// RefreshSummary returns a copy of place with a newly generated summary.
	// No other field changes.
	// Returns EREFRESH on any transport, parse or validation failure.
	RefreshSummary(ctx context.Context, place *PlaceDetails) (*PlaceDetails, error)
}

// Connector validates credentials and binds PlaceFinders to them.
type Connector interface {
	// ValidateCredential reports whether key authorizes backend requests.
	// Any failure yields false.
	ValidateCredential(ctx context.Context, key string) bool

	// Connect returns a PlaceFinder bound to key.
	Connect(ctx context.Context, key string) (PlaceFinder, error)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateStruct converts validator errors into a single EINVALID error
// naming the offending fields.
func validateStruct(kind string, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Errorf(EINVALID, "%s: %v", kind, err)
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			fields = append(fields, fe.Field()+" required")
		} else {
			fields = append(fields, fe.Field()+" out of range")
		}
	}
	return Errorf(EINVALID, "%s: %s", kind, strings.Join(fields, ", "))
}
