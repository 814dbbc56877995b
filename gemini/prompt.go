package gemini

import (
	"fmt"

	"github.com/fwojciec/placefinder"
)

// validationPrompt is the cheapest request that still produces content.
const validationPrompt = "hello"

// BuildSearchPrompt builds the instruction for a place search.
func BuildSearchPrompt(query string) string {
	return fmt.Sprintf("Find places matching %q. Return a list of relevant suggestions with their Google Places place_id, name, formatted address, and types.", query)
}

// BuildDetailsPrompt builds the instruction for fetching one place.
func BuildDetailsPrompt(placeID, name string) string {
	return fmt.Sprintf("Provide detailed information for the place named %q with place_id %q. The response should include the place_id (as _id), name, formatted address, types, its geographic location as lat and lng, and a compelling summary for a tourist.", name, placeID)
}

// BuildRefreshPrompt builds the instruction for a new summary.
func BuildRefreshPrompt(place *placefinder.PlaceDetails) string {
	return fmt.Sprintf("Generate a new, fresh, and engaging summary for the following place, suitable for a travel app. Keep it concise. Place name: %q, Address: %q.", place.Name, place.FormattedAddress)
}
