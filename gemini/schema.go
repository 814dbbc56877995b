package gemini

import "google.golang.org/genai"

// SearchSchema constrains search responses to an ordered list of
// suggestions.
func SearchSchema() *genai.Schema {
	return &genai.Schema{
		Type:  genai.TypeArray,
		Items: suggestionSchema(),
	}
}

func suggestionSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"place_id":          {Type: genai.TypeString, Description: "A unique identifier for the place."},
			"name":              {Type: genai.TypeString, Description: "The name of the place."},
			"formatted_address": {Type: genai.TypeString, Description: "The full address of the place."},
			"types": {
				Type:        genai.TypeArray,
				Items:       &genai.Schema{Type: genai.TypeString},
				Description: "An array of types describing the place (e.g., 'tourist_attraction').",
			},
		},
		Required: []string{"place_id", "name", "formatted_address", "types"},
	}
}

// DetailsSchema constrains detail responses to a single saved place.
func DetailsSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"_id":               {Type: genai.TypeString, Description: "This should be the place_id provided in the prompt."},
			"name":              {Type: genai.TypeString},
			"formatted_address": {Type: genai.TypeString},
			"types": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"summary": {
				Type:        genai.TypeString,
				Description: "A concise and engaging summary of the place, suitable for a travel app. Highlight key features and what makes it special.",
			},
			"location": {
				Type:        genai.TypeObject,
				Description: "Geographic coordinates of the place in decimal degrees.",
				Properties: map[string]*genai.Schema{
					"lat": {Type: genai.TypeNumber},
					"lng": {Type: genai.TypeNumber},
				},
				Required: []string{"lat", "lng"},
			},
		},
		Required: []string{"_id", "name", "formatted_address", "types", "summary"},
	}
}

// SummarySchema constrains refresh responses to a single summary string.
func SummarySchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary": {
				Type:        genai.TypeString,
				Description: "A new, concise, and engaging summary for the place.",
			},
		},
		Required: []string{"summary"},
	}
}
