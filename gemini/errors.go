package gemini

import (
	"errors"
	"net/http"

	"google.golang.org/genai"
)

// IsCredentialError reports whether err is a Gemini API response rejecting
// the credential. Classification uses the response status and error details
// only, never the error text.
func IsCredentialError(err error) bool {
	if err == nil {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return isCredentialStatus(apiErr)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return isCredentialStatus(*apiErrPtr)
	}
	return false
}

func isCredentialStatus(e genai.APIError) bool {
	switch e.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return true
	case http.StatusBadRequest:
		// Gemini reports an unknown key as 400 INVALID_ARGUMENT with an
		// ErrorInfo detail carrying reason API_KEY_INVALID.
		for _, d := range e.Details {
			if reason, _ := d["reason"].(string); reason == "API_KEY_INVALID" {
				return true
			}
		}
	}
	return false
}
