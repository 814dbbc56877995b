package gemini_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/placefinder/gemini"
	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

func TestIsCredentialError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain error mentioning key", err: errors.New("invalid api key"), want: false},
		{name: "unauthorized", err: genai.APIError{Code: 401}, want: true},
		{name: "forbidden", err: genai.APIError{Code: 403}, want: true},
		{name: "pointer forbidden", err: &genai.APIError{Code: 403}, want: true},
		{name: "wrapped unauthorized", err: fmt.Errorf("call: %w", genai.APIError{Code: 401}), want: true},
		{
			name: "bad request with invalid key reason",
			err: genai.APIError{
				Code:    400,
				Status:  "INVALID_ARGUMENT",
				Details: []map[string]any{{"@type": "type.googleapis.com/google.rpc.ErrorInfo", "reason": "API_KEY_INVALID"}},
			},
			want: true,
		},
		{name: "bad request for other reason", err: genai.APIError{Code: 400, Status: "INVALID_ARGUMENT"}, want: false},
		{name: "rate limited", err: genai.APIError{Code: 429, Status: "RESOURCE_EXHAUSTED"}, want: false},
		{name: "server error", err: genai.APIError{Code: 500}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, gemini.IsCredentialError(tt.err))
		})
	}
}
