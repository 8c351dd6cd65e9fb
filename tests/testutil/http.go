// Package testutil provides common test utilities for the MotorMarket backend.
package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// Envelope mirrors the API response wrapper
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *ErrorInfo      `json:"error"`
}

// ErrorInfo carries the error portion of a failed response
type ErrorInfo struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// DoJSON performs a JSON request against the handler and decodes the
// response envelope. An empty token skips the Authorization header.
func DoJSON(t *testing.T, h http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	var env Envelope
	if len(w.Body.Bytes()) > 0 {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

// DecodeData unmarshals the envelope's data payload into out
func DecodeData(t *testing.T, env Envelope, out any) {
	t.Helper()
	require.NotNil(t, env.Data, "response has no data payload")
	require.NoError(t, json.Unmarshal(env.Data, out), "failed to decode data payload")
}

// RequireErrorCode asserts that the response failed with the given
// domain error code.
func RequireErrorCode(t *testing.T, env Envelope, code string) {
	t.Helper()
	require.False(t, env.Success, "expected a failed response")
	require.NotNil(t, env.Error, "failed response carries no error")
	require.Equal(t, code, env.Error.Code)
}
