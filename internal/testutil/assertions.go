package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// BaseResponse mirrors the API's response envelope
type BaseResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// DecodeResponse reads the response envelope and unmarshals the data
// section into v when v is non-nil.
func DecodeResponse(t *testing.T, resp *http.Response, v interface{}) BaseResponse {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	var envelope BaseResponse
	err = json.Unmarshal(body, &envelope)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))

	if v != nil {
		err = json.Unmarshal(envelope.Data, v)
		require.NoError(t, err, "failed to unmarshal data: %s", string(envelope.Data))
	}

	return envelope
}

// AssertErrorResponse verifies error response with expected status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	var envelope BaseResponse
	err = json.Unmarshal(body, &envelope)
	require.NoError(t, err, "failed to unmarshal error response: %s", string(body))

	assert.False(t, envelope.Success)
	assert.Contains(t, envelope.Message, expectedMessage, "error message mismatch")
}
