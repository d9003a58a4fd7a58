package testing

import (
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

// HTTPErrorPayload is an error response body
type HTTPErrorPayload struct {
	Status  string `json:"status"`
	Text    string `json:"text"`
	Message string `json:"message"`
}

// NewHTTPErrorPayload builds expected error response body
func NewHTTPErrorPayload(statusCode int, statusText string, message string) HTTPErrorPayload {
	return HTTPErrorPayload{
		Status:  strconv.Itoa(statusCode),
		Text:    statusText,
		Message: message,
	}
}

// AssertHTTPErrorResponse checks that recorded response is an expected error
func AssertHTTPErrorResponse(t *testing.T, want HTTPErrorPayload, recorder *httptest.ResponseRecorder) bool {
	if !assert.Equal(t, want.Status, strconv.Itoa(recorder.Code)) {
		return false
	}
	var got HTTPErrorPayload
	if !JSONUnmarshalReader(t, recorder.Body, &got) {
		return false
	}
	return assert.Equal(t, want, got)
}
