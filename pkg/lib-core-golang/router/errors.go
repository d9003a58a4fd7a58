package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pkg/errors"
)

// Envelope is a body of every response. Status is a string encoded
// http status code and Text is its status text
type Envelope struct {
	Status  string      `json:"status"`
	Text    string      `json:"text"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// NewEnvelope builds response envelope for a given status code
func NewEnvelope(statusCode int, message string, data interface{}) Envelope {
	return Envelope{
		Status:  strconv.Itoa(statusCode),
		Text:    http.StatusText(statusCode),
		Message: message,
		Data:    data,
	}
}

// HTTPError represents a generic http error structure
type HTTPError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e HTTPError) Error() string {
	return fmt.Sprintf("[%v](%v): %v", e.StatusCode, e.Status, e.Message)
}

// Envelope returns error response body
func (e HTTPError) Envelope() Envelope {
	return Envelope{
		Status:  strconv.Itoa(e.StatusCode),
		Text:    e.Status,
		Message: e.Message,
	}
}

// Send will marshal and send the error response to the client
// panic if failed to send
func (e HTTPError) Send(w http.ResponseWriter) {
	errorData, err := json.Marshal(e.Envelope())
	if err != nil {
		panic(err)
	}
	w.Header().Set("content-type", "application/json")
	w.WriteHeader(e.StatusCode)
	if _, err := w.Write(errorData); err != nil {
		panic(err)
	}
}

// NewHTTPError - creates a generic http error
func NewHTTPError(statusCode int, message string) error {
	return HTTPError{
		StatusCode: statusCode,
		Status:     http.StatusText(statusCode),
		Message:    message,
	}
}

// ResourceNotFoundError a standard 404 error
func ResourceNotFoundError(message string) error {
	return NewHTTPError(http.StatusNotFound, message)
}

// BadRequestError a standard 400 error
func BadRequestError(message string) error {
	return NewHTTPError(http.StatusBadRequest, message)
}

// UnauthorizedError a standard 401 error
func UnauthorizedError(message string) error {
	return NewHTTPError(http.StatusUnauthorized, message)
}

// ConflictError a standard 409 error
func ConflictError(message string) error {
	return NewHTTPError(http.StatusConflict, message)
}

// ParamValidationError a bad request error related to params validation
func ParamValidationError(paramType RequestParamType, paramName string) error {
	return BadRequestError(fmt.Sprint("ValidationFailed: ", paramType, " parameter '", paramName, "' is invalid"))
}

func newHTTPErrorFromError(err error) HTTPError {
	if errResp, ok := errors.Cause(err).(HTTPError); ok {
		return errResp
	}
	return HTTPError{
		StatusCode: http.StatusInternalServerError,
		Status:     http.StatusText(http.StatusInternalServerError),
		// TODO: Do not expose internal error details in production env
		Message: err.Error(),
	}
}
