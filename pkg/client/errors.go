package client

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// GenericErrorMessage is used when an error body cannot be parsed.
const GenericErrorMessage = "An error occurred"

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// newAPIError extracts the detail message from an error body.
func newAPIError(status int, body []byte) (apiErr *APIError) {
	apiErr = &APIError{StatusCode: status}

	if !gjson.ValidBytes(body) || len(body) == 0 {
		apiErr.Message = GenericErrorMessage
		return apiErr
	}

	detail := gjson.GetBytes(body, "detail")
	if detail.Exists() && detail.String() != "" {
		apiErr.Message = detail.String()
		return apiErr
	}

	apiErr.Message = fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
	return apiErr
}

// Message returns the user-facing message for err.
func Message(err error) (msg string) {
	if err == nil {
		return msg
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		msg = apiErr.Message
		return msg
	}

	msg = err.Error()
	return msg
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) (notFound bool) {
	var apiErr *APIError
	notFound = errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
	return notFound
}
