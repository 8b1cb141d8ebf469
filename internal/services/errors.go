package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/desertthunder/musicadm/internal/shared"
)

const (
	msgBadRequest  = "invalid or duplicate data"
	msgNotFound    = "resource not found"
	msgValidation  = "validation error"
	msgServer      = "internal server error"
	msgUnreachable = "could not connect to server"
	msgUnknown     = "server error, try again"
)

// APIError is the normalized failure returned for every unsuccessful request.
//
// Status is 0 when no response was received. Data holds the decoded response body,
// the raw body text when it is not JSON, or nil when it is empty.
type APIError struct {
	Status  int
	Message string
	Data    any
	Err     error
}

func (e *APIError) Error() string { return e.Message }

// Unwrap returns the transport error, if any.
func (e *APIError) Unwrap() error { return e.Err }

// Is matches the API sentinels in [shared] by status.
func (e *APIError) Is(target error) bool {
	switch target {
	case shared.ErrAPIRequest:
		return true
	case shared.ErrBadRequest:
		return e.Status == http.StatusBadRequest
	case shared.ErrNotFound:
		return e.Status == http.StatusNotFound
	case shared.ErrValidation:
		return e.Status == http.StatusUnprocessableEntity
	case shared.ErrServer:
		return e.Status == http.StatusInternalServerError
	case shared.ErrUnreachable:
		return e.Status == 0
	}
	return false
}

// AsAPIError extracts the [APIError] from err.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

// Normalize converts a failed exchange into an [APIError].
//
// status is 0 when the transport failed before a response arrived, in which case cause is kept as the wrapped error.
func Normalize(status int, body []byte, cause error) *APIError {
	data := decodeBody(body)
	apiErr := &APIError{Status: status, Data: data, Err: cause}

	switch {
	case status == 0:
		apiErr.Message = msgUnreachable
	case status == http.StatusBadRequest:
		apiErr.Message = firstString(data, msgBadRequest, "detail", "message")
	case status == http.StatusNotFound:
		apiErr.Message = firstString(data, msgNotFound, "detail")
	case status == http.StatusUnprocessableEntity:
		if details, ok := field(data, "detail").([]any); ok {
			apiErr.Message = joinValidationDetails(details)
		} else {
			apiErr.Message = firstString(data, msgValidation, "detail", "message")
		}
	case status == http.StatusInternalServerError:
		apiErr.Message = msgServer
	default:
		apiErr.Message = msgUnknown
	}

	return apiErr
}

func decodeBody(body []byte) any {
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}

	var data any
	if err := json.Unmarshal(body, &data); err != nil {
		return string(body)
	}
	return data
}

func field(data any, key string) any {
	obj, ok := data.(map[string]any)
	if !ok {
		return nil
	}
	return obj[key]
}

// firstString returns the first non-empty string value among keys, or fallback.
func firstString(data any, fallback string, keys ...string) string {
	for _, key := range keys {
		if s, ok := field(data, key).(string); ok && s != "" {
			return s
		}
	}
	return fallback
}

// joinValidationDetails renders FastAPI-style validation entries as "loc → path: msg" pairs.
func joinValidationDetails(details []any) string {
	parts := make([]string, 0, len(details))
	for _, d := range details {
		loc := "field"
		if segments, ok := field(d, "loc").([]any); ok && len(segments) > 0 {
			names := make([]string, len(segments))
			for i, s := range segments {
				names[i] = fmt.Sprint(s)
			}
			loc = strings.Join(names, " → ")
		}

		msg, _ := field(d, "msg").(string)
		parts = append(parts, loc+": "+msg)
	}

	if len(parts) == 0 {
		return msgValidation
	}
	return strings.Join(parts, ", ")
}
