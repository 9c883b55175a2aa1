package dailymotion

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

var (
	// ErrNoVideoID is returned by VideoURL when no video has been created yet,
	// meaning no lookup was attempted.
	ErrNoVideoID = errors.New("no video id in session")

	// ErrFieldMissing is returned when a response lacks the field an
	// operation extracts.
	ErrFieldMissing = errors.New("field missing from response")
)

// Credentials identify the account and the API application.
type Credentials struct {
	Username  string
	Password  string
	APIKey    string
	APISecret string
}

// Object is a parsed JSON object as returned by the API.
type Object map[string]any

// String renders a scalar field. Missing and non-scalar fields yield "".
func (o Object) String(key string) string {
	switch v := o[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Metadata holds the fields sent when publishing a video (title, channel,
// tags, description, ...).
type Metadata map[string]string

// APIError is a non-2xx answer from the REST API.
type APIError struct {
	StatusCode int
	Status     string
	Code       int
	Message    string
	Type       string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("dailymotion api error: %s", e.Status)
	}
	return fmt.Sprintf("dailymotion api error: %s: %s (%s)", e.Status, e.Message, e.Type)
}

type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func newAPIError(resp *http.Response, envelope errorEnvelope) *APIError {
	return &APIError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Code:       envelope.Error.Code,
		Message:    envelope.Error.Message,
		Type:       envelope.Error.Type,
	}
}
