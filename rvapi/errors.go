package rvapi

import (
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// ErrNoMatch is returned by LoginScan when no account is bound to the
// scanned code.
var ErrNoMatch = errors.New("no matching user")

// ErrProtocol marks responses outside the 2xx/4xx contract. Callers treat
// these as fatal rather than surfacing them in a flow.
var ErrProtocol = errors.New("unexpected backend response")

// APIError is a recoverable application-level failure; Message is shown
// to the user verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// IsAPIError unpacks a recoverable backend failure from err.
func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// classify maps a response status onto the error taxonomy: 2xx is
// success, 4xx is a recoverable APIError, everything else is a protocol
// violation. overrides supplies endpoint-specific 4xx messages.
func classify(resp *resty.Response, overrides map[int]string) error {
	code := resp.StatusCode()
	switch {
	case code >= 200 && code < 300:
		return nil
	case code >= 400 && code < 500:
		return &APIError{Status: code, Message: failureMessage(resp, overrides)}
	default:
		return errors.Wrapf(ErrProtocol, "%s %s returned %d",
			resp.Request.Method, resp.Request.URL, code)
	}
}

func failureMessage(resp *resty.Response, overrides map[int]string) string {
	if msg, ok := overrides[resp.StatusCode()]; ok {
		return msg
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Message != "" {
		return body.Message
	}
	return fmt.Sprintf("api request failed with code %d", resp.StatusCode())
}
