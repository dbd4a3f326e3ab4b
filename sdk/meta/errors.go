package meta

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// APIError represents any non-2xx response from the API server other than an
// expired access token that was transparently recovered from. Its fields are
// taken from the error response body; any the server omitted (or all of them,
// if the body wasn't JSON) are left at their zero values. Status is always
// the HTTP status code the server responded with.
type APIError struct {
	Code    string `json:"code"`
	Status  int    `json:"status"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf(
			"received %d (%s) from API server",
			e.Status,
			http.StatusText(e.Status),
		)
	}
	if e.Code == "" {
		return fmt.Sprintf("%s (%d)", e.Message, e.Status)
	}
	return fmt.Sprintf("%s (%d %s)", e.Message, e.Status, e.Code)
}

// ErrConfiguration represents a request that could not be issued because the
// client or the request itself was not properly configured.
type ErrConfiguration struct {
	Reason string
}

func (e *ErrConfiguration) Error() string {
	return fmt.Sprintf("invalid request configuration: %s", e.Reason)
}

// ErrSessionExpired is returned in place of a response when the API server
// rejected an attempt to refresh the access token. The access token has
// already been discarded; the user must log in again.
type ErrSessionExpired struct {
	// Status is the status code the refresh endpoint responded with.
	Status int
}

func (e *ErrSessionExpired) Error() string {
	return "the session has expired; please log in again"
}

// ErrRefreshFailed is returned when the access token expired and could not
// be refreshed for any reason other than the session itself having expired.
// The original request was not re-sent.
type ErrRefreshFailed struct {
	// Cause is the error from the final refresh attempt.
	Cause error
	// Original is the error the original request failed with.
	Original *APIError
}

func (e *ErrRefreshFailed) Error() string {
	return fmt.Sprintf(
		"access token expired and could not be refreshed: %s; please try again",
		e.Cause,
	)
}

// Unwrap returns the cause of the failed refresh.
func (e *ErrRefreshFailed) Unwrap() error {
	return e.Cause
}

// IsStatus returns true if the cause of err is an *APIError with the given
// HTTP status code.
func IsStatus(err error, status int) bool {
	apiErr, ok := errors.Cause(err).(*APIError)
	return ok && apiErr.Status == status
}

// IsSessionExpired returns true if the cause of err is an *ErrSessionExpired.
func IsSessionExpired(err error) bool {
	_, ok := errors.Cause(err).(*ErrSessionExpired)
	return ok
}
