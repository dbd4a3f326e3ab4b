package mockapi

import (
	"fmt"
	"net/http"
)

// errorBody is the shape of every error response.
type errorBody struct {
	Code    string `json:"code"`
	Status  int    `json:"status"`
	Message string `json:"message"`
	Path    string `json:"path"`
}

// ErrBadRequest represents an error wherein a request was malformed or
// otherwise invalid.
type ErrBadRequest struct {
	Code   string
	Reason string
}

func (e *ErrBadRequest) Error() string {
	return e.Reason
}

// ErrAuthentication represents an error wherein the caller could not be
// authenticated.
type ErrAuthentication struct {
	Code   string
	Reason string
}

func (e *ErrAuthentication) Error() string {
	return e.Reason
}

// ErrAuthorization represents an error wherein an authenticated caller
// attempted something they are not permitted to do.
type ErrAuthorization struct {
	Reason string
}

func (e *ErrAuthorization) Error() string {
	return e.Reason
}

// ErrNotFound represents an error wherein a resource presumed to exist could
// not be located.
type ErrNotFound struct {
	Type string
	ID   interface{}
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s %v not found.", e.Type, e.ID)
}

// ErrConflict represents an error wherein a request could not be completed
// because it would violate a uniqueness constraint.
type ErrConflict struct {
	Code   string
	Reason string
}

func (e *ErrConflict) Error() string {
	return e.Reason
}

// errorResponse maps err onto a status code and response body.
func errorResponse(err error, path string) (int, errorBody) {
	body := errorBody{
		Message: err.Error(),
		Path:    path,
	}
	switch e := err.(type) {
	case *ErrBadRequest:
		body.Status, body.Code = http.StatusBadRequest, e.Code
	case *ErrAuthentication:
		body.Status, body.Code = http.StatusUnauthorized, e.Code
	case *ErrAuthorization:
		body.Status, body.Code = http.StatusForbidden, "FORBIDDEN"
	case *ErrNotFound:
		body.Status, body.Code = http.StatusNotFound, "NOT_FOUND"
	case *ErrConflict:
		body.Status, body.Code = http.StatusConflict, e.Code
	default:
		body.Status, body.Code = http.StatusInternalServerError, "INTERNAL_ERROR"
		body.Message = "An internal server error occurred."
	}
	if body.Code == "" {
		body.Code = http.StatusText(body.Status)
	}
	return body.Status, body
}
