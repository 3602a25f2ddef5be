package controller

import (
	"errors"
	"net/http"
)

// GuardFunc rejects a request by returning an error. An HTTPError selects the
// response status; any other error responds 403.
type GuardFunc func(r *http.Request) error

// HTTPError is an error that carries the response status.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError pairs an HTTP status with an optional cause.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.StatusCode())
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// NotFound is a convenience StatusError for handlers.
func NotFound(err error) error {
	return StatusError{Code: http.StatusNotFound, Err: err}
}

func statusOf(err error, fallback int) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		if code := httpErr.StatusCode(); code > 0 {
			return code
		}
	}
	return fallback
}

func writeError(w http.ResponseWriter, err error, fallback int) {
	if w == nil {
		return
	}
	code := fallback
	if err != nil {
		code = statusOf(err, fallback)
	}
	http.Error(w, http.StatusText(code), code)
}
