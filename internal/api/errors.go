package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotImplemented means the endpoint exists on the host but does not serve the
	// habits API (404/405/501, or a success body that is not the expected JSON).
	ErrNotImplemented = errors.New("habits api not implemented")

	// ErrCircuitOpen is returned without touching the network while the breaker is open.
	ErrCircuitOpen = errors.New("circuit breaker is open")
)

// StatusError is a non-success HTTP response that is not classified as ErrNotImplemented.
type StatusError struct {
	Op     string
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: HTTP %d: %s", e.Op, e.Code, e.Status)
}

func IsNotImplemented(err error) bool {
	return errors.Is(err, ErrNotImplemented)
}

// statusErr maps a non-2xx response to the error taxonomy.
func statusErr(op string, resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusNotFound, http.StatusMethodNotAllowed, http.StatusNotImplemented:
		return fmt.Errorf("%s: HTTP %d: %w", op, resp.StatusCode, ErrNotImplemented)
	}
	status := http.StatusText(resp.StatusCode)
	if status == "" {
		status = resp.Status
	}
	return &StatusError{Op: op, Code: resp.StatusCode, Status: status}
}

// tripsBreaker reports whether err says something about backend health
// (transport failures and 5xx), as opposed to a well-formed "no".
func tripsBreaker(err error) bool {
	if err == nil || errors.Is(err, ErrNotImplemented) || errors.Is(err, ErrCircuitOpen) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= 500
	}
	return true
}
