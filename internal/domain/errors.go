package domain

import (
	"errors"
	"fmt"
)

var (
	ErrStateNotFound = errors.New("state not found")
	ErrUnauthorized  = errors.New("unauthorized")
)

// BackendError is a non-2xx response from the commerce backend.
// Message is the backend's own message when the body carried one.
type BackendError struct {
	Status  int
	Message string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("backend responded %d", e.Status)
}

// BackendMessage extracts the backend's message from err, if err wraps a BackendError that has one.
func BackendMessage(err error) (string, bool) {
	var be *BackendError
	if errors.As(err, &be) && be.Message != "" {
		return be.Message, true
	}
	return "", false
}
