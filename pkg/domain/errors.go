package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrClaimNotFound is returned when a claim ID does not exist in the data store.
var ErrClaimNotFound = errors.New("claim not found")

// ErrBackendUnavailable is returned when no generative backend can serve a request.
var ErrBackendUnavailable = errors.New("generative backend unavailable")

// BackendError wraps a network or transport failure while talking to a
// generative backend. It is caught at the orchestrator boundary and
// converted into a low-confidence fallback answer, never surfaced raw.
type BackendError struct {
	Backend string
	Model   string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend %s (model %s): %v", e.Backend, e.Model, e.Err)
}

func (e *BackendError) Unwrap() error { return e.Err }

// MalformedOutputError reports that a backend was expected to return
// structured output but produced content no extraction could recover.
type MalformedOutputError struct {
	Backend string
	Model   string
	Raw     string
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("malformed model output from %s (model %s)", e.Backend, e.Model)
}
