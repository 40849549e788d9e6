package mcp

import "github.com/google/uuid"

// newSessionID mints an id for callers that did not supply one.
func newSessionID() string {
	return uuid.NewString()
}
