// Package middleware wraps a StateStore with persistence concerns that
// do not belong in any single store implementation: sealing session
// state at rest and scrubbing patient identifiers from stored question
// text. Middlewares compose; wrap the scrubber around the encryption
// layer so the sealed payload holds already-scrubbed state.
package middleware

import "github.com/impact-cms/florence/pkg/ports"

// Middleware wraps a StateStore to add behavior.
type Middleware func(ports.StateStore) ports.StateStore
