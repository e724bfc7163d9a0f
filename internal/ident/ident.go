// Package ident generates the opaque string identifiers used throughout
// the application: task ids assigned at creation time and correlation ids
// assigned to each inbound request. Both draw from the same UUID-based
// generator but through separate constructors, so the two namespaces never
// share call sites.
package ident

import (
	"encoding/hex"

	"github.com/google/uuid"
)

// NewTaskID returns a new identifier for a task. Identifiers are
// collision-resistant and treated as unique without a re-check against
// existing keys.
func NewTaskID() string {
	return newID()
}

// NewRequestID returns a new correlation identifier for a single request
// lifecycle.
func NewRequestID() string {
	return newID()
}

// newID returns a random UUID rendered as 32 lowercase hex characters.
func newID() string {
	id := uuid.New()
	return hex.EncodeToString(id[:])
}
