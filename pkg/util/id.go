package util

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ID lengths. Link ids are public-facing tokens embedded in share URLs;
// view ids only ever travel between the viewer page and the API.
const (
	LinkIDLength = 10
	ViewIDLength = 16
)

// NewLinkID generates a fresh share link identifier.
// The id space is large enough that collisions are not handled.
func NewLinkID() string {
	return gonanoid.Must(LinkIDLength)
}

// NewViewID generates a fresh view log identifier
func NewViewID() string {
	return gonanoid.Must(ViewIDLength)
}
