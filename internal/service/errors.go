package service

import "errors"

var (
	// ErrValidation is returned when required input is missing or malformed
	ErrValidation = errors.New("invalid request")
	// ErrLinkNotFound is returned when a linkId does not resolve
	ErrLinkNotFound = errors.New("share link not found")
	// ErrViewNotFound is returned when a viewId does not resolve
	ErrViewNotFound = errors.New("view not found")
	// ErrForbidden is returned when the requester does not own the resource
	ErrForbidden = errors.New("forbidden")
)
