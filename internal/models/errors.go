package models

import "errors"

// Domain errors surfaced across the API boundary. Storage failures carry
// their own type in the store package; everything else resolves to one of
// these sentinels.
var (
	// ErrEmptyMessage rejects whitespace-only sends before any state change.
	ErrEmptyMessage = errors.New("message content is empty")

	// ErrBusy rejects a send or retry while a response is already in flight
	// for the active conversation. Requests are rejected, never queued.
	ErrBusy = errors.New("a response is already in flight")

	// ErrNoConversation is returned by retry when nothing is active.
	ErrNoConversation = errors.New("no active conversation")

	// ErrNotFound marks lookups of ids that do not exist.
	ErrNotFound = errors.New("not found")
)
