// Package common defines shared constants and sentinel errors used across
// client, server and sweeper layers of pastelog. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrorStoreUnavailable signals that the authoritative store could not be
	// reached or timed out. Read paths propagate it; the coordinator's publish
	// path converts it to an empty-identifier sentinel instead.
	ErrorStoreUnavailable = errors.New("store unavailable")

	// ErrorMirrorUnavailable signals that local cache persistence failed.
	// It is always absorbed by the coordinator, never surfaced to callers.
	ErrorMirrorUnavailable = errors.New("mirror unavailable")

	// ErrorMissingID marks a mirror call made with a record that has not yet
	// been assigned an identifier by the authoritative store.
	ErrorMissingID = errors.New("missing id")
)
