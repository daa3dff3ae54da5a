/* Copyright (c) 2025 David Bulkow */

package client

import (
	"errors"
	"fmt"
)

// Kind classifies an engine failure. The kind is fixed at the point
// the failure is first observed; callers branch on it instead of
// inspecting message text.
type Kind int

const (
	// Network covers connect, timeout and transport I/O failures.
	Network Kind = iota + 1
	// AuthRequired is a protected call attempted with no session.
	AuthRequired
	// AuthExpired is a 401 from the server, whatever the body says.
	AuthExpired
	// Conflict is a 409: double booking or duplicate registration.
	Conflict
	// Validation is a local invariant violation caught before a
	// request is sent.
	Validation
	// UnknownRoom means the room directory has no id for the room.
	UnknownRoom
	// Server is any other non-success response.
	Server
)

func (k Kind) String() string {
	switch k {
	case Network:
		return "network"
	case AuthRequired:
		return "auth-required"
	case AuthExpired:
		return "auth-expired"
	case Conflict:
		return "conflict"
	case Validation:
		return "validation"
	case UnknownRoom:
		return "unknown-room"
	case Server:
		return "server"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the engine's failure value. Message is what a user should
// see; for server-reported failures it carries the server's message
// verbatim. Status is the HTTP status when the failure was observed
// from a response, zero otherwise.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.cause }

// IsKind reports whether err is an engine Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Kind == kind
}

func newError(kind Kind, status int, message string) *Error {
	return &Error{Kind: kind, Status: status, Message: message}
}

func wrapError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}
