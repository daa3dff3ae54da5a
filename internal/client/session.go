/* Copyright (c) 2025 David Bulkow */

package client

import "sync/atomic"

// identity is one immutable login snapshot.
type identity struct {
	studentID string
	name      string
	token     string
}

// Session holds the current credential and identity for the process.
// Writers swap a complete snapshot, so concurrently running request
// tasks never observe a half-written session. There is at most one
// login at a time; Clear resets to the logged-out state.
type Session struct {
	current atomic.Pointer[identity]
}

func NewSession() *Session {
	return &Session{}
}

// Set installs the identity from a successful login or registration.
func (s *Session) Set(studentID, name, token string) {
	s.current.Store(&identity{studentID: studentID, name: name, token: token})
}

// Clear logs the session out.
func (s *Session) Clear() {
	s.current.Store(nil)
}

func (s *Session) Authenticated() bool {
	id := s.current.Load()
	return id != nil && id.token != ""
}

// StudentID returns the logged-in student id, or "" when logged out.
func (s *Session) StudentID() string {
	if id := s.current.Load(); id != nil {
		return id.studentID
	}
	return ""
}

// DisplayName returns the logged-in user's name, or "" when logged out.
func (s *Session) DisplayName() string {
	if id := s.current.Load(); id != nil {
		return id.name
	}
	return ""
}

// AuthorizationValue returns the Authorization header value for the
// current session.
func (s *Session) AuthorizationValue() (string, error) {
	id := s.current.Load()
	if id == nil || id.token == "" {
		return "", newError(AuthRequired, 0, "not logged in")
	}
	return "Bearer " + id.token, nil
}
