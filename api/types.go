/* Copyright (c) 2025 David Bulkow */

// Package api holds the wire types and endpoint paths shared by the
// classroom reservation client and server.
package api

import (
	"errors"
	"fmt"
	"time"
)

// Endpoint paths of the reservation store.
const (
	AuthLogin    = "/api/auth/login"
	AuthRegister = "/api/auth/register"
	Rooms        = "/api/rooms"
	Reservations = "/api/reservations"
	Availability = "/api/reservations/availability"
)

// Wire formats for dates and times of day.
const (
	DateFormat = "2006-01-02"
	TimeFormat = "15:04"
)

// Reservation is a booked interval for a room. ID is zero until the
// server assigns one. RoomName is display-only: it never crosses the
// wire and is reattached by the caller from context.
type Reservation struct {
	ID        int64  `json:"id,omitempty"`
	RoomID    int64  `json:"roomId"`
	StudentID string `json:"studentId"`
	Date      string `json:"date"`      // YYYY-MM-DD
	StartTime string `json:"startTime"` // HH:MM
	EndTime   string `json:"endTime"`   // HH:MM
	RoomName  string `json:"-"`
}

// Room is one entry of the store's room catalog.
type Room struct {
	ID       int64  `json:"id"`
	Building string `json:"building"`
	Name     string `json:"name"`
	Floor    int    `json:"floor"`
}

type LoginRequest struct {
	StudentID string `json:"studentId"`
	Password  string `json:"password"`
}

type LoginResponse struct {
	StudentID string `json:"studentId"`
	Name      string `json:"name"`
	Token     string `json:"token"`
}

type RegisterRequest struct {
	StudentID string `json:"studentId"`
	Name      string `json:"name"`
	Password  string `json:"password"`
}

type RegisterResponse struct {
	StudentID string `json:"studentId"`
	Name      string `json:"name"`
	Message   string `json:"message"`
}

// ErrorResponse is the body the store sends with any non-success status.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Validate reports the first invariant a reservation violates before
// submission. The room id may still be zero at this point; it is
// resolved separately.
func (r *Reservation) Validate() error {
	switch {
	case r.StudentID == "":
		return errors.New("studentId is required")
	case r.Date == "":
		return errors.New("date is required")
	case r.StartTime == "":
		return errors.New("startTime is required")
	case r.EndTime == "":
		return errors.New("endTime is required")
	}

	if _, err := time.Parse(DateFormat, r.Date); err != nil {
		return fmt.Errorf("date %q: want YYYY-MM-DD", r.Date)
	}

	start, err := time.Parse(TimeFormat, r.StartTime)
	if err != nil {
		return fmt.Errorf("startTime %q: want HH:MM", r.StartTime)
	}

	end, err := time.Parse(TimeFormat, r.EndTime)
	if err != nil {
		return fmt.Errorf("endTime %q: want HH:MM", r.EndTime)
	}

	if !start.Before(end) {
		return fmt.Errorf("startTime %s must be before endTime %s", r.StartTime, r.EndTime)
	}

	return nil
}
