/* Copyright (c) 2025 David Bulkow */

// Package server is the reference implementation of the reservation
// store: the HTTP contract the client engine is written against. It
// keeps state in memory behind a mutex, persisted through an
// append-only JSONL mutation log replayed at startup.
package server

import (
	"errors"
	"sync"

	"github.com/dbulkow/classrooms/api"
	"github.com/dbulkow/classrooms/internal/schedule"
)

var (
	ErrNotFound      = errors.New("reservation not found")
	ErrForbidden     = errors.New("reservation belongs to another student")
	ErrConflict      = errors.New("time slot is already reserved")
	ErrUnknownRoom   = errors.New("room not found")
	ErrDuplicateUser = errors.New("student id already registered")
)

// User is a registered account.
type User struct {
	StudentID    string `json:"studentId"`
	Name         string `json:"name"`
	PasswordHash []byte `json:"passwordHash"`
}

// BackingStore records store mutations for replay at startup.
type BackingStore interface {
	AddReservation(*api.Reservation) error
	DeleteReservation(int64) error
	AddUser(*User) error
	ReadLog(*Store) error
}

type nonstore struct{}

func (*nonstore) AddReservation(*api.Reservation) error { return nil }
func (*nonstore) DeleteReservation(int64) error         { return nil }
func (*nonstore) AddUser(*User) error                   { return nil }
func (*nonstore) ReadLog(*Store) error                  { return nil }

// Store holds rooms, users and reservations. The room catalog is
// fixed at construction; reservations uphold the global invariant that
// no two bookings for the same room and date overlap, using the same
// back-to-back rule as the client (abutting intervals are fine).
type Store struct {
	mu           sync.Mutex
	nextID       int64
	rooms        []api.Room
	reservations []*api.Reservation
	users        map[string]*User
	backing      BackingStore
}

func NewStore(rooms []api.Room, backing BackingStore) (*Store, error) {
	s := &Store{
		nextID:  1,
		rooms:   rooms,
		users:   make(map[string]*User),
		backing: backing,
	}

	if s.backing == nil {
		s.backing = &nonstore{}
	}

	if err := s.backing.ReadLog(s); err != nil {
		return nil, err
	}

	return s, nil
}

// Rooms returns a copy of the room catalog.
func (s *Store) Rooms() []api.Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]api.Room, len(s.rooms))
	copy(out, s.rooms)
	return out
}

// RoomByLocation finds a room by its floor-plan coordinates.
func (s *Store) RoomByLocation(building string, floor int, name string) (api.Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, room := range s.rooms {
		if room.Building == building && room.Floor == floor && room.Name == name {
			return room, true
		}
	}
	return api.Room{}, false
}

func (s *Store) roomByID(id int64) (api.Room, bool) {
	for _, room := range s.rooms {
		if room.ID == id {
			return room, true
		}
	}
	return api.Room{}, false
}

// ReservationsByDate returns copies of every reservation on a date.
func (s *Store) ReservationsByDate(date string) []api.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]api.Reservation, 0)
	for _, res := range s.reservations {
		if res.Date == date {
			out = append(out, *res)
		}
	}
	return out
}

// Available reports whether [startMin,endMin) on date is free for the
// room.
func (s *Store) Available(roomID int64, date string, startMin, endMin int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.available(roomID, date, startMin, endMin)
}

func (s *Store) available(roomID int64, date string, startMin, endMin int) bool {
	existing := make([]api.Reservation, 0)
	for _, res := range s.reservations {
		if res.RoomID == roomID {
			existing = append(existing, *res)
		}
	}
	return schedule.IsAvailable(existing, date, startMin, endMin)
}

// AddReservation validates, rejects conflicts and assigns the id. The
// returned copy is the server-confirmed reservation.
func (s *Store) AddReservation(res *api.Reservation) (*api.Reservation, error) {
	if err := res.Validate(); err != nil {
		return nil, err
	}

	start, err := schedule.ParseTimeOfDay(res.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := schedule.ParseTimeOfDay(res.EndTime)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.roomByID(res.RoomID); !ok {
		return nil, ErrUnknownRoom
	}

	if !s.available(res.RoomID, res.Date, start, end) {
		return nil, ErrConflict
	}

	stored := *res
	stored.ID = s.nextID
	s.nextID++
	s.reservations = append(s.reservations, &stored)

	// Memory must not drift from the log; an unlogged booking would
	// vanish on restart.
	if err := s.backing.AddReservation(&stored); err != nil {
		s.reservations = s.reservations[:len(s.reservations)-1]
		s.nextID--
		return nil, err
	}

	confirmed := stored
	return &confirmed, nil
}

// DeleteReservation removes a reservation owned by studentID.
func (s *Store) DeleteReservation(id int64, studentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, res := range s.reservations {
		if res.ID != id {
			continue
		}
		if res.StudentID != studentID {
			return ErrForbidden
		}
		// Log first so memory never drops a booking the log keeps.
		if err := s.backing.DeleteReservation(id); err != nil {
			return err
		}
		s.reservations = append(s.reservations[:i], s.reservations[i+1:]...)
		return nil
	}

	return ErrNotFound
}

// AddUser registers an account, rejecting duplicate student ids.
func (s *Store) AddUser(u *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[u.StudentID]; exists {
		return ErrDuplicateUser
	}
	s.users[u.StudentID] = u

	return s.backing.AddUser(u)
}

// UserByID looks up a registered account.
func (s *Store) UserByID(studentID string) (*User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[studentID]
	return u, ok
}

// replay applies one logged mutation without re-logging it. Used by
// BackingStore implementations while reading the log.
func (s *Store) replay(op string, id int64, res *api.Reservation, u *User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch op {
	case opAdd:
		if res == nil {
			return
		}
		stored := *res
		s.reservations = append(s.reservations, &stored)
		if stored.ID >= s.nextID {
			s.nextID = stored.ID + 1
		}
	case opDelete:
		for i, r := range s.reservations {
			if r.ID == id {
				s.reservations = append(s.reservations[:i], s.reservations[i+1:]...)
				break
			}
		}
	case opUser:
		if u != nil {
			s.users[u.StudentID] = u
		}
	}
}
