/* Copyright (c) 2025 David Bulkow */

package server

import (
	"errors"
	"testing"

	"github.com/dbulkow/classrooms/api"
)

func testRooms() []api.Room {
	return []api.Room{
		{ID: 1, Building: "공학관", Name: "101호", Floor: 1},
		{ID: 2, Building: "공학관", Name: "102호", Floor: 1},
		{ID: 3, Building: "과학관", Name: "201호", Floor: 2},
	}
}

func fillStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(testRooms(), nil)
	if err != nil {
		t.Fatal(err)
	}

	seed := []*api.Reservation{
		{RoomID: 1, StudentID: "20231234", Date: "2025-09-01", StartTime: "10:00", EndTime: "11:00"},
		{RoomID: 1, StudentID: "20235678", Date: "2025-09-01", StartTime: "13:00", EndTime: "14:00"},
		{RoomID: 2, StudentID: "20231234", Date: "2025-09-01", StartTime: "10:00", EndTime: "12:00"},
	}
	for _, res := range seed {
		if _, err := store.AddReservation(res); err != nil {
			t.Fatalf("seed %+v: %v", *res, err)
		}
	}

	return store
}

func TestAddReservationAssignsIDs(t *testing.T) {
	store := fillStore(t)

	created, err := store.AddReservation(&api.Reservation{
		RoomID: 3, StudentID: "20231234", Date: "2025-09-01", StartTime: "10:00", EndTime: "11:00",
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.ID != 4 {
		t.Errorf("id = %d, want 4", created.ID)
	}
}

func TestAddReservationConflict(t *testing.T) {
	store := fillStore(t)

	_, err := store.AddReservation(&api.Reservation{
		RoomID: 1, StudentID: "20239999", Date: "2025-09-01", StartTime: "10:30", EndTime: "11:30",
	})
	if !errors.Is(err, ErrConflict) {
		t.Errorf("err = %v, want conflict", err)
	}

	// Same interval, different room: fine.
	if _, err := store.AddReservation(&api.Reservation{
		RoomID: 3, StudentID: "20239999", Date: "2025-09-01", StartTime: "10:30", EndTime: "11:30",
	}); err != nil {
		t.Errorf("different room rejected: %v", err)
	}

	// Same room, different date: fine.
	if _, err := store.AddReservation(&api.Reservation{
		RoomID: 1, StudentID: "20239999", Date: "2025-09-02", StartTime: "10:30", EndTime: "11:30",
	}); err != nil {
		t.Errorf("different date rejected: %v", err)
	}
}

func TestAddReservationBackToBack(t *testing.T) {
	store := fillStore(t)

	if _, err := store.AddReservation(&api.Reservation{
		RoomID: 1, StudentID: "20239999", Date: "2025-09-01", StartTime: "11:00", EndTime: "12:00",
	}); err != nil {
		t.Errorf("back-to-back booking rejected: %v", err)
	}
}

// Whatever sequence of adds succeeds, no two reservations for the same
// room and date may overlap.
func TestGlobalNonOverlapInvariant(t *testing.T) {
	store := fillStore(t)

	attempts := []*api.Reservation{
		{RoomID: 1, StudentID: "a", Date: "2025-09-01", StartTime: "10:30", EndTime: "11:30"},
		{RoomID: 1, StudentID: "b", Date: "2025-09-01", StartTime: "11:00", EndTime: "12:00"},
		{RoomID: 1, StudentID: "c", Date: "2025-09-01", StartTime: "11:30", EndTime: "12:30"},
		{RoomID: 1, StudentID: "d", Date: "2025-09-01", StartTime: "09:00", EndTime: "10:30"},
	}
	for _, res := range attempts {
		store.AddReservation(res)
	}

	byRoom := make(map[int64][]api.Reservation)
	for _, res := range store.ReservationsByDate("2025-09-01") {
		byRoom[res.RoomID] = append(byRoom[res.RoomID], res)
	}

	for roomID, list := range byRoom {
		for i := 0; i < len(list); i++ {
			for j := i + 1; j < len(list); j++ {
				a, b := list[i], list[j]
				if a.StartTime < b.EndTime && a.EndTime > b.StartTime {
					t.Errorf("room %d holds overlapping reservations %+v and %+v", roomID, a, b)
				}
			}
		}
	}
}

func TestAddReservationUnknownRoom(t *testing.T) {
	store := fillStore(t)

	_, err := store.AddReservation(&api.Reservation{
		RoomID: 99, StudentID: "20231234", Date: "2025-09-01", StartTime: "10:00", EndTime: "11:00",
	})
	if !errors.Is(err, ErrUnknownRoom) {
		t.Errorf("err = %v, want unknown room", err)
	}
}

func TestDeleteReservation(t *testing.T) {
	store := fillStore(t)

	if err := store.DeleteReservation(1, "20235678"); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign delete err = %v, want forbidden", err)
	}
	if err := store.DeleteReservation(1, "20231234"); err != nil {
		t.Errorf("owner delete failed: %v", err)
	}
	if err := store.DeleteReservation(1, "20231234"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete err = %v, want not found", err)
	}
}

func TestAddUserDuplicate(t *testing.T) {
	store := fillStore(t)

	if err := store.AddUser(&User{StudentID: "20231234", Name: "홍길동"}); err != nil {
		t.Fatal(err)
	}
	if err := store.AddUser(&User{StudentID: "20231234", Name: "someone else"}); !errors.Is(err, ErrDuplicateUser) {
		t.Errorf("err = %v, want duplicate user", err)
	}
}

func TestRoomByLocation(t *testing.T) {
	store := fillStore(t)

	room, ok := store.RoomByLocation("과학관", 2, "201호")
	if !ok || room.ID != 3 {
		t.Errorf("lookup = %+v %v, want room 3", room, ok)
	}

	if _, ok := store.RoomByLocation("과학관", 1, "201호"); ok {
		t.Error("wrong floor should not match")
	}
}

// flakylog fails mutations on demand so drift between memory and the
// log can be provoked.
type flakylog struct {
	addErr error
	delErr error
}

func (f *flakylog) AddReservation(*api.Reservation) error { return f.addErr }
func (f *flakylog) DeleteReservation(int64) error         { return f.delErr }
func (f *flakylog) AddUser(*User) error                   { return nil }
func (f *flakylog) ReadLog(*Store) error                  { return nil }

func TestAddReservationBackingFailure(t *testing.T) {
	backing := &flakylog{addErr: errors.New("disk full")}
	store, err := NewStore(testRooms(), backing)
	if err != nil {
		t.Fatal(err)
	}

	res := &api.Reservation{
		RoomID: 1, StudentID: "20231234", Date: "2025-09-01", StartTime: "10:00", EndTime: "11:00",
	}
	if _, err := store.AddReservation(res); err == nil {
		t.Fatal("expected backing failure")
	}

	// The failed booking must not linger in memory or hold the slot.
	if got := store.ReservationsByDate("2025-09-01"); len(got) != 0 {
		t.Errorf("reservations = %+v, want none", got)
	}
	if !store.Available(1, "2025-09-01", 10*60, 11*60) {
		t.Error("slot still held after failed add")
	}

	// Once the log recovers the same booking goes through with the id
	// the failed attempt would have used.
	backing.addErr = nil
	created, err := store.AddReservation(res)
	if err != nil {
		t.Fatal(err)
	}
	if created.ID != 1 {
		t.Errorf("id = %d, want 1", created.ID)
	}
}

func TestDeleteReservationBackingFailure(t *testing.T) {
	backing := &flakylog{}
	store, err := NewStore(testRooms(), backing)
	if err != nil {
		t.Fatal(err)
	}

	created, err := store.AddReservation(&api.Reservation{
		RoomID: 1, StudentID: "20231234", Date: "2025-09-01", StartTime: "10:00", EndTime: "11:00",
	})
	if err != nil {
		t.Fatal(err)
	}

	backing.delErr = errors.New("disk full")
	if err := store.DeleteReservation(created.ID, "20231234"); err == nil {
		t.Fatal("expected backing failure")
	}

	// The booking survives in memory, matching what a replay would see.
	if got := store.ReservationsByDate("2025-09-01"); len(got) != 1 {
		t.Errorf("reservations = %+v, want the original booking", got)
	}

	backing.delErr = nil
	if err := store.DeleteReservation(created.ID, "20231234"); err != nil {
		t.Fatal(err)
	}
	if got := store.ReservationsByDate("2025-09-01"); len(got) != 0 {
		t.Errorf("reservations = %+v, want none", got)
	}
}
