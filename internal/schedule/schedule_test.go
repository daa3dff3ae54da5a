/* Copyright (c) 2025 David Bulkow */

package schedule

import (
	"testing"
	"time"

	"github.com/dbulkow/classrooms/api"
)

func mustMinutes(t *testing.T, s string) int {
	t.Helper()
	m, err := ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return m
}

func reservation(student, date, start, end string) api.Reservation {
	return api.Reservation{
		RoomID:    1,
		StudentID: student,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}
}

func TestParseFormatTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		minutes int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"13:30", 810},
		{"23:59", 1439},
	}

	for _, tt := range tests {
		m, err := ParseTimeOfDay(tt.in)
		if err != nil {
			t.Errorf("parse %q: %v", tt.in, err)
			continue
		}
		if m != tt.minutes {
			t.Errorf("parse %q = %d, want %d", tt.in, m, tt.minutes)
		}
		if out := FormatTimeOfDay(m); out != tt.in {
			t.Errorf("format %d = %q, want %q", m, out, tt.in)
		}
	}

	if _, err := ParseTimeOfDay("9am"); err == nil {
		t.Error("expected error for non HH:MM input")
	}
}

func TestIsAvailableEmpty(t *testing.T) {
	if !IsAvailable(nil, "2025-09-01", mustMinutes(t, "10:00"), mustMinutes(t, "11:00")) {
		t.Error("empty reservation list must be available")
	}
}

func TestIsAvailableOverlap(t *testing.T) {
	existing := []api.Reservation{reservation("20231234", "2025-09-01", "10:00", "11:00")}

	tests := []struct {
		name       string
		date       string
		start, end string
		want       bool
	}{
		{"contained", "2025-09-01", "10:15", "10:45", false},
		{"straddles start", "2025-09-01", "09:30", "10:30", false},
		{"straddles end", "2025-09-01", "10:30", "11:30", false},
		{"covers", "2025-09-01", "09:00", "12:00", false},
		{"identical", "2025-09-01", "10:00", "11:00", false},
		{"before", "2025-09-01", "08:00", "09:00", true},
		{"after", "2025-09-01", "12:00", "13:00", true},
		{"other date", "2025-09-02", "10:30", "11:30", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsAvailable(existing, tt.date, mustMinutes(t, tt.start), mustMinutes(t, tt.end))
			if got != tt.want {
				t.Errorf("IsAvailable(%s %s-%s) = %v, want %v", tt.date, tt.start, tt.end, got, tt.want)
			}
		})
	}
}

// Bookings may abut: an interval starting exactly when another ends is
// not a conflict.
func TestIsAvailableBackToBack(t *testing.T) {
	existing := []api.Reservation{reservation("20231234", "2025-09-01", "10:00", "11:00")}

	if !IsAvailable(existing, "2025-09-01", mustMinutes(t, "11:00"), mustMinutes(t, "12:00")) {
		t.Error("booking starting at the previous end must be allowed")
	}
	if !IsAvailable(existing, "2025-09-01", mustMinutes(t, "09:00"), mustMinutes(t, "10:00")) {
		t.Error("booking ending at the next start must be allowed")
	}
}

func TestSlots(t *testing.T) {
	slots := Slots(DefaultSlotMinutes, DefaultStartHour, DefaultEndHour)

	if len(slots) != 26 {
		t.Fatalf("expected 26 slots for 09:00-22:00/30min, got %d", len(slots))
	}
	if slots[0].Start != 540 || slots[0].End != 570 {
		t.Errorf("first slot = %+v, want 09:00-09:30", slots[0])
	}
	if last := slots[len(slots)-1]; last.Start != 1290 || last.End != 1320 {
		t.Errorf("last slot = %+v, want 21:30-22:00", last)
	}
}

func TestDeriveTimelinePastDate(t *testing.T) {
	now := time.Date(2025, 9, 2, 12, 0, 0, 0, time.Local)
	reservations := []api.Reservation{reservation("someone", "2025-09-01", "10:00", "11:00")}

	statuses := DeriveTimeline("2025-09-01", reservations, now, "someone", 30, 9, 22)

	for i, s := range statuses {
		if s != Past {
			t.Fatalf("slot %d of a past day = %v, want past", i, s)
		}
	}
}

func TestDeriveTimelineFutureDate(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.Local)
	reservations := []api.Reservation{
		reservation("me", "2025-09-02", "09:00", "10:00"),
		reservation("other", "2025-09-02", "10:00", "11:00"),
	}

	statuses := DeriveTimeline("2025-09-02", reservations, now, "me", 30, 9, 22)

	want := map[int]SlotStatus{
		0: MyReservation, // 09:00-09:30
		1: MyReservation, // 09:30-10:00
		2: Reserved,      // 10:00-10:30
		3: Reserved,      // 10:30-11:00
		4: Available,     // 11:00-11:30
	}
	for i, s := range want {
		if statuses[i] != s {
			t.Errorf("slot %d = %v, want %v", i, statuses[i], s)
		}
	}
}

func TestDeriveTimelineToday(t *testing.T) {
	// 10:15, inside another user's 10:00-11:00 booking.
	now := time.Date(2025, 9, 1, 10, 15, 0, 0, time.Local)
	today := now.Format(api.DateFormat)
	reservations := []api.Reservation{
		reservation("other", today, "10:00", "11:00"),
		reservation("me", today, "13:00", "14:00"),
	}

	statuses := DeriveTimeline(today, reservations, now, "me", 30, 9, 22)

	// 09:00-09:30, 09:30-10:00 are over.
	if statuses[0] != Past || statuses[1] != Past {
		t.Errorf("elapsed slots = %v %v, want past", statuses[0], statuses[1])
	}
	// 10:00-10:30 straddles now and is occupied: in use, not reserved.
	if statuses[2] != InUse {
		t.Errorf("slot straddling now = %v, want in-use", statuses[2])
	}
	// 10:30-11:00 is a future portion of the other user's booking.
	if statuses[3] != Reserved {
		t.Errorf("future reserved slot = %v, want reserved", statuses[3])
	}
	// 11:00-11:30 is free.
	if statuses[4] != Available {
		t.Errorf("free slot = %v, want available", statuses[4])
	}
	// 13:00-14:00 is mine.
	if statuses[8] != MyReservation || statuses[9] != MyReservation {
		t.Errorf("my slots = %v %v, want mine", statuses[8], statuses[9])
	}
}

// A currently running booking of one's own still shows in-use.
func TestDeriveTimelineOwnBookingInUse(t *testing.T) {
	now := time.Date(2025, 9, 1, 10, 15, 0, 0, time.Local)
	today := now.Format(api.DateFormat)
	reservations := []api.Reservation{reservation("me", today, "10:00", "11:00")}

	statuses := DeriveTimeline(today, reservations, now, "me", 30, 9, 22)

	if statuses[2] != InUse {
		t.Errorf("own occupied slot = %v, want in-use", statuses[2])
	}
	if statuses[3] != MyReservation {
		t.Errorf("own future slot = %v, want mine", statuses[3])
	}
}

func TestDeriveTimelineLastAppliedWins(t *testing.T) {
	now := time.Date(2025, 9, 1, 8, 0, 0, 0, time.Local)
	today := now.Format(api.DateFormat)
	reservations := []api.Reservation{
		reservation("other", today, "09:00", "10:00"),
		reservation("me", today, "09:00", "10:00"),
	}

	statuses := DeriveTimeline(today, reservations, now, "me", 30, 9, 22)

	if statuses[0] != MyReservation {
		t.Errorf("overlapping overlay = %v, want the later entry (mine)", statuses[0])
	}
}

func TestDeriveTimelineDeterministic(t *testing.T) {
	now := time.Date(2025, 9, 1, 10, 15, 0, 0, time.Local)
	today := now.Format(api.DateFormat)
	reservations := []api.Reservation{
		reservation("other", today, "10:00", "11:00"),
		reservation("me", today, "13:00", "14:00"),
	}

	first := DeriveTimeline(today, reservations, now, "me", 30, 9, 22)
	second := DeriveTimeline(today, reservations, now, "me", 30, 9, 22)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("slot %d differs between runs: %v vs %v", i, first[i], second[i])
		}
	}
}
