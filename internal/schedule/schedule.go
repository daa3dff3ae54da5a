/* Copyright (c) 2025 David Bulkow */

// Package schedule contains the pure availability logic: interval
// conflict checks and derivation of a day's slot timeline. Nothing
// here performs I/O or keeps state between calls.
package schedule

import (
	"fmt"
	"time"

	"github.com/dbulkow/classrooms/api"
)

// Clock abstracts the wall clock so callers can pin "now" in tests.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// Default timeline geometry: 09:00-22:00 in 30 minute slots.
const (
	DefaultSlotMinutes = 30
	DefaultStartHour   = 9
	DefaultEndHour     = 22
)

// SlotStatus is the derived state of one timeline slot. It is a pure
// domain tag; mapping to colors belongs to the presentation layer.
type SlotStatus int

const (
	Available SlotStatus = iota
	Reserved
	MyReservation
	InUse
	Past
)

func (s SlotStatus) String() string {
	switch s {
	case Available:
		return "available"
	case Reserved:
		return "reserved"
	case MyReservation:
		return "mine"
	case InUse:
		return "in-use"
	case Past:
		return "past"
	}
	return fmt.Sprintf("SlotStatus(%d)", int(s))
}

// ParseTimeOfDay converts an "HH:MM" wire string to minutes after
// midnight.
func ParseTimeOfDay(s string) (int, error) {
	t, err := time.Parse(api.TimeFormat, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatTimeOfDay converts minutes after midnight to an "HH:MM" wire
// string.
func FormatTimeOfDay(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// overlap reports whether two [start,end) minute intervals intersect.
// Back-to-back intervals (end == start) do not conflict; bookings may
// abut.
func overlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}

// IsAvailable reports whether the [startMin,endMin) candidate interval
// on the given date is free of conflicts with the existing
// reservations. Reservations on other dates are ignored; entries with
// unparseable times are skipped. O(n) over the input.
func IsAvailable(existing []api.Reservation, date string, startMin, endMin int) bool {
	for _, res := range existing {
		if res.Date != date {
			continue
		}

		otherStart, err := ParseTimeOfDay(res.StartTime)
		if err != nil {
			continue
		}
		otherEnd, err := ParseTimeOfDay(res.EndTime)
		if err != nil {
			continue
		}

		if overlap(startMin, endMin, otherStart, otherEnd) {
			return false
		}
	}
	return true
}

// Slot is one fixed-duration subdivision of the timeline, as minutes
// after midnight.
type Slot struct {
	Start int
	End   int
}

// Slots returns the [start,end) boundaries of the timeline between
// startHour and endHour, cut into slotMinutes pieces.
func Slots(slotMinutes, startHour, endHour int) []Slot {
	n := (endHour - startHour) * 60 / slotMinutes
	slots := make([]Slot, n)
	for i := range slots {
		start := startHour*60 + i*slotMinutes
		slots[i] = Slot{Start: start, End: start + slotMinutes}
	}
	return slots
}

// DeriveTimeline computes the status of every slot for queryDate from
// the current time and the room's reservation list. currentUser is the
// session's student id; it decides Reserved vs MyReservation and an
// empty value never matches. Reservations are applied in input order;
// when several overlap one slot the last applied wins, which the store
// guarantees never happens for a single room. The computation is pure:
// equal inputs always yield the same timeline.
func DeriveTimeline(queryDate string, reservations []api.Reservation, now time.Time, currentUser string, slotMinutes, startHour, endHour int) []SlotStatus {
	slots := Slots(slotMinutes, startHour, endHour)
	statuses := make([]SlotStatus, len(slots))

	today := now.Format(api.DateFormat)
	nowMin := now.Hour()*60 + now.Minute()

	// Baseline pass from the calendar alone.
	switch {
	case queryDate < today:
		for i := range statuses {
			statuses[i] = Past
		}
	case queryDate > today:
		for i := range statuses {
			statuses[i] = Available
		}
	default:
		for i, slot := range slots {
			if slot.End <= nowMin {
				statuses[i] = Past
			} else {
				statuses[i] = Available
			}
		}
	}

	if queryDate < today {
		return statuses // nothing may override Past days
	}

	// Overlay pass from the reservation list.
	for _, res := range reservations {
		if res.Date != queryDate {
			continue
		}

		start, err := ParseTimeOfDay(res.StartTime)
		if err != nil {
			continue
		}
		end, err := ParseTimeOfDay(res.EndTime)
		if err != nil {
			continue
		}

		for i, slot := range slots {
			if !overlap(start, end, slot.Start, slot.End) {
				continue
			}

			if queryDate == today {
				if slot.End <= nowMin {
					continue // stays Past
				}
				if slot.Start < nowMin && nowMin < slot.End {
					// Occupied right now, even for the owner.
					statuses[i] = InUse
					continue
				}
			}

			if currentUser != "" && res.StudentID == currentUser {
				statuses[i] = MyReservation
			} else {
				statuses[i] = Reserved
			}
		}
	}

	return statuses
}
