/* Copyright (c) 2025 David Bulkow */

package client

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/dbulkow/classrooms/api"
)

// State is a stage of one reservation attempt.
type State int

const (
	StateChecking State = iota + 1
	StateAvailable
	StateCreating
	StateDone
	StateUnavailable
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateChecking:
		return "checking"
	case StateAvailable:
		return "available"
	case StateCreating:
		return "creating"
	case StateDone:
		return "done"
	case StateUnavailable:
		return "unavailable"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ReserveRequest describes one reservation attempt. OnTransition, when
// set, observes every state change in order; it runs on the goroutine
// executing the attempt.
type ReserveRequest struct {
	Building  string
	Floor     int
	Room      string
	Date      string // YYYY-MM-DD
	StartTime string // HH:MM
	EndTime   string // HH:MM

	OnTransition func(State)
}

// ReserveResult is the completion handoff of an async attempt.
type ReserveResult struct {
	Reservation *api.Reservation
	Err         error
}

// Coordinator drives the check-then-create reservation flow. The two
// steps are not atomic: the availability answer is advisory and the
// server stays the final authority, so a create may still be rejected
// after a positive check. Within one attempt the steps are strictly
// sequential; independent attempts are unordered.
type Coordinator struct {
	client *Client
	rooms  *RoomDirectory
	log    *zap.Logger
}

func NewCoordinator(client *Client, rooms *RoomDirectory, log *zap.Logger) *Coordinator {
	return &Coordinator{client: client, rooms: rooms, log: log}
}

// Reserve runs one attempt to completion in the calling goroutine and
// returns the server-confirmed reservation. Interactive callers use
// ReserveAsync instead.
func (c *Coordinator) Reserve(ctx context.Context, req ReserveRequest) (*api.Reservation, error) {
	step := func(s State) {
		if req.OnTransition != nil {
			req.OnTransition(s)
		}
	}

	studentID := c.client.Session().StudentID()
	if studentID == "" {
		return nil, newError(AuthRequired, 0, "log in before reserving")
	}

	res := &api.Reservation{
		StudentID: studentID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		RoomName:  req.Room,
	}
	if err := res.Validate(); err != nil {
		return nil, wrapError(Validation, err.Error(), err)
	}

	step(StateChecking)
	slot := req.StartTime + "-" + req.EndTime
	available, err := c.client.CheckAvailability(ctx, req.Building, req.Floor, req.Room, req.Date, slot)
	if err != nil {
		step(StateFailed)
		return nil, err
	}
	if !available {
		step(StateUnavailable)
		return nil, newError(Conflict, http.StatusConflict, "time slot is already reserved")
	}
	step(StateAvailable)

	roomID, ok := c.rooms.Lookup(req.Building, req.Room)
	if !ok {
		step(StateFailed)
		return nil, newError(UnknownRoom, 0,
			fmt.Sprintf("no room id for %s %s, refresh the room list and retry", req.Building, req.Room))
	}
	res.RoomID = roomID

	step(StateCreating)
	created, err := c.client.CreateReservation(ctx, res)
	if err != nil {
		// The server saw something the check did not, typically a
		// booking that landed in between. Nothing exists locally.
		step(StateFailed)
		c.log.Warn("create rejected after positive check",
			zap.String("room", req.Room), zap.String("date", req.Date), zap.Error(err))
		return nil, err
	}
	created.RoomName = req.Room

	step(StateDone)
	c.log.Info("reservation confirmed",
		zap.Int64("id", created.ID),
		zap.String("room", req.Room),
		zap.String("date", created.Date))
	return created, nil
}

// ReserveAsync runs Reserve off the calling goroutine and delivers the
// outcome on the returned channel. The channel is buffered: the
// attempt never blocks on a slow receiver, and the caller decides
// where to consume the completion.
func (c *Coordinator) ReserveAsync(ctx context.Context, req ReserveRequest) <-chan ReserveResult {
	out := make(chan ReserveResult, 1)
	go func() {
		created, err := c.Reserve(ctx, req)
		out <- ReserveResult{Reservation: created, Err: err}
	}()
	return out
}
