/* Copyright (c) 2025 David Bulkow */

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dbulkow/classrooms/api"
	"github.com/dbulkow/classrooms/internal/schedule"
)

func init() {
	timelineCmd := &cobra.Command{
		Use:     "timeline <building> <room> [<date>]",
		Aliases: []string{"slots"},
		Short:   "Show a room's slot timeline",
		Long: `Show the slot-by-slot state of a room for a date

Each slot of the day's timeline, by default 30 minutes between 09:00
and 22:00, is marked available, reserved, yours, in use right now, or
already past.
`,
		RunE: timeline,
	}

	RootCmd.AddCommand(timelineCmd)
}

func timeline(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return errors.New("building and/or room not specified")
	}
	building, room := args[0], args[1]

	date := time.Now().Format(api.DateFormat)
	if len(args) > 2 {
		if _, err := time.Parse(api.DateFormat, args[2]); err != nil {
			return fmt.Errorf("date %q: want YYYY-MM-DD", args[2])
		}
		date = args[2]
	}

	ctx := cmd.Context()

	// Fallback ids are useless here: slot states come from comparing
	// against reservations the server reported, so the room id must be
	// the server's.
	if err := rooms.Initialize(ctx); err != nil {
		return err
	}
	roomID, ok := rooms.Lookup(building, room)
	if !ok {
		return fmt.Errorf("no room %s in building %s", room, building)
	}

	reservations, err := engine.Reservations(ctx, date)
	if err != nil {
		return err
	}

	var forRoom []api.Reservation
	for _, r := range reservations {
		if r.RoomID == roomID {
			forRoom = append(forRoom, r)
		}
	}

	me := engine.Session().StudentID()
	statuses := schedule.DeriveTimeline(date, forRoom, time.Now(), me,
		cfg.SlotMinutes, cfg.StartHour, cfg.EndHour)
	slots := schedule.Slots(cfg.SlotMinutes, cfg.StartHour, cfg.EndHour)

	fmt.Printf("%s %s on %s\n", building, room, date)
	for i, slot := range slots {
		fmt.Printf("%s-%s  %s\n",
			schedule.FormatTimeOfDay(slot.Start),
			schedule.FormatTimeOfDay(slot.End),
			statuses[i])
	}

	return nil
}
