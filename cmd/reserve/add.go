/* Copyright (c) 2025 David Bulkow */

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dbulkow/classrooms/internal/client"
)

var addQuiet bool

func init() {
	addCmd := &cobra.Command{
		Use:     "add <building> <room> <date> <start> <end>",
		Aliases: []string{"new", "create"},
		Short:   "Reserve a room",
		Long: `Reserve a room for a time slot

The date is written YYYY-MM-DD and the times HH:MM, for example:

    reserve add IT5 224 2026-09-01 10:00 11:30

The slot is checked before the reservation is submitted; a booking
that lands in between still wins, and this command reports the
conflict.
`,
		RunE: add,
	}

	addCmd.Flags().BoolVarP(&addQuiet, "quiet", "q", false, "Don't report progress")

	RootCmd.AddCommand(addCmd)
}

func add(cmd *cobra.Command, args []string) error {
	if len(args) < 5 {
		return errors.New("building, room, date and/or times not specified")
	}
	building, room, date, start, end := args[0], args[1], args[2], args[3], args[4]

	ctx := cmd.Context()
	rooms.Initialize(ctx)

	progress := func(s client.State) {
		if addQuiet {
			return
		}
		switch s {
		case client.StateChecking:
			fmt.Println("checking availability...")
		case client.StateCreating:
			fmt.Println("slot is free, reserving...")
		}
	}

	done := client.NewCoordinator(engine, rooms, logger).ReserveAsync(ctx, client.ReserveRequest{
		Building:     building,
		Floor:        floorOf(building, room),
		Room:         room,
		Date:         date,
		StartTime:    start,
		EndTime:      end,
		OnTransition: progress,
	})

	select {
	case result := <-done:
		if result.Err != nil {
			return result.Err
		}
		res := result.Reservation
		fmt.Printf("Added reservation %d: %s %s %s %s-%s\n",
			res.ID, building, room, res.Date, res.StartTime, res.EndTime)
		return nil
	case <-time.After(time.Minute):
		return errors.New("reservation attempt timed out")
	}
}
