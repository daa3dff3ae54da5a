/* Copyright (c) 2025 David Bulkow */

package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/dbulkow/classrooms/api"
	"github.com/dbulkow/classrooms/internal/client"
	"github.com/dbulkow/classrooms/internal/schedule"
)

var interval time.Duration

func init() {
	watchCmd := &cobra.Command{
		Use:   "watch <building> <room>",
		Short: "Watch a room's timeline for today",
		Long: `Watch a room's slot timeline for today, refreshed periodically

Runs until interrupted. Fetch failures are skipped; the last good
timeline stays on screen.
`,
		RunE: watch,
	}

	watchCmd.Flags().DurationVar(&interval, "interval", 0, "refresh interval (default from config)")

	RootCmd.AddCommand(watchCmd)
}

func watch(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return errors.New("building and/or room not specified")
	}
	building, room := args[0], args[1]

	if interval == 0 {
		interval = cfg.RefreshInterval
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if err := rooms.Initialize(ctx); err != nil {
		return err
	}
	roomID, ok := rooms.Lookup(building, room)
	if !ok {
		return fmt.Errorf("no room %s in building %s", room, building)
	}

	me := engine.Session().StudentID()

	render := func(reservations []api.Reservation) {
		var forRoom []api.Reservation
		for _, r := range reservations {
			if r.RoomID == roomID {
				forRoom = append(forRoom, r)
			}
		}

		now := time.Now()
		date := now.Format(api.DateFormat)
		statuses := schedule.DeriveTimeline(date, forRoom, now, me,
			cfg.SlotMinutes, cfg.StartHour, cfg.EndHour)
		slots := schedule.Slots(cfg.SlotMinutes, cfg.StartHour, cfg.EndHour)

		fmt.Printf("%s %s on %s (as of %s)\n", building, room, date, now.Format("15:04:05"))
		for i, slot := range slots {
			fmt.Printf("%s-%s  %s\n",
				schedule.FormatTimeOfDay(slot.Start),
				schedule.FormatTimeOfDay(slot.End),
				statuses[i])
		}
		fmt.Println()
	}

	client.NewRefresher(engine, interval, nil, logger, render).Run(ctx)

	return nil
}
