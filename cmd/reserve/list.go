/* Copyright (c) 2025 David Bulkow */

package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dbulkow/classrooms/api"
)

var (
	quiet      bool
	jsonOutput bool
	mine       bool
)

func init() {
	listCmd := &cobra.Command{
		Use:     "list [<date>]",
		Aliases: []string{"ls"},
		Short:   "List reservations",
		Long: `List reservations for a date, today when none is given

Dates are written YYYY-MM-DD. Flags can limit results to your own
bookings or switch to JSON output.
`,
		RunE: list,
	}

	listCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Don't display header")
	listCmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "JSON output")
	listCmd.Flags().BoolVarP(&mine, "mine", "m", false, "Show your reservations only")

	RootCmd.AddCommand(listCmd)
}

func list(cmd *cobra.Command, args []string) error {
	date := time.Now().Format(api.DateFormat)
	if len(args) > 0 {
		if _, err := time.Parse(api.DateFormat, args[0]); err != nil {
			return fmt.Errorf("date %q: want YYYY-MM-DD", args[0])
		}
		date = args[0]
	}

	reservations, err := engine.Reservations(cmd.Context(), date)
	if err != nil {
		return err
	}

	// room names for display; a fetch failure leaves ids unnamed
	names := make(map[int64]string)
	if catalog, err := engine.Rooms(cmd.Context()); err == nil {
		for _, r := range catalog {
			names[r.ID] = r.Building + " " + r.Name
		}
	}

	me := engine.Session().StudentID()

	if jsonOutput {
		out := make([]api.Reservation, 0, len(reservations))
		for _, r := range reservations {
			if mine && r.StudentID != me {
				continue
			}
			out = append(out, r)
		}
		b, err := json.MarshalIndent(out, "", "    ")
		if err != nil {
			return err
		}
		fmt.Println(string(b))
		return nil
	}

	var (
		idlen   = len("Res")
		roomlen = len("Room")
		stulen  = len("Student")
	)
	for _, r := range reservations {
		if mine && r.StudentID != me {
			continue
		}
		if n := len(fmt.Sprintf("%d", r.ID)); n > idlen {
			idlen = n
		}
		if n := len(roomLabel(names, r.RoomID)); n > roomlen {
			roomlen = n
		}
		if len(r.StudentID) > stulen {
			stulen = len(r.StudentID)
		}
	}

	if !quiet {
		fmt.Printf("%-*s %-*s %-*s Time\n", idlen, "Res", roomlen, "Room", stulen, "Student")
		fmt.Printf("%s %s %s -----------\n",
			strings.Repeat("-", idlen),
			strings.Repeat("-", roomlen),
			strings.Repeat("-", stulen))
	}

	for _, r := range reservations {
		if mine && r.StudentID != me {
			continue
		}
		fmt.Printf("%-*d %-*s %-*s %s-%s\n",
			idlen, r.ID,
			roomlen, roomLabel(names, r.RoomID),
			stulen, r.StudentID,
			r.StartTime, r.EndTime)
	}

	return nil
}

func roomLabel(names map[int64]string, id int64) string {
	if name, ok := names[id]; ok {
		return name
	}
	return fmt.Sprintf("room %d", id)
}
