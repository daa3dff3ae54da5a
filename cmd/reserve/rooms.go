/* Copyright (c) 2025 David Bulkow */

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var roomsQuiet bool

func init() {
	roomsCmd := &cobra.Command{
		Use:   "rooms",
		Short: "List the room catalog",
		Long:  "List the rooms known to the reservation service",
		RunE:  listRooms,
	}

	roomsCmd.Flags().BoolVarP(&roomsQuiet, "quiet", "q", false, "Don't display header")

	RootCmd.AddCommand(roomsCmd)
}

func listRooms(cmd *cobra.Command, args []string) error {
	catalog, err := engine.Rooms(cmd.Context())
	if err != nil {
		return err
	}

	var (
		idlen    = len("Id")
		bldglen  = len("Building")
		floorlen = len("Floor")
	)
	for _, r := range catalog {
		if n := len(fmt.Sprintf("%d", r.ID)); n > idlen {
			idlen = n
		}
		if len(r.Building) > bldglen {
			bldglen = len(r.Building)
		}
	}

	if !roomsQuiet {
		fmt.Printf("%-*s %-*s %-*s Room\n", idlen, "Id", bldglen, "Building", floorlen, "Floor")
		fmt.Printf("%s %s %s ----\n",
			strings.Repeat("-", idlen),
			strings.Repeat("-", bldglen),
			strings.Repeat("-", floorlen))
	}

	for _, r := range catalog {
		fmt.Printf("%-*d %-*s %-*d %s\n", idlen, r.ID, bldglen, r.Building, floorlen, r.Floor, r.Name)
	}

	return nil
}
