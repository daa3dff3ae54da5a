/* Copyright (c) 2025 David Bulkow */

package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	deleteCmd := &cobra.Command{
		Use:     "delete <reservation number>",
		Aliases: []string{"del", "rm", "cancel"},
		Short:   "Cancel a reservation",
		Long: `Cancel a reservation by number

Only your own reservations can be canceled. Numbers come from the
list command.
`,
		RunE: del,
	}

	RootCmd.AddCommand(deleteCmd)
}

func del(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return errors.New("reservation number not specified")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("reservation number %q not a number", args[0])
	}

	if err := engine.CancelReservation(cmd.Context(), id); err != nil {
		return err
	}

	fmt.Printf("Canceled reservation %d\n", id)
	return nil
}
