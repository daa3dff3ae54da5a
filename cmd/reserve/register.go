/* Copyright (c) 2025 David Bulkow */

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	registerCmd := &cobra.Command{
		Use:     "register <student id> <name>",
		Aliases: []string{"signup"},
		Short:   "Create an account",
		Long: `Create an account on the reservation service

The password is read from standard input, twice. Registration does not
log in; run login afterwards.
`,
		RunE: register,
	}

	RootCmd.AddCommand(registerCmd)
}

func register(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return errors.New("student id and/or name not specified")
	}
	studentID := args[0]
	name := strings.Join(args[1:], " ")

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return errors.New("password not entered")
	}

	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if confirm != password {
		return errors.New("passwords do not match")
	}

	reply, err := engine.Register(cmd.Context(), studentID, name, password)
	if err != nil {
		return err
	}

	fmt.Printf("Registered %s (%s)\n", reply.Name, reply.StudentID)
	return nil
}
