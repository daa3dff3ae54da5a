/* Copyright (c) 2025 David Bulkow */

package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	loginCmd := &cobra.Command{
		Use:   "login <student id>",
		Short: "Log in to the reservation service",
		Long: `Log in to the reservation service

The password is read from standard input. On success the token is
saved so later commands run authenticated until it expires.
`,
		RunE: login,
	}

	RootCmd.AddCommand(loginCmd)
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	text, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func login(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return errors.New("student id not specified")
	}
	studentID := args[0]

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return errors.New("password not entered")
	}

	reply, err := engine.Login(cmd.Context(), studentID, password)
	if err != nil {
		return err
	}

	credfile := cmd.Flag("credentials").Value.String()
	err = saveCredentials(credfile, &Credentials{
		StudentID: reply.StudentID,
		Name:      reply.Name,
		Token:     reply.Token,
	})
	if err != nil {
		return fmt.Errorf("login succeeded but saving it failed: %v", err)
	}

	fmt.Printf("Logged in as %s (%s)\n", reply.Name, reply.StudentID)
	return nil
}
