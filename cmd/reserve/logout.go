/* Copyright (c) 2025 David Bulkow */

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Discard the saved login",
		Long:  "Discard the saved login",
		RunE:  logout,
	}

	RootCmd.AddCommand(logoutCmd)
}

func logout(cmd *cobra.Command, args []string) error {
	engine.Logout()

	credfile := cmd.Flag("credentials").Value.String()
	if err := removeCredentials(credfile); err != nil {
		return err
	}

	fmt.Println("Logged out")
	return nil
}
