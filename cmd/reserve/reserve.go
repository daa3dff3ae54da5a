/* Copyright (c) 2025 David Bulkow */

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dbulkow/classrooms/internal/client"
	"github.com/dbulkow/classrooms/internal/config"
	"github.com/dbulkow/classrooms/internal/logging"
)

var RootCmd = &cobra.Command{
	Use:   "reserve",
	Short: "Reserve a classroom",
	Long: `Reserve a classroom, or inspect the day's bookings

Settings come from a classrooms.yaml in the working directory or
CLASSROOMS_* environment variables; flags override both.

environment:
    CLASSROOMS_BASE_URL    URL for reservation server
                           CLASSROOMS_BASE_URL_VALUE
    CLASSROOMS_CREDENTIALS saved login filename
                           CLASSROOMS_CREDENTIALS_VALUE
`,
	PersistentPreRunE: setup,
}

var (
	cfg     config.Config
	engine  *client.Client
	rooms   *client.RoomDirectory
	logger  *zap.Logger
	verbose bool
)

// setup builds the request engine for the command about to run and
// restores any saved login into its session.
func setup(cmd *cobra.Command, args []string) error {
	addr := cmd.Flag("url").Value.String()
	if addr == "" {
		return errors.New("service URL not set")
	}

	logger = zap.NewNop()
	if verbose {
		var err error
		logger, err = logging.New("debug", false)
		if err != nil {
			return err
		}
	}

	session := client.NewSession()

	credfile := cmd.Flag("credentials").Value.String()
	if creds, err := loadCredentials(credfile); err == nil && creds.Token != "" {
		session.Set(creds.StudentID, creds.Name, creds.Token)
	}

	var err error
	engine, err = client.New(addr, session, logger, client.Options{
		ConnectTimeout: cfg.ConnectTimeout,
		RequestTimeout: cfg.RequestTimeout,
	})
	if err != nil {
		return err
	}

	rooms = client.NewRoomDirectory(engine, defaultCatalog, logger)

	return nil
}

func main() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	addr := cfg.BaseURL

	credfile := os.Getenv("CLASSROOMS_CREDENTIALS")
	if credfile == "" {
		credfile = CredFile()
	}

	RootCmd.Long = strings.ReplaceAll(RootCmd.Long, "CLASSROOMS_BASE_URL_VALUE", addr)
	RootCmd.Long = strings.ReplaceAll(RootCmd.Long, "CLASSROOMS_CREDENTIALS_VALUE", credfile)

	RootCmd.PersistentFlags().StringVar(&addr, "url", addr, "URL for reservation service")
	RootCmd.PersistentFlags().StringVar(&credfile, "credentials", credfile, "saved login file")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log requests")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Display git hash and build data",
		Long:  "Display git hash and build data",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Git Commit Hash: %s\n", GitHash)
			fmt.Printf("Build Time:      %s\n", BuildTime)
		},
	}

	RootCmd.AddCommand(versionCmd)

	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
