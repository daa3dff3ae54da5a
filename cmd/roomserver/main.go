/* Copyright (c) 2025 David Bulkow */

// Command roomserver runs the classroom reservation store: a JSON REST
// service backed by an append-only log, the same one the reserve
// client talks to.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dbulkow/classrooms/api"
	"github.com/dbulkow/classrooms/internal/config"
	"github.com/dbulkow/classrooms/internal/logging"
	"github.com/dbulkow/classrooms/internal/server"
)

// overridden at build time with -ldflags "-X main.GitHash=..."
var (
	GitHash   = "unknown"
	BuildTime = "unknown"
)

// campus is the room catalog served until rooms become configurable.
var campus = []api.Room{
	{ID: 1, Building: "IT4", Name: "104", Floor: 1},
	{ID: 2, Building: "IT4", Name: "106", Floor: 1},
	{ID: 3, Building: "IT4", Name: "108", Floor: 1},
	{ID: 4, Building: "IT5", Name: "224", Floor: 2},
	{ID: 5, Building: "IT5", Name: "225", Floor: 2},
	{ID: 6, Building: "IT5", Name: "245", Floor: 2},
	{ID: 7, Building: "IT5", Name: "248", Floor: 2},
	{ID: 8, Building: "IT5", Name: "342", Floor: 3},
	{ID: 9, Building: "IT5", Name: "345", Floor: 3},
	{ID: 10, Building: "IT5", Name: "348", Floor: 3},
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %v", err)
	}

	log, err := logging.New(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		return fmt.Errorf("logging: %v", err)
	}
	defer log.Sync()

	log.Info("starting",
		zap.String("git", GitHash),
		zap.String("build", BuildTime),
		zap.String("addr", cfg.ListenAddr),
		zap.String("data", cfg.DataFile))

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		if cfg.JWTSecret == "classrooms-dev-secret" {
			return errors.New("refusing to run production with the default JWT secret")
		}
	}

	backing, err := server.NewJSONL(cfg.DataFile)
	if err != nil {
		return fmt.Errorf("backing store: %v", err)
	}

	store, err := server.NewStore(campus, backing)
	if err != nil {
		return fmt.Errorf("store: %v", err)
	}

	tokens := server.NewTokenAuthority(cfg.JWTSecret, cfg.TokenTTL)

	srv := &http.Server{
		Addr:           cfg.ListenAddr,
		Handler:        server.NewRouter(store, tokens, log),
		ReadTimeout:    60 * time.Second,
		WriteTimeout:   60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// signal handling

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	done := make(chan struct{})
	go func() {
		<-c

		log.Info("signal received, stopping web server")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("shutdown", zap.Error(err))
		}

		close(done)
	}()

	log.Info("serving http", zap.String("addr", cfg.ListenAddr))

	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}

	<-done
	log.Info("exiting")

	return nil
}

func main() {
	err := run(os.Args, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}
