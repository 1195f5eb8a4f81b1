package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/guanggu/icollege/internal/handler/http"
	"github.com/guanggu/icollege/internal/logger"
	"github.com/guanggu/icollege/internal/server"
	"github.com/guanggu/icollege/internal/service"
	"github.com/guanggu/icollege/internal/store"
	"github.com/spf13/cobra"
)

func newServeCommand(cc *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := cc.newLogger(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cc, log)
		},
	}
}

func runServe(ctx context.Context, cc *commandContext, log *logger.Logger) error {
	m, cfg, err := cc.loadConfig(log)
	if err != nil {
		return err
	}
	m.CheckDeprecated()

	mongo := store.NewMongo(log)
	if err = m.ConnectDatabase(ctx, mongo); err != nil {
		return err
	}
	defer func() {
		if closeErr := m.Close(context.WithoutCancel(ctx)); closeErr != nil {
			log.Err(closeErr).Msg("error closing database connection")
		}
	}()

	db, err := mongo.Database()
	if err != nil {
		return err
	}

	services, err := service.NewServices(store.NewRepositories(db, log), cfg, log)
	if err != nil {
		return err
	}

	if err = checkDatabaseVersion(ctx, services.VersioningService, log); err != nil {
		return err
	}

	router := http.NewHandler(services, log).Init()
	srv, err := server.NewServer(router, server.BindingFrom(m), log)
	if err != nil {
		return err
	}

	log.Info().Str("url", cfg.URL).Str("environment", m.Environment().Name).Msg("icollege is running")
	return srv.RunServer(ctx)
}

// checkDatabaseVersion records the current version in an empty database and
// refuses to start on a database written by a different version.
func checkDatabaseVersion(ctx context.Context, versioning service.VersioningService, log *logger.Logger) error {
	want := versioning.DefaultDatabaseVersion()

	current, err := versioning.DatabaseVersion(ctx)
	switch {
	case errors.Is(err, service.ErrNoDatabaseVersion):
		log.Info().Str("version", want).Msg("initialising database")
		return versioning.SetDatabaseVersion(ctx)
	case err != nil:
		return err
	case current != want:
		return fmt.Errorf("%w: database is at version %s, expected %s", errDatabaseVersionMismatch, current, want)
	}

	log.Debug().Str("version", current).Msg("database version is up to date")
	return nil
}
