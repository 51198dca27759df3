package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/emilythestrangee/roadmap-board/backend/internal/board"
	"github.com/emilythestrangee/roadmap-board/backend/internal/database"
	"github.com/emilythestrangee/roadmap-board/backend/internal/events"
	"github.com/emilythestrangee/roadmap-board/backend/internal/identity"
	"github.com/emilythestrangee/roadmap-board/backend/internal/server"
)

var (
	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()
			return db.Migrate()
		},
	}

	promoteCmd = &cobra.Command{
		Use:   "promote [username]",
		Short: "Grant admin rights to an existing user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := identity.NewAccounts(db.GetDB()).Promote(cmd.Context(), args[0]); err != nil {
				return err
			}
			slog.Info("user promoted to admin", "username", args[0])
			return nil
		},
	}
)

func openDatabase() (database.Service, error) {
	return database.Open(cfg.DSN(), database.Options{LogLevel: cfg.Database.LogLevel})
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return err
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.Redis.URL != "" {
		rp, err := events.NewRedis(cfg.Redis.URL)
		if err != nil {
			return err
		}
		defer rp.Close()
		if err := rp.Ping(ctx); err != nil {
			slog.Warn("redis unreachable, events will be dropped until it recovers", "error", err)
		}
		publisher = rp
	}

	srv := server.New(cfg, server.Deps{
		Board:    board.NewService(db.GetDB(), publisher),
		Accounts: identity.NewAccounts(db.GetDB()),
		Tokens:   identity.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		DB:       db,
		Logger:   slog.Default(),
	}).HTTPServer()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
