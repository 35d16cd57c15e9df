package commands

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/mconstantine/cooler-sub002/internal/api"
	"github.com/mconstantine/cooler-sub002/internal/config"
	"github.com/mconstantine/cooler-sub002/internal/db"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the GraphQL API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		store, err := db.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		log.Printf("opened database at %s", cfg.DBPath)

		server, err := api.NewServer(cfg, store)
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:         cfg.Address,
			Handler:      server.Handler(),
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			log.Printf("starting %s server on %s", cfg.Env, cfg.Address)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case <-ctx.Done():
			log.Println("shutdown requested")
		case err := <-errCh:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
