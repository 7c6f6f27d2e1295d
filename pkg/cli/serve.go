package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Spencerx/metrics-collector-service/pkg/cli/config"
	"github.com/Spencerx/metrics-collector-service/pkg/controller/server"
	"github.com/Spencerx/metrics-collector-service/pkg/infra"
	"github.com/Spencerx/metrics-collector-service/pkg/usecase"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/logging"
	"github.com/Spencerx/metrics-collector-service/pkg/utils/safe"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gots/slice"
	"github.com/urfave/cli/v3"
)

func serveCommand() *cli.Command {
	var (
		addr        string
		concurrency int

		auth       config.Auth
		database   config.Database
		firestore  config.Firestore
		reputation config.Reputation
		githubApp  config.GitHubApp
		bigQuery   config.BigQuery
		sentry     config.Sentry
	)
	serveFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Binding address",
			Value:       "127.0.0.1:8000",
			Sources:     cli.EnvVars("DEPTRACK_ADDR"),
			Destination: &addr,
		},
		&cli.IntFlag{
			Name:        "reputation-concurrency",
			Usage:       "Max number of concurrent reputation lookups per request",
			Category:    "Reputation",
			Value:       usecase.DefaultConcurrency,
			Sources:     cli.EnvVars("DEPTRACK_REPUTATION_CONCURRENCY"),
			Destination: &concurrency,
		},
	}

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Server mode",
		Flags: slice.Flatten(
			serveFlags,
			auth.Flags(),
			database.Flags(),
			firestore.Flags(),
			reputation.Flags(),
			githubApp.Flags(),
			bigQuery.Flags(),
			sentry.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			logging.Default().Info("starting serve",
				slog.Any("Addr", addr),
				slog.Any("Auth", &auth),
				slog.Any("Database", &database),
				slog.Any("Firestore", &firestore),
				slog.Any("Reputation", &reputation),
				slog.Any("GitHubApp", githubApp),
				slog.Any("BigQuery", &bigQuery),
				slog.Any("Sentry", &sentry),
			)

			flush, err := sentry.Configure(ctx)
			if err != nil {
				return err
			}
			defer flush()

			eventStore, closeStore, err := database.NewEventStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			cache, err := firestore.NewCache(ctx)
			if err != nil {
				return err
			}

			httpClient := &http.Client{Timeout: reputation.Timeout()}
			repClient, err := reputation.NewClient(ctx, httpClient, cache, &githubApp)
			if err != nil {
				return err
			}

			infraOptions := []infra.Option{
				infra.WithEventStore(eventStore),
				infra.WithReputation(repClient),
				infra.WithHTTPClient(httpClient),
			}

			if bqClient, err := bigQuery.NewClient(ctx); err != nil {
				return err
			} else if bqClient != nil {
				defer safe.Close(bqClient)
				infraOptions = append(infraOptions, infra.WithBigQuery(bqClient))
			}

			clients := infra.New(infraOptions...)

			uc := usecase.New(clients, usecase.WithConcurrency(concurrency))
			s := server.New(uc, auth.ServerOptions()...)

			serverErr := make(chan error, 1)
			httpServer := &http.Server{
				Addr:    addr,
				Handler: s.Mux(),

				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      60 * time.Second,
			}

			go func() {
				logging.Default().Info("starting http server", "addr", addr)
				if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
					serverErr <- goerr.Wrap(err, "failed to listen and serve")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-serverErr:
				return err

			case sig := <-quit:
				logging.Default().Info("shutting down server", "signal", sig)

				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := httpServer.Shutdown(ctx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server")
				}
			}

			return nil
		},
	}
}
