package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"spamlab/internal/config"
	"spamlab/internal/counter"
	"spamlab/internal/db"
	"spamlab/internal/models"
)

func newCounterCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "counter",
		Short: "Read or bump the contact form submission counter",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the current count",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withCounter(cmd.Context(), opts, func(ctx context.Context, c counter.Counter) error {
					n, err := c.Get(ctx)
					if err != nil {
						return err
					}
					return writeJSON(cmd.OutOrStdout(), models.CounterResponse{Count: n})
				})
			},
		},
		&cobra.Command{
			Use:   "incr",
			Short: "Record one submission and print the new count",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withCounter(cmd.Context(), opts, func(ctx context.Context, c counter.Counter) error {
					n, err := c.Increment(ctx)
					if err != nil {
						return err
					}
					return writeJSON(cmd.OutOrStdout(), models.CounterResponse{Count: n})
				})
			},
		},
	)

	return cmd
}

// withCounter opens the configured backend, runs fn and closes everything again.
func withCounter(ctx context.Context, opts *rootOptions, fn func(context.Context, counter.Counter) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := opts.counterConfig()
	logger := opts.logger()
	defer func() { _ = logger.Sync() }()

	deps := counter.Deps{}
	if cfg.CounterBackend == config.BackendPostgres {
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			return err
		}
		deps.DB = database
	}

	backend, err := counter.Open(ctx, cfg, deps, logger)
	if err != nil {
		return fmt.Errorf("failed to open %s counter: %w", cfg.CounterBackend, err)
	}
	defer func() { _ = backend.Close() }()

	return fn(ctx, backend.Counter)
}
