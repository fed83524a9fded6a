package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aussiebroadwan/backoffice/internal/backoffice/app"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	root := &cobra.Command{
		Use:     "backoffice",
		Short:   "Back-office administration API",
		Version: app.BuildVersion,
		// Running without a subcommand starts the server.
		RunE:         serve.RunE,
		SilenceUsage: true,
	}

	root.AddCommand(serve, newMigrateCmd(), newSeedCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			application, err := app.New(app.LoadConfig())
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return application.Run()
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.LoadConfig()
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger := app.NewLogger(cfg)

			st, err := app.OpenStore(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			logger.Info("database migrations applied successfully", "driver", cfg.DatabaseDriver)
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the demo roles and users if they are missing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.LoadConfig()
			if err := cfg.Validate(); err != nil {
				return err
			}
			logger := app.NewLogger(cfg)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			st, err := app.OpenStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer st.Close()

			res, err := app.Seed(ctx, st, logger)
			if err != nil {
				return err
			}
			logger.Info("seed complete", "roles_created", res.RolesCreated, "users_created", res.UsersCreated)
			return nil
		},
	}
}
