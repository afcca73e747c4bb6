package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/maxviazov/listresult/internal/config"
	"github.com/maxviazov/listresult/internal/logger"
	"github.com/maxviazov/listresult/internal/repository"
)

// app is what every subcommand needs once flags are parsed.
type app struct {
	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		a          app
	)

	cmd := &cobra.Command{
		Use:           "listresult",
		Short:         "Paginated basketball stats API",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("config loading failed: %w", err)
			}
			l, err := logger.New(&cfg.Logger)
			if err != nil {
				return fmt.Errorf("logger initialization failed: %w", err)
			}
			a.cfg, a.log = cfg, l
			return nil
		},
		// bare invocation serves
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), a)
		},
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to the YAML config file")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return serve(cmd.Context(), a)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending goose migrations and exit",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return migrate(cmd, a)
			},
		},
	)
	return cmd
}

func migrate(cmd *cobra.Command, a app) error {
	if a.cfg.App.Storage != "postgres" {
		return fmt.Errorf("migrate needs app.storage=postgres, got %q", a.cfg.App.Storage)
	}
	repo, err := repository.New(cmd.Context(), a.cfg, &a.log)
	if err != nil {
		return err
	}
	defer repo.Close()
	if err := repo.Migrate(cmd.Context(), a.cfg.Postgres.MigrationsDir); err != nil {
		return err
	}
	a.log.Info().Str("dir", a.cfg.Postgres.MigrationsDir).Msg("migrations applied")
	return nil
}
