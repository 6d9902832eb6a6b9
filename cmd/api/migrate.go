package main

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/pkordes/wayfarer/backend/internal/config"
	"github.com/pkordes/wayfarer/backend/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the remote database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: withProvider(func(cmd *cobra.Command, p *goose.Provider) error {
		results, err := p.Up(cmd.Context())
		if err != nil {
			return fmt.Errorf("migrate up: %w", err)
		}
		for _, r := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "applied %s (%s)\n", r.Source.Path, r.Duration)
		}
		if len(results) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no pending migrations")
		}
		return nil
	}),
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	RunE: withProvider(func(cmd *cobra.Command, p *goose.Provider) error {
		r, err := p.Down(cmd.Context())
		if errors.Is(err, goose.ErrNoNextVersion) {
			fmt.Fprintln(cmd.OutOrStdout(), "nothing to roll back")
			return nil
		}
		if err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "rolled back %s\n", r.Source.Path)
		return nil
	}),
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "List migrations and whether they are applied",
	RunE: withProvider(func(cmd *cobra.Command, p *goose.Provider) error {
		statuses, err := p.Status(cmd.Context())
		if err != nil {
			return fmt.Errorf("migrate status: %w", err)
		}
		for _, s := range statuses {
			applied := "pending"
			if s.State == goose.StateApplied {
				applied = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-6d %-30s %s\n", s.Source.Version, s.Source.Path, applied)
		}
		return nil
	}),
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)
}

// withProvider opens the remote database with the service key and hands a
// goose provider over the embedded migrations to fn.
func withProvider(fn func(*cobra.Command, *goose.Provider) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, _, err := setup()
		if err != nil {
			return err
		}
		db, err := openRemote(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		p, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
		if err != nil {
			return fmt.Errorf("create goose provider: %w", err)
		}
		return fn(cmd, p)
	}
}

func openRemote(cfg config.Config) (*sql.DB, error) {
	if missing := cfg.RemoteMissing(); len(missing) > 0 {
		return nil, fmt.Errorf("remote backend not configured: missing %v", missing)
	}
	connCfg, err := pgx.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	connCfg.Password = cfg.DatabaseServiceKey
	return stdlib.OpenDB(*connCfg), nil
}
