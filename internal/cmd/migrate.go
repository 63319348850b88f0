package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
)

func newMigrateCmd() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}
	for _, c := range []struct{ use, short string }{
		{"up", "Apply all pending migrations"},
		{"down", "Roll back the most recent migration"},
		{"status", "Print the state of every migration"},
	} {
		command := c.use
		migrate.AddCommand(&cobra.Command{
			Use:   command,
			Short: c.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return runMigrate(cmd, command)
			},
		})
	}
	return migrate
}

func runMigrate(cmd *cobra.Command, command string) error {
	cfg, err := configLoader()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	switch cfg.StoreDriver {
	case config.StorePostgres:
		return database.MigratePostgres(ctx, cfg.PostgresDSN(), command)
	case config.StoreSQLite, config.StoreMongo:
		if command != "up" {
			return fmt.Errorf("migrate %s is only supported for the postgres store", command)
		}
		// Opening the store creates the tables or indexes.
		cfg.AutoMigrate = true
		st, err := database.OpenStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer st.Close()
		fmt.Fprintf(cmd.OutOrStdout(), "%s schema is up to date\n", cfg.StoreDriver)
		return nil
	default:
		return fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
