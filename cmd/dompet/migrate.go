package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/dompet/internal/cli"
	"github.com/Veraticus/dompet/internal/storage"
)

func migrateCmd() *cobra.Command {
	var status bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Long: `Create the tables on a new database or upgrade an older one. A backup copy
is written next to the database before an existing schema is upgraded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, _, err := openStorage()
			if err != nil {
				return err
			}
			defer store.Close()

			before, err := store.SchemaVersion(ctx)
			if err != nil {
				return fmt.Errorf("failed to read schema version: %w", err)
			}

			out := cmd.OutOrStdout()
			if status {
				fmt.Fprintf(out, "Database: %s\n", store.Path())
				fmt.Fprintf(out, "Schema version: %d (current: %d)\n", before, storage.ExpectedSchemaVersion)
				if before < storage.ExpectedSchemaVersion {
					fmt.Fprintln(out, cli.FormatWarning("Migrations pending. Run 'dompet migrate'."))
				}
				return nil
			}

			if err := store.EnsureSchema(ctx); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			if before == storage.ExpectedSchemaVersion {
				fmt.Fprintln(out, cli.FormatSuccess("Database schema is up to date"))
				return nil
			}
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Migrated database from version %d to %d", before, storage.ExpectedSchemaVersion)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&status, "status", false, "show the schema version without migrating")
	return cmd
}
