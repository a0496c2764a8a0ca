package commands

import (
	"github.com/spf13/cobra"

	"github.com/pharmaguide/pharmaguide-backend/internal/database"
)

// migrateCmd creates the schema and tables
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema and tables",
	Long: `Create the configured schema and every table inside it.

Every statement is idempotent, so running it against an existing
database is safe.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, db, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := database.Migrate(cmd.Context(), db, cfg.PostgresSchema); err != nil {
			return err
		}
		logger.Info().Str("schema", cfg.PostgresSchema).Msg("schema is up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
