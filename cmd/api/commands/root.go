package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pharmaguide/pharmaguide-backend/internal/config"
	"github.com/pharmaguide/pharmaguide-backend/internal/database"
	"github.com/pharmaguide/pharmaguide-backend/internal/logging"
)

var (
	// Global flags
	envFile string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "api",
	Short: "PharmaGuide backend",
	Long: `PharmaGuide serves the REST API for users, pharmacies, products,
categories, inventories and advertisements, together with their images.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment (optional)")
}

// bootstrap loads the configuration, builds the logger and opens the pool.
func bootstrap(ctx context.Context) (config.Config, zerolog.Logger, *sqlx.DB, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, zerolog.Nop(), nil, fmt.Errorf("load config: %w", err)
	}
	logger := logging.New(os.Stdout, cfg.Development(), cfg.Debug)

	dsn, err := cfg.DSN()
	if err != nil {
		return cfg, logger, nil, err
	}
	db, err := database.Open(ctx, dsn)
	if err != nil {
		return cfg, logger, nil, fmt.Errorf("open database: %w", err)
	}
	logger.Info().Str("host", cfg.PostgresHost).Str("schema", cfg.PostgresSchema).Msg("connected to database")
	return cfg, logger, db, nil
}
