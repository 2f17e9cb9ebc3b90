// cmd/root.go
package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/config"
	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/database"
)

var (
	configPath string
	envFile    string
	dbURL      string
	dbDriver   string

	// Flags of individual commands that feed the explicit config layer.
	servePort      string
	scrapeURL      string
	alertThreshold float64

	cfg config.Config
)

var rootCmd = &cobra.Command{
	Use:   "market-intel",
	Short: "Track book prices against a competitor and report on them",
	Long: `market-intel scrapes a public book catalog, synthesizes a competitor feed,
cleans and deduplicates prices, stores them, and serves reports over HTTP
and in the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := config.Resolver{
			Explicit: config.Config{
				Server:   config.ServerConfig{Port: servePort},
				Database: config.DatabaseConfig{Driver: dbDriver, URL: dbURL},
				Scraper:  config.ScraperConfig{URL: scrapeURL},
				Alerts:   config.AlertsConfig{Threshold: alertThreshold},
			},
			FilePath: configPath,
			EnvFile:  envFile,
		}.Resolve()
		if err != nil {
			return err
		}
		cfg = resolved
		return nil
	},
}

// Execute runs the CLI. Interrupts cancel the command context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		log.Fatal(err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config/config.yaml", "config file (yaml or json5); <name>.local.<ext> is merged over it")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "database URL or sqlite file path (overrides DB_URL)")
	rootCmd.PersistentFlags().StringVar(&dbDriver, "db-driver", "", "sqlite, mysql or postgres (inferred from the URL when empty)")

	rootCmd.AddCommand(serveCmd, runCmd, etlCmd, generateFeedCmd, fetchFeedCmd,
		reportCmd, compareCmd, dashboardCmd, resetCmd, checkCmd)
}

func openStore(ctx context.Context) (*database.PriceStore, error) {
	return database.Open(ctx, cfg.Database)
}
