package main

import (
	"fmt"
	"net"
	"os"

	"github.com/de-tools/data-brief/pkg/server"
	"github.com/de-tools/data-brief/pkg/services/insight"
	"github.com/de-tools/data-brief/pkg/store/duckdb"
	duckdbhistory "github.com/de-tools/data-brief/pkg/store/duckdb/history"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var dbPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the DataBrief analysis service",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVar(&dbPath, "db", "data-brief.db", "Path to the DuckDB database file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: dbPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}

	historyStore, err := duckdbhistory.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create history store: %w", err)
	}

	var narrative insight.Narrative
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		narrative = insight.NewOpenAINarrative(apiKey, os.Getenv("OPENAI_MODEL"))
		logger.Info().Msg("using OpenAI-backed narrative")
	}
	analyzer := insight.NewAnalyzer(narrative)

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Analyzer: analyzer,
			History:  historyStore,
		},
	})

	return api.Start()
}
