package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"notes-backend/infrastructure/config"
	"notes-backend/infrastructure/di"
)

var (
	userID  string
	verbose bool
)

// rootCmd operates on the configured store directly through the command and query buses
var rootCmd = &cobra.Command{
	Use:           "notesctl",
	Short:         "Administer the notes backend from the command line",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "", "User ID to act as")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(tokenCmd, listCmd, statsCmd, seedCmd)
}

// withContainer loads configuration and wires the application for one command
func withContainer(ctx context.Context, fn func(*di.Container) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	} else {
		cfg.LogLevel = "warn"
	}

	container, cleanup, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize container: %w", err)
	}
	defer cleanup()

	return fn(container)
}

func requireUser() error {
	if userID == "" {
		return fmt.Errorf("--user is required")
	}
	return nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
