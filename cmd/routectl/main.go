package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/arunima26vats/CosmicStack/internal/bootstrap"
	"github.com/arunima26vats/CosmicStack/internal/config"
	"github.com/arunima26vats/CosmicStack/internal/core/domain"
	"github.com/arunima26vats/CosmicStack/internal/observability/logging"
)

var Version = "dev"

func main() {
	// Keep stdout clean for command output; pipeline logs go to stderr.
	slog.SetDefault(logging.NewTextLogger("routectl", "warn"))

	rootCmd := &cobra.Command{
		Use:     "routectl",
		Short:   "Classify and route artifacts without a running server",
		Version: Version,
	}

	rootCmd.PersistentFlags().String("store", "", "Local storage directory (empty keeps artifacts in memory)")
	rootCmd.PersistentFlags().String("seeds", "", "YAML file of category seeds replacing the built-ins")

	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(shapeCmd())
	rootCmd.AddCommand(statsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildApp wires the same pipeline the API server runs, with the storage
// backend picked from flags instead of the environment.
func buildApp(cmd *cobra.Command) (*bootstrap.App, error) {
	cfg := config.Load()
	cfg.StorageBackend = "memory"
	if dir, _ := cmd.Flags().GetString("store"); dir != "" {
		cfg.StorageBackend = "local"
		cfg.StoragePath = dir
	}
	if seeds, _ := cmd.Flags().GetString("seeds"); seeds != "" {
		cfg.CategorySeedPath = seeds
	}
	return bootstrap.New(cmd.Context(), cfg)
}

func printDecision(decision *domain.RoutingDecision) error {
	out, err := json.MarshalIndent(decision, "", "  ")
	if err != nil {
		return fmt.Errorf("encode decision: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
