package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobradar/internal/aggregate"
	"github.com/jonathan/jobradar/internal/config"
	"github.com/jonathan/jobradar/internal/observability"
	"github.com/jonathan/jobradar/internal/types"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Run one discovery pass against all job sources",
	Long:  "Run the search profile through every configured job source concurrently, then print the deduplicated postings and per-source outcomes.",
	RunE:  runDiscover,
}

var (
	profilePath string
	configPath  string
	outPath     string
	verbose     bool
)

func init() {
	discoverCmd.Flags().StringVarP(&profilePath, "profile", "p", "", "Path to search profile JSON (required)")
	discoverCmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config JSON")
	discoverCmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the full result JSON to this file")
	discoverCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed per-source output")

	_ = discoverCmd.MarkFlagRequired("profile")

	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	profile, err := loadProfile(profilePath)
	if err != nil {
		return err
	}

	cfg := config.FromEnv()
	if configPath != "" {
		fileCfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		merged := cfg.MergeWithDefaults(*fileCfg)
		cfg = &merged
	}
	if verbose {
		cfg.Verbose = true
	}

	ctx := context.Background()
	agg, err := aggregate.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to build aggregator: %w", err)
	}
	defer agg.Close()

	printer := observability.NewPrinter(os.Stdout)
	if cfg.Verbose {
		printer.PrintSearchProfile(profile)
	}

	result, err := agg.Discover(ctx, profile)
	if err != nil {
		return err
	}

	printer.PrintResult(result)

	if outPath != "" {
		if err := writeResult(outPath, result); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Result written to %s\n", outPath)
	}
	return nil
}

func loadProfile(path string) (*types.SearchProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	var profile types.SearchProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse profile JSON: %w", err)
	}
	return &profile, nil
}

func writeResult(path string, result *types.AggregationResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write result %s: %w", path, err)
	}
	return nil
}
