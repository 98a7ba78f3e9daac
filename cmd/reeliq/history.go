package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/TobiSchelling/ReelIQ/internal/benchmark"
	"github.com/TobiSchelling/ReelIQ/internal/output"
	"github.com/TobiSchelling/ReelIQ/internal/patterns"
	"github.com/TobiSchelling/ReelIQ/internal/reel"
	"github.com/TobiSchelling/ReelIQ/internal/rollup"
)

// loadReels returns the active user's history.
func loadReels() ([]reel.Reel, error) {
	db, userID, err := openUserDB()
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return db.GetUserReels(userID)
}

var patternsAI bool

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Show personal benchmarks and content patterns",
	RunE: func(cmd *cobra.Command, args []string) error {
		reels, err := loadReels()
		if err != nil {
			return err
		}
		p := patterns.Compute(reels)

		var ai *patterns.AIContent
		if patternsAI && p.EnoughData {
			content := patterns.GenerateAIContent(context.Background(), newProvider(), p)
			ai = &content
		}
		if jsonOut {
			return printJSON(map[string]any{"patterns": p, "ai": ai})
		}
		output.New(os.Stdout).Patterns(p, ai)
		return nil
	},
}

var (
	monthlyYear  int
	monthlyMonth int
)

var monthlyCmd = &cobra.Command{
	Use:   "monthly",
	Short: "Month-over-month performance card",
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now().UTC()
		year, month := now.Year(), now.Month()
		if monthlyYear != 0 {
			year = monthlyYear
		}
		if monthlyMonth != 0 {
			if monthlyMonth < 1 || monthlyMonth > 12 {
				return fmt.Errorf("invalid month: %d", monthlyMonth)
			}
			month = time.Month(monthlyMonth)
		}

		reels, err := loadReels()
		if err != nil {
			return err
		}
		m := rollup.ComputeMonthly(reels, year, month)
		if jsonOut {
			return printJSON(m)
		}
		output.New(os.Stdout).Monthly(m)
		return nil
	},
}

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "Weekly digest of the last seven days",
	RunE: func(cmd *cobra.Command, args []string) error {
		reels, err := loadReels()
		if err != nil {
			return err
		}
		d := rollup.BuildDigest(reels, cfg.User.Email, time.Now())
		if jsonOut {
			return printJSON(d)
		}
		output.New(os.Stdout).Digest(d)
		return nil
	},
}

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Compare your averages with industry benchmarks",
	RunE: func(cmd *cobra.Command, args []string) error {
		reels, err := loadReels()
		if err != nil {
			return err
		}
		r := benchmark.ComputeReport(reels)
		if jsonOut {
			return printJSON(r)
		}
		output.New(os.Stdout).Benchmark(r)
		return nil
	},
}

func init() {
	patternsCmd.Flags().BoolVar(&patternsAI, "ai", false, "Also generate insights and a roadmap")
	monthlyCmd.Flags().IntVar(&monthlyYear, "year", 0, "Year (defaults to the current year)")
	monthlyCmd.Flags().IntVar(&monthlyMonth, "month", 0, "Month 1-12 (defaults to the current month)")

	rootCmd.AddCommand(patternsCmd)
	rootCmd.AddCommand(monthlyCmd)
	rootCmd.AddCommand(digestCmd)
	rootCmd.AddCommand(benchmarkCmd)
}
