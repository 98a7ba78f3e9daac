package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/TobiSchelling/ReelIQ/internal/coach"
	"github.com/TobiSchelling/ReelIQ/internal/diagnostic"
	"github.com/TobiSchelling/ReelIQ/internal/ingest"
	"github.com/TobiSchelling/ReelIQ/internal/llm"
	"github.com/TobiSchelling/ReelIQ/internal/output"
	"github.com/TobiSchelling/ReelIQ/internal/reel"
)

var reelInput diagnostic.Input

func addReelFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&reelInput.Views, "views", 0, "Total views")
	f.Float64Var(&reelInput.WatchTimeMinutes, "watch-time", 0, "Total watch time in minutes")
	f.IntVar(&reelInput.DurationSeconds, "duration", reel.DefaultDurationSeconds, "Reel length in seconds")
	f.IntVar(&reelInput.Likes, "likes", 0, "Likes")
	f.IntVar(&reelInput.Comments, "comments", 0, "Comments")
	f.IntVar(&reelInput.Shares, "shares", 0, "Shares")
	f.IntVar(&reelInput.Saves, "saves", 0, "Saves")
	f.StringVar(&reelInput.Caption, "caption", "", "Caption text")
	f.StringVar(&reelInput.Category, "category", "", "Content category")
	f.StringVar(&reelInput.HookType, "hook-type", "", "Hook type")
	f.IntVar(&reelInput.FollowerCount, "followers", 0, "Follower count")
	cmd.MarkFlagRequired("views")
}

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Diagnose a reel without storing it",
	RunE: func(cmd *cobra.Command, args []string) error {
		res := diagnostic.Run(reelInput)
		if jsonOut {
			return printJSON(res)
		}
		output.New(os.Stdout).Diagnostic(res)
		return nil
	},
}

var addAI bool

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Score a published reel and store it",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, userID, err := openUserDB()
		if err != nil {
			return err
		}
		defer db.Close()

		added, err := ingest.Add(context.Background(), db, newProviderIf(addAI), userID, reelInput)
		if err != nil {
			return err
		}
		if jsonOut {
			return printJSON(added)
		}

		p := output.New(os.Stdout)
		fmt.Printf("Stored reel [%d]\n\n", added.Reel.ID)
		p.Diagnostic(added.Result)
		if added.Report != "" {
			fmt.Println()
			p.Text("AI Report", added.Report)
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import [file.csv]",
	Short: "Import reels from a CSV file with canonical headers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, userID, err := openUserDB()
		if err != nil {
			return err
		}
		defer db.Close()

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("opening CSV: %w", err)
		}
		defer f.Close()

		res, err := ingest.Import(context.Background(), db, userID, f, cfg.Import.Workers)
		if err != nil {
			return err
		}
		if jsonOut {
			return printJSON(res)
		}

		fmt.Printf("Imported %d reels.\n", res.Imported)
		if len(res.Skipped) > 0 {
			fmt.Printf("Skipped %d rows:\n", len(res.Skipped))
			for _, s := range res.Skipped {
				fmt.Printf("  %v\n", s)
			}
		}
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored reels, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, userID, err := openUserDB()
		if err != nil {
			return err
		}
		defer db.Close()

		reels, err := db.GetUserReels(userID)
		if err != nil {
			return err
		}
		if jsonOut {
			return printJSON(reels)
		}
		output.New(os.Stdout).Reels(reels)
		return nil
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove [id]",
	Short: "Delete a stored reel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseReelID(args[0])
		if err != nil {
			return err
		}
		db, userID, err := openUserDB()
		if err != nil {
			return err
		}
		defer db.Close()

		deleted, err := db.DeleteReel(userID, id)
		if err != nil {
			return err
		}
		if !deleted {
			return fmt.Errorf("reel %d not found", id)
		}
		fmt.Printf("Removed reel [%d]\n", id)
		return nil
	},
}

var reportCmd = &cobra.Command{
	Use:   "report [id]",
	Short: "Generate and store an AI diagnostic report for a reel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseReelID(args[0])
		if err != nil {
			return err
		}
		db, userID, err := openUserDB()
		if err != nil {
			return err
		}
		defer db.Close()

		r, err := db.GetReel(userID, id)
		if err != nil {
			return err
		}
		if r == nil {
			return fmt.Errorf("reel %d not found", id)
		}

		res := diagnostic.Run(diagnostic.InputFromReel(*r))
		text := coach.GenerateReport(context.Background(), newProvider(), res)
		if coach.IsError(text) {
			return fmt.Errorf("generating report: %s", text)
		}
		if err := db.UpdateAIReport(userID, id, text); err != nil {
			return fmt.Errorf("storing report: %w", err)
		}
		if jsonOut {
			return printJSON(map[string]string{"ai_report": text})
		}
		output.New(os.Stdout).Text("AI Report", text)
		return nil
	},
}

func init() {
	addReelFlags(scoreCmd)
	addReelFlags(addCmd)
	addCmd.Flags().BoolVar(&addAI, "ai", false, "Also generate an AI diagnostic report")

	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(reportCmd)
}

func parseReelID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid reel ID: %s", raw)
	}
	return id, nil
}

func newProviderIf(enabled bool) llm.Provider {
	if !enabled {
		return nil
	}
	return newProvider()
}
