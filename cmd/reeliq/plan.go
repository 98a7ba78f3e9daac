package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TobiSchelling/ReelIQ/internal/coach"
	"github.com/TobiSchelling/ReelIQ/internal/output"
	"github.com/TobiSchelling/ReelIQ/internal/patterns"
	"github.com/TobiSchelling/ReelIQ/internal/prescore"
)

var planInput prescore.Input

func addPlanFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&planInput.Category, "category", "", "Planned content category")
	f.StringVar(&planInput.HookType, "hook-type", "", "Planned hook type")
	f.IntVar(&planInput.DurationSeconds, "duration", 30, "Planned length in seconds")
	f.IntVar(&planInput.FollowerCount, "followers", 0, "Follower count")
	f.StringVar(&planInput.Caption, "caption", "", "Planned caption opening")
}

func runPreScore(withTips bool) error {
	res := prescore.Run(planInput)
	tips := ""
	if withTips {
		tips = coach.GenerateTips(context.Background(), newProvider(), res)
	}

	if jsonOut {
		return printJSON(map[string]any{"prescore": res, "tips": tips})
	}
	p := output.New(os.Stdout)
	p.PreScore(res)
	if withTips {
		fmt.Println()
		p.Text("Pre-Production Tips", tips)
	}
	return nil
}

var prescoreTips bool

var prescoreCmd = &cobra.Command{
	Use:   "prescore",
	Short: "Predict how a planned reel will perform",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreScore(prescoreTips)
	},
}

var tipsCmd = &cobra.Command{
	Use:   "tips",
	Short: "Pre-score a planned reel and generate three pre-production tips",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPreScore(true)
	},
}

var (
	briefTopic string
	briefGoal  string
)

var briefCmd = &cobra.Command{
	Use:   "brief",
	Short: "Generate a production brief for the next reel",
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
		brief := coach.GenerateBrief(context.Background(), newProvider(), briefTopic, briefGoal, patterns.Compute(reels))
		if coach.IsError(brief) {
			return fmt.Errorf("generating brief: %s", brief)
		}
		if jsonOut {
			return printJSON(map[string]string{"brief": brief})
		}
		output.New(os.Stdout).Text("Content Brief", brief)
		return nil
	},
}

func init() {
	addPlanFlags(prescoreCmd)
	addPlanFlags(tipsCmd)
	prescoreCmd.Flags().BoolVar(&prescoreTips, "tips", false, "Also generate pre-production tips")

	briefCmd.Flags().StringVar(&briefTopic, "topic", "", "What the reel is about")
	briefCmd.Flags().StringVar(&briefGoal, "goal", "grow followers", "What the reel should achieve")
	briefCmd.MarkFlagRequired("topic")

	rootCmd.AddCommand(prescoreCmd)
	rootCmd.AddCommand(tipsCmd)
	rootCmd.AddCommand(briefCmd)
}
