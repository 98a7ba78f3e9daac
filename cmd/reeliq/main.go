package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/TobiSchelling/ReelIQ/internal/config"
	"github.com/TobiSchelling/ReelIQ/internal/database"
	"github.com/TobiSchelling/ReelIQ/internal/llm"
	"github.com/TobiSchelling/ReelIQ/internal/output"
	"github.com/TobiSchelling/ReelIQ/internal/server"
)

var version = "dev"

var (
	verbose    bool
	jsonOut    bool
	configPath string
	userFlag   string
	cfg        *config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "reeliq",
	Short:   "Reel performance scoring and benchmarking",
	Long:    "ReelIQ diagnoses published reels, predicts planned ones and tracks a creator's history against their own and industry benchmarks.",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetFlags(log.LstdFlags | log.Lshortfile)
		} else {
			log.SetFlags(log.LstdFlags)
		}

		// Skip config loading for init and version
		if cmd.Name() == "init" || cmd.Name() == "version" {
			return nil
		}

		path, err := config.ResolveConfigPath(configPath)
		if err != nil {
			return err
		}
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if userFlag != "" {
			cfg.User.ID = userFlag
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Print results as JSON")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	rootCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "", "User id (overrides user.id from config)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(serveCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("reeliq", version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration in ~/.config/reeliq/",
	RunE: func(cmd *cobra.Command, args []string) error {
		target := configPath
		if target == "" {
			target = filepath.Join(config.ConfigDir(), "config.yaml")
		}
		if _, err := os.Stat(target); err == nil {
			fmt.Printf("Config already exists: %s\n", target)
			return nil
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		data, id := config.InitialConfig()
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Printf("Created config: %s\n", target)
		fmt.Printf("Your user id: %s\n", id)
		fmt.Println("Edit it to configure the text generation provider and your email.")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show database and provider status",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, userID, err := openUserDB()
		if err != nil {
			return err
		}
		defer db.Close()

		stats, err := db.GetStats(userID)
		if err != nil {
			return fmt.Errorf("getting stats: %w", err)
		}
		if jsonOut {
			return printJSON(stats)
		}

		output.New(os.Stdout).Stats(stats, db.Path())
		g := cfg.Generation
		fmt.Println("\nText generation:")
		fmt.Printf("  Provider: %s (%s)\n", g.Provider, g.Model)
		fmt.Printf("  OpenAI fallback: %s via $%s\n", g.OpenAIModel, g.APIKeyEnv)
		return nil
	},
}

// --- serve command ---

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, userID, err := openUserDB()
		if err != nil {
			return err
		}
		defer db.Close()

		port := cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port = servePort
		}

		fmt.Printf("Starting server at http://localhost:%d\n", port)
		fmt.Println("Press Ctrl+C to stop")
		return server.Serve(db, server.Options{
			UserID:   userID,
			Email:    cfg.User.Email,
			Provider: newProvider(),
			Workers:  cfg.Import.Workers,
		}, port)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8000, "Port to run server on")
}

func openDB() (*database.DB, error) {
	return database.Open(cfg.DBPath())
}

// openUserDB opens the database and resolves the active user id.
func openUserDB() (*database.DB, string, error) {
	userID, err := cfg.UserID()
	if err != nil {
		return nil, "", err
	}
	db, err := openDB()
	if err != nil {
		return nil, "", err
	}
	return db, userID, nil
}

// newProvider returns the configured text generation backend, or nil.
func newProvider() llm.Provider {
	g := cfg.Generation
	p := llm.CreateProvider(g.Provider, g.Model, g.OllamaURL, g.OpenAIModel, g.APIKeyEnv)
	return llm.WithTokenCap(p, g.MaxTokens)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
