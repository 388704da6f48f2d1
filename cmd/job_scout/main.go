// Package main provides the job_scout command-line interface.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "job_scout",
	Short: "Job Scout turns a free-text profile into per-role job postings",
	Long: "Job Scout parses a free-text job-search profile, asks for the missing details, " +
		"expands the desired role into related role keywords and collects postings for each of them.",
	SilenceUsage: true,
}

var (
	configPath   string
	verbose      bool
	apiKeyFlag   string
	traceEnabled bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "LLM API key (overrides OPENAI_API_KEY / GEMINI_API_KEY)")
	rootCmd.PersistentFlags().BoolVar(&traceEnabled, "trace", false, "Print OpenTelemetry spans to stderr")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
