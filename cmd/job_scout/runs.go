package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-scout/internal/db"
	"github.com/jonathan/job-scout/internal/observability"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect searches saved with --save",
}

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent saved runs",
	Args:  cobra.NoArgs,
	RunE:  runRunsList,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Print the postings stored for a run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

var runsDeleteCmd = &cobra.Command{
	Use:   "delete <run-id>",
	Short: "Delete a run and its postings",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsDelete,
}

var (
	runsLimit int
	runsJSON  bool
)

func init() {
	runsListCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "Number of runs to list")
	runsListCmd.Flags().BoolVar(&runsJSON, "json", false, "Print runs as JSON")
	runsShowCmd.Flags().BoolVar(&runsJSON, "json", false, "Print results as JSON")

	runsCmd.AddCommand(runsListCmd, runsShowCmd, runsDeleteCmd)
	rootCmd.AddCommand(runsCmd)
}

// withDatabase connects using the configured URL and runs fn.
func withDatabase(ctx context.Context, fn func(*db.DB) error) error {
	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	if a.cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL is required (set DATABASE_URL or database_url in config)")
	}
	database, err := db.Connect(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()
	if err := database.Migrate(ctx); err != nil {
		return err
	}
	return fn(database)
}

func runRunsList(cmd *cobra.Command, _ []string) error {
	return withDatabase(cmd.Context(), func(database *db.DB) error {
		runs, err := database.ListCrawlRuns(cmd.Context(), runsLimit)
		if err != nil {
			return err
		}
		if runsJSON {
			return writeJSON(os.Stdout, runs)
		}
		return printRuns(runs)
	})
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	runID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid run ID: %w", err)
	}

	return withDatabase(cmd.Context(), func(database *db.DB) error {
		run, err := database.GetCrawlRun(cmd.Context(), runID)
		if err != nil {
			return err
		}
		if run == nil {
			return fmt.Errorf("run %s not found", runID)
		}
		results, err := database.LoadResultSet(cmd.Context(), runID)
		if err != nil {
			return err
		}

		if runsJSON {
			return writeJSON(os.Stdout, struct {
				Run     *db.CrawlRun `json:"run"`
				Results any          `json:"results"`
			}{run, results})
		}
		_, _ = fmt.Fprintf(os.Stdout, "Run %s (%s) %s\n", run.ID, run.Status, run.CreatedAt.Format("2006-01-02 15:04"))
		observability.NewPrinter(os.Stdout).PrintResults(results)
		return nil
	})
}

func runRunsDelete(cmd *cobra.Command, args []string) error {
	runID, err := uuid.Parse(args[0])
	if err != nil {
		return fmt.Errorf("invalid run ID: %w", err)
	}
	return withDatabase(cmd.Context(), func(database *db.DB) error {
		if err := database.DeleteCrawlRun(cmd.Context(), runID); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(os.Stdout, "Deleted run %s\n", runID)
		return nil
	})
}

func printRuns(runs []db.CrawlRun) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tSTATUS\tCREATED\tROLES")
	for _, run := range runs {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", run.ID, run.Status, run.CreatedAt.Format("2006-01-02 15:04"), len(run.RoleKeywords))
	}
	return w.Flush()
}
