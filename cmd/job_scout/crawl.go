package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-scout/internal/observability"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl [role...]",
	Short: "Collect postings for the given role keywords",
	Long:  "Search the job site once per role keyword and resolve the title of the first postings of each. Roles come from --role flags and positional arguments.",
	RunE:  runCrawl,
}

var (
	crawlRoles       []string
	crawlPerRole     int
	crawlJSON        bool
	crawlStatic      bool
	crawlConcurrency int
)

func init() {
	crawlCmd.Flags().StringArrayVarP(&crawlRoles, "role", "r", nil, "Role keyword to search (repeatable)")
	crawlCmd.Flags().IntVarP(&crawlPerRole, "per-role", "k", 0, "Postings per role keyword (default from config)")
	crawlCmd.Flags().BoolVar(&crawlJSON, "json", false, "Print results as JSON")
	crawlCmd.Flags().BoolVar(&crawlStatic, "static", false, "Fetch pages over plain HTTP instead of headless Chrome")
	crawlCmd.Flags().IntVar(&crawlConcurrency, "concurrency", 0, "Role keywords crawled at once (default from config)")

	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, args []string) error {
	roles := append(append([]string{}, crawlRoles...), args...)
	if len(roles) == 0 {
		return fmt.Errorf("at least one role keyword is required (use --role or arguments)")
	}

	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	results, err := a.crawler(crawlStatic, crawlConcurrency).CrawlByRoles(cmd.Context(), roles, a.perRole(crawlPerRole))
	if err != nil {
		return err
	}

	if crawlJSON {
		return writeJSON(os.Stdout, results)
	}
	observability.NewPrinter(os.Stdout).PrintResults(results)
	return nil
}
