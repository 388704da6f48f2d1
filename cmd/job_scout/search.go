package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-scout/internal/db"
	"github.com/jonathan/job-scout/internal/observability"
	"github.com/jonathan/job-scout/internal/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Interactively resolve a profile and collect postings per role",
	Long: "Parse a free-text job-search profile, ask for the missing required details, " +
		"expand the role into related role keywords and crawl postings for each keyword.",
	RunE: runSearch,
}

var (
	searchText        string
	searchPerRole     int
	searchJSON        bool
	searchStatic      bool
	searchConcurrency int
	searchSave        bool
	searchOptional    int
	searchSeedFile    string
)

func init() {
	searchCmd.Flags().StringVarP(&searchText, "text", "t", "", "Profile text (prompted for when empty)")
	searchCmd.Flags().IntVarP(&searchPerRole, "per-role", "k", 0, "Postings per role keyword (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Print the outcome as JSON")
	searchCmd.Flags().BoolVar(&searchStatic, "static", false, "Fetch pages over plain HTTP instead of headless Chrome")
	searchCmd.Flags().IntVar(&searchConcurrency, "concurrency", 0, "Role keywords crawled at once (default from config)")
	searchCmd.Flags().BoolVar(&searchSave, "save", false, "Record the run in PostgreSQL (requires DATABASE_URL)")
	searchCmd.Flags().StringVar(&searchSeedFile, "seed", "", "Spec JSON file the parsed profile is merged onto")
	searchCmd.Flags().IntVar(&searchOptional, "optional", -1, "Optional questions to ask after the required ones (default from config)")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	var seed *types.Spec
	if searchSeedFile != "" {
		spec, err := loadSpecFile(searchSeedFile)
		if err != nil {
			return err
		}
		seed = &spec
	}

	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	in := bufio.NewReader(os.Stdin)
	text, err := profileText(ctx, searchText, in, os.Stderr)
	if err != nil {
		return err
	}

	gateway := a.gateway()
	defer func() { _ = gateway.Close() }()

	optional := a.cfg.OptionalQuestions
	if searchOptional >= 0 {
		optional = searchOptional
	}

	// Questions go to stderr so that --json output on stdout stays clean.
	p := &searchPipeline{
		completer:         gateway,
		crawler:           a.crawler(searchStatic, searchConcurrency),
		asker:             newPromptAsker(in, os.Stderr),
		logger:            a.logger,
		optionalQuestions: optional,
		perRole:           a.perRole(searchPerRole),
		seed:              seed,
	}

	if !searchJSON {
		printer := observability.NewPrinter(os.Stdout)
		p.onSpec = printer.PrintSpec
		p.onFilters = func(filters types.AppliedFilters, query string) {
			printer.PrintFilters(filters)
			printer.PrintQuery(query)
		}
	}

	if searchSave {
		if a.cfg.DatabaseURL == "" {
			return fmt.Errorf("--save requires a database URL (set DATABASE_URL or database_url in config)")
		}
		database, err := db.Connect(ctx, a.cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()
		if err := database.Migrate(ctx); err != nil {
			return err
		}
		p.store = database
	}

	outcome, err := p.run(ctx, text)
	if err != nil {
		return err
	}

	if searchJSON {
		return writeJSON(os.Stdout, outcome)
	}
	observability.NewPrinter(os.Stdout).PrintResults(outcome.Results)
	if outcome.RunID != nil {
		_, _ = fmt.Fprintf(os.Stdout, "Saved run %s\n", *outcome.RunID)
	}
	return nil
}
