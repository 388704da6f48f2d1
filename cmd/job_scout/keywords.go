package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-scout/internal/llm"
	"github.com/jonathan/job-scout/internal/mapping"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Extract role, skill and domain keywords from a project description",
	Long:  "Extract search keywords from a free-text project description, either with the LLM or offline from built-in lexicons.",
	RunE:  runKeywords,
}

var (
	keywordsText   string
	keywordsSource string
)

func init() {
	keywordsCmd.Flags().StringVarP(&keywordsText, "text", "t", "", "Project description")
	keywordsCmd.Flags().StringVar(&keywordsSource, "source", string(mapping.KeywordSourceLLM), "Extraction source: llm or local")

	if err := keywordsCmd.MarkFlagRequired("text"); err != nil {
		panic(fmt.Sprintf("failed to mark text flag as required: %v", err))
	}

	rootCmd.AddCommand(keywordsCmd)
}

func runKeywords(cmd *cobra.Command, _ []string) error {
	source := mapping.KeywordSource(strings.ToLower(keywordsSource))
	if source != mapping.KeywordSourceLLM && source != mapping.KeywordSourceLocal {
		return fmt.Errorf("invalid --source %q (expected llm or local)", keywordsSource)
	}

	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	var completer llm.Completer
	if source == mapping.KeywordSourceLLM {
		gateway := a.gateway()
		defer func() { _ = gateway.Close() }()
		completer = gateway
	}

	keywords, err := mapping.NewMapper(completer, a.logger).ExtractProjectKeywords(cmd.Context(), keywordsText, source)
	if err != nil {
		return err
	}
	return writeJSON(os.Stdout, keywords)
}
