package main

import (
	"bufio"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-scout/internal/dialogue"
	"github.com/jonathan/job-scout/internal/parsing"
	"github.com/jonathan/job-scout/internal/types"
)

var parseSpecCmd = &cobra.Command{
	Use:   "parse-spec",
	Short: "Parse free-text profile into Spec JSON",
	Long:  "Parse a free-text job-search profile into a structured Spec and print it as JSON. With --ask, missing required fields are asked for first.",
	RunE:  runParseSpec,
}

var (
	parseSpecText string
	parseSpecAsk  bool
)

func init() {
	parseSpecCmd.Flags().StringVarP(&parseSpecText, "text", "t", "", "Profile text (prompted for when empty)")
	parseSpecCmd.Flags().BoolVar(&parseSpecAsk, "ask", false, "Ask for missing required fields before printing")

	rootCmd.AddCommand(parseSpecCmd)
}

func runParseSpec(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	in := bufio.NewReader(os.Stdin)
	text, err := profileText(ctx, parseSpecText, in, os.Stderr)
	if err != nil {
		return err
	}

	gateway := a.gateway()
	defer func() { _ = gateway.Close() }()

	var spec types.Spec
	if parseSpecAsk {
		session := &dialogue.Session{
			Completer: gateway,
			Engine:    dialogue.NewEngine(gateway, a.logger),
			Asker:     newPromptAsker(in, os.Stderr),
		}
		spec, err = session.Run(ctx, text)
	} else {
		spec, err = parsing.ParseSpec(ctx, gateway, text)
	}
	if err != nil {
		return err
	}
	return writeJSON(os.Stdout, spec)
}
