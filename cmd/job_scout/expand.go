package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-scout/internal/mapping"
	"github.com/jonathan/job-scout/internal/observability"
	"github.com/jonathan/job-scout/internal/schemas"
	"github.com/jonathan/job-scout/internal/types"
)

var expandCmd = &cobra.Command{
	Use:   "expand",
	Short: "Map a Spec JSON file onto filters and role keywords",
	Long:  "Validate a Spec JSON file against the Spec schema, map it onto filter labels and expand the role into related role keywords.",
	RunE:  runExpand,
}

var (
	expandSpecFile string
	expandJSON     bool
)

func init() {
	expandCmd.Flags().StringVarP(&expandSpecFile, "spec", "s", "", "Path to Spec JSON file")
	expandCmd.Flags().BoolVar(&expandJSON, "json", false, "Print filters and query as JSON")

	if err := expandCmd.MarkFlagRequired("spec"); err != nil {
		panic(fmt.Sprintf("failed to mark spec flag as required: %v", err))
	}

	rootCmd.AddCommand(expandCmd)
}

func runExpand(cmd *cobra.Command, _ []string) error {
	spec, err := loadSpecFile(expandSpecFile)
	if err != nil {
		return err
	}

	a, err := setup()
	if err != nil {
		return err
	}
	defer a.Close()

	gateway := a.gateway()
	defer func() { _ = gateway.Close() }()

	filters, err := mapping.NewMapper(gateway, a.logger).MapFilters(cmd.Context(), spec)
	if err != nil {
		return err
	}
	query := mapping.BuildQueryText(spec, &filters)

	if expandJSON {
		return writeJSON(os.Stdout, struct {
			Filters types.AppliedFilters `json:"filters"`
			Query   string               `json:"query"`
		}{filters, query})
	}
	printer := observability.NewPrinter(os.Stdout)
	printer.PrintFilters(filters)
	printer.PrintQuery(query)
	return nil
}

// loadSpecFile validates path against the Spec schema and decodes it.
// A schema that cannot be loaded only warns; a document that fails it is rejected.
func loadSpecFile(path string) (types.Spec, error) {
	if err := schemas.ValidateFile(schemas.Spec, path); err != nil {
		var validationErr *schemas.ValidationError
		var schemaLoadErr *schemas.SchemaLoadError
		if errors.As(err, &validationErr) {
			return types.Spec{}, fmt.Errorf("spec file %s is invalid: %w", path, err)
		} else if errors.As(err, &schemaLoadErr) {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Could not validate spec (schema loading failed): %v\n", err)
		} else {
			return types.Spec{}, fmt.Errorf("failed to read spec file: %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.Spec{}, fmt.Errorf("failed to read spec file: %w", err)
	}
	var spec types.Spec
	if err := json.Unmarshal(data, &spec); err != nil {
		return types.Spec{}, fmt.Errorf("failed to parse spec file: %w", err)
	}
	return spec, nil
}
