// Package observability provides trace setup and formatted output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/job-scout/internal/dialogue"
	"github.com/jonathan/job-scout/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for interactive mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

var specScalars = []string{
	types.FieldRole,
	types.FieldLocation,
	types.FieldCareerLevel,
	types.FieldEmploymentType,
	types.FieldEducation,
	types.FieldIndustry,
	types.FieldMajor,
}

// PrintSpec outputs the non-empty fields of a resolved Spec.
func (p *Printer) PrintSpec(spec types.Spec) {
	var sb strings.Builder

	for _, field := range specScalars {
		if v := spec.Scalar(field); v != "" {
			sb.WriteString(fmt.Sprintf("%s: %s\n", fieldLabel(field), v))
		}
	}
	if len(spec.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("%s: %s\n", dialogue.FieldLabel(types.FieldSkills), joinLimited(spec.Skills, 8)))
	}
	if len(spec.Keywords) > 0 {
		sb.WriteString(fmt.Sprintf("%s: %s\n", dialogue.FieldLabel(types.FieldKeywords), joinLimited(spec.Keywords, 8)))
	}

	content := strings.TrimSuffix(sb.String(), "\n")
	if content == "" {
		content = "(비어 있음)"
	}
	p.printBox("RESOLVED SPEC", content)
}

// PrintFilters outputs the duty and the role keywords that will be crawled.
func (p *Printer) PrintFilters(applied types.AppliedFilters) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Duty:     %s\n", applied.Duty))
	if applied.Region != "" {
		sb.WriteString(fmt.Sprintf("Region:   %s\n", applied.Region))
	}
	if applied.Career != "" {
		sb.WriteString(fmt.Sprintf("Career:   %s\n", applied.Career))
	}

	if len(applied.ExpandedRoles) > 0 {
		sb.WriteString("\nExpanded roles:\n")
		for _, role := range applied.ExpandedRoles {
			sb.WriteString(fmt.Sprintf("  • %s\n", role))
		}
	}
	if len(applied.ExpandedKeywords) > 0 {
		sb.WriteString(fmt.Sprintf("\nKeywords: %s\n", joinLimited(applied.ExpandedKeywords, maxItemsToShow)))
	}

	p.printBox("ROLE EXPANSION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResults outputs each role keyword with its postings.
func (p *Printer) PrintResults(results *types.RoleResultSet) {
	if results == nil || results.Len() == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d roles, %d postings\n", results.Len(), results.Total()))

	for _, role := range results.Roles() {
		docs := results.Postings(role)
		sb.WriteString(fmt.Sprintf("\n▶ %s (%d)\n", role, len(docs)))
		if len(docs) == 0 {
			sb.WriteString("  (결과 없음)\n")
			continue
		}
		for i, doc := range docs {
			sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, doc.Title))
			sb.WriteString(fmt.Sprintf("     %s\n", doc.URL))
		}
	}

	p.printBox("POSTINGS BY ROLE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQuery outputs the free-text search query built from a Spec.
func (p *Printer) PrintQuery(query string) {
	if query == "" {
		return
	}
	p.printBox("SEARCH QUERY", query)
}

func fieldLabel(field string) string {
	if field == types.FieldRole {
		return "직무"
	}
	return dialogue.FieldLabel(field)
}

func joinLimited(items []string, limit int) string {
	if len(items) <= limit {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s ... and %d more", strings.Join(items[:limit], ", "), len(items)-limit)
}
