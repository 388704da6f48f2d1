package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jonathan/job-scout/internal/db"
	"github.com/jonathan/job-scout/internal/dialogue"
	"github.com/jonathan/job-scout/internal/llm"
	"github.com/jonathan/job-scout/internal/mapping"
	"github.com/jonathan/job-scout/internal/types"
)

// roleCrawler is the part of *crawling.Crawler the pipeline needs.
type roleCrawler interface {
	CrawlByRoles(ctx context.Context, roleKeywords []string, perRoleLimit int) (*types.RoleResultSet, error)
}

// runStore is the part of *db.DB used to record a search.
type runStore interface {
	CreateCrawlRun(ctx context.Context, input db.CrawlRunInput) (uuid.UUID, error)
	SaveRolePostings(ctx context.Context, runID uuid.UUID, results *types.RoleResultSet) (int, error)
	CompleteCrawlRun(ctx context.Context, runID uuid.UUID, status, errMsg string) error
}

// searchOutcome is everything one search produced. It is also the --json output.
type searchOutcome struct {
	RunID   *uuid.UUID           `json:"run_id,omitempty"`
	Spec    types.Spec           `json:"spec"`
	Filters types.AppliedFilters `json:"filters"`
	Query   string               `json:"query"`
	Results *types.RoleResultSet `json:"results"`
}

// searchPipeline runs text → Spec → dialogue → role expansion → crawl.
type searchPipeline struct {
	completer llm.Completer
	crawler   roleCrawler
	asker     dialogue.Asker
	store     runStore // nil disables persistence
	logger    *slog.Logger
	seed      *types.Spec

	optionalQuestions int
	perRole           int

	// onSpec and onFilters are called as soon as each stage finishes.
	onSpec    func(types.Spec)
	onFilters func(types.AppliedFilters, string)
}

func (p *searchPipeline) run(ctx context.Context, text string) (*searchOutcome, error) {
	session := &dialogue.Session{
		Completer:     p.completer,
		Engine:        dialogue.NewEngine(p.completer, p.logger),
		Asker:         p.asker,
		OptionalLimit: p.optionalQuestions,
		Seed:          p.seed,
	}
	spec, err := session.Run(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve profile: %w", err)
	}
	if p.onSpec != nil {
		p.onSpec(spec)
	}

	filters, err := mapping.NewMapper(p.completer, p.logger).MapFilters(ctx, spec)
	if err != nil {
		return nil, fmt.Errorf("failed to expand role: %w", err)
	}
	query := mapping.BuildQueryText(spec, &filters)
	if p.onFilters != nil {
		p.onFilters(filters, query)
	}

	out := &searchOutcome{Spec: spec, Filters: filters, Query: query}

	roles := filters.ExpandedRoles
	if len(roles) == 0 && filters.Duty != "" {
		roles = []string{filters.Duty}
	}

	if p.store == nil {
		out.Results, err = p.crawler.CrawlByRoles(ctx, roles, p.perRole)
		if err != nil {
			return nil, fmt.Errorf("failed to crawl postings: %w", err)
		}
		return out, nil
	}

	runID, err := p.store.CreateCrawlRun(ctx, db.CrawlRunInput{
		ProfileText:  text,
		Spec:         spec,
		Filters:      filters,
		RoleKeywords: roles,
		PerRole:      p.perRole,
	})
	if err != nil {
		return nil, err
	}
	out.RunID = &runID

	out.Results, err = p.crawler.CrawlByRoles(ctx, roles, p.perRole)
	if err != nil {
		p.finish(runID, db.RunStatusFailed, err.Error())
		return nil, fmt.Errorf("failed to crawl postings: %w", err)
	}
	saved, err := p.store.SaveRolePostings(ctx, runID, out.Results)
	if err != nil {
		p.finish(runID, db.RunStatusFailed, err.Error())
		return nil, err
	}
	p.logger.Debug("saved postings", "run_id", runID, "count", saved)
	p.finish(runID, db.RunStatusCompleted, "")
	return out, nil
}

// finish records the final status without the request context, which may
// already be cancelled.
func (p *searchPipeline) finish(runID uuid.UUID, status, errMsg string) {
	if err := p.store.CompleteCrawlRun(context.Background(), runID, status, errMsg); err != nil {
		p.logger.Warn("failed to record run status", "run_id", runID, "status", status, "error", err)
	}
}
