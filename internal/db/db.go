// Package db provides PostgreSQL storage for crawl runs and their postings.
package db

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jonathan/job-scout/internal/types"
)

//go:embed migrations/001_crawl_runs.sql
var schemaSQL string

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the crawl tables if they do not exist
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// CreateCrawlRun records the start of a run and returns its ID
func (db *DB) CreateCrawlRun(ctx context.Context, input CrawlRunInput) (uuid.UUID, error) {
	specJSON, err := marshalOptional(input.Spec)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal spec: %w", err)
	}
	filtersJSON, err := marshalOptional(input.Filters)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal filters: %w", err)
	}
	keywords := input.RoleKeywords
	if keywords == nil {
		keywords = []string{}
	}

	id := uuid.New()
	_, err = db.pool.Exec(ctx,
		`INSERT INTO crawl_runs (id, profile_text, spec, filters, role_keywords, per_role, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, input.ProfileText, specJSON, filtersJSON, keywords, input.PerRole, RunStatusRunning,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create crawl run: %w", err)
	}
	return id, nil
}

// CompleteCrawlRun sets the final status of a run. A non-empty errMsg is stored.
func (db *DB) CompleteCrawlRun(ctx context.Context, runID uuid.UUID, status, errMsg string) error {
	var msg *string
	if errMsg != "" {
		msg = &errMsg
	}
	tag, err := db.pool.Exec(ctx,
		`UPDATE crawl_runs SET status = $1, error_message = $2, completed_at = NOW() WHERE id = $3`,
		status, msg, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete crawl run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("crawl run %s not found", runID)
	}
	return nil
}

// SaveRolePostings stores every posting of results under runID in one transaction.
// Re-saving the same posting for a role is a no-op.
func (db *DB) SaveRolePostings(ctx context.Context, runID uuid.UUID, results *types.RoleResultSet) (int, error) {
	rows := postingRows(runID, results)
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	batch := &pgx.Batch{}
	for _, p := range rows {
		batch.Queue(
			`INSERT INTO crawl_postings (id, run_id, role, role_index, position, posting_id, title, url)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			 ON CONFLICT (run_id, role, posting_id) DO NOTHING`,
			p.ID, p.RunID, p.Role, p.RoleIndex, p.Position, p.PostingID, p.Title, p.URL,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return 0, fmt.Errorf("failed to save postings: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit postings: %w", err)
	}
	return len(rows), nil
}

// GetCrawlRun retrieves a run by ID. Returns nil, nil when it does not exist.
func (db *DB) GetCrawlRun(ctx context.Context, runID uuid.UUID) (*CrawlRun, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT id, profile_text, spec, filters, role_keywords, per_role, status,
		        error_message, created_at, completed_at
		 FROM crawl_runs WHERE id = $1`,
		runID,
	)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get crawl run: %w", err)
	}
	return run, nil
}

// ListCrawlRuns returns the most recent runs, newest first
func (db *DB) ListCrawlRuns(ctx context.Context, limit int) ([]CrawlRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, profile_text, spec, filters, role_keywords, per_role, status,
		        error_message, created_at, completed_at
		 FROM crawl_runs ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list crawl runs: %w", err)
	}
	defer rows.Close()

	runs := make([]CrawlRun, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan crawl run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// LoadResultSet rebuilds the role-to-postings mapping stored for a run,
// in the original role and discovery order. Every role keyword of the run is
// present, including roles whose crawl found nothing.
func (db *DB) LoadResultSet(ctx context.Context, runID uuid.UUID) (*types.RoleResultSet, error) {
	var keywords []string
	err := db.pool.QueryRow(ctx,
		`SELECT role_keywords FROM crawl_runs WHERE id = $1`, runID,
	).Scan(&keywords)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to load role keywords: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT role, posting_id, title, url
		 FROM crawl_postings WHERE run_id = $1
		 ORDER BY role_index, position`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load postings: %w", err)
	}
	defer rows.Close()

	var postings []CrawlPosting
	for rows.Next() {
		var p CrawlPosting
		if err := rows.Scan(&p.Role, &p.PostingID, &p.Title, &p.URL); err != nil {
			return nil, fmt.Errorf("failed to scan posting: %w", err)
		}
		postings = append(postings, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return assembleResultSet(keywords, postings), nil
}

// DeleteCrawlRun removes a run and, by cascade, its postings
func (db *DB) DeleteCrawlRun(ctx context.Context, runID uuid.UUID) error {
	if _, err := db.pool.Exec(ctx, `DELETE FROM crawl_runs WHERE id = $1`, runID); err != nil {
		return fmt.Errorf("failed to delete crawl run: %w", err)
	}
	return nil
}

// postingRows flattens results into insertable rows, numbering roles and
// positions in iteration order.
func postingRows(runID uuid.UUID, results *types.RoleResultSet) []CrawlPosting {
	if results == nil {
		return nil
	}
	var rows []CrawlPosting
	for roleIndex, role := range results.Roles() {
		for position, doc := range results.Postings(role) {
			rows = append(rows, CrawlPosting{
				ID:        uuid.New(),
				RunID:     runID,
				Role:      role,
				RoleIndex: roleIndex,
				Position:  position,
				PostingID: doc.ID,
				Title:     doc.Title,
				URL:       doc.URL,
			})
		}
	}
	return rows
}

// assembleResultSet seeds one empty entry per role keyword, then fills in
// postings. Roles that only appear in postings follow the keywords.
func assembleResultSet(keywords []string, postings []CrawlPosting) *types.RoleResultSet {
	roles := make([]string, 0, len(keywords))
	byRole := make(map[string][]types.PostingDoc)
	for _, role := range keywords {
		if _, ok := byRole[role]; ok {
			continue
		}
		roles = append(roles, role)
		byRole[role] = []types.PostingDoc{}
	}
	for _, p := range postings {
		if _, ok := byRole[p.Role]; !ok {
			roles = append(roles, p.Role)
		}
		byRole[p.Role] = append(byRole[p.Role], types.PostingDoc{ID: p.PostingID, Title: p.Title, URL: p.URL})
	}

	set := types.NewRoleResultSet()
	for _, role := range roles {
		set.Set(role, byRole[role])
	}
	return set
}

func marshalOptional(v any) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}

func scanRun(row pgx.Row) (*CrawlRun, error) {
	var run CrawlRun
	var specJSON, filtersJSON []byte
	err := row.Scan(&run.ID, &run.ProfileText, &specJSON, &filtersJSON, &run.RoleKeywords,
		&run.PerRole, &run.Status, &run.ErrorMessage, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		return nil, err
	}
	run.Spec = specJSON
	run.Filters = filtersJSON
	return &run, nil
}
