package crawling

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-scout/internal/fetch"
	"github.com/jonathan/job-scout/internal/ratelimit"
	"github.com/jonathan/job-scout/internal/types"
)

const tracerName = "github.com/jonathan/job-scout/internal/crawling"

const (
	// DefaultSearchTimeout bounds navigation to a search results page
	DefaultSearchTimeout = 60 * time.Second
	// DefaultDetailTimeout bounds everything done on one posting detail page
	DefaultDetailTimeout = 45 * time.Second
	// DefaultPerRoleLimit is used when CrawlByRoles is given a non-positive limit
	DefaultPerRoleLimit = 2
	// DefaultRate is the steady-state navigations per second
	DefaultRate = 1.0
	// DefaultBurst is the token bucket capacity
	DefaultBurst = 2
	// DefaultJitterBase is the politeness delay before each detail page
	DefaultJitterBase = 600 * time.Millisecond
	// DefaultJitterRatio is how far the politeness delay may deviate from its base
	DefaultJitterRatio = 0.4
)

// Limiter gates every navigation. *ratelimit.TokenBucket satisfies it.
type Limiter interface {
	Acquire(ctx context.Context) error
}

// limiterStatus is implemented by limiters that can report their balance.
type limiterStatus interface {
	Status() (remaining int, fullAt time.Time)
}

// Options configures a Crawler.
type Options struct {
	BaseURL       string
	SearchTimeout time.Duration
	DetailTimeout time.Duration
	Limiter       Limiter
	Jitter        ratelimit.Jitter
	// Concurrency above 1 crawls that many keywords at once, one page session
	// per worker, all sharing Limiter.
	Concurrency int
	Logger      *slog.Logger
}

// DefaultOptions returns the polite single-session defaults.
func DefaultOptions() Options {
	return Options{
		BaseURL:       DefaultBaseURL,
		SearchTimeout: DefaultSearchTimeout,
		DetailTimeout: DefaultDetailTimeout,
		Limiter:       ratelimit.NewTokenBucket(DefaultBurst, DefaultRate),
		Jitter:        ratelimit.Jitter{Base: DefaultJitterBase, Ratio: DefaultJitterRatio},
		Concurrency:   1,
	}
}

// Crawler resolves postings per role keyword.
type Crawler struct {
	factory fetch.SessionFactory
	site    Site
	opts    Options
	logger  *slog.Logger
}

// New creates a crawler that opens page sessions from factory.
// Zero-valued options fall back to DefaultOptions.
func New(factory fetch.SessionFactory, opts Options) *Crawler {
	defaults := DefaultOptions()
	if opts.SearchTimeout <= 0 {
		opts.SearchTimeout = defaults.SearchTimeout
	}
	if opts.DetailTimeout <= 0 {
		opts.DetailTimeout = defaults.DetailTimeout
	}
	if opts.Limiter == nil {
		opts.Limiter = defaults.Limiter
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Crawler{
		factory: factory,
		site:    NewSite(opts.BaseURL),
		opts:    opts,
		logger:  logger,
	}
}

// CrawlByRoles searches each distinct keyword and collects up to
// perRoleLimit postings for it. Keywords are trimmed, blanks dropped and
// exact duplicates collapsed, keeping first-seen order; the result holds one
// entry per remaining keyword, possibly empty.
//
// Navigation and extraction failures are absorbed per keyword or per
// posting. Only a session that fails to open or a cancelled ctx is returned
// as an error.
func (c *Crawler) CrawlByRoles(ctx context.Context, roleKeywords []string, perRoleLimit int) (*types.RoleResultSet, error) {
	roles := uniqueKeywords(roleKeywords)
	result := types.NewRoleResultSet()
	if len(roles) == 0 {
		return result, nil
	}
	if perRoleLimit <= 0 {
		perRoleLimit = DefaultPerRoleLimit
	}

	postings := make([][]types.PostingDoc, len(roles))

	var err error
	if c.opts.Concurrency > 1 && len(roles) > 1 {
		err = c.crawlParallel(ctx, roles, perRoleLimit, postings)
	} else {
		err = c.crawlSequential(ctx, roles, perRoleLimit, postings)
	}
	if err != nil {
		return nil, err
	}

	for i, role := range roles {
		result.Set(role, postings[i])
	}
	if st, ok := c.opts.Limiter.(limiterStatus); ok {
		remaining, fullAt := st.Status()
		c.logger.Debug("rate limiter after crawl", "remaining", remaining, "full_at", fullAt)
	}
	return result, nil
}

func (c *Crawler) crawlSequential(ctx context.Context, roles []string, limit int, out [][]types.PostingDoc) error {
	page, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer c.release(page)

	for i, role := range roles {
		docs, err := c.crawlRole(ctx, page, role, limit)
		if err != nil {
			return err
		}
		out[i] = docs
	}
	return nil
}

func (c *Crawler) crawlParallel(ctx context.Context, roles []string, limit int, out [][]types.PostingDoc) error {
	workers := min(c.opts.Concurrency, len(roles))
	g, gctx := errgroup.WithContext(ctx)
	jobs := make(chan int)

	g.Go(func() error {
		defer close(jobs)
		for i := range roles {
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			page, err := c.open(gctx)
			if err != nil {
				return err
			}
			defer c.release(page)

			for i := range jobs {
				docs, err := c.crawlRole(gctx, page, roles[i], limit)
				if err != nil {
					return err
				}
				out[i] = docs
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	return nil
}

func (c *Crawler) open(ctx context.Context) (fetch.Page, error) {
	page, err := c.factory.Open(ctx)
	if err != nil {
		return nil, &CrawlError{Message: "failed to open page session", Cause: err}
	}
	return page, nil
}

func (c *Crawler) release(page fetch.Page) {
	if err := page.Close(); err != nil {
		c.logger.Warn("closing page session failed", "error", err)
	}
}

// crawlRole searches one keyword and resolves titles for its postings.
// The returned error is non-nil only when ctx is done.
func (c *Crawler) crawlRole(ctx context.Context, page fetch.Page, role string, limit int) ([]types.PostingDoc, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "crawl.role")
	defer span.End()
	span.SetAttributes(attribute.String("role", role), attribute.Int("limit", limit))

	urls, err := c.searchRole(ctx, page, role, limit)
	if err != nil {
		return nil, err
	}

	docs := make([]types.PostingDoc, 0, len(urls))
	untitled := 0
	for _, url := range urls {
		title, err := c.postingTitle(ctx, page, url)
		if err != nil {
			return nil, err
		}
		if title == "" {
			title = types.NoTitle
			untitled++
		}
		docs = append(docs, types.PostingDoc{
			ID:    PostingID(url),
			Title: title,
			URL:   url,
		})
	}

	span.SetAttributes(attribute.Int("postings", len(docs)), attribute.Int("untitled", untitled))
	c.logger.Debug("role crawled", "role", role, "postings", len(docs), "untitled", untitled)
	return docs, nil
}

// noteFailure records an absorbed failure as an event on the current span.
func noteFailure(ctx context.Context, event string, err error) {
	trace.SpanFromContext(ctx).AddEvent(event, trace.WithAttributes(attribute.String("error", err.Error())))
}

func (c *Crawler) searchRole(ctx context.Context, page fetch.Page, role string, limit int) ([]string, error) {
	if err := c.acquire(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Warn("rate limiter refused search", "role", role, "error", err)
		return nil, nil
	}

	searchURL := c.site.SearchURL(role)
	searchCtx, cancel := context.WithTimeout(ctx, c.opts.SearchTimeout)
	defer cancel()

	if err := page.Goto(searchCtx, searchURL); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Warn("search navigation failed", "role", role, "url", searchURL, "timeout", fetch.IsTimeout(err), "error", err)
		noteFailure(ctx, "search.navigation_failed", err)
		return nil, nil
	}

	html, err := page.Content(searchCtx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		c.logger.Warn("reading search results failed", "role", role, "error", err)
		noteFailure(ctx, "search.content_failed", err)
		return nil, nil
	}

	urls, err := ExtractPostingLinks(html, c.site.Base, limit)
	if err != nil {
		c.logger.Warn("extracting posting links failed", "role", role, "error", err)
		return nil, nil
	}
	return urls, nil
}

// postingTitle waits its turn with the limiter and the politeness delay, then
// resolves the title. An empty title with a nil error means unresolved.
func (c *Crawler) postingTitle(ctx context.Context, page fetch.Page, url string) (string, error) {
	if err := c.acquire(ctx); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		c.logger.Warn("rate limiter refused detail page", "url", url, "error", err)
		return "", nil
	}
	if err := c.opts.Jitter.Sleep(ctx); err != nil {
		return "", err
	}

	title := c.resolveTitle(ctx, page, url)
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	return title, nil
}

func (c *Crawler) acquire(ctx context.Context) error {
	err := c.opts.Limiter.Acquire(ctx)
	var tooLong *ratelimit.WaitTooLongError
	if errors.As(err, &tooLong) {
		c.logger.Debug("limiter wait exceeds bound", "wait", tooLong.Wait, "max_wait", tooLong.MaxWait)
	}
	return err
}

// uniqueKeywords trims, drops blanks and collapses exact duplicates.
func uniqueKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		k = strings.TrimSpace(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
