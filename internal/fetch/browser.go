// Package fetch - browser.go provides a headless Chrome page session.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
)

// DefaultSettleDelay is how long Goto waits after the body is ready so that
// client-side rendering can fill in result lists.
const DefaultSettleDelay = 1500 * time.Millisecond

// BrowserOptions configures the headless browser.
type BrowserOptions struct {
	Headless    bool
	UserAgent   string
	ExecPath    string
	SettleDelay time.Duration
}

// DefaultBrowserOptions returns headless defaults.
func DefaultBrowserOptions() BrowserOptions {
	return BrowserOptions{
		Headless:    true,
		UserAgent:   DefaultUserAgent,
		SettleDelay: DefaultSettleDelay,
	}
}

// BrowserSession is a Page backed by one headless Chrome tab.
// Requires Chrome/Chromium to be installed on the system.
type BrowserSession struct {
	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	settle      time.Duration
	url         string
}

// BrowserFactory returns a SessionFactory that launches one browser per session.
func BrowserFactory(opts BrowserOptions) SessionFactory {
	return SessionFactoryFunc(func(ctx context.Context) (Page, error) {
		return OpenBrowser(ctx, opts)
	})
}

// OpenBrowser launches a browser and opens a blank tab. The browser lives
// until Close or until ctx is cancelled.
func OpenBrowser(ctx context.Context, opts BrowserOptions) (*BrowserSession, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	// The first Run starts the browser; it must see the long-lived tab
	// context, not a per-call timeout.
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, &Error{URL: "about:blank", Message: "failed to start browser", Cause: err}
	}

	return &BrowserSession{
		ctx:         tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
		settle:      opts.SettleDelay,
	}, nil
}

// run executes actions on the tab, bounded by both the tab lifetime and ctx.
func (s *BrowserSession) run(ctx context.Context, message string, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	if deadline, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		runCtx, cancelDeadline = context.WithDeadline(runCtx, deadline)
		defer cancelDeadline()
	}
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		err = context.DeadlineExceeded
	case ctx.Err() != nil:
		err = ctx.Err()
	}
	return &Error{URL: s.url, Message: message, Cause: err}
}

// Goto navigates and waits for the body to be ready plus the settle delay.
func (s *BrowserSession) Goto(ctx context.Context, url string) error {
	s.url = url
	actions := []chromedp.Action{
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	if s.settle > 0 {
		actions = append(actions, chromedp.Sleep(s.settle))
	}
	return s.run(ctx, "navigation failed", actions...)
}

// Title returns document.title.
func (s *BrowserSession) Title(ctx context.Context) (string, error) {
	var title string
	if err := s.run(ctx, "failed to read title", chromedp.Title(&title)); err != nil {
		return "", err
	}
	return title, nil
}

// Content returns the outer HTML of the document element.
func (s *BrowserSession) Content(ctx context.Context) (string, error) {
	var html string
	if err := s.run(ctx, "failed to read markup", chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", err
	}
	return html, nil
}

// Count returns the number of matching nodes without waiting for any to appear.
func (s *BrowserSession) Count(ctx context.Context, selector string) (int, error) {
	var nodes []*cdp.Node
	err := s.run(ctx, fmt.Sprintf("failed to query %q", selector),
		chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)))
	if err != nil {
		return 0, err
	}
	return len(nodes), nil
}

// FirstText returns the visible text of the first matching node.
func (s *BrowserSession) FirstText(ctx context.Context, selector string) (string, error) {
	var nodes []*cdp.Node
	var text string
	err := s.run(ctx, fmt.Sprintf("failed to read text of %q", selector),
		chromedp.Nodes(selector, &nodes, chromedp.ByQuery, chromedp.AtLeast(0)),
		chromedp.ActionFunc(func(ctx context.Context) error {
			if len(nodes) == 0 {
				return nil
			}
			return chromedp.Text([]cdp.NodeID{nodes[0].NodeID}, &text, chromedp.ByNodeID).Do(ctx)
		}),
	)
	if err != nil {
		return "", err
	}
	return CleanText(text), nil
}

// WaitVisible waits until selector is visible or ctx expires.
func (s *BrowserSession) WaitVisible(ctx context.Context, selector string) error {
	return s.run(ctx, fmt.Sprintf("%q never became visible", selector),
		chromedp.WaitVisible(selector, chromedp.ByQuery))
}

// Close shuts down the tab and the browser process.
func (s *BrowserSession) Close() error {
	s.cancelTab()
	s.cancelAlloc()
	return nil
}
