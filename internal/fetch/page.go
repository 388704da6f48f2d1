package fetch

import "context"

// Page is a navigable page. Implementations hold one document at a time;
// every query runs against the document loaded by the last successful Goto.
//
// Callers bound each call with the context deadline.
type Page interface {
	// Goto navigates to url and waits for the DOM to settle.
	Goto(ctx context.Context, url string) error
	// Title returns the document title as the page reports it.
	Title(ctx context.Context) (string, error)
	// Content returns the current rendered markup.
	Content(ctx context.Context) (string, error)
	// Count returns how many elements match selector. Zero matches is not an error.
	Count(ctx context.Context, selector string) (int, error)
	// FirstText returns the cleaned text of the first element matching selector,
	// or "" when nothing matches.
	FirstText(ctx context.Context, selector string) (string, error)
	// WaitVisible blocks until an element matching selector is visible.
	WaitVisible(ctx context.Context, selector string) error
	// Close releases the page and everything it owns.
	Close() error
}

// SessionFactory opens page sessions.
type SessionFactory interface {
	Open(ctx context.Context) (Page, error)
}

// SessionFactoryFunc adapts a function to SessionFactory.
type SessionFactoryFunc func(ctx context.Context) (Page, error)

// Open calls f.
func (f SessionFactoryFunc) Open(ctx context.Context) (Page, error) {
	return f(ctx)
}
