package fetch

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StaticSession is a Page backed by plain HTTP requests. It does not run
// scripts, so the "rendered" markup is the server response.
type StaticSession struct {
	opts *Options
	url  string
	html string
	doc  *goquery.Document
}

// NewStaticSession creates a session with the given options (nil for defaults).
func NewStaticSession(opts *Options) *StaticSession {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &StaticSession{opts: opts}
}

// StaticFactory returns a SessionFactory producing StaticSessions that share opts.
func StaticFactory(opts *Options) SessionFactory {
	return SessionFactoryFunc(func(_ context.Context) (Page, error) {
		return NewStaticSession(opts), nil
	})
}

// Goto fetches url and parses the body. On failure the previous document is discarded.
func (s *StaticSession) Goto(ctx context.Context, url string) error {
	s.url, s.html, s.doc = url, "", nil

	result, err := URL(ctx, url, s.opts)
	if err != nil {
		return err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(result.HTML))
	if err != nil {
		return &Error{URL: url, Message: "failed to parse HTML", Cause: err}
	}
	s.html, s.doc = result.HTML, doc
	return nil
}

// Title returns the text of the first <title> element.
func (s *StaticSession) Title(_ context.Context) (string, error) {
	if err := s.loaded(); err != nil {
		return "", err
	}
	return strings.TrimSpace(s.doc.Find("title").First().Text()), nil
}

// Content returns the raw response body.
func (s *StaticSession) Content(_ context.Context) (string, error) {
	if err := s.loaded(); err != nil {
		return "", err
	}
	return s.html, nil
}

// Count returns the number of elements matching selector.
func (s *StaticSession) Count(_ context.Context, selector string) (int, error) {
	if err := s.loaded(); err != nil {
		return 0, err
	}
	return s.doc.Find(selector).Length(), nil
}

// FirstText returns the cleaned text of the first element matching selector.
func (s *StaticSession) FirstText(_ context.Context, selector string) (string, error) {
	if err := s.loaded(); err != nil {
		return "", err
	}
	return CleanText(s.doc.Find(selector).First().Text()), nil
}

// WaitVisible succeeds immediately when selector matches, since a static
// document never changes after load.
func (s *StaticSession) WaitVisible(_ context.Context, selector string) error {
	if err := s.loaded(); err != nil {
		return err
	}
	if s.doc.Find(selector).Length() == 0 {
		return &Error{URL: s.url, Message: "no element matches " + selector}
	}
	return nil
}

// Close drops the loaded document.
func (s *StaticSession) Close() error {
	s.url, s.html, s.doc = "", "", nil
	return nil
}

func (s *StaticSession) loaded() error {
	if s.doc == nil {
		return &Error{URL: s.url, Message: "no page loaded"}
	}
	return nil
}
