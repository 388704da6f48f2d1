package crawling

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/job-scout/internal/fetch"
)

// TitleFromMarkup returns the first non-empty of the og:title meta content,
// the first <h1> text and the <title> text. Unparseable markup yields "".
func TitleFromMarkup(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	if content, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if t := singleLine(content); t != "" {
			return t
		}
	}
	if t := singleLine(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	return singleLine(doc.Find("title").First().Text())
}

// resolveTitle opens url on page and walks the title fallback chain.
// It returns "" when navigation fails or every step comes up empty.
func (c *Crawler) resolveTitle(ctx context.Context, page fetch.Page, url string) string {
	ctx, cancel := context.WithTimeout(ctx, c.opts.DetailTimeout)
	defer cancel()

	if err := page.Goto(ctx, url); err != nil {
		c.logger.Debug("detail navigation failed", "url", url, "timeout", fetch.IsTimeout(err), "error", err)
		return ""
	}

	if t, err := page.Title(ctx); err == nil {
		if t = singleLine(t); t != "" {
			return t
		}
	}

	if html, err := page.Content(ctx); err == nil {
		if t := TitleFromMarkup(html); t != "" {
			return t
		}
	}

	for _, selector := range c.site.TitleSelectors {
		n, err := page.Count(ctx, selector)
		if err != nil || n == 0 {
			continue
		}
		t, err := page.FirstText(ctx, selector)
		if err != nil {
			continue
		}
		if t = singleLine(t); t != "" {
			return t
		}
	}

	return ""
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
