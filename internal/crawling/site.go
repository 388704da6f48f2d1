package crawling

import (
	"net/url"
	"strings"
)

// DefaultBaseURL is the recruiting site crawled when no base is configured.
const DefaultBaseURL = "https://www.jobkorea.co.kr"

// PostingAnchorSelector matches links to posting detail pages.
const PostingAnchorSelector = "a[href*='/Recruit/GI_Read/']"

// DefaultTitleSelectors are tried in order against the live DOM when the
// title metadata and markup parsing both come up empty.
var DefaultTitleSelectors = []string{
	"h1",
	".tit",
	".title",
	".detailArea h1",
	".devViewContents h1",
	".recruitMent h1",
	".tbRow h1",
	"#detailArea h1",
}

// Site describes the layout of the recruiting site being crawled.
type Site struct {
	Base           string
	TitleSelectors []string
}

// NewSite returns a site rooted at base with the default title selectors.
// An empty base falls back to DefaultBaseURL.
func NewSite(base string) Site {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return Site{
		Base:           base,
		TitleSelectors: append([]string(nil), DefaultTitleSelectors...),
	}
}

// SearchURL returns the search endpoint for keyword, scoped to job postings.
func (s Site) SearchURL(keyword string) string {
	return s.Base + "/Search/?stext=" + url.QueryEscape(keyword) + "&tabType=recruit"
}

// PostingURL returns the canonical detail URL for a posting id.
func (s Site) PostingURL(id string) string {
	return s.Base + "/Recruit/GI_Read/" + id
}
