package crawling

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var postingIDPattern = regexp.MustCompile(`/Recruit/GI_Read/(\d+)`)

// NormalizePostingURL maps an anchor href to its canonical detail URL
// {base}/Recruit/GI_Read/{id}. Hrefs without a posting id are returned as an
// absolute URL on base, or unchanged if already absolute. Empty input yields "".
func NormalizePostingURL(base, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	site := NewSite(base)
	if id := PostingID(href); id != "" {
		return site.PostingURL(id)
	}
	if strings.HasPrefix(href, "http") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return site.Base + href
}

// PostingID returns the numeric posting id in url, or "" when there is none.
func PostingID(url string) string {
	m := postingIDPattern.FindStringSubmatch(url)
	if m == nil {
		return ""
	}
	return m[1]
}

// ExtractPostingLinks returns canonical posting URLs found in html, in
// document order, deduplicated by posting id. A positive limit truncates.
func ExtractPostingLinks(html, base string, limit int) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &LinkExtractionError{
			Message: "failed to parse HTML",
			Cause:   err,
		}
	}

	links := make([]string, 0)
	seen := make(map[string]bool)

	doc.Find(PostingAnchorSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		href, exists := s.Attr("href")
		if !exists {
			return true
		}
		normalized := NormalizePostingURL(base, href)
		id := PostingID(normalized)
		if id == "" || seen[id] {
			return true
		}
		seen[id] = true
		links = append(links, normalized)
		return limit <= 0 || len(links) < limit
	})

	return links, nil
}
