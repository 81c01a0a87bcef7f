package savant

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ErrClipNotFound marks a pitch with no locatable clip. Per-clip recoverable.
var ErrClipNotFound = errors.New("clip not found")

// resultsLink extracts the first clip page link from the rendered search
// results.
func resultsLink(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing search results: %w", err)
	}
	href, ok := doc.Find("#search-results a").First().Attr("href")
	if !ok || href == "" {
		return "", fmt.Errorf("%w: no search results link", ErrClipNotFound)
	}
	return href, nil
}

// videoSource extracts the playable source URL from a rendered clip page.
func videoSource(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing clip page: %w", err)
	}
	src, ok := doc.Find("video#sporty source").First().Attr("src")
	if !ok || src == "" {
		return "", fmt.Errorf("%w: no video source on clip page", ErrClipNotFound)
	}
	return src, nil
}
