package letras

import (
	"errors"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var errNoLyrics = errors.New("no lyrics block in page")

// uiIndicators are interface strings that appear in non-lyric page chrome.
// A candidate block containing many of them is page furniture, not lyrics.
var uiIndicators = []string{
	"Add to favorites", "Add to Playlist", "Font size",
	"Tab", "Print", "Correct", "Auto-scroll", "Notes",
	"Restore", "Apply", "Send us", "revision",
}

var anyTag = regexp.MustCompile(`<[^>]+>`)

// parsePage extracts the raw lyrics fragment: first a div whose class or id
// mentions "lyrics", falling back to the page's article element. The
// fragment keeps its <p>/<br> markup for the normalizer.
func parsePage(page string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", err
	}

	for _, selector := range []string{`div[class*="lyrics"]`, `div[id*="lyrics"]`} {
		var found string
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			inner, err := s.Html()
			if err != nil || !isValidLyrics(inner) {
				return true
			}
			found = inner
			return false
		})
		if found != "" {
			return found, nil
		}
	}

	if article, err := doc.Find("article").First().Html(); err == nil && strings.TrimSpace(article) != "" {
		return article, nil
	}

	return "", errNoLyrics
}

// isValidLyrics rejects fragments that are too short or read like UI chrome.
func isValidLyrics(fragment string) bool {
	text := html.UnescapeString(anyTag.ReplaceAllString(fragment, ""))
	if len(text) < 50 {
		return false
	}

	hits := 0
	for _, indicator := range uiIndicators {
		if strings.Contains(text, indicator) {
			hits++
		}
	}
	return hits <= 3
}
