package genius

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var errNoLyrics = errors.New("no lyrics container in page")

// parsePage extracts the song title and the raw lyrics fragment from a
// Genius song page. Three strategies, in order: the JSON-LD block, the
// data-lyrics-container divs, and the legacy Lyrics__Container class. The
// returned fragment may contain <br> markup; the normalizer handles it.
func parsePage(page string) (title, raw string, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", "", err
	}

	title, _ = doc.Find(`meta[property="og:title"]`).Attr("content")

	if text := fromJSONLD(doc); text != "" {
		return title, text, nil
	}
	if html := fromContainers(doc, `div[data-lyrics-container="true"]`); html != "" {
		return title, html, nil
	}
	if html := fromContainers(doc, `div[class*="Lyrics__Container"]`); html != "" {
		return title, html, nil
	}

	return title, "", errNoLyrics
}

func fromJSONLD(doc *goquery.Document) string {
	var text string
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var ld jsonLD
		if err := json.Unmarshal([]byte(s.Text()), &ld); err != nil {
			return true
		}
		if ld.RecordingOf.Lyrics.Text != "" {
			text = ld.RecordingOf.Lyrics.Text
			return false
		}
		return true
	})
	return text
}

// fromContainers joins the inner HTML of every matching container with a
// paragraph break, preserving the page's block structure.
func fromContainers(doc *goquery.Document, selector string) string {
	var parts []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if html, err := s.Html(); err == nil && strings.TrimSpace(html) != "" {
			parts = append(parts, html)
		}
	})
	return strings.Join(parts, "\n\n")
}
