// Package normalize turns raw scraped lyrics (HTML fragments or plain text)
// into clean text with paragraph boundaries preserved. A double newline is
// the paragraph separator and survives every transformation; collapsing it
// would lose song structure.
package normalize

import (
	"html"
	"regexp"
	"strings"
)

// Lyrics is normalized lyric text. Paragraphs holds the body split on the
// double-newline separator, in original order.
type Lyrics struct {
	Body       string
	Paragraphs []string
}

var (
	brTag      = regexp.MustCompile(`(?i)\s*<br\s*/?>\s*`)
	pCloseTag  = regexp.MustCompile(`(?i)\s*</p>\s*`)
	anyTag     = regexp.MustCompile(`<[^>]+>`)
	multiBlank = regexp.MustCompile(`\n{3,}`)

	sectionMarker = regexp.MustCompile(`^\[.+\]$`)

	// boilerplate matches whole lines only. Substring-anywhere matching
	// would delete legitimate lyric lines that contain a common word.
	boilerplate = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\d*\s*contributors?$`),
		regexp.MustCompile(`(?i)^embed$`),
		regexp.MustCompile(`(?i)^you might also like$`),
		regexp.MustCompile(`(?i)^translations?$`),
		regexp.MustCompile(`(?i)^written by:.*$`),
		regexp.MustCompile(`(?i)^subtitled by.*$`),
		regexp.MustCompile(`(?i)^revised by.*$`),
		regexp.MustCompile(`(?i)^did you see an error.*$`),
		regexp.MustCompile(`(?i)^add to favorites$`),
		regexp.MustCompile(`(?i)^auto-scroll$`),
		regexp.MustCompile(`(?i)^send us your revision$`),
	}
)

// Normalize cleans raw lyrics and derives paragraph structure. It is
// idempotent: running it over its own output is a no-op.
func Normalize(raw string) Lyrics {
	text := html.UnescapeString(raw)

	// Line-break markup becomes literal newlines before tags are stripped,
	// so structure encoded in HTML survives.
	text = brTag.ReplaceAllString(text, "\n")
	text = pCloseTag.ReplaceAllString(text, "\n\n")
	text = anyTag.ReplaceAllString(text, "")

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	prevEmpty := false

	for _, line := range lines {
		stripped := strings.TrimSpace(line)

		if stripped == "" {
			if !prevEmpty && len(cleaned) > 0 {
				cleaned = append(cleaned, "")
				prevEmpty = true
			}
			continue
		}
		prevEmpty = false

		// Section markers like [Chorus] are structural, never boilerplate.
		if sectionMarker.MatchString(stripped) {
			cleaned = append(cleaned, stripped)
			continue
		}
		if isBoilerplate(stripped) {
			continue
		}
		cleaned = append(cleaned, stripped)
	}

	// Trim trailing paragraph break left by a removed boilerplate tail.
	for len(cleaned) > 0 && cleaned[len(cleaned)-1] == "" {
		cleaned = cleaned[:len(cleaned)-1]
	}

	body := strings.Join(cleaned, "\n")
	body = multiBlank.ReplaceAllString(body, "\n\n")

	return Lyrics{
		Body:       body,
		Paragraphs: splitParagraphs(body),
	}
}

func isBoilerplate(line string) bool {
	for _, re := range boilerplate {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func splitParagraphs(body string) []string {
	if body == "" {
		return nil
	}
	parts := strings.Split(body, "\n\n")
	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// IsSectionMarker reports whether a line is a bracketed section label like
// [Verse 1] or [Chorus].
func IsSectionMarker(line string) bool {
	return sectionMarker.MatchString(strings.TrimSpace(line))
}
