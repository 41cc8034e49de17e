// Package musixmatch fetches lyrics from Musixmatch.com by scanning the
// song page for spans carrying a lyrics class.
package musixmatch

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/oGsLP/lyrics-download-and-translate/chain"
	"github.com/oGsLP/lyrics-download-and-translate/httpclient"
	"github.com/oGsLP/lyrics-download-and-translate/logcolors"
	"github.com/oGsLP/lyrics-download-and-translate/lyrics"
)

// ProviderName is the identifier for the Musixmatch provider
const ProviderName = "musixmatch"

const defaultBaseURL = "https://www.musixmatch.com"

var (
	nonAlnum    = regexp.MustCompile(`[^a-zA-Z0-9]`)
	multiDash   = regexp.MustCompile(`-+`)
	lyricsSpans = regexp.MustCompile(`(?s)<span[^>]*class="[^"]*lyrics[^"]*"[^>]*>(.*?)</span>`)
)

// Provider implements the lyrics.Provider interface for Musixmatch.com
type Provider struct {
	client  *httpclient.Client
	baseURL string
}

// NewProvider creates a new Musixmatch provider instance
func NewProvider(client *httpclient.Client) *Provider {
	return &Provider{client: client, baseURL: defaultBaseURL}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return ProviderName
}

// Attempt fetches the song page and collects the lyrics spans.
func (p *Provider) Attempt(ctx context.Context, q lyrics.Query) (*lyrics.Result, error) {
	requestURL := fmt.Sprintf("%s/lyrics/%s/%s", p.baseURL, slug(q.Artist), slug(q.Title))

	log.Debugf("%s [Musixmatch] Fetching: %s", logcolors.LogSearch, requestURL)

	page, err := p.client.Get(ctx, requestURL, nil)
	if err != nil {
		return nil, lyrics.FetchError(ProviderName, err)
	}

	raw, err := parsePage(string(page))
	if err != nil {
		return nil, chain.NewError(ProviderName, chain.KindParse, "lyrics spans not found", err)
	}

	return &lyrics.Result{
		Title:   q.Title,
		Artist:  q.Artist,
		RawText: raw,
		Source:  ProviderName,
	}, nil
}

// parsePage joins the contents of every lyrics span, one per line.
func parsePage(page string) (string, error) {
	matches := lyricsSpans.FindAllStringSubmatch(page, -1)
	if len(matches) == 0 {
		return "", fmt.Errorf("no span with a lyrics class")
	}

	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		parts = append(parts, m[1])
	}
	raw := strings.TrimSpace(strings.Join(parts, "\n"))
	if raw == "" {
		return "", fmt.Errorf("empty lyrics spans")
	}
	return raw, nil
}

// slug converts a name to Musixmatch URL form: non-alphanumerics become
// dashes ("Your King" -> "Your-King", lowercased).
func slug(s string) string {
	out := nonAlnum.ReplaceAllString(s, "-")
	out = multiDash.ReplaceAllString(out, "-")
	return strings.ToLower(strings.Trim(out, "-"))
}
