// Package azlyrics fetches lyrics from AZLyrics.com. The page URL is built
// directly from slugged artist and title; the lyrics body sits between a
// usage-warning HTML comment and the next comment.
package azlyrics

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

// ProviderName is the identifier for the AZLyrics provider
const ProviderName = "azlyrics"

const defaultBaseURL = "https://www.azlyrics.com"

var (
	nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]`)

	// The lyrics div is unmarked; it follows the usage-warning comment.
	lyricsBlock = regexp.MustCompile(`(?s)<!-- Usage of azlyrics\.com content.*?-->(.*?)<!--`)
)

// Provider implements the lyrics.Provider interface for AZLyrics.com
type Provider struct {
	client  *httpclient.Client
	baseURL string
}

// NewProvider creates a new AZLyrics provider instance
func NewProvider(client *httpclient.Client) *Provider {
	return &Provider{client: client, baseURL: defaultBaseURL}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return ProviderName
}

// Attempt fetches the song page and extracts the lyrics block.
func (p *Provider) Attempt(ctx context.Context, q lyrics.Query) (*lyrics.Result, error) {
	requestURL := fmt.Sprintf("%s/lyrics/%s/%s.html", p.baseURL, slug(q.Artist), slug(q.Title))

	log.Debugf("%s [AZLyrics] Fetching: %s", logcolors.LogSearch, requestURL)

	page, err := p.client.Get(ctx, requestURL, nil)
	if err != nil {
		return nil, lyrics.FetchError(ProviderName, err)
	}

	raw, err := parsePage(string(page))
	if err != nil {
		return nil, chain.NewError(ProviderName, chain.KindParse, "lyrics block not found", err)
	}

	return &lyrics.Result{
		Title:   q.Title,
		Artist:  q.Artist,
		RawText: raw,
		Source:  ProviderName,
	}, nil
}

// parsePage pulls the raw lyrics fragment out of the page HTML.
func parsePage(page string) (string, error) {
	m := lyricsBlock.FindStringSubmatch(page)
	if m == nil {
		return "", fmt.Errorf("usage-warning comment marker missing")
	}
	raw := strings.TrimSpace(m[1])
	if raw == "" {
		return "", fmt.Errorf("empty lyrics block")
	}
	return raw, nil
}

// slug strips everything but letters and digits and lowercases, matching
// AZLyrics URL conventions ("Beyond Awareness" -> "beyondawareness").
func slug(s string) string {
	return strings.ToLower(nonAlnum.ReplaceAllString(s, ""))
}
