// Package letras fetches lyrics from Letras.com. The song page mixes lyric
// paragraphs with heavy UI chrome, so extraction is followed by a validity
// check that rejects blocks dominated by interface text.
package letras

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

// ProviderName is the identifier for the Letras provider
const ProviderName = "letras"

const defaultBaseURL = "https://www.letras.com"

var (
	nonAlnum  = regexp.MustCompile(`[^a-zA-Z0-9]`)
	multiDash = regexp.MustCompile(`-+`)
)

// Provider implements the lyrics.Provider interface for Letras.com
type Provider struct {
	client  *httpclient.Client
	baseURL string
}

// NewProvider creates a new Letras provider instance
func NewProvider(client *httpclient.Client) *Provider {
	return &Provider{client: client, baseURL: defaultBaseURL}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return ProviderName
}

// Attempt fetches the song page and extracts the lyrics block.
func (p *Provider) Attempt(ctx context.Context, q lyrics.Query) (*lyrics.Result, error) {
	requestURL := fmt.Sprintf("%s/%s/%s/", p.baseURL, slug(q.Artist), slug(q.Title))

	log.Debugf("%s [Letras] Fetching: %s", logcolors.LogSearch, requestURL)

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

// slug converts a name to Letras URL form (dash-separated, lowercase).
func slug(s string) string {
	out := nonAlnum.ReplaceAllString(s, "-")
	out = multiDash.ReplaceAllString(out, "-")
	return strings.ToLower(strings.Trim(out, "-"))
}
