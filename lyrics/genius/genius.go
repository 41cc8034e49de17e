// Package genius fetches lyrics from Genius.com: a search API call to find
// the song page, then a scrape of the page itself.
package genius

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/oGsLP/lyrics-download-and-translate/chain"
	"github.com/oGsLP/lyrics-download-and-translate/httpclient"
	"github.com/oGsLP/lyrics-download-and-translate/logcolors"
	"github.com/oGsLP/lyrics-download-and-translate/lyrics"
)

// ProviderName is the identifier for the Genius provider
const ProviderName = "genius"

const defaultSearchURL = "https://genius.com/api/search/multi"

// Provider implements the lyrics.Provider interface for Genius.com
type Provider struct {
	client    *httpclient.Client
	searchURL string
}

// NewProvider creates a new Genius provider instance
func NewProvider(client *httpclient.Client) *Provider {
	return &Provider{client: client, searchURL: defaultSearchURL}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return ProviderName
}

// Attempt searches Genius for the song and scrapes its lyrics page.
func (p *Provider) Attempt(ctx context.Context, q lyrics.Query) (*lyrics.Result, error) {
	query := q.Artist + " " + q.Title
	requestURL := p.searchURL + "?q=" + url.QueryEscape(query)

	log.Debugf("%s [Genius] Searching: %s", logcolors.LogSearch, query)

	body, err := p.client.Get(ctx, requestURL, nil)
	if err != nil {
		return nil, lyrics.FetchError(ProviderName, err)
	}

	var search searchResponse
	if err := json.Unmarshal(body, &search); err != nil {
		return nil, chain.NewError(ProviderName, chain.KindParse, "failed to parse search response", err)
	}

	songURL := findSongURL(search)
	if songURL == "" {
		return nil, chain.NewError(ProviderName, chain.KindNotFound, fmt.Sprintf("no song found for: %s", query), nil)
	}

	return p.extract(ctx, songURL, q)
}

func (p *Provider) extract(ctx context.Context, songURL string, q lyrics.Query) (*lyrics.Result, error) {
	page, err := p.client.Get(ctx, songURL, nil)
	if err != nil {
		return nil, lyrics.FetchError(ProviderName, err)
	}

	title, raw, err := parsePage(string(page))
	if err != nil {
		return nil, chain.NewError(ProviderName, chain.KindParse, "failed to extract lyrics", err)
	}
	if title == "" {
		title = q.Title
	}

	log.Debugf("%s [Genius] Extracted %d bytes for: %s", logcolors.LogLyrics, len(raw), title)

	return &lyrics.Result{
		Title:   title,
		Artist:  q.Artist,
		RawText: raw,
		Source:  ProviderName,
	}, nil
}

// findSongURL picks the song page URL from search results: the first hit of
// a "song" section, falling back to any genius.com result URL.
func findSongURL(search searchResponse) string {
	for _, section := range search.Response.Sections {
		if section.Type == "song" && len(section.Hits) > 0 {
			if u := section.Hits[0].Result.URL; u != "" {
				return u
			}
		}
	}
	for _, section := range search.Response.Sections {
		for _, hit := range section.Hits {
			if strings.Contains(hit.Result.URL, "genius.com") {
				return hit.Result.URL
			}
		}
	}
	return ""
}
