// Package youtube is the last-resort lyrics source: it searches YouTube for
// a lyric video and mines the first few video descriptions for lyric text.
package youtube

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/oGsLP/lyrics-download-and-translate/chain"
	"github.com/oGsLP/lyrics-download-and-translate/httpclient"
	"github.com/oGsLP/lyrics-download-and-translate/logcolors"
	"github.com/oGsLP/lyrics-download-and-translate/lyrics"
)

// ProviderName is the identifier for the YouTube description provider
const ProviderName = "youtube"

const (
	defaultBaseURL = "https://www.youtube.com"

	// maxVideos bounds how many watch pages one attempt may fetch
	maxVideos = 3

	// minLyricsLen guards against picking up a short promo blurb
	minLyricsLen = 100
)

var (
	videoIDPattern = regexp.MustCompile(`/watch\?v=([a-zA-Z0-9_-]{11})`)

	// Description text between a "Lyrics" marker and the next blank block
	// or social-media plug.
	lyricsMarker = regexp.MustCompile(`(?is)(?:Lyrics|LYRICS|歌词)[:\s]*\n?(.*?)(?:\n\n|$|Subscribe|Follow|Instagram|Twitter)`)

	descriptionMeta = regexp.MustCompile(`<meta[^>]*name="description"[^>]*content="([^"]*)"`)
)

// Provider implements the lyrics.Provider interface for YouTube descriptions
type Provider struct {
	client  *httpclient.Client
	baseURL string
}

// NewProvider creates a new YouTube description provider instance
func NewProvider(client *httpclient.Client) *Provider {
	return &Provider{client: client, baseURL: defaultBaseURL}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return ProviderName
}

// Attempt searches for lyric videos and tries their descriptions in order.
func (p *Provider) Attempt(ctx context.Context, q lyrics.Query) (*lyrics.Result, error) {
	query := q.Artist + " " + q.Title + " lyrics"
	searchURL := p.baseURL + "/results?search_query=" + url.QueryEscape(query)

	headers := map[string]string{"Accept-Language": "en-US,en;q=0.9"}

	log.Debugf("%s [YouTube] Searching: %s", logcolors.LogSearch, query)

	page, err := p.client.Get(ctx, searchURL, headers)
	if err != nil {
		return nil, lyrics.FetchError(ProviderName, err)
	}

	ids := videoIDs(string(page))
	if len(ids) == 0 {
		return nil, chain.NewError(ProviderName, chain.KindNotFound, fmt.Sprintf("no videos found for: %s", query), nil)
	}
	if len(ids) > maxVideos {
		ids = ids[:maxVideos]
	}

	for _, id := range ids {
		raw, err := p.tryDescription(ctx, id, headers)
		if err != nil {
			log.Debugf("%s [YouTube] Video %s: %v", logcolors.LogSearch, id, err)
			continue
		}
		return &lyrics.Result{
			Title:   q.Title,
			Artist:  q.Artist,
			RawText: raw,
			Source:  ProviderName,
		}, nil
	}

	return nil, chain.NewError(ProviderName, chain.KindNotFound, "no lyrics found in video descriptions", nil)
}

func (p *Provider) tryDescription(ctx context.Context, videoID string, headers map[string]string) (string, error) {
	watchURL := p.baseURL + "/watch?v=" + videoID

	page, err := p.client.Get(ctx, watchURL, headers)
	if err != nil {
		return "", err
	}

	return parseDescription(string(page))
}

// parseDescription looks for a "Lyrics" marker block first, then falls back
// to a meta description that carries section labels.
func parseDescription(page string) (string, error) {
	if m := lyricsMarker.FindStringSubmatch(page); m != nil {
		if len(m[1]) > minLyricsLen {
			return m[1], nil
		}
	}

	if m := descriptionMeta.FindStringSubmatch(page); m != nil {
		description := m[1]
		// Section labels suggest the description actually holds lyrics.
		if len(description) > 200 && strings.Contains(description, "[") {
			return description, nil
		}
	}

	return "", fmt.Errorf("description has no lyric text")
}

// videoIDs extracts deduplicated video IDs in page order.
func videoIDs(page string) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, m := range videoIDPattern.FindAllStringSubmatch(page, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			ids = append(ids, m[1])
		}
	}
	return ids
}
