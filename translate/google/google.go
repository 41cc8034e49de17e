// Package google translates text through the free Google Translate web
// endpoint. No credentials are required, which makes it the always-available
// tail of the translation chain.
package google

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
	"github.com/oGsLP/lyrics-download-and-translate/normalize"
	"github.com/oGsLP/lyrics-download-and-translate/translate"
)

// ProviderName is the identifier for the Google Translate provider
const ProviderName = "google"

const (
	defaultAPIURL = "https://translate.googleapis.com/translate_a/single"

	// maxChunk keeps each request under the endpoint's query limit
	maxChunk = 4000
)

// langMap converts common codes to the forms the endpoint expects.
var langMap = map[string]string{
	"zh": "zh-CN",
}

// Provider implements the translate.Provider interface for Google Translate
type Provider struct {
	client *httpclient.Client
	apiURL string
}

// NewProvider creates a new Google Translate provider instance
func NewProvider(client *httpclient.Client) *Provider {
	return &Provider{client: client, apiURL: defaultAPIURL}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return ProviderName
}

// Attempt translates the query text chunk by chunk. Any chunk failure fails
// the whole attempt; partially translated text is never returned.
func (p *Provider) Attempt(ctx context.Context, q translate.Query) (*translate.Result, error) {
	if strings.TrimSpace(q.Text) == "" {
		return nil, chain.NewError(ProviderName, chain.KindNotFound, "nothing to translate", nil)
	}
	// Section markers pass through verbatim.
	if normalize.IsSectionMarker(q.Text) {
		return &translate.Result{Original: q.Text, Translated: strings.TrimSpace(q.Text), Provider: ProviderName}, nil
	}

	chunks := translate.SplitChunks(q.Text, maxChunk)
	translated := make([]string, 0, len(chunks))

	for i, chunk := range chunks {
		if len(chunks) > 1 {
			log.Infof("%s [Google] Translating chunk %d/%d", logcolors.LogTranslate, i+1, len(chunks))
		}
		out, err := p.translateChunk(ctx, chunk, q.Source, q.Target)
		if err != nil {
			return nil, err
		}
		translated = append(translated, out)
	}

	return &translate.Result{
		Original:   q.Text,
		Translated: translate.JoinChunks(translated),
		Provider:   ProviderName,
	}, nil
}

func (p *Provider) translateChunk(ctx context.Context, text, source, target string) (string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", mapLang(source))
	params.Set("tl", mapLang(target))
	params.Set("dt", "t")
	params.Set("q", text)

	body, err := p.client.Get(ctx, p.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", chain.NewError(ProviderName, chain.KindNetwork, "request failed", err)
	}

	out, err := parseResponse(body)
	if err != nil {
		return "", chain.NewError(ProviderName, chain.KindParse, "unexpected response shape", err)
	}
	return out, nil
}

// parseResponse decodes the endpoint's nested-array payload: the first
// element is a list of segments whose first field is the translated text.
func parseResponse(body []byte) (string, error) {
	var payload []json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", err
	}
	if len(payload) == 0 {
		return "", fmt.Errorf("empty payload")
	}

	var segments []json.RawMessage
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", err
	}

	var b strings.Builder
	for _, raw := range segments {
		var seg []json.RawMessage
		if err := json.Unmarshal(raw, &seg); err != nil || len(seg) == 0 {
			continue
		}
		var text string
		if err := json.Unmarshal(seg[0], &text); err != nil {
			continue
		}
		b.WriteString(text)
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("no translated segments")
	}
	return b.String(), nil
}

func mapLang(code string) string {
	if code == "" {
		return "auto"
	}
	if mapped, ok := langMap[code]; ok {
		return mapped
	}
	return code
}
