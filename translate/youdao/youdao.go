// Package youdao translates text through the Youdao OpenAPI. Requests use
// the v3 signing scheme: SHA-256 over appKey + truncate(q) + salt + curtime
// + secret, where truncate keeps the first and last ten characters of long
// input. The scheme is Youdao's published contract.
package youdao

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/oGsLP/lyrics-download-and-translate/chain"
	"github.com/oGsLP/lyrics-download-and-translate/config"
	"github.com/oGsLP/lyrics-download-and-translate/httpclient"
	"github.com/oGsLP/lyrics-download-and-translate/logcolors"
	"github.com/oGsLP/lyrics-download-and-translate/normalize"
	"github.com/oGsLP/lyrics-download-and-translate/translate"
)

// ProviderName is the identifier for the Youdao Translate provider
const ProviderName = "youdao"

const (
	defaultAPIURL = "https://openapi.youdao.com/api"

	// maxChunk keeps each request under the API's size limit
	maxChunk = 5000
)

// langMap converts common codes to Youdao's own
var langMap = map[string]string{
	"auto":  "auto",
	"en":    "en",
	"zh":    "zh-CHS",
	"zh-CN": "zh-CHS",
	"ja":    "ja",
	"ko":    "ko",
}

// Error codes Youdao returns for credential problems.
var authErrorCodes = map[string]bool{
	"108": true, // invalid appKey
	"110": true, // no related service instance
	"202": true, // signature check failed
	"401": true, // account balance exhausted
}

// Provider implements the translate.Provider interface for Youdao OpenAPI
type Provider struct {
	client *httpclient.Client
	creds  config.YoudaoCredentials
	apiURL string

	// now and salt override time and randomness in tests
	now  func() time.Time
	salt func() string
}

// NewProvider creates a new Youdao provider instance
func NewProvider(client *httpclient.Client, creds config.YoudaoCredentials) *Provider {
	return &Provider{
		client: client,
		creds:  creds,
		apiURL: defaultAPIURL,
		now:    time.Now,
		salt:   uuid.NewString,
	}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return ProviderName
}

// Attempt translates the query text chunk by chunk. Missing credentials are
// an auth failure so the chain moves on without blocking other vendors.
func (p *Provider) Attempt(ctx context.Context, q translate.Query) (*translate.Result, error) {
	if p.creds.AppKey == "" || p.creds.SecretKey == "" {
		return nil, chain.NewError(ProviderName, chain.KindAuth, "appkey and secret_key not configured", nil)
	}
	if strings.TrimSpace(q.Text) == "" {
		return nil, chain.NewError(ProviderName, chain.KindNotFound, "nothing to translate", nil)
	}
	if normalize.IsSectionMarker(q.Text) {
		return &translate.Result{Original: q.Text, Translated: strings.TrimSpace(q.Text), Provider: ProviderName}, nil
	}

	chunks := translate.SplitChunks(q.Text, maxChunk)
	translated := make([]string, 0, len(chunks))

	for i, chunk := range chunks {
		if len(chunks) > 1 {
			log.Infof("%s [Youdao] Translating chunk %d/%d", logcolors.LogTranslate, i+1, len(chunks))
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
	curtime := strconv.FormatInt(p.now().Unix(), 10)
	salt := p.salt()

	form := url.Values{}
	form.Set("q", text)
	form.Set("from", mapLang(source))
	form.Set("to", mapLang(target))
	form.Set("appKey", p.creds.AppKey)
	form.Set("salt", salt)
	form.Set("sign", Sign(p.creds.AppKey, text, salt, curtime, p.creds.SecretKey))
	form.Set("signType", "v3")
	form.Set("curtime", curtime)

	body, err := p.client.PostForm(ctx, p.apiURL, form)
	if err != nil {
		return "", chain.NewError(ProviderName, chain.KindNetwork, "request failed", err)
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", chain.NewError(ProviderName, chain.KindParse, "failed to parse response", err)
	}

	if resp.ErrorCode != "0" {
		kind := chain.KindParse
		if authErrorCodes[resp.ErrorCode] {
			kind = chain.KindAuth
		}
		return "", chain.NewError(ProviderName, kind, fmt.Sprintf("API error %s", resp.ErrorCode), nil)
	}
	if len(resp.Translation) == 0 {
		return "", chain.NewError(ProviderName, chain.KindParse, "empty translation", nil)
	}

	return resp.Translation[0], nil
}

// Sign computes the v3 request signature.
func Sign(appKey, text, salt, curtime, secret string) string {
	sum := sha256.Sum256([]byte(appKey + Truncate(text) + salt + curtime + secret))
	return hex.EncodeToString(sum[:])
}

// Truncate shortens long input for signing: first 10 characters, the input
// length, then the last 10 characters. Input of 20 characters or fewer is
// used as-is.
func Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= 20 {
		return text
	}
	return string(runes[:10]) + strconv.Itoa(len(runes)) + string(runes[len(runes)-10:])
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

type apiResponse struct {
	ErrorCode   string   `json:"errorCode"`
	Translation []string `json:"translation"`
}
