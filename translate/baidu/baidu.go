// Package baidu translates text through the Baidu Fanyi API. Requests are
// signed with MD5 over appid + query + salt + secret; the signing scheme is
// Baidu's published contract and must be reproduced byte for byte.
package baidu

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/url"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/oGsLP/lyrics-download-and-translate/chain"
	"github.com/oGsLP/lyrics-download-and-translate/config"
	"github.com/oGsLP/lyrics-download-and-translate/httpclient"
	"github.com/oGsLP/lyrics-download-and-translate/logcolors"
	"github.com/oGsLP/lyrics-download-and-translate/normalize"
	"github.com/oGsLP/lyrics-download-and-translate/translate"
)

// ProviderName is the identifier for the Baidu Translate provider
const ProviderName = "baidu"

const (
	defaultAPIURL = "https://fanyi-api.baidu.com/api/trans/vip/translate"

	// maxChunk keeps each request under the API's size limit
	maxChunk = 6000
)

// langMap converts common codes to Baidu's own
var langMap = map[string]string{
	"auto":  "auto",
	"en":    "en",
	"zh":    "zh",
	"zh-CN": "zh",
	"ja":    "jp",
	"ko":    "kor",
	"fr":    "fra",
	"es":    "spa",
}

// Error codes Baidu returns for credential problems.
var authErrorCodes = map[string]bool{
	"52003": true, // UNAUTHORIZED USER
	"54001": true, // invalid signature
	"54004": true, // account balance exhausted
}

// Provider implements the translate.Provider interface for Baidu Fanyi
type Provider struct {
	client *httpclient.Client
	creds  config.BaiduCredentials
	apiURL string

	// salt overrides randomness in tests
	salt func() string
}

// NewProvider creates a new Baidu provider instance
func NewProvider(client *httpclient.Client, creds config.BaiduCredentials) *Provider {
	return &Provider{
		client: client,
		creds:  creds,
		apiURL: defaultAPIURL,
		salt: func() string {
			return strconv.Itoa(rand.Intn(32768) + 32768)
		},
	}
}

// Name returns the provider identifier
func (p *Provider) Name() string {
	return ProviderName
}

// Attempt translates the query text chunk by chunk. Missing credentials are
// an auth failure so the chain moves on without blocking other vendors.
func (p *Provider) Attempt(ctx context.Context, q translate.Query) (*translate.Result, error) {
	if p.creds.AppID == "" || p.creds.SecretKey == "" {
		return nil, chain.NewError(ProviderName, chain.KindAuth, "appid and secret_key not configured", nil)
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
			log.Infof("%s [Baidu] Translating chunk %d/%d", logcolors.LogTranslate, i+1, len(chunks))
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
	salt := p.salt()

	form := url.Values{}
	form.Set("q", text)
	form.Set("from", mapLang(source))
	form.Set("to", mapLang(target))
	form.Set("appid", p.creds.AppID)
	form.Set("salt", salt)
	form.Set("sign", Sign(p.creds.AppID, text, salt, p.creds.SecretKey))

	body, err := p.client.PostForm(ctx, p.apiURL, form)
	if err != nil {
		return "", chain.NewError(ProviderName, chain.KindNetwork, "request failed", err)
	}

	var resp apiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", chain.NewError(ProviderName, chain.KindParse, "failed to parse response", err)
	}

	if resp.ErrorCode != "" && resp.ErrorCode != "0" {
		kind := chain.KindParse
		if authErrorCodes[resp.ErrorCode] {
			kind = chain.KindAuth
		}
		return "", chain.NewError(ProviderName, kind,
			fmt.Sprintf("API error %s: %s", resp.ErrorCode, resp.ErrorMsg), nil)
	}
	if len(resp.TransResult) == 0 {
		return "", chain.NewError(ProviderName, chain.KindParse, "empty trans_result", nil)
	}

	lines := make([]string, 0, len(resp.TransResult))
	for _, item := range resp.TransResult {
		lines = append(lines, item.Dst)
	}
	return strings.Join(lines, "\n"), nil
}

// Sign computes the Baidu request signature: MD5 of appid + q + salt + secret.
func Sign(appID, text, salt, secret string) string {
	sum := md5.Sum([]byte(appID + text + salt + secret))
	return hex.EncodeToString(sum[:])
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
	ErrorCode   string `json:"error_code"`
	ErrorMsg    string `json:"error_msg"`
	TransResult []struct {
		Src string `json:"src"`
		Dst string `json:"dst"`
	} `json:"trans_result"`
}
