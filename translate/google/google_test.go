package google

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oGsLP/lyrics-download-and-translate/chain"
	"github.com/oGsLP/lyrics-download-and-translate/config"
	"github.com/oGsLP/lyrics-download-and-translate/httpclient"
	"github.com/oGsLP/lyrics-download-and-translate/translate"
)

func testClient(t *testing.T) *httpclient.Client {
	t.Helper()
	cfg := config.Default()
	cfg.Settings.MaxRetries = 1
	return httpclient.New(cfg, config.Env{})
}

func TestParseResponse(t *testing.T) {
	t.Run("Single segment", func(t *testing.T) {
		body := `[[["你好世界","hello world",null,null,1]],null,"en"]`
		got, err := parseResponse([]byte(body))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got != "你好世界" {
			t.Errorf("parseResponse = %q", got)
		}
	})

	t.Run("Multiple segments concatenate in order", func(t *testing.T) {
		body := `[[["第一行\n","first line\n",null,null,1],["第二行","second line",null,null,1]],null,"en"]`
		got, err := parseResponse([]byte(body))
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if got != "第一行\n第二行" {
			t.Errorf("parseResponse = %q", got)
		}
	})

	t.Run("Empty payload is an error", func(t *testing.T) {
		if _, err := parseResponse([]byte(`[]`)); err == nil {
			t.Error("Expected error for empty payload")
		}
	})

	t.Run("Non-JSON body is an error", func(t *testing.T) {
		if _, err := parseResponse([]byte(`<html>blocked</html>`)); err == nil {
			t.Error("Expected error for HTML body")
		}
	})
}

func TestAttempt_TranslatesText(t *testing.T) {
	var gotClient, gotSL, gotTL, gotQ string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClient = r.URL.Query().Get("client")
		gotSL = r.URL.Query().Get("sl")
		gotTL = r.URL.Query().Get("tl")
		gotQ = r.URL.Query().Get("q")
		w.Write([]byte(`[[["你好","hello",null,null,1]],null,"en"]`))
	}))
	defer server.Close()

	p := NewProvider(testClient(t))
	p.apiURL = server.URL

	res, err := p.Attempt(context.Background(), translate.Query{Text: "hello", Source: "en", Target: "zh"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if res.Translated != "你好" {
		t.Errorf("Translated = %q", res.Translated)
	}
	if res.Provider != ProviderName {
		t.Errorf("Provider = %q", res.Provider)
	}
	if gotClient != "gtx" {
		t.Errorf("client param = %q, want gtx", gotClient)
	}
	if gotSL != "en" || gotTL != "zh-CN" {
		t.Errorf("Language params = %q -> %q, want en -> zh-CN", gotSL, gotTL)
	}
	if gotQ != "hello" {
		t.Errorf("Query text = %q", gotQ)
	}
}

func TestAttempt_SectionMarkerPassesThrough(t *testing.T) {
	p := NewProvider(testClient(t))
	p.apiURL = "http://127.0.0.1:0" // must never be contacted

	res, err := p.Attempt(context.Background(), translate.Query{Text: "[Chorus]", Target: "zh"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Translated != "[Chorus]" {
		t.Errorf("Section markers must pass through verbatim, got %q", res.Translated)
	}
}

func TestAttempt_EmbeddedMarkerTravelsWithBody(t *testing.T) {
	// Only a query that is entirely a marker skips the vendor; a marker
	// inside a larger body is sent along with it.
	var gotQ string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQ = r.URL.Query().Get("q")
		w.Write([]byte(`[[["【副歌】你好","[Chorus]\nhello",null,null,1]],null,"en"]`))
	}))
	defer server.Close()

	p := NewProvider(testClient(t))
	p.apiURL = server.URL

	body := "[Chorus]\nhello"
	if _, err := p.Attempt(context.Background(), translate.Query{Text: body, Target: "zh"}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if gotQ != body {
		t.Errorf("Query text = %q, want the full body %q", gotQ, body)
	}
}

func TestAttempt_UnexpectedBodyIsParseFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>captcha</html>`))
	}))
	defer server.Close()

	p := NewProvider(testClient(t))
	p.apiURL = server.URL

	_, err := p.Attempt(context.Background(), translate.Query{Text: "hello", Target: "zh"})
	if err == nil {
		t.Fatal("Expected error")
	}
	if kind := chain.KindOf(err); kind != chain.KindParse {
		t.Errorf("Expected parse failure, got %s", kind)
	}
}

func TestAttempt_EmptyTextIsNotFound(t *testing.T) {
	p := NewProvider(testClient(t))

	_, err := p.Attempt(context.Background(), translate.Query{Text: "   ", Target: "zh"})
	if err == nil {
		t.Fatal("Expected error")
	}
	if kind := chain.KindOf(err); kind != chain.KindNotFound {
		t.Errorf("Expected not_found, got %s", kind)
	}
}
