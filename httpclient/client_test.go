package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/oGsLP/lyrics-download-and-translate/config"
)

func testClient(maxRetries int) *Client {
	return &Client{
		http:       &http.Client{Timeout: 5 * time.Second},
		maxRetries: maxRetries,
		retryDelay: time.Millisecond,
		limiter:    rate.NewLimiter(rate.Inf, 1),
	}
}

func TestGet_RetriesTransientFailures(t *testing.T) {
	t.Run("Succeeds within retry budget", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls < 3 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			w.Write([]byte("payload"))
		}))
		defer server.Close()

		body, err := testClient(3).Get(context.Background(), server.URL, nil)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if string(body) != "payload" {
			t.Errorf("Expected payload, got %q", body)
		}
		if calls != 3 {
			t.Errorf("Expected 3 attempts, got %d", calls)
		}
	})

	t.Run("Fails after exceeding retry budget", func(t *testing.T) {
		calls := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := testClient(3).Get(context.Background(), server.URL, nil)
		if err == nil {
			t.Fatal("Expected error after exhausting retries")
		}
		if calls != 3 {
			t.Errorf("Expected exactly 3 attempts, got %d", calls)
		}
		if !strings.Contains(err.Error(), "after 3 attempts") {
			t.Errorf("Error should mention the attempt budget: %v", err)
		}
	})
}

func TestGet_SemanticFailuresAreNotRetried(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := testClient(3).Get(context.Background(), server.URL, nil)
	if err == nil {
		t.Fatal("Expected error for 404")
	}
	if calls != 1 {
		t.Errorf("404 must not be retried, got %d attempts", calls)
	}
	if !IsNotFound(err) {
		t.Errorf("Expected IsNotFound true for: %v", err)
	}
}

func TestGet_SetsBrowserIdentityAndHeaders(t *testing.T) {
	var gotUA, gotLang string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotLang = r.Header.Get("Accept-Language")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	_, err := testClient(1).Get(context.Background(), server.URL, map[string]string{"Accept-Language": "en-US"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(gotUA, "Mozilla/5.0") {
		t.Errorf("Expected browser-like User-Agent, got %q", gotUA)
	}
	if gotLang != "en-US" {
		t.Errorf("Expected custom header to pass through, got %q", gotLang)
	}
}

func TestPostForm_SendsEncodedBody(t *testing.T) {
	var gotContentType, gotQ string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		r.ParseForm()
		gotQ = r.PostFormValue("q")
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	form := url.Values{}
	form.Set("q", "hello world")

	_, err := testClient(1).PostForm(context.Background(), server.URL, form)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if gotContentType != "application/x-www-form-urlencoded" {
		t.Errorf("Unexpected content type %q", gotContentType)
	}
	if gotQ != "hello world" {
		t.Errorf("Expected form value to round-trip, got %q", gotQ)
	}
}

func TestProxyFunc_ConfigWinsOverEnvironment(t *testing.T) {
	cfgProxy := config.ProxyConfig{
		Enabled: true,
		HTTP:    "http://config-proxy:8080",
		HTTPS:   "http://config-proxy-tls:8080",
	}
	env := config.Env{
		HTTPProxy:  "http://env-proxy:3128",
		HTTPSProxy: "http://env-proxy-tls:3128",
	}

	proxy := proxyFunc(cfgProxy, env)

	httpsReq, _ := http.NewRequest("GET", "https://example.com/", nil)
	u, err := proxy(httpsReq)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if u == nil || u.Host != "config-proxy-tls:8080" {
		t.Errorf("Config proxy must win over environment, got %v", u)
	}

	httpReq, _ := http.NewRequest("GET", "http://example.com/", nil)
	u, err = proxy(httpReq)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if u == nil || u.Host != "config-proxy:8080" {
		t.Errorf("Config proxy must win over environment, got %v", u)
	}
}

func TestProxyFunc_HTTPSFallsBackToHTTPProxy(t *testing.T) {
	proxy := proxyFunc(config.ProxyConfig{Enabled: true, HTTP: "http://only:8080"}, config.Env{})

	httpsReq, _ := http.NewRequest("GET", "https://example.com/", nil)
	u, err := proxy(httpsReq)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if u == nil || u.Host != "only:8080" {
		t.Errorf("HTTPS should fall back to the HTTP proxy, got %v", u)
	}
}

func TestTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"500 status", &StatusError{StatusCode: 500}, true},
		{"429 status", &StatusError{StatusCode: 429}, true},
		{"404 status", &StatusError{StatusCode: 404}, false},
		{"403 status", &StatusError{StatusCode: 403}, false},
		{"url error", &url.Error{Op: "Get", URL: "http://x", Err: context.DeadlineExceeded}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := transient(tt.err); got != tt.want {
				t.Errorf("transient(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
