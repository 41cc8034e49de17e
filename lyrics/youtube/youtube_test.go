package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/oGsLP/lyrics-download-and-translate/chain"
	"github.com/oGsLP/lyrics-download-and-translate/config"
	"github.com/oGsLP/lyrics-download-and-translate/httpclient"
	"github.com/oGsLP/lyrics-download-and-translate/lyrics"
)

func TestVideoIDs(t *testing.T) {
	t.Run("Deduplicates in page order", func(t *testing.T) {
		page := `href="/watch?v=abcdefghijk" href="/watch?v=lmnopqrstuv" href="/watch?v=abcdefghijk"`
		got := videoIDs(page)
		want := []string{"abcdefghijk", "lmnopqrstuv"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("videoIDs = %q, want %q", got, want)
		}
	})

	t.Run("No matches yields nil", func(t *testing.T) {
		if got := videoIDs("<html>no videos</html>"); got != nil {
			t.Errorf("videoIDs = %q, want nil", got)
		}
	})
}

func TestParseDescription(t *testing.T) {
	longVerse := strings.Repeat("lyric line here\n", 10)

	t.Run("Lyrics marker block", func(t *testing.T) {
		page := "Official video\nLyrics:\n" + longVerse + "\n\nSubscribe to the channel"
		got, err := parseDescription(page)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !strings.Contains(got, "lyric line here") {
			t.Errorf("got = %q", got)
		}
		if strings.Contains(got, "Subscribe") {
			t.Errorf("Social plug must be excluded: %q", got)
		}
	})

	t.Run("Marker block too short falls through", func(t *testing.T) {
		page := `Lyrics: la la la`
		if _, err := parseDescription(page); err == nil {
			t.Error("Expected error for a short marker block")
		}
	})

	t.Run("Meta description with section labels", func(t *testing.T) {
		body := "[Verse 1] " + strings.Repeat("words of the song ", 15)
		page := fmt.Sprintf(`<html><head><meta name="description" content="%s"></head></html>`, body)
		got, err := parseDescription(page)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if !strings.HasPrefix(got, "[Verse 1]") {
			t.Errorf("got = %q", got)
		}
	})

	t.Run("Meta description without section labels is rejected", func(t *testing.T) {
		body := strings.Repeat("promo text about the album ", 15)
		page := fmt.Sprintf(`<meta name="description" content="%s">`, body)
		if _, err := parseDescription(page); err == nil {
			t.Error("Expected error for a plain promo description")
		}
	})
}

func TestAttempt_TriesVideosInOrder(t *testing.T) {
	longVerse := strings.Repeat("another lyric line\n", 10)

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/results", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`href="/watch?v=aaaaaaaaaaa" href="/watch?v=bbbbbbbbbbb"`))
	})
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("v") == "aaaaaaaaaaa" {
			w.Write([]byte("just a promo description"))
			return
		}
		w.Write([]byte("Lyrics:\n" + longVerse + "\n\nFollow us"))
	})

	cfg := config.Default()
	cfg.Settings.MaxRetries = 1
	p := NewProvider(httpclient.New(cfg, config.Env{}))
	p.baseURL = server.URL

	res, err := p.Attempt(context.Background(), lyrics.Query{Artist: "FabvL", Title: "Your King"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if res.Source != ProviderName {
		t.Errorf("Source = %q", res.Source)
	}
	if !strings.Contains(res.RawText, "another lyric line") {
		t.Errorf("RawText = %q", res.RawText)
	}
}

func TestAttempt_NoVideosIsNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>nothing</html>"))
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Settings.MaxRetries = 1
	p := NewProvider(httpclient.New(cfg, config.Env{}))
	p.baseURL = server.URL

	_, err := p.Attempt(context.Background(), lyrics.Query{Artist: "Nobody", Title: "Nothing"})
	if err == nil {
		t.Fatal("Expected error")
	}
	if kind := chain.KindOf(err); kind != chain.KindNotFound {
		t.Errorf("Expected not_found, got %s", kind)
	}
}
