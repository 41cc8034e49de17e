package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/oGsLP/lyrics-download-and-translate/chain"
	"github.com/oGsLP/lyrics-download-and-translate/config"
	"github.com/oGsLP/lyrics-download-and-translate/httpclient"
	"github.com/oGsLP/lyrics-download-and-translate/logcolors"
	"github.com/oGsLP/lyrics-download-and-translate/lyrics"
	"github.com/oGsLP/lyrics-download-and-translate/lyrics/azlyrics"
	"github.com/oGsLP/lyrics-download-and-translate/lyrics/genius"
	"github.com/oGsLP/lyrics-download-and-translate/lyrics/letras"
	"github.com/oGsLP/lyrics-download-and-translate/lyrics/musixmatch"
	"github.com/oGsLP/lyrics-download-and-translate/lyrics/youtube"
	"github.com/oGsLP/lyrics-download-and-translate/normalize"
	"github.com/oGsLP/lyrics-download-and-translate/output"
	"github.com/oGsLP/lyrics-download-and-translate/translate"
	"github.com/oGsLP/lyrics-download-and-translate/translate/baidu"
	"github.com/oGsLP/lyrics-download-and-translate/translate/google"
	"github.com/oGsLP/lyrics-download-and-translate/translate/youdao"
)

// lyricsProviders returns the lyrics chain in priority order. Registration
// is explicit and fixed; there is no dynamic discovery and no health-based
// reordering across runs.
func lyricsProviders(client *httpclient.Client) []lyrics.Provider {
	return []lyrics.Provider{
		genius.NewProvider(client),
		azlyrics.NewProvider(client),
		musixmatch.NewProvider(client),
		letras.NewProvider(client),
		youtube.NewProvider(client),
	}
}

// translators returns the translation chain in priority order. Credentialed
// vendors come first; Google needs no credentials and is the tail.
func translators(client *httpclient.Client, cfg config.Config) []translate.Provider {
	return []translate.Provider{
		youdao.NewProvider(client, cfg.Translation.Youdao),
		baidu.NewProvider(client, cfg.Translation.Baidu),
		google.NewProvider(client),
	}
}

func sourceNames() []string {
	var names []string
	for _, p := range lyricsProviders(nil) {
		names = append(names, p.Name())
	}
	return names
}

// runDownload fetches, normalizes and saves lyrics for one song.
func runDownload(ctx context.Context, cfg config.Config, artist, title, outputDir, source string) error {
	client := httpclient.New(cfg, config.LoadEnv())
	providers := lyricsProviders(client)

	if source != "" {
		selected := selectProvider(providers, source)
		if selected == nil {
			return fmt.Errorf("unknown source %q (available: %s)", source, strings.Join(sourceNames(), ", "))
		}
		providers = []lyrics.Provider{selected}
	}

	query := lyrics.Query{Artist: artist, Title: title}
	log.Infof("%s Searching lyrics for: %s - %s", logcolors.LogLyrics, artist, title)

	result, err := chain.Run(ctx, query, providers)
	if err != nil {
		return fmt.Errorf("lyrics not found: %w", err)
	}

	normalized := normalize.Normalize(result.Payload.RawText)
	if normalized.Body == "" {
		return fmt.Errorf("lyrics from %s normalized to empty text", result.Provider)
	}

	path, err := output.WriteLyrics(outputDir, artist, title, result.Provider, normalized)
	if err != nil {
		return err
	}

	log.Infof("%s Lyrics saved (%d paragraphs, source: %s): %s",
		logcolors.LogSuccess, len(normalized.Paragraphs), result.Provider, path)
	return nil
}

// runTranslate reads a lyrics file, translates it and saves a side-by-side
// original/translated file.
func runTranslate(ctx context.Context, cfg config.Config, inputPath, outputDir, target string) error {
	file, err := output.ParseLyricsFile(inputPath)
	if err != nil {
		return err
	}
	if outputDir == "" {
		outputDir = filepath.Dir(inputPath)
	}

	log.Infof("%s Translating: %s - %s (%d characters)",
		logcolors.LogTranslate, file.Artist, file.Title, len(file.Body))

	normalized := normalize.Normalize(file.Body)

	client := httpclient.New(cfg, config.LoadEnv())
	query := translate.Query{Text: normalized.Body, Source: "auto", Target: target}

	result, err := chain.Run(ctx, query, translators(client, cfg))
	if err != nil {
		return fmt.Errorf("translation unavailable: %w", err)
	}

	translated := strings.Split(result.Payload.Translated, "\n\n")

	path, err := output.WriteTranslated(outputDir, file.Artist, file.Title, normalized.Paragraphs, translated)
	if err != nil {
		return err
	}

	log.Infof("%s Translation saved (provider: %s): %s", logcolors.LogSuccess, result.Provider, path)
	return nil
}

func selectProvider(providers []lyrics.Provider, name string) lyrics.Provider {
	for _, p := range providers {
		if strings.EqualFold(p.Name(), name) {
			return p
		}
	}
	return nil
}
