// Package output persists results as UTF-8 text files. Content is fully
// assembled in memory before the file is created, so a failed run never
// leaves a partial file behind. Existing files are overwritten.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/oGsLP/lyrics-download-and-translate/logcolors"
	"github.com/oGsLP/lyrics-download-and-translate/normalize"
)

const (
	headerRule    = "=================================================="  // 50 chars
	paragraphRule = "------------------------------"                      // 30 chars
)

var illegalFilenameChars = strings.NewReplacer(
	"<", "", ">", "", ":", "", "\"", "", "/", "",
	"\\", "", "|", "", "?", "", "*", "",
)

// SanitizeFilename removes characters that are illegal in file names.
func SanitizeFilename(s string) string {
	return strings.TrimSpace(illegalFilenameChars.Replace(s))
}

// LyricsFilename derives the output name for plain lyrics.
func LyricsFilename(artist, title string) string {
	return fmt.Sprintf("%s - %s.txt", SanitizeFilename(artist), SanitizeFilename(title))
}

// TranslatedFilename derives the output name for translated lyrics.
func TranslatedFilename(artist, title string) string {
	return fmt.Sprintf("%s - %s (translated chinese).txt", SanitizeFilename(artist), SanitizeFilename(title))
}

// WriteLyrics writes a plain lyrics file and returns its path.
func WriteLyrics(dir, artist, title, source string, lyr normalize.Lyrics) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s\n", artist, title)
	b.WriteString(headerRule + "\n")
	fmt.Fprintf(&b, "Source: %s\n", source)
	b.WriteString(headerRule + "\n\n")
	b.WriteString(lyr.Body)
	b.WriteString("\n")

	return write(dir, LyricsFilename(artist, title), b.String())
}

// WriteTranslated writes a side-by-side original/translated file and returns
// its path. Paragraph order follows the original; each original paragraph is
// paired with the translated paragraph at the same index when one exists.
func WriteTranslated(dir, artist, title string, original, translated []string) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s\n", artist, title)
	b.WriteString(headerRule + "\n")
	b.WriteString("Original Lyrics | 中文翻译\n")
	b.WriteString(headerRule + "\n\n")

	for i, orig := range original {
		if strings.TrimSpace(orig) == "" {
			continue
		}
		b.WriteString("【原文】\n")
		b.WriteString(strings.TrimSpace(orig) + "\n\n")

		if i < len(translated) && strings.TrimSpace(translated[i]) != "" {
			b.WriteString("【翻译】\n")
			b.WriteString(strings.TrimSpace(translated[i]) + "\n\n")
		}

		b.WriteString(paragraphRule + "\n\n")
	}

	return write(dir, TranslatedFilename(artist, title), b.String())
}

func write(dir, filename, content string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	log.Infof("%s Saved to: %s", logcolors.LogOutput, path)
	return path, nil
}
