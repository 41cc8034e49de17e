package output

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var headerPattern = regexp.MustCompile(`^(.+?)\s+-\s+(.+)$`)

// LyricsFile is a lyrics file read back for translation.
type LyricsFile struct {
	Artist string
	Title  string
	Body   string
}

// ParseLyricsFile reads a file written by WriteLyrics (or any plain lyrics
// text) and recovers artist, title and body. The first line is expected to
// be "Artist - Title"; the body starts after the "=" separator, or after the
// first blank line for headerless files.
func ParseLyricsFile(path string) (*LyricsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lyrics file: %w", err)
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(content, "\n")
	if len(lines) == 0 {
		return nil, fmt.Errorf("empty lyrics file: %s", path)
	}

	file := &LyricsFile{
		Artist: "Unknown Artist",
		Title:  "Unknown Song",
	}
	if m := headerPattern.FindStringSubmatch(strings.TrimSpace(lines[0])); m != nil {
		file.Artist = strings.TrimSpace(m[1])
		file.Title = strings.TrimSpace(m[2])
	}

	bodyStart := 0
	for i, line := range lines {
		if strings.Count(line, "=") > 20 {
			bodyStart = i + 1
		}
	}
	if bodyStart == 0 {
		for i := 1; i < len(lines) && i < 5; i++ {
			if strings.TrimSpace(lines[i]) == "" {
				bodyStart = i + 1
				break
			}
		}
	}

	file.Body = strings.TrimSpace(strings.Join(lines[bodyStart:], "\n"))
	if file.Body == "" {
		return nil, fmt.Errorf("no lyrics text in file: %s", path)
	}
	return file, nil
}
