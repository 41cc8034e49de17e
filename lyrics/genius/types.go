package genius

// searchResponse is the shape of /api/search/multi results. Only the fields
// needed to locate the song page URL are mapped.
type searchResponse struct {
	Response struct {
		Sections []searchSection `json:"sections"`
	} `json:"response"`
}

type searchSection struct {
	Type string      `json:"type"`
	Hits []searchHit `json:"hits"`
}

type searchHit struct {
	Result struct {
		URL string `json:"url"`
	} `json:"result"`
}

// jsonLD is the linked-data block embedded in song pages. The lyrics text
// lives under recordingOf.lyrics.text when present.
type jsonLD struct {
	RecordingOf struct {
		Lyrics struct {
			Text string `json:"text"`
		} `json:"lyrics"`
	} `json:"recordingOf"`
}
