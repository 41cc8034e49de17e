package translate

import "strings"

// SplitChunks packs paragraphs greedily into chunks below max bytes each, so
// long lyrics fit vendor request limits without splitting a paragraph.
// Paragraph order is preserved; the caller rejoins translated chunks with a
// paragraph separator. A chunk is atomic: if translating any chunk fails,
// the whole provider attempt fails and the chain falls back.
func SplitChunks(text string, max int) []string {
	if len(text) <= max {
		return []string{text}
	}

	paragraphs := strings.Split(text, "\n\n")
	var chunks []string
	var current strings.Builder

	for _, para := range paragraphs {
		if current.Len() > 0 && current.Len()+len(para)+2 > max {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}

	return chunks
}

// JoinChunks reassembles translated chunks in original order.
func JoinChunks(chunks []string) string {
	return strings.Join(chunks, "\n\n")
}
