// Package translate defines the query and result types shared by every
// translation provider. Vendors live in subpackages; request signing is
// entirely their own concern.
package translate

import "github.com/oGsLP/lyrics-download-and-translate/chain"

// Query is one text-translation request. Immutable; constructed once per
// invocation.
type Query struct {
	Text   string
	Source string // language code, "auto" to detect
	Target string // language code, e.g. "zh"
}

// Result pairs the original text with its translation.
type Result struct {
	Original   string
	Translated string
	Provider   string
}

// Provider is the capability every translation vendor implements.
type Provider = chain.Provider[Query, *Result]
