// Package lyrics defines the query and result types shared by every lyrics
// provider. Providers live in subpackages; the ordered chain is assembled
// explicitly at startup.
package lyrics

import "github.com/oGsLP/lyrics-download-and-translate/chain"

// Query identifies one song. Immutable; constructed once per invocation.
type Query struct {
	Artist string
	Title  string
}

// Result is the raw output of a successful lyrics provider. RawText may
// still contain HTML markup; ownership passes to the normalizer.
type Result struct {
	Title   string
	Artist  string
	RawText string
	Source  string
}

// Provider is the capability every lyrics source implements.
type Provider = chain.Provider[Query, *Result]
