package lyrics

import (
	"github.com/oGsLP/lyrics-download-and-translate/chain"
	"github.com/oGsLP/lyrics-download-and-translate/httpclient"
)

// FetchError classifies a failed page fetch for a provider: a 404 means the
// site has no entry for the song, anything else at the transport level is a
// network failure.
func FetchError(provider string, err error) *chain.Error {
	if httpclient.IsNotFound(err) {
		return chain.NewError(provider, chain.KindNotFound, "page not found", err)
	}
	return chain.NewError(provider, chain.KindNetwork, "request failed", err)
}
