package httpsource

import (
	"fmt"
	"net/http"
)

// maxRedirects bounds the hop count on any single request, independent
// of whatever default net/http would otherwise apply.
const maxRedirects = 10

// checkRedirect enforces the hop limit and can be disabled entirely by
// configuring the client with redirects off, in which case Go's
// http.Client treats the first redirect response as a normal response.
func checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	return nil
}
