// internal/client/errors.go
package client

import (
	"fmt"
)

// TransportError reports a fetch that produced neither a page nor a
// redirect. StatusCode is zero when no response was received.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: unexpected status code %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// RedirectLoopError reports a redirect chain longer than the configured
// bound. URL is the page originally requested.
type RedirectLoopError struct {
	URL  string
	Hops int
}

func (e *RedirectLoopError) Error() string {
	return fmt.Sprintf("fetching %s: stopped after %d redirects", e.URL, e.Hops)
}
