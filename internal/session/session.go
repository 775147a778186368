// Package session obtains and replays the forum's session cookies.
package session

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Jar maps cookie names to values. One jar belongs to one crawl run; it is
// filled once by the bootstrap request and only read afterwards.
type Jar map[string]string

// Header renders the jar as a Cookie header value, names in sorted order.
func (j Jar) Header() string {
	names := make([]string, 0, len(j))
	for name := range j {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+"="+j[name])
	}
	return strings.Join(parts, "; ")
}

// Doer performs a single HTTP exchange.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Manager bootstraps session cookies with one request against a fixed URL.
type Manager struct {
	doer         Doer
	bootstrapURL string
	log          *logrus.Logger
}

func NewManager(doer Doer, bootstrapURL string, log *logrus.Logger) *Manager {
	return &Manager{
		doer:         doer,
		bootstrapURL: bootstrapURL,
		log:          log,
	}
}

// EnsureSession returns jar unchanged when it already holds cookies.
// Otherwise it issues the bootstrap request and merges every Set-Cookie
// entry into a copy of jar. A response without cookies is not an error;
// the forum serves public threads without a session too.
func (m *Manager) EnsureSession(ctx context.Context, jar Jar) (Jar, error) {
	if len(jar) > 0 {
		return jar, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.bootstrapURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating session request: %w", err)
	}

	resp, err := m.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("session bootstrap %s: %w", m.bootstrapURL, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	merged := make(Jar, len(jar))
	for k, v := range jar {
		merged[k] = v
	}
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "" || cookie.Value == "" {
			continue
		}
		merged[cookie.Name] = cookie.Value
	}

	m.log.WithFields(logrus.Fields{
		"url":     m.bootstrapURL,
		"status":  resp.StatusCode,
		"cookies": len(merged),
	}).Debug("session bootstrapped")

	return merged, nil
}
