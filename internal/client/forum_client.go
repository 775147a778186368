// internal/client/forum_client.go
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"forum-ingestion/internal/config"
	"forum-ingestion/internal/models"
	"forum-ingestion/internal/session"
	"forum-ingestion/pkg/utils"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding"
)

// FetchResult is the outcome of a single GET: either the page text or the
// target of a redirect, never both.
type FetchResult struct {
	HTML     string
	Location string
}

type ForumClient struct {
	doer         session.Doer
	baseURL      string
	threadPath   string
	encoding     encoding.Encoding
	maxRedirects int
	log          *logrus.Logger
}

func NewForumClient(cfg *config.Config, doer session.Doer, log *logrus.Logger) (*ForumClient, error) {
	if doer == nil {
		return nil, fmt.Errorf("an HTTP client is required")
	}

	enc, err := utils.LookupEncoding(cfg.SourceEncoding)
	if err != nil {
		return nil, err
	}

	maxRedirects := cfg.MaxRedirects
	if maxRedirects < 0 {
		maxRedirects = 0
	}

	return &ForumClient{
		doer:         doer,
		baseURL:      cfg.ForumBaseURL,
		threadPath:   cfg.ThreadPath,
		encoding:     enc,
		maxRedirects: maxRedirects,
		log:          log,
	}, nil
}

func (c *ForumClient) GetPageURL(window models.PageWindow) string {
	return fmt.Sprintf("%s%s?na_start=%d&na_step=%d&t=%d",
		c.baseURL, c.threadPath, window.StartOffset, window.PageSize, window.ThreadID)
}

// Fetch performs one GET with the jar's cookies. A 200 response is
// decompressed and transcoded into UTF-8; a 3xx response with a Location
// header yields the resolved target. Everything else is a *TransportError.
func (c *ForumClient) Fetch(ctx context.Context, rawURL string, jar session.Jar) (FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return FetchResult{}, &TransportError{URL: rawURL, Err: err}
	}
	if len(jar) > 0 {
		req.Header.Set("Cookie", jar.Header())
	}

	c.log.WithField("url", rawURL).Info("getting URL")

	resp, err := c.doer.Do(req)
	if err != nil {
		return FetchResult{}, &TransportError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		text, err := utils.DecodeBody(resp.Body, resp.Header.Get("Content-Encoding"), c.encoding)
		if err != nil {
			return FetchResult{}, &TransportError{URL: rawURL, Err: err}
		}
		return FetchResult{HTML: text}, nil

	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		location, err := resp.Location()
		if err != nil {
			return FetchResult{}, &TransportError{URL: rawURL, StatusCode: resp.StatusCode}
		}
		io.Copy(io.Discard, resp.Body)
		return FetchResult{Location: location.String()}, nil

	default:
		return FetchResult{}, &TransportError{URL: rawURL, StatusCode: resp.StatusCode}
	}
}

// GetPage fetches one comment window, following at most maxRedirects
// redirects.
func (c *ForumClient) GetPage(ctx context.Context, jar session.Jar, window models.PageWindow) (string, error) {
	pageURL := c.GetPageURL(window)

	target := pageURL
	for hops := 0; ; hops++ {
		result, err := c.Fetch(ctx, target, jar)
		if err != nil {
			return "", err
		}
		if result.Location == "" {
			return result.HTML, nil
		}
		if hops >= c.maxRedirects {
			return "", &RedirectLoopError{URL: pageURL, Hops: hops + 1}
		}

		c.log.WithFields(logrus.Fields{
			"from": target,
			"to":   result.Location,
		}).Debug("following redirect")
		target = result.Location
	}
}
