// internal/scraper/service.go
package scraper

import (
	"context"
	"fmt"
	"slices"
	"time"

	"forum-ingestion/internal/client"
	"forum-ingestion/internal/config"
	"forum-ingestion/internal/models"
	"forum-ingestion/internal/parser"
	"forum-ingestion/internal/session"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// countProbePageSize is the smallest window the forum serves; the probe only
// needs the page header.
const countProbePageSize = config.MinPageSize

// ScraperService defines the interface for crawling forum threads
type ScraperService interface {
	FetchAllFragments(ctx context.Context, threadID int64) ([]string, error)
	ScrapeThread(ctx context.Context, threadID int64) (models.Thread, error)
}

// SessionManager fills an empty cookie jar.
type SessionManager interface {
	EnsureSession(ctx context.Context, jar session.Jar) (session.Jar, error)
}

type Options struct {
	PageSize     int
	RequestDelay time.Duration
}

type scraperService struct {
	client    client.ForumClientInterface
	extractor parser.Extractor
	sessions  SessionManager
	pageSize  int
	delay     time.Duration
	log       *logrus.Logger

	// sleep waits between page fetches; replaced in tests.
	sleep func(ctx context.Context, d time.Duration) error

	// running holds a token while a crawl is in progress. One at a time.
	running chan struct{}
}

func NewScraperService(
	client client.ForumClientInterface,
	extractor parser.Extractor,
	sessions SessionManager,
	opts Options,
	log *logrus.Logger,
) ScraperService {
	return newScraperService(client, extractor, sessions, opts, log)
}

func newScraperService(
	client client.ForumClientInterface,
	extractor parser.Extractor,
	sessions SessionManager,
	opts Options,
	log *logrus.Logger,
) *scraperService {
	return &scraperService{
		client:    client,
		extractor: extractor,
		sessions:  sessions,
		pageSize:  config.ClampPageSize(opts.PageSize),
		delay:     opts.RequestDelay,
		log:       log,
		sleep:     sleepContext,
		running:   make(chan struct{}, 1),
	}
}

// acquire waits for the current run to finish, or for ctx to end.
func (s *scraperService) acquire(ctx context.Context) error {
	select {
	case s.running <- struct{}{}:
	case <-ctx.Done():
		return fmt.Errorf("waiting for running crawl: %w", ctx.Err())
	}
	if err := ctx.Err(); err != nil {
		s.release()
		return err
	}
	return nil
}

func (s *scraperService) release() {
	<-s.running
}

// run is the state of one crawl. The jar is filled once and then only read.
type run struct {
	id       string
	threadID int64
	jar      session.Jar
	count    int
	log      *logrus.Entry
}

func (s *scraperService) startRun(ctx context.Context, threadID int64) (*run, error) {
	r := &run{
		id:       uuid.NewString(),
		threadID: threadID,
	}
	r.log = s.log.WithFields(logrus.Fields{"thread_id": threadID, "run_id": r.id})

	jar, err := s.sessions.EnsureSession(ctx, session.Jar{})
	if err != nil {
		return nil, fmt.Errorf("ensure session: %w", err)
	}
	r.jar = jar
	r.log.WithField("cookies", len(jar)).Debug("session ready")
	return r, nil
}

// FetchAllFragments returns the raw comment fragments of a thread in the
// order the forum emits them, newest first.
func (s *scraperService) FetchAllFragments(ctx context.Context, threadID int64) ([]string, error) {
	if err := s.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.release()

	r, err := s.startRun(ctx, threadID)
	if err != nil {
		return nil, err
	}
	return s.fetchAllFragments(ctx, r)
}

func (s *scraperService) fetchAllFragments(ctx context.Context, r *run) ([]string, error) {
	probe, err := s.client.GetPage(ctx, r.jar, models.PageWindow{
		ThreadID:    r.threadID,
		PageSize:    countProbePageSize,
		StartOffset: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch comment count: %w", err)
	}

	r.count, err = s.extractor.ParseCommentCount(r.threadID, probe)
	if err != nil {
		return nil, fmt.Errorf("parse comment count: %w", err)
	}
	r.log.WithField("comment_count", r.count).Info("getting comments")

	var fragments []string
	for offset := 0; offset < r.count; offset += s.pageSize {
		page, err := s.client.GetPage(ctx, r.jar, models.PageWindow{
			ThreadID:    r.threadID,
			PageSize:    s.pageSize,
			StartOffset: offset,
		})
		if err != nil {
			return nil, fmt.Errorf("fetch comments at offset %d: %w", offset, err)
		}

		pageFragments := s.extractor.SplitFragments(page)
		fragments = append(fragments, pageFragments...)

		r.log.WithFields(logrus.Fields{
			"offset":    offset,
			"fragments": len(pageFragments),
			"total":     len(fragments),
		}).Debug("page fetched")

		if offset+s.pageSize < r.count {
			if err := s.sleep(ctx, s.delay); err != nil {
				return nil, err
			}
		}
	}

	return fragments, nil
}

// ScrapeThread crawls a whole thread and returns its comments in ascending
// order. Fragments are accumulated newest first across all pages and the
// complete list is reversed once; any fragment that fails to parse aborts
// the run.
func (s *scraperService) ScrapeThread(ctx context.Context, threadID int64) (models.Thread, error) {
	if err := s.acquire(ctx); err != nil {
		return models.Thread{}, err
	}
	defer s.release()

	startTime := time.Now()

	r, err := s.startRun(ctx, threadID)
	if err != nil {
		return models.Thread{}, err
	}

	fragments, err := s.fetchAllFragments(ctx, r)
	if err != nil {
		return models.Thread{}, err
	}
	slices.Reverse(fragments)

	comments := make([]models.Comment, 0, len(fragments))
	for i, fragment := range fragments {
		comment, err := s.extractor.ParseFragment(fragment)
		if err != nil {
			return models.Thread{}, fmt.Errorf("parse comment %d of thread %d: %w", i+1, threadID, err)
		}
		comments = append(comments, comment)
	}

	r.log.WithFields(logrus.Fields{
		"comments": len(comments),
		"elapsed":  time.Since(startTime).String(),
	}).Info("thread scraped")

	return models.Thread{
		ID:            threadID,
		RunID:         r.id,
		DeclaredCount: r.count,
		FetchedAt:     time.Now(),
		Comments:      comments,
	}, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
