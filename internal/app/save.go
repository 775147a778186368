// internal/app/save.go
package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"forum-ingestion/internal/render"
	"forum-ingestion/internal/storage"
)

const (
	FormatHTML = "html"
	FormatJSON = "json"
)

// DefaultOutputPath mirrors the historical result-<id>.html naming.
func DefaultOutputPath(dir string, threadID int64, format string) string {
	return filepath.Join(dir, fmt.Sprintf("result-%d.%s", threadID, format))
}

// SaveThread crawls a thread and writes it to path. Nothing is written
// unless the whole crawl succeeds.
func (p *Pipeline) SaveThread(ctx context.Context, threadID int64, path, format string) error {
	if format != FormatHTML && format != FormatJSON {
		return fmt.Errorf("unsupported format %q", format)
	}

	p.Log.WithField("thread_id", threadID).Info("getting comments")
	thread, err := p.Service.ScrapeThread(ctx, threadID)
	if err != nil {
		return fmt.Errorf("downloading thread %d: %w", threadID, err)
	}

	var data []byte
	switch format {
	case FormatJSON:
		data, err = render.RenderJSON(thread)
		if err != nil {
			return err
		}
	default:
		html, err := p.Renderer.Render(thread.ID, thread.Comments)
		if err != nil {
			return err
		}
		data = []byte(html)
	}

	p.Log.WithFields(logrus.Fields{
		"thread_id": threadID,
		"run_id":    thread.RunID,
		"comments":  len(thread.Comments),
		"path":      path,
	}).Info("saving comments to file")

	if err := storage.WriteFile(path, data); err != nil {
		return fmt.Errorf("saving thread %d: %w", threadID, err)
	}
	return nil
}
