// internal/handler/http/thread_handler.go
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"forum-ingestion/internal/models"
	"forum-ingestion/internal/parser"
	"forum-ingestion/internal/scraper"
)

// A crawl waits between pages, so big threads take minutes.
const scrapeTimeout = 30 * time.Minute

type ThreadRenderer interface {
	Render(threadID int64, comments []models.Comment) (string, error)
}

type ThreadHandler struct {
	svc      scraper.ScraperService
	renderer ThreadRenderer
}

func NewThreadHandler(svc scraper.ScraperService, renderer ThreadRenderer) *ThreadHandler {
	return &ThreadHandler{svc: svc, renderer: renderer}
}

// GetThread godoc
// @Summary Get all comments of a forum thread
// @Description Crawls every page of the thread and returns its comments in posting order
// @Tags thread
// @Produce json
// @Produce html
// @Param thread_id query int true "Forum thread (topic) ID"
// @Param format query string false "Response format: json (default) or html"
// @Success 200 {object} models.ThreadResponse
// @Failure 400 {object} models.HTTPError
// @Failure 404 {object} models.HTTPError
// @Failure 500 {object} models.HTTPError
// @Failure 502 {object} models.HTTPError
// @Router /thread [get]
func (h *ThreadHandler) GetThread(c echo.Context) error {
	raw := c.QueryParam("thread_id")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing `thread_id` parameter")
	}
	threadID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || threadID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid `thread_id`")
	}

	format := c.QueryParam("format")
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "html" {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid `format`, must be json or html")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), scrapeTimeout)
	defer cancel()

	startTime := time.Now()

	thread, err := h.svc.ScrapeThread(ctx, threadID)
	if err != nil {
		var notFound *parser.CommentCountNotFoundError
		if errors.As(err, &notFound) {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("thread %d not found: %v", threadID, err))
		}
		return echo.NewHTTPError(http.StatusBadGateway, fmt.Sprintf("scrape error: %v", err))
	}

	if format == "html" {
		html, err := h.renderer.Render(thread.ID, thread.Comments)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("render error: %v", err))
		}
		return c.HTML(http.StatusOK, html)
	}

	return c.JSON(http.StatusOK, models.ThreadResponse{
		Thread: thread,
		Meta: models.ThreadMeta{
			CommentCount:     len(thread.Comments),
			ProcessingTimeMs: time.Since(startTime).Milliseconds(),
		},
	})
}
