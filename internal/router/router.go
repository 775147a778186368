// internal/router/router.go
package router

import (
	"forum-ingestion/internal/handler/http"
	"forum-ingestion/internal/scraper"

	"github.com/labstack/echo/v4"
)

func NewRouter(e *echo.Echo, svc scraper.ScraperService, renderer http.ThreadRenderer) {
	thr := http.NewThreadHandler(svc, renderer)

	e.GET("/thread", thr.GetThread)
}
