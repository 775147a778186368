// internal/app/app.go
package app

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	echoSwagger "github.com/swaggo/echo-swagger"

	"forum-ingestion/internal/client"
	"forum-ingestion/internal/config"
	"forum-ingestion/internal/models"
	"forum-ingestion/internal/parser"
	"forum-ingestion/internal/render"
	"forum-ingestion/internal/router"
	"forum-ingestion/internal/scraper"
	"forum-ingestion/internal/session"
	"forum-ingestion/pkg/utils"
)

// Pipeline holds the crawl components shared by the CLI and the server.
type Pipeline struct {
	Config    *config.Config
	Log       *logrus.Logger
	Client    *client.ForumClient
	Extractor parser.Extractor
	Service   scraper.ScraperService
	Renderer  *render.Renderer
}

func NewPipeline(cfg *config.Config, log *logrus.Logger) (*Pipeline, error) {
	httpClient, err := utils.NewBrowserClient(utils.BrowserClientOptions{
		Headers:              cfg.Headers,
		ProxyURLs:            cfg.ProxyURLs,
		Timeout:              cfg.RequestTimeout,
		MaxRequestsPerSecond: cfg.MaxRequestsPerS,
		TLSFingerprint:       cfg.TLSFingerprint,
		InsecureSkipVerify:   cfg.InsecureTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	forumClient, err := client.NewForumClient(cfg, httpClient, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create forum client: %w", err)
	}

	bootstrapURL := forumClient.GetPageURL(models.PageWindow{
		ThreadID:    cfg.BootstrapThread,
		PageSize:    config.MinPageSize,
		StartOffset: 0,
	})
	sessions := session.NewManager(httpClient, bootstrapURL, log)

	var extractor parser.Extractor
	switch cfg.Extractor {
	case config.ExtractorDOM:
		extractor = parser.NewDOMExtractor(cfg.Location)
	default:
		extractor = parser.NewRegexExtractor(cfg.Location)
	}

	service := scraper.NewScraperService(forumClient, extractor, sessions, scraper.Options{
		PageSize:     cfg.PageSize,
		RequestDelay: cfg.RequestDelay,
	}, log)

	return &Pipeline{
		Config:    cfg,
		Log:       log,
		Client:    forumClient,
		Extractor: extractor,
		Service:   service,
		Renderer:  render.NewRenderer(),
	}, nil
}

type App struct {
	Config   *config.Config
	Echo     *echo.Echo
	Pipeline *Pipeline
}

func Initialize() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := NewLogger(cfg)
	if err != nil {
		return nil, err
	}

	pipeline, err := NewPipeline(cfg, log)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	router.NewRouter(e, pipeline.Service, pipeline.Renderer)

	return &App{
		Config:   cfg,
		Echo:     e,
		Pipeline: pipeline,
	}, nil
}

func (a *App) Start() error {
	port := a.Config.ServerPort
	if port == "" {
		port = "8080"
	}
	return a.Echo.Start(":" + port)
}
