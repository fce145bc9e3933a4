// Package app wires configuration, clients, services and handlers into
// a runnable application.
package app

import (
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/signum/internal/common"
	"github.com/ternarybob/signum/internal/finviz"
	"github.com/ternarybob/signum/internal/handlers"
	"github.com/ternarybob/signum/internal/httpclient"
	"github.com/ternarybob/signum/internal/marketdata"
	"github.com/ternarybob/signum/internal/pipeline"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	// Domain services
	PipelineService *pipeline.Service

	// HTTP handlers
	PageHandler     *handlers.PageHandler
	PipelineHandler *handlers.PipelineHandler
	StatusHandler   *handlers.StatusHandler
}

// New creates the application: news and price clients from config, the
// pipeline service on top of them, and the HTTP handlers.
func New(config *common.Config, logger arbor.ILogger) (*App, error) {
	newsClient := finviz.NewClient(
		finviz.WithBaseURL(config.News.BaseURL),
		finviz.WithUserAgent(config.News.UserAgent),
		finviz.WithHTTPClient(httpclient.NewDefaultHTTPClient(config.News.RequestTimeout)),
		finviz.WithRateLimit(config.News.RateLimit),
		finviz.WithLogger(logger),
	)

	priceClient := marketdata.NewClient(
		config.Prices.APIToken,
		marketdata.WithBaseURL(config.Prices.BaseURL),
		marketdata.WithHTTPClient(httpclient.NewDefaultHTTPClient(config.Prices.RequestTimeout)),
		marketdata.WithRateLimit(config.Prices.RateLimit),
		marketdata.WithLogger(logger),
	)

	pipelineService := pipeline.NewService(newsClient, priceClient, logger)

	return &App{
		Config:          config,
		Logger:          logger,
		PipelineService: pipelineService,
		PageHandler:     handlers.NewPageHandler(logger),
		PipelineHandler: handlers.NewPipelineHandler(pipelineService, logger, config.Export.DefaultFilename),
		StatusHandler:   handlers.NewStatusHandler(logger),
	}, nil
}
