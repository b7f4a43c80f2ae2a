package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/cbsinteractive/video-search-client/client"
	"github.com/cbsinteractive/video-search-client/config"
	"github.com/cbsinteractive/video-search-client/exceptions"
	"github.com/cbsinteractive/video-search-client/job"
	"github.com/cbsinteractive/video-search-client/playback"
	"github.com/cbsinteractive/video-search-client/search"
	"github.com/cbsinteractive/video-search-client/upload"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := cfg.Logger()
	if err != nil {
		return err
	}

	reporter, err := cfg.Reporter(logger)
	if err != nil {
		return err
	}

	app := newApp(cfg, logger, reporter)
	return app.rootCmd().Execute()
}

// app wires the client's components together once and shares them across
// commands.
type app struct {
	cfg      *config.Config
	log      *logrus.Logger
	reporter exceptions.Reporter

	api      client.Client
	uploader *upload.Uploader
	registry *job.Registry
	creation *job.CreationService
	searcher *search.Orchestrator
	binder   *playback.Binder
}

func newApp(cfg *config.Config, log *logrus.Logger, reporter exceptions.Reporter) *app {
	api := &client.DefaultClient{
		BaseURL: cfg.BaseURL(),
		Client:  &http.Client{Timeout: cfg.HTTPTimeout},
		Tokens:  cfg.Tokens(),
		Log:     log,
	}
	uploader := &upload.Uploader{Log: log}
	registry := &job.Registry{}

	return &app{
		cfg:      cfg,
		log:      log,
		reporter: reporter,
		api:      api,
		uploader: uploader,
		registry: registry,
		creation: &job.CreationService{
			API:      api,
			Uploader: uploader,
			Registry: registry,
			Log:      log,
			Reporter: reporter,
		},
		searcher: &search.Orchestrator{
			API:      api,
			Index:    cfg.SearchIndex,
			Log:      log,
			Reporter: reporter,
		},
		binder: &playback.Binder{API: api, Log: log},
	}
}
