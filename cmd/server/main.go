package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/Egnoel/habitQuest/internal/config"
	"github.com/Egnoel/habitQuest/internal/logging"
	"github.com/Egnoel/habitQuest/internal/progression"
	"github.com/Egnoel/habitQuest/internal/serverapp"
	"github.com/Egnoel/habitQuest/internal/tip"
)

func main() {
	cfg, err := config.Load("habitquest.yml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(os.Getenv("HABITQUEST_DEV") != "")
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	var tips progression.TipFetcher
	if cfg.Tip.Enabled {
		fetcher, err := tip.NewGenAI(context.Background(), os.Getenv("GEMINI_API_KEY"), cfg.Tip.Model, cfg.Tip.FallbackText)
		if err != nil {
			logger.Warnw("tip fetcher unavailable, using fallback text", "error", err)
			tips = tip.Static{Text: cfg.Tip.FallbackText}
		} else {
			tips = fetcher
		}
	}

	handler, _, err := serverapp.NewHandler(serverapp.Options{
		Config: cfg,
		Logger: logger,
		Tips:   tips,
	})
	if err != nil {
		logger.Fatalw("build server", "error", err)
	}

	logger.Infow("listening", "addr", cfg.Server.Addr)
	if err := http.ListenAndServe(cfg.Server.Addr, handler); err != nil {
		logger.Fatalw("server stopped", "error", err)
	}
}
