package main

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"balimatch/server/config"
	"balimatch/server/internal/ai"
	"balimatch/server/internal/api"
	"balimatch/server/internal/criteria"
	"balimatch/server/internal/database"
	"balimatch/server/internal/geography"
	"balimatch/server/internal/processor"
	"balimatch/server/internal/queue"
	"balimatch/server/internal/search"
	"balimatch/server/internal/telegram"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		logger.WithError(err).Fatal("Failed to create database directory")
	}
	logger.Infof("Using database at: %s", cfg.Database.Path)

	store, err := database.NewStore(cfg.Database.Path)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer store.Close()

	logger.Info("Running database migrations...")
	if err := store.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	gormDB, err := gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{})
	if err != nil {
		logger.WithError(err).Fatal("Failed to open gorm handle")
	}

	// The geography graph is built once and shared read-only everywhere.
	graph := geography.NewBaliGraph()

	var completer ai.Completer
	if client := ai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model,
		time.Duration(cfg.OpenAI.Timeout)*time.Second, logger); client != nil {
		completer = client
		logger.Info("Language service enabled")
	} else {
		logger.Info("Language service not configured, using rule-based extraction only")
	}

	extractor := criteria.NewExtractor(completer, graph, logger)
	resolver := search.NewResolver(store, logger, cfg.Search.CandidateLimit, cfg.Search.ResultLimit)
	negotiator := search.NewNegotiator(graph, resolver, store, logger)
	selector := search.NewSelector(completer, logger, cfg.Search.ResultLimit)
	pipeline := search.NewPipeline(extractor, negotiator, selector, logger)

	listingQueue := queue.NewListingQueue(cfg.BatchProcessing.QueueSize, logger)
	listingQueue.Start()
	batchProcessor := processor.NewBatchProcessor(gormDB, listingQueue, cfg, logger)
	batchProcessor.Start()
	defer func() {
		batchProcessor.Stop()
		listingQueue.Close()
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Telegram.BotToken != "" {
		bot := telegram.NewService(cfg.Telegram.BotToken, cfg.Telegram.PollTimeout, pipeline, logger)
		go bot.Run(ctx)
		logger.Info("Telegram poller started")
	} else {
		logger.Info("Telegram bot token not configured, transport disabled")
	}

	handler := api.NewHandler(store, listingQueue, pipeline, logger)
	router := gin.Default()
	api.SetupRoutes(router, handler)

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
