package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"booklingo/internal/chunking"
	"booklingo/internal/config"
	"booklingo/internal/document"
	"booklingo/internal/http"
	"booklingo/internal/ingest"
	"booklingo/internal/llm"
	"booklingo/internal/lock"
	"booklingo/internal/orchestrator"
	"booklingo/internal/service"
	"booklingo/internal/status"
	"booklingo/internal/storage"
	"booklingo/internal/worker"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API accepts books, splits them into chapters and adapts each chapter to a target language level.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Booklingo API
//   description: |
//     Upload PDF or EPUB books and have them adapted chapter by chapter
//     to a CEFR level in the configured target language. Processing runs in the
//     background; poll the status endpoint to follow progress.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
//   - multipart/form-data
// produces:
//   - application/json

const shutdownTimeout = 30 * time.Second

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	bookRepo := storage.NewBookRepo(db)
	jobRepo := storage.NewJobRepo(db)

	// Per-book lock backend
	var locker lock.Locker
	switch cfg.LockBackend {
	case "redis":
		redisLocker, err := lock.NewRedis(ctx, cfg.RedisAddr, logger)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer func() {
			_ = redisLocker.Close()
		}()
		locker = redisLocker
	default:
		locker = lock.NewMemory()
	}
	slog.Info("Lock backend ready", "backend", cfg.LockBackend)

	// Create LLM client (external service layer)
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModelName,
		llm.WithTimeout(cfg.LLMTimeout),
		llm.WithMaxRetries(cfg.LLMMaxRetries),
		llm.WithBackoff(cfg.LLMRetryBackoff),
		llm.WithRateLimit(cfg.LLMRequestsPerSecond),
	)
	checkModel(ctx, llmClient, cfg.LLMModelName)

	orch := orchestrator.New(llm.NewAdapter(llmClient), bookRepo, logger)
	processor := ingest.NewProcessor(
		document.NewConverter(),
		chunking.NewAssembler(cfg.ChunkTargetWords),
		orch,
		bookRepo,
		cfg.TargetLanguage,
	)

	pool := worker.New(jobRepo, locker, worker.Options{
		Concurrency:  cfg.WorkerConcurrency,
		PollInterval: cfg.WorkerPollInterval,
	}, logger)
	pool.Register(storage.JobProcessBook, worker.HandlerFunc(processor.ProcessBook))
	pool.Register(storage.JobAdaptChapter, worker.HandlerFunc(processor.AdaptChapter))

	tracker := status.NewTracker(bookRepo, jobRepo)
	bookService := service.NewBookService(bookRepo, jobRepo, tracker, service.Options{
		UploadDir:       cfg.UploadDir,
		MaxUploadBytes:  cfg.MaxUploadBytes,
		DefaultLanguage: cfg.TargetLanguage,
	})

	// Create router with dependencies
	router := http.NewRouter(&http.Deps{
		BookService:    bookService,
		Store:          bookRepo,
		MaxUploadBytes: cfg.MaxUploadBytes,
	})

	workerDone := make(chan error, 1)
	go func() {
		slog.Info("Starting worker pool", "concurrency", cfg.WorkerConcurrency)
		workerDone <- pool.Run(ctx)
	}()

	addr := ":" + cfg.APIPort
	srv := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Starting API server", "addr", addr)
		slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModelName)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			slog.Error("API server failed", "error", err)
		}
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("API server shutdown failed", "error", err)
	}

	select {
	case err := <-workerDone:
		if err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Worker pool stopped with error", "error", err)
		}
	case <-shutdownCtx.Done():
		slog.Warn("Worker pool did not stop before shutdown timeout")
	}
	slog.Info("Shutdown complete")
}

// checkModel warns when the configured model is not served by the LLM endpoint.
// Startup continues either way since the endpoint may come up later.
func checkModel(ctx context.Context, client *llm.Client, model string) {
	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	models, err := client.ListModels(checkCtx)
	if err != nil {
		slog.Warn("Could not list LLM models", "error", err)
		return
	}
	for _, id := range models {
		if id == model {
			slog.Info("LLM model available", "model", model)
			return
		}
	}
	slog.Warn("Configured LLM model not listed by endpoint", "model", model, "available", models)
}
