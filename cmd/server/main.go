package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustinkb1983/nyxchat/internal/api"
	"github.com/dustinkb1983/nyxchat/internal/chat"
	"github.com/dustinkb1983/nyxchat/internal/completion"
	"github.com/dustinkb1983/nyxchat/internal/config"
	"github.com/dustinkb1983/nyxchat/internal/memory"
	"github.com/dustinkb1983/nyxchat/internal/store"
)

func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	// Model catalog
	builtIn, seedProfiles, err := config.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		logger.Error("failed to load model catalog", "error", err)
		os.Exit(1)
	}

	// SQLite
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Stores
	conversationStore := store.NewConversationStore(db)
	memoryStore := store.NewMemoryStore(db)
	promptStore := store.NewPromptStore(db)
	settingsStore := store.NewSettingsStore(db)

	// Seed catalog profiles on first boot only
	if len(seedProfiles) > 0 {
		existing, err := settingsStore.Profiles()
		if err != nil {
			logger.Warn("could not read stored profiles", "error", err)
		} else if len(existing) == 0 {
			if err := settingsStore.PutProfiles(seedProfiles); err != nil {
				logger.Warn("could not seed profiles", "error", err)
			} else {
				logger.Info("profiles seeded from catalog", "count", len(seedProfiles))
			}
		}
	}

	// Memory engine
	engine, err := memory.NewEngine(memoryStore, logger)
	if err != nil {
		logger.Error("failed to load memories", "error", err)
		os.Exit(1)
	}

	// Completion service
	client := completion.NewClient(cfg.CompletionBaseURL, cfg.CompletionAPIKey, cfg.CompletionTimeout)
	if !client.Configured() {
		logger.Warn("no completion api key configured, sends will fail until one is set")
	}

	// Conversation controller
	ctrl := chat.NewController(
		conversationStore, settingsStore, engine, client,
		builtIn,
		chat.Defaults{
			SystemPrompt: cfg.DefaultSystemPrompt,
			Model:        cfg.DefaultModel,
			Temperature:  cfg.DefaultTemperature,
		},
		cfg.MemoryLimit, logger,
	)
	defer ctrl.Close()

	// Router
	router := api.NewRouter(db, ctrl, engine, promptStore, settingsStore, client, builtIn, cfg.APIKey, logger)

	// Server
	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("chat core starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-done
	logger.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("server stopped")
}
