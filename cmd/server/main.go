package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"chirptalks/auth"
	"chirptalks/domain/event"
	"chirptalks/infrastructure/http/server"
	"chirptalks/internal"
	"chirptalks/moderation"
	"chirptalks/observability"
	"chirptalks/repositories"
	"chirptalks/runtime"
	"chirptalks/runtime/workers"
	"chirptalks/services"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

// Exit codes to provide meaningful status to the operating system or service manager (e.g., systemd).
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	// The main function acts as a thin wrapper.
	// Its only responsibility is to call run() and handle the OS exit code.
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components, manages the server lifecycle, and centralizes error reporting.
// It ensures all 'defer' statements (like database cleanup) are executed before the program exits
// and provides a structured way to handle graceful shutdowns for HTTP and background workers.
func run() (int, error) {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}

	charReplacement, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}

	logger := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		// Defer ensures the database lock is released and buffers are flushed before the function returns.
		logger.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	index, err := repositories.NewMessageIndex(config.BlugeFilepath, logger)
	if err != nil {
		return exitRuntime, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	defer func() {
		logger.Info("Closing Bluge...")
		_ = index.Close()
	}()

	// 3. Repositories, moderation and the feed engine
	userRepository := repositories.NewUserRepository(db)
	feedRepository := repositories.NewFeedRepository(db, logger)

	moderator, err := moderation.NewModerator(config.CensoredWords, charReplacement)
	if err != nil {
		return exitConfig, fmt.Errorf("moderation setup failed: %w", err)
	}

	events := make(chan event.DomainEvent, config.BufferSize)
	registry := runtime.NewRegistry()

	tokens := auth.NewTokenManager(config.JWTSecret, config.AuthTokenDuration)
	authService := services.NewAuthService(userRepository, tokens)
	feedService := services.NewFeedService(userRepository, feedRepository, index, moderator, events, logger)

	// 4. Context & Signals
	// NotifyContext captures OS signals and cancels the context to trigger a shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)

	// 5. Start the fan-out worker under supervision
	sup := workers.NewSupervisor(logger, config.RestartInterval).
		Add(workers.NewEventFanout(logger, events, registry))
	go sup.Run(ctx)

	// 6. HTTP Server Setup
	address := fmt.Sprintf("%s:%d", config.Host, config.Port)
	httpServer := server.New(server.Options{
		Address:           address,
		AuthService:       authService,
		FeedService:       feedService,
		Tokens:            tokens,
		Registry:          registry,
		Health:            observability.NewHealthMonitor(logger),
		SessionBufferSize: config.SessionBufferSize,
		Log:               logger,
	})

	go func() {
		errChan <- httpServer.Run(ctx)
	}()

	// 7. Wait for Stop or Error
	// Run blocks until a signal cancels the context, then drains in-flight
	// requests before returning.
	if err := <-errChan; err != nil {
		return exitRuntime, fmt.Errorf("HTTP server error: %w", err)
	}

	// 8. Final Cleanup (Graceful Shutdown)
	logger.Info("Shutting down gracefully...")
	sup.Stop()
	logger.Info("Program stopped cleanly")

	return exitOK, nil
}
