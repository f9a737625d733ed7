package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"music-lab/api"
	"music-lab/auth"
	"music-lab/internal"
	"music-lab/moderation"
	"music-lab/repositories"
	"music-lab/search"
	"music-lab/services"
	"music-lab/sse"
	"music-lab/workers"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components, manages the server lifecycle, and
// centralizes error reporting so deferred cleanups always execute.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Storage (BadgerDB + Bluge index)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.INFO))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	userIndex, err := search.NewUserIndex(config.BlugeFilepath, log)
	if err != nil {
		return fmt.Errorf("search index opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing search index...")
		_ = userIndex.Close()
	}()

	// 3. Moderation
	censoredChar, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return err
	}
	words, err := moderation.LoadWords()
	if err != nil {
		return fmt.Errorf("censored words loading failed: %w", err)
	}
	moderator, err := moderation.NewModerator(words, censoredChar)
	if err != nil {
		return fmt.Errorf("moderator build failed: %w", err)
	}

	// 4. Repositories & Services
	userRepository := repositories.NewUserRepository(db)
	friendRepository := repositories.NewFriendRepository(db)
	presenceRepository := repositories.NewPresenceRepository(db)

	tokens := auth.NewTokenManager(
		config.AuthSecret, config.AuthIssuer, config.AuthAudience, config.AuthTokenDuration)

	registry := sse.NewRegistry(log)
	dispatcher := sse.NewDispatcher(registry, log)
	streamHandler := sse.NewHandler(registry, tokens, config.HeartbeatInterval, log)

	authService := services.NewAuthService(log, userRepository, tokens, userIndex)
	presenceService := services.NewPresenceService(
		log, presenceRepository, userRepository, friendRepository, dispatcher, moderator)
	friendService := services.NewFriendService(log, friendRepository, userRepository, dispatcher)
	userService := services.NewUserService(log, userRepository, userIndex)

	server := api.NewServer(
		log, authService, presenceService, friendService, userService, streamHandler, tokens)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 6. Supervised workers: HTTP server + telemetry
	address := net.JoinHostPort(config.Host, strconv.Itoa(config.Port))
	sup := workers.NewSupervisor(log, config.RestartInterval)
	sup.Add(
		workers.NewServerWorker(log, address, server.Routes()),
		workers.NewTelemetryWorker(log, registry, config.TelemetryInterval),
	)

	log.Info("Starting music-lab server", "address", address)
	sup.Run(ctx)

	// 7. Final cleanup: dispose every open push connection explicitly.
	registry.Shutdown()
	log.Info("Program stopped cleanly")
	return nil
}
