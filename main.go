package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"event-booking-api/auth"
	"event-booking-api/cache"
	"event-booking-api/config"
	"event-booking-api/database"
	"event-booking-api/events"
	"event-booking-api/handlers"
	"event-booking-api/logger"
	"event-booking-api/router"
	"event-booking-api/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.New("info", "json", os.Stderr)
		boot.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout).With().Str("service", cfg.ServiceName).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := openStore(ctx, cfg, log)
	publisher := openPublisher(cfg, log)
	eventCache := openEventCache(ctx, cfg, log)

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create token service")
	}
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)

	svc := handlers.Services{
		Accounts: services.NewAccounts(store.Users, hasher, tokens, publisher, log),
		Catalog:  services.NewCatalog(store.Events, eventCache, log),
		Ledger:   services.NewLedger(store, publisher, log),
		Payments: services.NewPayments(store, publisher, log),
		Admin:    services.NewAdmin(store),
	}

	if cfg.AdminEmail != "" {
		if _, err := svc.Accounts.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatal().Err(err).Msg("cannot seed admin account")
		}
	}

	app := router.NewApp(cfg, log)
	router.SetupRoutes(app, handlers.New(svc, store, cfg.ServiceName, log), auth.NewGuard(tokens))

	go func() {
		log.Info().Str("addr", cfg.ListenAddr()).Str("store", cfg.StoreDriver).Msg("server started")
		if err := app.Listen(cfg.ListenAddr()); err != nil {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	if err := publisher.Close(); err != nil {
		log.Error().Err(err).Msg("cannot close publisher")
	}
	closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := store.Close(closeCtx); err != nil {
		log.Error().Err(err).Msg("cannot close store")
	}
}

// openStore exits the process when the database cannot be reached.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) *database.Store {
	if cfg.StoreDriver == config.StoreMemory {
		log.Warn().Msg("using in-memory store, data is lost on restart")
		return database.NewMemoryStore()
	}

	store, err := database.DBInit(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to the database")
	}
	log.Info().Str("db", cfg.MongoDatabase).Msg("connected to mongodb")
	return store
}

func openPublisher(cfg *config.Config, log zerolog.Logger) events.Publisher {
	if cfg.RabbitURL == "" {
		return events.NopPublisher{}
	}
	publisher, err := events.NewAMQPPublisher(cfg.RabbitURL, cfg.RabbitExchange)
	if err != nil {
		log.Warn().Err(err).Msg("rabbitmq unavailable, domain events disabled")
		return events.NopPublisher{}
	}
	return publisher
}

func openEventCache(ctx context.Context, cfg *config.Config, log zerolog.Logger) cache.EventCache {
	if cfg.RedisAddr == "" {
		return cache.NopEventCache{}
	}
	client, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, event cache disabled")
		return cache.NopEventCache{}
	}
	return cache.NewRedisEventCache(client, cfg.EventCacheTTL)
}
