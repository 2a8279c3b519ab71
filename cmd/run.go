package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"foxyweb/checkout"
	"foxyweb/config"
	"foxyweb/database"
	"foxyweb/events"
	"foxyweb/identity"
	"foxyweb/metrics"
	"foxyweb/repository"
	"foxyweb/service"
	"foxyweb/session"
	"foxyweb/web"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	// Load configuration
	cfg := config.Get()
	configureLogging(cfg)

	log.WithField("environment", cfg.Environment).Info("Starting foxyweb...")

	// Initialize database connection
	log.Info("Connecting to database...")
	db, err := database.NewLazyConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	monitor := database.NewMonitor(db, 30*time.Second)
	go monitor.Run(ctx)

	// Initialize event bus
	eventBus := events.NewBus()

	appMetrics := metrics.New()
	appMetrics.SubscribeTo(eventBus)

	if cfg.NATSServers != "" {
		forwarder, err := events.ConnectNATSForwarder(cfg.NATSServers, cfg.NATSSubjectPrefix)
		if err != nil {
			return fmt.Errorf("failed to initialize event forwarding: %w", err)
		}
		defer forwarder.Close()
		eventBus.SubscribeAll(forwarder.Handle)
	} else {
		log.Info("NATS_SERVERS not set, event forwarding disabled")
	}

	// Initialize unit of work factory
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Identity resolution falls back to accepting ids as is without a bot token
	var resolver service.IdentityResolver = identity.PassthroughResolver{}
	if cfg.DiscordToken != "" {
		discordResolver, err := identity.NewDiscordResolver(cfg.DiscordToken)
		if err != nil {
			return fmt.Errorf("failed to initialize identity resolver: %w", err)
		}
		resolver = discordResolver
	} else {
		log.Warn("DISCORD_TOKEN not set, user ids are not verified")
	}

	// Initialize services
	log.Info("Initializing services...")
	storeService := service.NewStoreService(uowFactory, resolver, nil)
	catalogService := service.NewCatalogService(repository.NewCatalogRepository(db))
	commandService := service.NewCommandService(repository.NewCommandRepository(db))
	economyService := service.NewEconomyService(uowFactory, service.EconomyConfig{
		OperatorID:      cfg.OAuthClientID,
		RouletteEnabled: cfg.RouletteEnabled,
	}, nil, nil)

	// Initialize session store
	sessions, err := session.Connect(ctx, session.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		TTL:      cfg.SessionTTL,
		Secure:   cfg.SecureCookies,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize session store: %w", err)
	}
	defer sessions.Close()

	handler := web.NewHandler(web.Dependencies{
		Store:    storeService,
		Economy:  economyService,
		Catalog:  catalogService,
		Commands: commandService,
		Sessions: sessions,
		OAuth: identity.NewOAuthClient(identity.OAuthConfig{
			ClientID:     cfg.OAuthClientID,
			ClientSecret: cfg.OAuthClientSecret,
			RedirectURI:  cfg.OAuthRedirectURI,
			APIEndpoint:  cfg.DiscordAPIEndpoint,
		}),
		Checkout: checkout.NewClient(cfg.CheckoutURL),
		HealthChecks: []web.HealthCheck{
			{Name: "database", Check: monitor.Check},
			{Name: "sessions", Check: sessions.Ping},
		},
		InternalAPIKey: cfg.InternalAPIKey,
	})

	router := web.NewRouter(handler, web.RouterOptions{
		AllowedOrigins: cfg.AllowedOrigins,
		Metrics:        appMetrics.Middleware,
		MetricsHandler: appMetrics.Handler(),
	})

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for context cancellation or a server failure
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
	}

	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Error shutting down HTTP server")
	}

	log.Info("Shutdown completed")
	return nil
}

func configureLogging(cfg *config.Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
