package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fundline/internal/adapters/ai"
	"fundline/internal/adapters/clickhouse"
	"fundline/internal/adapters/config"
	"fundline/internal/adapters/credit"
	"fundline/internal/adapters/errors/noop"
	"fundline/internal/adapters/errors/sentry"
	"fundline/internal/adapters/kafka"
	"fundline/internal/adapters/postgres"
	"fundline/internal/adapters/redis"
	"fundline/internal/adapters/telegram"
	"fundline/internal/adapters/websearch"
	"fundline/internal/api"
	"fundline/internal/api/health"
	"fundline/internal/metrics"
	"fundline/internal/orchestrator"
	chrepo "fundline/internal/repository/clickhouse"
	pgrepo "fundline/internal/repository/postgres"
	redisrepo "fundline/internal/repository/redis"
	"fundline/internal/services/intake"
	"fundline/internal/services/leads"
	"fundline/internal/tools"
	"fundline/pkg/errors"
	"fundline/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	if err := logger.Init(cfg.App.LogLevel, cfg.App.Env); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	defer logger.Sync()

	log := logger.Get()
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	// Initialize error tracker
	errorTracker := initErrorTracker(cfg, log)
	logger.SetErrorTracker(errorTracker)

	metrics.Init()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Databases
	pgClient, err := postgres.NewClient(cfg.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer pgClient.Close()

	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	chClient, err := clickhouse.NewClient(cfg.ClickHouse)
	if err != nil {
		log.Fatalf("Failed to connect to ClickHouse: %v", err)
	}
	defer chClient.Close()

	producer := kafka.NewProducer(kafka.ProducerConfig{Brokers: cfg.Kafka.Brokers})
	defer producer.Close()

	// Repositories
	sessionRepo := redisrepo.NewSessionRepository(redisClient.Client())
	leadRepo := pgrepo.NewLeadRepository(pgClient.DB())
	archiveRepo := pgrepo.NewApplicationRepository(pgClient.DB())
	interactionRepo := chrepo.NewInteractionRepository(chClient)

	// External collaborators
	notifier := initNotifier(cfg, log)
	creditClient := initCreditBureau(cfg, log)
	searchClient := initWebSearch(cfg, log)

	// A typed nil *telegram.Notifier must not reach the services as a
	// non-nil interface.
	var officerNotifier intake.OfficerNotifier
	var leadNotifier leads.LeadNotifier
	if notifier != nil {
		officerNotifier = notifier
		leadNotifier = notifier
	}

	// LLM providers
	providers := initProviders(ctx, cfg, log)
	provider, err := providers.Get(cfg.AI.DefaultProvider)
	if err != nil {
		provider, err = providers.Get("")
	}
	if err != nil {
		log.Fatalf("No LLM provider configured: %v", err)
	}
	log.Infof("Default LLM provider: %s (%s)", provider.Name(), cfg.AI.DefaultModel)

	// Services
	leadService := leads.NewService(leadRepo, producer, leadNotifier)

	toolRegistry := tools.NewRegistry()
	tools.RegisterAll(toolRegistry, tools.Deps{
		Credit:   creditClient,
		Search:   searchClient,
		Sessions: sessionRepo,
		Leads:    leadService,
	})
	log.Infof("Registered tools: %v", toolRegistry.List())

	orch := orchestrator.New(provider, toolRegistry, orchestrator.Options{
		Model:       cfg.AI.DefaultModel,
		MaxLoops:    cfg.Intake.MaxLoops,
		CallTimeout: cfg.AI.CallTimeout,
	})

	intakeService := intake.NewService(intake.Options{
		Sessions:   sessionRepo,
		Archive:    archiveRepo,
		Analytics:  interactionRepo,
		Publisher:  producer,
		Notifier:   officerNotifier,
		Orch:       orch,
		Provider:   provider,
		Model:      cfg.AI.DefaultModel,
		SessionTTL: cfg.Redis.SessionTTL,
	})

	// HTTP server
	healthHandler := health.New(log, cfg.App.Name, cfg.App.Version,
		health.Check{Name: "postgres", Probe: pgClient.Health},
		health.Check{Name: "redis", Probe: redisClient.Health},
		health.Check{Name: "clickhouse", Probe: chClient.Health},
	)

	server := api.NewServer(api.ServerConfig{
		Port:        cfg.HTTP.Port,
		ServiceName: cfg.App.Name,
		Version:     cfg.App.Version,
	}, api.Handlers{
		Chat:         api.NewChatHandler(intakeService),
		Leads:        api.NewLeadsHandler(leadService),
		Applications: api.NewApplicationsHandler(archiveRepo),
		Analytics:    api.NewAnalyticsHandler(interactionRepo),
		Health:       healthHandler,
	}, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	log.Info("System initialized successfully")

	waitForShutdown(cancel, server, errorTracker, log)
}

// initErrorTracker initializes error tracking (Sentry or no-op)
func initErrorTracker(cfg *config.Config, log *logger.Logger) errors.Tracker {
	if !cfg.ErrorTracking.Enabled || cfg.ErrorTracking.SentryDSN == "" {
		log.Info("Error tracking disabled")
		return noop.New()
	}

	tracker, err := sentry.New(cfg.ErrorTracking.SentryDSN, cfg.ErrorTracking.Environment)
	if err != nil {
		log.Warnf("Failed to initialize Sentry: %v", err)
		return noop.New()
	}

	log.Info("Error tracking initialized (Sentry)")
	return tracker
}

// initNotifier wires the Telegram officer notifier when a bot token is set.
func initNotifier(cfg *config.Config, log *logger.Logger) *telegram.Notifier {
	if cfg.Telegram.BotToken == "" || cfg.Telegram.OfficerChat == 0 {
		log.Info("Telegram notifications disabled")
		return nil
	}

	notifier, err := telegram.NewNotifier(cfg.Telegram.BotToken, cfg.Telegram.OfficerChat)
	if err != nil {
		log.Warnf("Failed to initialize Telegram notifier: %v", err)
		return nil
	}

	log.Info("Telegram officer notifications enabled")
	return notifier
}

// initCreditBureau wires the credit pull collaborator when configured.
// A nil client leaves the pull_credit_report tool returning an error
// the model can relay.
func initCreditBureau(cfg *config.Config, log *logger.Logger) tools.CreditBureau {
	if cfg.Credit.APIURL == "" {
		log.Info("Credit bureau integration disabled")
		return nil
	}

	client, err := credit.NewClient(cfg.Credit.APIURL, cfg.Credit.APIKey, cfg.Credit.Timeout)
	if err != nil {
		log.Warnf("Failed to initialize credit bureau client: %v", err)
		return nil
	}
	return client
}

// initWebSearch wires the search collaborator when configured.
func initWebSearch(cfg *config.Config, log *logger.Logger) tools.WebSearcher {
	if cfg.Search.APIURL == "" {
		log.Info("Web search integration disabled")
		return nil
	}

	client, err := websearch.NewClient(cfg.Search.APIURL, cfg.Search.APIKey, cfg.Search.Timeout)
	if err != nil {
		log.Warnf("Failed to initialize web search client: %v", err)
		return nil
	}
	return client
}

// initProviders registers every LLM backend that has credentials.
func initProviders(ctx context.Context, cfg *config.Config, log *logger.Logger) *ai.ProviderRegistry {
	registry := ai.NewProviderRegistry()

	if cfg.AI.GeminiKey != "" {
		gemini, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, cfg.AI.CallTimeout, cfg.AI.RequestsPerMin)
		if err != nil {
			log.Warnf("Failed to initialize Gemini provider: %v", err)
		} else if err := registry.Register(gemini); err != nil {
			log.Warnf("Failed to register Gemini provider: %v", err)
		}
	}

	if cfg.AI.OpenAIKey != "" {
		openai := ai.NewOpenAIProvider(cfg.AI.OpenAIKey, cfg.AI.CallTimeout, cfg.AI.RequestsPerMin)
		if err := registry.Register(openai); err != nil {
			log.Warnf("Failed to register OpenAI provider: %v", err)
		}
	}

	return registry
}

// waitForShutdown waits for a shutdown signal and performs graceful shutdown
func waitForShutdown(cancel context.CancelFunc, server *api.Server, errorTracker errors.Tracker, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Warnf("HTTP server shutdown: %v", err)
	}

	cancel()

	// Flush error tracker
	if errorTracker != nil {
		if err := errorTracker.Flush(shutdownCtx); err != nil {
			log.Warnf("Failed to flush error tracker: %v", err)
		}
	}

	log.Info("Shutdown complete")
}
