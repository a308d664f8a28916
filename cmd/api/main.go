package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jordanlanch/leadpulse/config"
	"github.com/jordanlanch/leadpulse/pkg/ai/llm"
	"github.com/jordanlanch/leadpulse/pkg/api/handlers"
	"github.com/jordanlanch/leadpulse/pkg/conversation"
	"github.com/jordanlanch/leadpulse/pkg/engagement"
	"github.com/jordanlanch/leadpulse/pkg/jobs"
	"github.com/jordanlanch/leadpulse/pkg/logger"
	"github.com/jordanlanch/leadpulse/pkg/metrics"
	custommiddleware "github.com/jordanlanch/leadpulse/pkg/middleware"
	"github.com/jordanlanch/leadpulse/pkg/outbound"
	"github.com/jordanlanch/leadpulse/pkg/scoring"
	"github.com/jordanlanch/leadpulse/pkg/sentiment"
	"github.com/jordanlanch/leadpulse/pkg/sequence"
)

func main() {
	// Load .env if present, then configuration from the environment
	_ = godotenv.Load()
	cfg := config.Load()

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	log.Info("configuration loaded", "environment", cfg.APIEnvironment)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.SentryEnvironment,
			TracesSampleRate: 1.0,
			AttachStacktrace: true,
		})
		if err != nil {
			log.Warn("failed to initialize sentry", "error", err)
		} else {
			log.Info("sentry initialized", "environment", cfg.SentryEnvironment)
			defer sentry.Flush(2 * time.Second)
		}
	} else {
		log.Info("sentry disabled, no DSN configured")
	}

	// Text-generation client. Scoring, sequences, personalization and
	// sentiment all degrade to deterministic fallbacks without one.
	var client llm.LLMClient
	switch cfg.AIProvider {
	case "ollama":
		client = llm.NewOllamaClient(llm.OllamaConfig{
			BaseURL:     cfg.OllamaBaseURL,
			Model:       cfg.OllamaModel,
			Temperature: float32(cfg.AITemperature),
			MaxTokens:   cfg.AIMaxTokens,
		}, log)
		log.Info("using ollama", "base_url", cfg.OllamaBaseURL, "model", cfg.OllamaModel)
	default:
		if cfg.OpenAIAPIKey == "" {
			log.Warn("no OPENAI_API_KEY set, AI augmentation disabled, fallbacks in effect")
		} else {
			client = llm.NewOpenAIClient(llm.Config{
				APIKey:      cfg.OpenAIAPIKey,
				Model:       cfg.OpenAIModel,
				Temperature: float32(cfg.AITemperature),
				MaxTokens:   cfg.AIMaxTokens,
			}, log)
			log.Info("using openai", "model", cfg.OpenAIModel)
		}
	}

	// Prometheus metrics
	prometheusMetrics := metrics.New()

	augmenter := llm.NewAugmenter(client, log, prometheusMetrics, cfg.AITimeout)

	// Conversation store: Redis when reachable, memory otherwise
	var store conversation.Store
	redisStore, err := conversation.NewRedisStore(cfg.RedisURL, 30*24*time.Hour)
	if err != nil {
		log.Warn("redis unavailable, using in-memory conversation store", "error", err)
		store = conversation.NewMemoryStore()
	} else {
		log.Info("redis conversation store connected")
		store = redisStore
		defer redisStore.Close()
	}

	// Domain services
	scoringService := scoring.NewService(augmenter, log, prometheusMetrics)
	sequenceService := sequence.NewService(augmenter, log, prometheusMetrics)
	sentimentService := sentiment.NewService(augmenter, log, prometheusMetrics)
	engagementService := engagement.NewService(store, log)

	// Outbound senders
	emailSender := outbound.NewSendGridEmail(cfg.EmailFrom, cfg.EmailFromName, cfg.SendGridAPIKey, log)
	smsSender := outbound.NewLogSMS(cfg.SMSFromNumber, log)
	var whatsAppSender outbound.WhatsAppSender
	if cfg.WhatsAppGatewayURL != "" {
		gateway, err := outbound.NewWhatsAppGateway(cfg.WhatsAppGatewayURL, cfg.WhatsAppToken, log)
		if err != nil {
			log.Warn("whatsapp gateway misconfigured, channel disabled", "error", err)
		} else {
			whatsAppSender = gateway
			log.Info("whatsapp gateway configured", "url", cfg.WhatsAppGatewayURL)
		}
	} else {
		log.Warn("whatsapp gateway not configured, channel disabled")
	}
	dispatcher := outbound.NewDispatcher(emailSender, whatsAppSender, smsSender,
		store, cfg.DefaultPhoneRegion, log, prometheusMetrics)

	// Scheduled maintenance
	cronManager := jobs.NewCronManager(engagementService, nil, log)
	if err := cronManager.SetupJobs(); err != nil {
		log.Error("failed to set up cron jobs", "error", err)
		os.Exit(1)
	}
	cronManager.Start()

	// Scoring depends on every table summing to 100; surface drift at boot
	if warnings := scoring.ValidateTables(); len(warnings) > 0 {
		for _, w := range warnings {
			log.Warn("weight table does not sum to 100", "industry", w.Industry, "sum", w.Sum)
		}
	}

	// Echo
	e := echo.New()
	e.HideBanner = true

	rateLimiter := custommiddleware.NewRateLimiter(cfg.RateLimitRequestsPerMinute, cfg.RateLimitBurst)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request", "method", c.Request().Method, "uri", v.URI, "status", v.Status)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	if cfg.SentryDSN != "" {
		e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	}
	e.Use(prometheusMetrics.Middleware())
	e.Use(middleware.CORSWithConfig(custommiddleware.CORSConfig(cfg.CORSAllowedOrigins)))
	e.Use(middleware.Gzip())
	e.Use(custommiddleware.SecurityHeaders(custommiddleware.SecurityHeadersConfig{}))
	e.Use(rateLimiter.RateLimitMiddleware())

	// Public endpoints
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"name":        "LeadPulse API",
			"version":     "0.1.0",
			"status":      "running",
			"environment": cfg.APIEnvironment,
			"timestamp":   time.Now().Unix(),
		})
	})
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":     "healthy",
			"ai_enabled": client != nil,
		})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Handlers
	qualificationHandler := handlers.NewQualificationHandler(scoringService, sequenceService, dispatcher,
		handlers.BusinessDefaults{Name: cfg.BusinessName, Industry: cfg.BusinessIndustry})
	sentimentHandler := handlers.NewSentimentHandler(sentimentService, store, cronManager.Tracker())
	engagementHandler := handlers.NewEngagementHandler(engagementService)

	v1 := e.Group("/api/v1")
	v1.POST("/leads/score", qualificationHandler.ScoreLead)
	v1.POST("/sequences/generate", qualificationHandler.GenerateSequence)
	v1.POST("/sequences/dispatch", qualificationHandler.DispatchStep)
	v1.POST("/messages/personalize", qualificationHandler.PersonalizeMessage)
	v1.POST("/timing/suggest", qualificationHandler.SuggestTiming)
	v1.POST("/leads/:id/messages/analyze", sentimentHandler.AnalyzeMessage)
	v1.GET("/leads/:id/engagement", engagementHandler.GetEngagement)

	address := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	log.Info("leadpulse API starting",
		"address", address,
		"rate_limit_rpm", cfg.RateLimitRequestsPerMinute,
		"default_phone_region", cfg.DefaultPhoneRegion)

	go func() {
		if err := e.Start(address); err != nil && err != http.ErrServerClosed {
			log.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	cronManager.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped")
}
