package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/carebridge/backend/internal/adapters/cache"
	"github.com/carebridge/backend/internal/adapters/events"
	"github.com/carebridge/backend/internal/adapters/fixtures"
	mockadapters "github.com/carebridge/backend/internal/adapters/mock"
	"github.com/carebridge/backend/internal/api/handlers"
	"github.com/carebridge/backend/internal/api/middleware"
	"github.com/carebridge/backend/internal/api/routes"
	"github.com/carebridge/backend/internal/application/services"
	"github.com/carebridge/backend/internal/domain/entities"
	"github.com/carebridge/backend/internal/domain/providers"
	"github.com/carebridge/backend/internal/infrastructure/clients/mlapi"
	"github.com/carebridge/backend/internal/infrastructure/clients/redis"
	"github.com/carebridge/backend/internal/infrastructure/observability"
	"github.com/carebridge/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
	log.Info().Msg("Server stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		return err
	}

	// Redis backs the response cache and fans conversation messages out
	// across instances. Without it both stay in process.
	var (
		cacheProvider providers.CacheProvider
		eventBus      providers.EventBus
	)
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			return err
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error().Err(err).Msg("Error closing Redis client")
			}
		}()
		cacheProvider = cache.NewRedisAdapter(redisClient, "carebridge:")
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("Redis connected")
	} else {
		cacheProvider = cache.NewMemoryAdapter()
		eventBus = events.NewMemoryEventBus()
	}
	defer func() {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing event bus")
		}
	}()

	dictionary := services.DefaultDictionary()
	if cfg.Translation.DictionaryPath != "" {
		dictionary, err = services.LoadDictionary(cfg.Translation.DictionaryPath)
		if err != nil {
			return err
		}
		log.Info().Str("path", cfg.Translation.DictionaryPath).Msg("Translation dictionary loaded")
	}

	signModelConfig := mockadapters.SignModelConfig{
		Vocabulary:     fixtures.SignGestures(),
		LoadDelay:      cfg.Mock.SignLoadDelay,
		InferenceDelay: cfg.Mock.SignInferenceDelay,
	}
	if cfg.Sign.RandomSeed != 0 {
		signModelConfig.Rand = mockadapters.NewSeededRand(cfg.Sign.RandomSeed)
	}
	signModel := mockadapters.NewSignModel(signModelConfig)
	signVoice := mockadapters.NewSpeechRecognizer(cfg.Mock.VoiceDelay, mockadapters.SignVoiceTranscript)

	// Services
	symptomService := services.NewSymptomService(cfg.Mock.PredictionDelay, metrics)
	doctorService := services.NewDoctorService(fixtures.NewDoctorStore(fixtures.Doctors()))
	patientService := services.NewPatientService(fixtures.NewPatientStore())
	translationService := services.NewTranslationService(dictionary)
	conversationService := services.NewConversationService(
		fixtures.NewMessageStore(fixtures.SeedConversation(time.Now())),
		translationService,
		eventBus,
	)
	voiceService := services.NewVoiceService(map[entities.VoiceProfile]providers.SpeechRecognizer{
		entities.VoiceProfileTranslation: mockadapters.NewSpeechRecognizer(cfg.Mock.TranslationVoiceDelay, mockadapters.TranslationVoiceTranscript),
		entities.VoiceProfileSign:        signVoice,
	})
	defer voiceService.Close()
	signService := services.NewSignLanguageService(signModel, signVoice, metrics)
	captureService := services.NewCaptureService(mockadapters.NewCamera(), signModel, cfg.Sign.FrameInterval, metrics)
	defer captureService.Close()
	mlClient := mlapi.NewClient(cfg.MLAPI.URL, cfg.MLAPI.LegacyURL, cfg.MLAPI.Timeout)
	mlService := services.NewMLPredictionService(mlClient, metrics)

	sseHandler := handlers.NewSSEHandler(conversationService)
	router := routes.NewRouter(routes.Handlers{
		Health:      handlers.NewHealthHandler(sseHandler),
		Symptom:     handlers.NewSymptomHandler(symptomService),
		Doctor:      handlers.NewDoctorHandler(doctorService),
		Patient:     handlers.NewPatientHandler(patientService),
		Translation: handlers.NewTranslationHandler(translationService, conversationService),
		SSE:         sseHandler,
		Voice:       handlers.NewVoiceHandler(voiceService),
		Sign:        handlers.NewSignHandler(signService, captureService),
		ML:          handlers.NewMLHandler(mlService),
	},
		middleware.NewCacheMiddleware(cacheProvider, metrics),
		middleware.NewIPRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst),
		cfg.CORS.AllowedOrigins,
		metrics,
	)

	// WriteTimeout stays zero so SSE streams and long-poll recordings are not cut off.
	server := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           router.SetupRoutes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", server.Addr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		if err := signService.LoadModel(gctx); err != nil {
			if gctx.Err() != nil {
				return nil
			}
			return err
		}
		log.Info().Dur("took", time.Since(start)).Msg("Sign language model loaded")
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Server shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// Shutdown waits for active handlers, so end the conversation streams first.
		if err := conversationService.CloseStreams(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("Failed to close conversation streams")
		}
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
