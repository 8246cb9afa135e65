package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/jumpa-app/jumpa/internal/pkg/bootstrap"
	"github.com/jumpa-app/jumpa/internal/pkg/circuitbreaker"
	"github.com/jumpa-app/jumpa/internal/pkg/config"
	"github.com/jumpa-app/jumpa/internal/pkg/database"
	"github.com/jumpa-app/jumpa/internal/pkg/health"
	httppkg "github.com/jumpa-app/jumpa/internal/pkg/http"
	"github.com/jumpa-app/jumpa/internal/pkg/logger"
	"github.com/jumpa-app/jumpa/internal/pkg/mapsdk"
	"github.com/jumpa-app/jumpa/internal/pkg/metrics"
	"github.com/jumpa-app/jumpa/internal/pkg/middleware"
	"github.com/jumpa-app/jumpa/internal/pkg/models"
	natspkg "github.com/jumpa-app/jumpa/internal/pkg/nats"
	nrpkg "github.com/jumpa-app/jumpa/internal/pkg/newrelic"
	nsqpkg "github.com/jumpa-app/jumpa/internal/pkg/nsq"
	"github.com/jumpa-app/jumpa/internal/pkg/server"
	"github.com/jumpa-app/jumpa/internal/pkg/telemetry"
	wspkg "github.com/jumpa-app/jumpa/internal/pkg/websocket"
	discoverygw "github.com/jumpa-app/jumpa/services/discovery/gateway"
	discoveryuc "github.com/jumpa-app/jumpa/services/discovery/usecase"
	"github.com/jumpa-app/jumpa/services/location"
	"github.com/jumpa-app/jumpa/services/location/power"
	"github.com/jumpa-app/jumpa/services/location/provider"
	locationuc "github.com/jumpa-app/jumpa/services/location/usecase"
	presencerepo "github.com/jumpa-app/jumpa/services/presence/repository"
	presenceuc "github.com/jumpa-app/jumpa/services/presence/usecase"
	registryrepo "github.com/jumpa-app/jumpa/services/registry/repository"
	registryuc "github.com/jumpa-app/jumpa/services/registry/usecase"
	"github.com/jumpa-app/jumpa/services/session/handler"
	httpHandler "github.com/jumpa-app/jumpa/services/session/handler/http"
	natsHandler "github.com/jumpa-app/jumpa/services/session/handler/nats"
	wsHandler "github.com/jumpa-app/jumpa/services/session/handler/websocket"
	sessionuc "github.com/jumpa-app/jumpa/services/session/usecase"
)

func main() {
	appName := "jumpa-agent"
	configPath := config.GetEnv("CONFIG_PATH", "config/agent.env")
	configs := config.InitConfig(configPath)

	nrApp, err := nrpkg.InitNewRelic(configs)
	if err != nil {
		log.Printf("Warning: %v, continuing without New Relic", err)
	}
	if nrApp != nil {
		if err := nrApp.WaitForConnection(10 * time.Second); err != nil {
			log.Printf("Warning: New Relic connection timeout: %v", err)
		}
	}

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	zapLogger.Info("Starting application",
		zap.String("app", appName),
		zap.String("version", configs.App.Version),
		zap.String("environment", configs.App.Environment),
	)

	mets := metrics.New()
	zapSink := telemetry.NewZapSink(zapLogger)

	// Mapping SDK readiness guard: warmed up as a best-effort bootstrap
	// stage, consulted again by whoever needs the SDK later.
	var guard *mapsdk.Guard
	if configs.MapSDK.StatusURL != "" {
		sdk := mapsdk.NewHTTPSDK(httppkg.NewClient(configs.MapSDK.StatusURL, 5*time.Second), configs.MapSDK.StatusURL)
		guard = mapsdk.NewGuard(sdk, configs.MapSDK, zapLogger, zapSink)
	}

	// Startup sequencing: infrastructure the directory cannot run without
	// connects first, everything else warms up in parallel and may fail
	// without blocking the agent.
	var (
		postgresClient *database.PostgresClient
		redisClient    *database.RedisClient
		natsClient     *natspkg.Client
		natsProducer   *natspkg.Producer
		nsqProducer    *nsqpkg.Producer
	)

	seq := bootstrap.NewSequencer(configs.Bootstrap, zapLogger, zapSink, nil)
	stages := []bootstrap.Stage{
		{
			Name:     "redis",
			Critical: true,
			Run: func(ctx context.Context) error {
				var err error
				redisClient, err = database.NewRedisClient(configs.Redis)
				return err
			},
		},
		{
			Name:     "postgres",
			Critical: true,
			Run: func(ctx context.Context) error {
				var err error
				postgresClient, err = database.NewPostgresClient(configs.Database)
				return err
			},
		},
		{
			Name:     "nats",
			Critical: true,
			Run: func(ctx context.Context) error {
				var err error
				natsClient, err = natspkg.NewClient(configs.NATS.URL)
				if err != nil {
					return err
				}
				natsProducer, err = natspkg.NewProducer(configs.NATS.URL)
				return err
			},
		},
		{
			Name: "registry-schema",
			Run: func(ctx context.Context) error {
				if postgresClient == nil {
					return nil
				}
				return registryrepo.NewParticipantRepo(postgresClient).EnsureSchema(ctx)
			},
		},
		{
			Name: "nsq",
			Run: func(ctx context.Context) error {
				var err error
				nsqProducer, err = nsqpkg.NewProducer(configs.NSQ.Address)
				return err
			},
		},
	}
	if guard != nil {
		stages = append(stages, bootstrap.Stage{
			Name: "map-sdk",
			Run:  guard.AwaitReady,
		})
	}

	seq.Run(context.Background(), stages)

	if redisClient == nil || postgresClient == nil || natsClient == nil || natsProducer == nil {
		zapLogger.Fatal("Critical infrastructure unavailable",
			zap.Any("failures", seq.Failures()))
	}
	defer postgresClient.Close()
	defer redisClient.Close()
	defer natsClient.Close()
	defer natsProducer.Stop()

	// Telemetry: always the log, plus the ops pipeline when NSQ came up
	var sink telemetry.Sink = zapSink
	if nsqProducer != nil {
		sink = telemetry.NewMultiSink(zapSink, telemetry.NewNSQSink(nsqProducer, configs.NSQ.Topic, zapLogger))
		defer nsqProducer.Stop()
	}

	// Presence directory and publishing pipeline
	presenceRepo := presencerepo.NewPresenceRepo(redisClient, configs.Presence, zapLogger)
	reported := power.NewReported()
	channelProvider := provider.NewChannelProvider()
	var locProvider location.Provider = channelProvider
	if configs.Location.Simulate {
		locProvider = provider.NewSimulatedProvider(models.Fix{
			Latitude:  configs.Location.SimulateLat,
			Longitude: configs.Location.SimulateLng,
			Timestamp: models.Now(),
		})
		zapLogger.Info("Location provider simulation enabled",
			zap.Float64("lat", configs.Location.SimulateLat),
			zap.Float64("lng", configs.Location.SimulateLng))
	}
	publisher := presenceuc.NewPublisher(presenceRepo, reported, configs.Publisher, zapLogger, sink, mets)
	coordinator := locationuc.NewCoordinator(locProvider, reported, publisher, configs.Location, zapLogger, sink, mets)

	// Proximity discovery
	alertGW := discoverygw.NewAlertGateway(natsProducer, zapLogger)
	engine := discoveryuc.NewEngine(discoveryuc.NewMonitor(), presenceRepo, alertGW, coordinator, configs.Discovery, zapLogger, sink, mets)

	// Participant registry and session orchestration
	participantRepo := registryrepo.NewParticipantRepo(postgresClient)
	registryUC := registryuc.NewRegistry(participantRepo, configs.JWT, zapLogger)
	sessionUC := sessionuc.NewSession(registryUC, publisher, coordinator, engine, channelProvider, reported, zapLogger)

	// Transport handlers
	breakers := circuitbreaker.NewManager(zapLogger)
	sessionHandler := httpHandler.NewSessionHandler(sessionUC, presenceRepo, breakers, zapLogger)
	authHandler := httpHandler.NewAuthHandler(registryUC, zapLogger)

	wsManager := wsHandler.NewWebSocketManager(sessionUC, wspkg.NewManager(configs.JWT, zapLogger), zapLogger)

	alertConsumer := natsHandler.NewNatsHandler(natsClient, wsManager, zapLogger)
	if err := alertConsumer.InitConsumers(); err != nil {
		zapLogger.Fatal("Failed to initialize NATS consumers", zap.Error(err))
	}
	defer alertConsumer.Close()

	h := handler.NewHandler(sessionHandler, authHandler, wsManager, alertConsumer, mets, redisClient.Client, configs)

	// HTTP surface
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestID())
	e.Use(logger.ZapEchoMiddleware(zapLogger))
	e.Use(middleware.PanicRecoveryMiddleware(zapLogger))

	e.GET("/ping", health.NewPingHandler(appName))
	healthService := health.NewHealthService(zapLogger)
	healthService.AddChecker("postgres", health.NewPostgresHealthChecker(postgresClient))
	healthService.AddChecker("redis", health.NewRedisHealthChecker(redisClient))
	healthService.AddChecker("nats", health.NewNATSHealthChecker(natsClient))
	health.RegisterDetailedHealthEndpoints(e, appName, configs.App.Version, healthService)

	h.RegisterRoutes(e)

	// Component teardown after the HTTP server drains: remove our own
	// directory record before the connections it needs go away.
	shutdown := server.NewShutdownManager(zapLogger)
	shutdown.Register(func(ctx context.Context) error {
		if err := publisher.Remove(ctx); err != nil {
			zapLogger.Warn("Failed to remove presence record on shutdown", zap.Error(err))
		}
		return publisher.Stop(ctx)
	})
	shutdown.Register(func(ctx context.Context) error {
		_, err := engine.Stop(ctx)
		return err
	})
	shutdown.Register(func(ctx context.Context) error {
		presenceRepo.Close()
		return nil
	})

	srv := server.NewGracefulServer(e, zapLogger, configs.Server.Port)
	if err := srv.Start(); err != nil {
		zapLogger.Error("Server stopped with error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := shutdown.Shutdown(ctx); err != nil {
		zapLogger.Error("Component shutdown failed", zap.Error(err))
	}
}
