package internal

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"project-manager-api/config"
	"project-manager-api/internal/application/ports"
	"project-manager-api/internal/application/services"
	"project-manager-api/internal/domain/activity"
	domainFile "project-manager-api/internal/domain/stored_file"
	"project-manager-api/internal/infrastructure/breaker"
	"project-manager-api/internal/infrastructure/cache"
	"project-manager-api/internal/infrastructure/db/postgres"
	pgActivity "project-manager-api/internal/infrastructure/db/postgres/activity"
	"project-manager-api/internal/infrastructure/db/postgres/stored_file"
	"project-manager-api/internal/infrastructure/db/postgres/user"
	"project-manager-api/internal/infrastructure/jwt"
	"project-manager-api/internal/infrastructure/kafka"
	"project-manager-api/internal/infrastructure/metrics"
	minioStore "project-manager-api/internal/infrastructure/minio"
	mongoConn "project-manager-api/internal/infrastructure/mongo"
	mongoActivity "project-manager-api/internal/infrastructure/mongo/activity"
	"project-manager-api/internal/infrastructure/mq"
	"project-manager-api/internal/infrastructure/redis"
	"project-manager-api/internal/infrastructure/s3"
	"project-manager-api/internal/interface/api/rest"
	"project-manager-api/internal/interface/api/rest/middleware"
	"project-manager-api/pkg/rmqconsumer"
)

type App struct {
	logger     *zap.Logger
	cfg        config.Config
	db         *pgxpool.Pool
	rdb        *goredis.Client
	mongo      *mongo.Client
	store      ports.ObjectStore
	verifier   ports.TokenVerifier
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	events     ports.EventPublisher
	mqConsumer ports.RMQConsumer
}

func NewApp(ctx context.Context) (*App, error) {
	// logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}
	defer logger.Sync()

	// config
	if err = godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Fatal("error loading .env file", zap.Error(err))
	}
	cfg := config.Load()
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	// metrics
	mCounter := metrics.NewCounter()

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	r := gin.New()
	// client ip comes from the socket, never from forwarded headers
	if err = r.SetTrustedProxies(nil); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogGin(logger, mCounter))

	// httpServer
	httpSrv := &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// db
	dbDsn, err := cfg.DBDSN()
	if err != nil {
		logger.Fatal("DB config error", zap.Error(err))
	}
	dbPool, err := postgres.New(ctx, logger, dbDsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if cfg.DB.Migrate {
		if err = postgres.Migrate(ctx, logger, dbPool); err != nil {
			logger.Fatal("failed to migrate database", zap.Error(err))
		}
	}

	// object storage
	var backend ports.ObjectStore
	switch cfg.Storage.Driver {
	case config.StorageDriverMinio:
		backend, err = minioStore.New(ctx, logger, cfg.Storage)
	default:
		backend, err = s3.New(ctx, logger, cfg.Storage)
	}
	if err != nil {
		logger.Fatal("failed to connect to object storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	store := breaker.New(backend, logger, breaker.Settings{
		Name:        "object-store-" + cfg.Storage.Driver,
		MaxFailures: cfg.Storage.BreakerMaxFailures,
		Timeout:     cfg.Storage.BreakerTimeout,
	})

	// token verifier, with the revocation denylist when redis is configured
	jwtService := jwt.New(cfg.App.JWTSecret)
	var rdb *goredis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		jwtService = jwtService.WithDenylist(redis.NewDenylist(rdb))
	} else {
		logger.Warn("REDIS_ADDR is empty, revoked tokens are not checked")
	}

	// activity store
	var mongoClient *mongo.Client
	if cfg.ActivityStore == config.ActivityStoreMongo {
		mongoClient, err = mongoConn.New(ctx, logger, cfg.Mongo.URI)
		if err != nil {
			logger.Fatal("failed to connect to mongo", zap.Error(err))
		}
	}

	// events
	var (
		events     ports.EventPublisher
		mqConsumer ports.RMQConsumer
	)
	switch cfg.EventsDriver {
	case config.EventsDriverRabbitMQ:
		rabbitDsn, err := cfg.AMQPDSN()
		if err != nil {
			logger.Fatal("RabbitMQ config error", zap.Error(err))
		}
		rbMQ := mq.New(cfg.MQ, logger)
		if err = rbMQ.Connect(ctx, rabbitDsn); err != nil {
			logger.Fatal("failed to connect to rabbitMQ", zap.Error(err))
		}
		if err = rbMQ.Init(); err != nil {
			logger.Fatal("failed init rabbitMQ", zap.Error(err))
		}
		// rmqConsumer
		consumer := rmqconsumer.New(cfg.MQ, logger, rbMQ.GetConn())
		if err = consumer.Connect(rabbitDsn); err != nil {
			logger.Fatal("failed to connect rabbitMQ consumer", zap.Error(err))
		}
		if err = consumer.Init(); err != nil {
			logger.Fatal("failed to init rabbitMQ consumer", zap.Error(err))
		}
		events, mqConsumer = rbMQ, consumer
	case config.EventsDriverKafka:
		events = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, logger)
	default:
		logger.Info("activity events are disabled")
	}

	return &App{
		logger:     logger,
		cfg:        cfg,
		db:         dbPool,
		rdb:        rdb,
		mongo:      mongoClient,
		store:      store,
		verifier:   jwtService,
		httpSrv:    httpSrv,
		router:     r,
		mCounter:   mCounter,
		events:     events,
		mqConsumer: mqConsumer,
	}, nil
}

func (a *App) Close() {
	if a.events != nil {
		if err := a.events.Close(); err != nil {
			a.logger.Warn("events close error", zap.Error(err))
		}
	}
	if a.mqConsumer != nil {
		if err := a.mqConsumer.Close(); err != nil {
			a.logger.Warn("rabbitMQ consumer close error", zap.Error(err))
		}
	}
	if a.mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = a.mongo.Disconnect(ctx)
		cancel()
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	if a.events != nil {
		g.Go(func() error {
			a.events.PublisherWorker(ctx)
			return nil
		})
	}

	if a.mqConsumer != nil {
		g.Go(func() error {
			a.mqConsumer.DeliveryWorker(ctx)
			return nil
		})
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if a.httpSrv != nil {
		if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
			return err
		}
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() error {
	// repos
	pgUserRepo := user.NewRepository(a.db)
	userRepo, err := cache.NewUserRepository(pgUserRepo, 0)
	if err != nil {
		return fmt.Errorf("user id cache: %w", err)
	}
	storedFileRepo := stored_file.NewRepository(a.db)

	var activityRepo activity.Repository
	if a.mongo != nil {
		activityRepo = mongoActivity.NewRepository(
			a.mongo.Database(a.cfg.Mongo.Database).Collection(a.cfg.Mongo.Collection),
		)
	} else {
		activityRepo = pgActivity.NewRepository(a.db)
	}

	// services
	recorder := services.NewMetadataRecorder(storedFileRepo, userRepo, activityRepo, a.events, a.logger, a.mCounter)
	fileService := services.NewIngestionService(
		services.IngestionConfig{
			MaxSizeBytes: a.cfg.Upload.MaxSizeBytes,
			Bucket:       a.cfg.Storage.BucketUploads,
			Partitions: services.PartitionNames{
				domainFile.PartitionAvatars:   a.cfg.Upload.PartitionAvatars,
				domainFile.PartitionImages:    a.cfg.Upload.PartitionImages,
				domainFile.PartitionDocuments: a.cfg.Upload.PartitionDocuments,
				domainFile.PartitionOther:     a.cfg.Upload.PartitionOther,
			},
		},
		a.verifier,
		services.NewKeyGenerator(nil),
		a.store,
		recorder,
		storedFileRepo,
		userRepo,
		a.logger,
		a.mCounter,
	)
	userService := services.NewUserService(userRepo)

	// controllers
	limiter := middleware.NewIPRateLimiter(a.cfg.App.UploadRateLimit, a.logger)
	rest.NewFileController(a.router, fileService, a.logger, a.verifier, limiter, a.cfg.Upload.MaxSizeBytes)
	rest.NewUserController(a.router, userService, a.logger)

	// ops
	a.router.GET(rest.RouteHealth, func(c *gin.Context) { c.Status(http.StatusOK) })
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))

	return nil
}

func (a *App) Logger() *zap.Logger { return a.logger }
