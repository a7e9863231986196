package main

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	healthcheck "github.com/tavsec/gin-healthcheck"
	"github.com/tavsec/gin-healthcheck/checks"
	healthconfig "github.com/tavsec/gin-healthcheck/config"
	"go.uber.org/zap"

	"github.com/devconnect/devconnect-api/adapters/event"
	"github.com/devconnect/devconnect-api/adapters/github"
	httpAdapter "github.com/devconnect/devconnect-api/adapters/http"
	"github.com/devconnect/devconnect-api/adapters/persistence"
	"github.com/devconnect/devconnect-api/internal/application/service"
	authUC "github.com/devconnect/devconnect-api/internal/application/usecase/auth"
	profileUC "github.com/devconnect/devconnect-api/internal/application/usecase/profile"
	"github.com/devconnect/devconnect-api/internal/config"
	"github.com/devconnect/devconnect-api/pkg/auth"
	"github.com/devconnect/devconnect-api/pkg/logger"
	"github.com/devconnect/devconnect-api/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("cannot load config: " + err.Error())
	}

	log := logger.NewZapLogger(cfg.App.Env)
	log.Info("Starting devconnect API server...")

	if cfg.Tracing.Enabled {
		tp, err := tracing.NewTracerProvider(cfg, log, "devconnect-api")
		if err != nil {
			log.Fatal("cannot initialize tracing", err)
		}
		defer tp.Shutdown(context.Background())
	}

	dbPool, err := persistence.NewPostgresPool(cfg, log)
	if err != nil {
		log.Fatal("cannot connect to Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, log)
	if err != nil {
		log.Fatal("cannot connect to Redis", err)
	}
	defer redisClient.Close()

	var events service.EventPublisher
	if len(cfg.Kafka.Brokers) == 0 {
		log.Warn("Kafka brokers not configured, domain events disabled")
		events = event.NopPublisher{}
	} else {
		kafkaPublisher, err := event.NewKafkaPublisher(cfg, log)
		if err != nil {
			log.Fatal("cannot initialize Kafka", err)
		}
		defer kafkaPublisher.Close()
		events = kafkaPublisher
	}

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, log)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	repoLister := github.NewClient(cfg, http.DefaultClient, github.NewRedisCache(redisClient), log)

	// Use cases
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, log)
	getProfileUseCase := profileUC.NewGetProfileUseCase(profileRepo)
	listProfilesUseCase := profileUC.NewListProfilesUseCase(profileRepo)
	upsertProfileUseCase := profileUC.NewUpsertProfileUseCase(profileRepo, events, log)
	experienceUseCase := profileUC.NewExperienceUseCase(profileRepo)
	educationUseCase := profileUC.NewEducationUseCase(profileRepo)
	deleteAccountUseCase := profileUC.NewDeleteAccountUseCase(profileRepo, userRepo, events, log)
	githubReposUseCase := profileUC.NewGithubReposUseCase(repoLister)

	// HTTP handlers
	authHandler := httpAdapter.NewAuthHandler(loginUseCase)
	profileHandler := httpAdapter.NewProfileHandler(
		getProfileUseCase,
		listProfilesUseCase,
		upsertProfileUseCase,
		experienceUseCase,
		educationUseCase,
		deleteAccountUseCase,
		githubReposUseCase,
		log,
	)

	router := httpAdapter.NewRouter(authHandler, profileHandler, jwtSvc, log)

	healthcheck.New(router, healthconfig.DefaultConfig(), []checks.Check{
		pgxCheck{pool: dbPool},
		redisCheck{client: redisClient},
	})

	log.Info("Server running", zap.String("port", cfg.App.Port))
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatal("cannot run server", err)
	}
}

type pgxCheck struct {
	pool *pgxpool.Pool
}

func (c pgxCheck) Pass() bool { return c.pool.Ping(context.Background()) == nil }
func (c pgxCheck) Name() string { return "postgres" }

type redisCheck struct {
	client *redis.Client
}

func (c redisCheck) Pass() bool { return c.client.Ping(context.Background()).Err() == nil }
func (c redisCheck) Name() string { return "redis" }
