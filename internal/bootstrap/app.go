package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appsvc "exercise-tracker/internal/app"
	"exercise-tracker/internal/cache"
	"exercise-tracker/internal/config"
	"exercise-tracker/internal/pkg/clock"
	"exercise-tracker/internal/platform/database"
	rabbitmqClient "exercise-tracker/internal/platform/rabbitmq"
	redisClient "exercise-tracker/internal/platform/redis"
	"exercise-tracker/internal/repository"
	"exercise-tracker/internal/worker"
)

// App owns every long-lived handle. Redis and MQConn are nil when disabled.
type App struct {
	Config       *config.Config
	DB           *gorm.DB
	Redis        *redis.Client
	MQConn       *amqp.Connection
	IngestWorker *worker.ExerciseIngestWorker

	Users     *appsvc.UserService
	Exercises *appsvc.ExerciseService
	Logs      *appsvc.LogService

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	db, err := database.New(ctx, cfg.Database.Driver, cfg.DatabaseDSN())
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	a := &App{Config: cfg, DB: db}

	if cfg.Redis.Enabled {
		redisCli, err := redisClient.New(ctx, cfg.Redis)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.Redis = redisCli
	}

	if cfg.RabbitMQ.Enabled {
		mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.MQConn = mqConn
	}

	a.wire(clock.NewRealClock())

	if a.MQConn != nil {
		a.IngestWorker = worker.NewExerciseIngestWorker(a.MQConn, a.Exercises, cfg.RabbitMQ.IngestQueue)
		if err := a.IngestWorker.Start(ctx); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("start ingest worker failed: %w", err)
		}
		log.Printf("ingest worker consuming %s", cfg.RabbitMQ.IngestQueue)
	}

	return a, nil
}

// NewWithStore assembles an App around an already opened store, without Redis or RabbitMQ.
func NewWithStore(cfg *config.Config, db *gorm.DB, clk clock.Clock) *App {
	a := &App{Config: cfg, DB: db}
	a.wire(clk)
	return a
}

func (a *App) wire(clk clock.Clock) {
	userRepo := repository.NewUserRepository(a.DB)
	exerciseRepo := repository.NewExerciseRepository(a.DB)

	var logCache appsvc.LogCache
	if a.Redis != nil {
		logCache = cache.NewLogCache(a.Redis, time.Duration(a.Config.Redis.LogTTLSeconds)*time.Second)
	}

	var publisher appsvc.EventPublisher
	if a.MQConn != nil {
		publisher = rabbitmqClient.NewExercisePublisher(a.MQConn, a.Config.RabbitMQ.RecordedQueue)
	}

	a.Users = appsvc.NewUserService(userRepo)
	a.Exercises = appsvc.NewExerciseService(userRepo, exerciseRepo, clk, logCache, publisher, a.Config.Exercise.DedupeIdentical)
	a.Logs = appsvc.NewLogService(userRepo, exerciseRepo, logCache)
	a.StartedAt = clk.NowUtc()
}

func (a *App) Close() error {
	var closeErr error
	if a.IngestWorker != nil {
		a.IngestWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
