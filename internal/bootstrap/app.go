package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"holoframe-backend/internal/app"
	"holoframe-backend/internal/cache"
	"holoframe-backend/internal/config"
	"holoframe-backend/internal/platform/database"
	rabbitmqClient "holoframe-backend/internal/platform/rabbitmq"
	redisClient "holoframe-backend/internal/platform/redis"
	"holoframe-backend/internal/repository"
	"holoframe-backend/internal/storage"
	"holoframe-backend/internal/store"
	"holoframe-backend/internal/worker"
)

type App struct {
	Config  *config.Config
	Store   *store.Store
	Files   *storage.LocalStore
	Gallery *app.GalleryService

	Redis      *redis.Client
	MQConn     *amqp.Connection
	WarmWorker *worker.GalleryWarmWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	db, err := database.New(ctx, cfg.Database.Driver, cfg.DSN())
	if err != nil {
		return nil, err
	}
	docStore := store.New(db)

	a := &App{
		Config:    cfg,
		Store:     docStore,
		Files:     storage.NewLocalStore(cfg.Upload.Dir),
		StartedAt: time.Now(),
	}

	if err := docStore.Migrate(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}

	var galleryCache app.GalleryCache
	if cfg.Redis.Enabled {
		a.Redis, err = redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		galleryCache = cache.NewGalleryCache(a.Redis, time.Duration(cfg.Redis.GalleryTTLSeconds)*time.Second)
	}

	var publisher app.PhotoEventPublisher
	if cfg.RabbitMQ.Enabled {
		a.MQConn, err = rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.PhotoEventQueue)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		publisher = rabbitmqClient.NewPhotoEventPublisher(a.MQConn, cfg.RabbitMQ.PhotoEventQueue)
	}

	a.Gallery = app.NewGalleryService(
		repository.NewUserRepository(docStore),
		repository.NewPhotoRepository(docStore),
		a.Files,
		galleryCache,
		publisher,
		cfg.Upload.PublicBaseURL,
	)

	if a.MQConn != nil {
		a.WarmWorker = worker.NewGalleryWarmWorker(a.MQConn, a.Gallery, cfg.RabbitMQ.PhotoEventQueue)
		if err := a.WarmWorker.Start(ctx); err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("start gallery warm worker failed: %w", err)
		}
	}

	log.Printf("store ready (driver=%s, redis=%t, rabbitmq=%t)", cfg.Database.Driver, a.Redis != nil, a.MQConn != nil)
	return a, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.WarmWorker != nil {
		a.WarmWorker.Close()
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
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			closeErr = err
		}
	}
	return closeErr
}
