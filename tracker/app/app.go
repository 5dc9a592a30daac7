package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/book-tracker/pkg/auth"
	"github.com/Astemirdum/book-tracker/pkg/kafka"
	"github.com/Astemirdum/book-tracker/pkg/logger"
	"github.com/Astemirdum/book-tracker/pkg/postgres"
	"github.com/Astemirdum/book-tracker/tracker/config"
	"github.com/Astemirdum/book-tracker/tracker/internal/cache"
	"github.com/Astemirdum/book-tracker/tracker/internal/events"
	"github.com/Astemirdum/book-tracker/tracker/internal/handler"
	"github.com/Astemirdum/book-tracker/tracker/internal/repository"
	"github.com/Astemirdum/book-tracker/tracker/internal/server"
	"github.com/Astemirdum/book-tracker/tracker/internal/service"
	"github.com/Astemirdum/book-tracker/tracker/internal/storage"
	"github.com/Astemirdum/book-tracker/tracker/migrations"
	"go.uber.org/zap"
)

type publisher interface {
	service.EventPublisher
	Close() error
}

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "tracker")
	ctx := context.Background()

	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}

	bookCache := cache.NewBookCache(nil, cfg.Redis.TTL, log)
	if cfg.Redis.Enabled() {
		rdb, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("redis", zap.Error(err))
		}
		defer rdb.Close()
		bookCache = cache.NewBookCache(rdb, cfg.Redis.TTL, log)
	}

	var pub publisher = events.Nop{}
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
		pub = events.NewPublisher(producer, log)
	}

	var images service.ImageStore
	if cfg.S3.Enabled() {
		client, err := storage.NewClient(cfg.S3)
		if err != nil {
			log.Fatal("storage.NewClient", zap.Error(err))
		}
		images = storage.NewImageStore(client, cfg.S3, log)
	}

	tokens := auth.NewManager(cfg.JWT, nil)
	svc := service.NewService(service.Deps{
		Repo:   repo,
		Cache:  bookCache,
		Events: pub,
		Images: images,
		Tokens: tokens,
	}, log)

	h := handler.New(svc, tokens, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	if err = pub.Close(); err != nil {
		log.Error("producer close", zap.Error(err))
	}
	if err = db.Close(); err != nil {
		log.Error("db close", zap.Error(err))
	}
	log.Info("Graceful shutdown finished")
}
