package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/Astemirdum/book-tracker/tracker/internal/model"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Config struct {
	Addr     string        `envconfig:"REDIS_ADDR"`
	Password string        `envconfig:"REDIS_PASSWORD"`
	DB       int           `envconfig:"REDIS_DB" default:"0"`
	TTL      time.Duration `envconfig:"REDIS_TTL" default:"10m"`
}

func (c Config) Enabled() bool {
	return c.Addr != ""
}

func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "redis ping")
	}
	return rdb, nil
}

// BookCache keeps books by id. Failures are logged and treated as misses.
type BookCache struct {
	client redis.Cmdable
	ttl    time.Duration
	log    *zap.Logger
}

func NewBookCache(client redis.Cmdable, ttl time.Duration, log *zap.Logger) *BookCache {
	return &BookCache{client: client, ttl: ttl, log: log.Named("cache")}
}

func bookKey(id int64) string {
	return "book:" + strconv.FormatInt(id, 10)
}

func (c *BookCache) Get(ctx context.Context, id int64) (model.Book, bool) {
	if c == nil || c.client == nil {
		return model.Book{}, false
	}
	data, err := c.client.Get(ctx, bookKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("get book", zap.Int64("id", id), zap.Error(err))
		}
		return model.Book{}, false
	}
	var b model.Book
	if err := json.Unmarshal(data, &b); err != nil {
		c.log.Warn("decode book", zap.Int64("id", id), zap.Error(err))
		return model.Book{}, false
	}
	return b, true
}

func (c *BookCache) Set(ctx context.Context, b model.Book) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(b)
	if err != nil {
		c.log.Warn("encode book", zap.Int64("id", b.ID), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, bookKey(b.ID), data, c.ttl).Err(); err != nil {
		c.log.Warn("set book", zap.Int64("id", b.ID), zap.Error(err))
	}
}

func (c *BookCache) Delete(ctx context.Context, id int64) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, bookKey(id)).Err(); err != nil {
		c.log.Warn("delete book", zap.Int64("id", id), zap.Error(err))
	}
}
