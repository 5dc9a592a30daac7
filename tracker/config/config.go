package config

import (
	"log"
	"sync"
	"time"

	"github.com/Astemirdum/book-tracker/pkg/auth"
	"github.com/Astemirdum/book-tracker/pkg/kafka"
	"github.com/Astemirdum/book-tracker/pkg/logger"
	"github.com/Astemirdum/book-tracker/pkg/postgres"
	"github.com/Astemirdum/book-tracker/tracker/internal/cache"
	"github.com/Astemirdum/book-tracker/tracker/internal/storage"
	"github.com/kelseyhightower/envconfig"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"TRACKER_HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"TRACKER_HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE"`
}

type Config struct {
	Server   HTTPServer     `yaml:"server"`
	Database postgres.DB    `yaml:"db"`
	Log      logger.Log     `yaml:"log"`
	Kafka    kafka.Config   `yaml:"kafka"`
	Redis    cache.Config   `yaml:"redis"`
	JWT      auth.Config    `yaml:"jwt"`
	S3       storage.Config `yaml:"s3"`
}

var (
	once sync.Once
	cfg  *Config
)

// NewConfig reads config from environment.
// Options set values that are kept unless the environment overrides them.
func NewConfig(ops ...Option) *Config {
	once.Do(func() {
		var config Config
		for _, op := range ops {
			op(&config)
		}
		err := envconfig.Process("", &config)
		if err != nil {
			log.Fatal("NewConfig ", err)
		}
		cfg = &config
	})

	return cfg
}
