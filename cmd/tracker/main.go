package main

import (
	stdLog "log"
	"time"

	"github.com/Astemirdum/book-tracker/tracker/app"
	"github.com/Astemirdum/book-tracker/tracker/config"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		stdLog.Println("load envs from .env ", zap.Error(err))
	}
	cfg := config.NewConfig(
		config.WithLogLevel(zapcore.DebugLevel),
		config.WithReadTimeout(10*time.Second),
		config.WithWriteTimeout(time.Minute),
	)

	app.Run(cfg)
}
