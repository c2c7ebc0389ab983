package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/app"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/config"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/shared/apperror"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config failed", zap.Error(err))
	}

	if err := app.RunConsumer(cfg); err != nil {
		logger.Fatal("run consumer failed", zap.Error(err))
	}
}
