package main

import (
	"flag"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/app"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/config"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/shared/apperror"
)

func main() {
	count := flag.Int("count", 10, "number of demo clients to create")
	flag.Parse()

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

	if err := app.RunSeed(cfg, *count); err != nil {
		logger.Fatal("run seed failed", zap.Error(err))
	}
}
