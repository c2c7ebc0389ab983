package app

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/client"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/config"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/credit"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/identity"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/policy"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/registration"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/shared/connection"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/storage"
)

const outboxTableDDL = `
CREATE TABLE IF NOT EXISTS outbox_events (
	id UUID PRIMARY KEY,
	request_id TEXT,
	aggregate_type TEXT NOT NULL,
	aggregate_id UUID NOT NULL,
	event_type TEXT NOT NULL,
	topic TEXT NOT NULL,
	payload JSONB NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	retry_count INT NOT NULL DEFAULT 0,
	next_retry_at TIMESTAMPTZ,
	error_message TEXT,
	processed_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const sequenceTableDDL = `
CREATE TABLE IF NOT EXISTS sequence_counters (
	counter_type TEXT PRIMARY KEY,
	last_value BIGINT NOT NULL DEFAULT 0,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func migrate(gormDB *gorm.DB) error {
	if err := gormDB.AutoMigrate(
		&identity.User{},
		&client.Client{},
		&registration.Form{},
		&credit.Application{},
	); err != nil {
		return err
	}
	// The outbox and sequence tables are accessed through raw SQL, so they
	// are created the same way.
	if err := gormDB.Exec(outboxTableDDL).Error; err != nil {
		return err
	}
	return gormDB.Exec(sequenceTableDDL).Error
}

// BuildApp connects infrastructure and registers every module's routes.
func BuildApp(router *gin.Engine, cfg *config.Config) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		5,
	)
	if err != nil {
		return err
	}
	zap.L().Info("database connection established")

	if err := migrate(gormDB); err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return err
	}
	zap.L().Info("redis connection established")

	policyService, err := policy.NewService(cfg.AdminEmails)
	if err != nil {
		return err
	}

	store, err := storage.NewDiskStore(cfg.StorageDir, cfg.StorageBaseURL)
	if err != nil {
		return err
	}

	return registerModules(router, sqlDB, gormDB, rdb, policyService, store, cfg)
}
