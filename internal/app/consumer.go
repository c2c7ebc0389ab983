package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/client"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/config"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/events"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/messaging/kafka/consumer"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/registration"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/shared/connection"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/storage"
)

// RunConsumer archives submission snapshots from the registration stream.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

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

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	store, err := storage.NewDiskStore(cfg.StorageDir, cfg.StorageBaseURL)
	if err != nil {
		return err
	}

	clientRepo := client.NewRepository(gormDB)
	formRepo := registration.NewRepository(gormDB)
	registrationService := registration.NewService(sqlDB, formRepo, client.NewProfileStore(clientRepo))

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.RegistrationSubmittedTopic,
		GroupID:        "eliteform-registration-snapshot",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeRegistrationSubmitted(ctx, reader, registrationService, store, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
