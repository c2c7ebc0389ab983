package app

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/client"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/config"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/credit"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/identity"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/messaging/kafka"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/policy"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/registration"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/shared/counter"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/storage"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	policyService policy.Service,
	store storage.Store,
	cfg *config.Config,
) error {
	// --- Repositories ---
	identityRepo := identity.NewRepository(gormDB)
	clientRepo := client.NewRepository(gormDB)
	formRepo := registration.NewRepository(gormDB)
	creditRepo := credit.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	sequenceRepo := counter.NewRepository(gormDB)

	// --- Cross-module adapters ---
	profileStore := client.NewProfileStore(clientRepo)
	creditGate := client.NewCreditGate(clientRepo)
	creditSource := registration.NewCreditSource(formRepo)
	notifier := client.NewNotifier(rdb)

	// --- Services ---
	identityService := identity.NewService(identityRepo, policyService, clientRepo)
	registrationService := registration.NewServiceWithOutbox(db, formRepo, profileStore, outboxRepo, notifier, sequenceRepo)
	creditService := credit.NewServiceWithOutbox(db, creditRepo, creditGate, creditSource, outboxRepo, notifier, sequenceRepo)
	clientService := client.NewServiceWithOutbox(db, clientRepo, formRepo, creditRepo, identityService, store, outboxRepo, notifier)

	// --- Handlers ---
	identityHandler := identity.NewHandler(identityService)
	clientHandler := client.NewHandler(clientService, notifier)
	registrationHandler := registration.NewHandler(registrationService)
	creditHandler := credit.NewHandler(creditService)
	uploadHandler := storage.NewUploadHandler(store)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		identity.RegisterRoutes(api, identityHandler)
		client.RegisterRoutes(api, clientHandler, policyService, rdb)
		registration.RegisterRoutes(api, registrationHandler, policyService)
		credit.RegisterRoutes(api, creditHandler, policyService)
		storage.RegisterRoutes(api, uploadHandler, policyService)
	}

	storage.RegisterFileServer(router, cfg.StorageBaseURL, cfg.StorageDir)

	return nil
}
