package credit

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	crediterrors "github.com/webdevdmd-hub/eliteform-client-credit/internal/credit/errors"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/documents"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/domain"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/events"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/messaging/kafka"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/shared/contextutil"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/shared/counter"
)

// AccessInfo is the slice of the client profile the credit module needs.
type AccessInfo struct {
	Granted      bool
	ReopenStatus *string
}

// ProfileGate answers whether a client may touch the credit application and
// records credit reopen requests. The client module implements it.
type ProfileGate interface {
	CreditAccess(ctx context.Context, clientID string) (AccessInfo, error)
	SetCreditReopenStatus(ctx context.Context, clientID string, reopenStatus *string) error
}

// FormDefaults is the slice of the registration form used to prefill a new
// draft and to backfill documents on submit.
type FormDefaults struct {
	Company         CompanyInfo
	TradeReferences []TradeReference
	Uploads         map[string]string
}

// RegistrationSource exposes a registration form snapshot. The registration
// module implements it.
type RegistrationSource interface {
	Defaults(ctx context.Context, clientID string) (FormDefaults, error)
}

type ProfileNotifier interface {
	ProfileChanged(ctx context.Context, clientID string)
}

var creditDocLabels = map[string]string{
	documents.CreditDocTradeLicense:   "Trade License is required",
	documents.CreditDocVATCertificate: "VAT Certificate is required",
	documents.CreditDocEmiratesID:     "Emirates ID Copy is required",
	documents.CreditDocVisaCopy:       "Visa Copy is required",
	documents.CreditDocPassportCopy:   "Passport Copy is required",
	documents.CreditDocBankStatement:  "Bank Statement is required",
}

//go:generate mockgen -source=credit_service.go -destination=mock/credit_service_mock.go -package=mock
type Service interface {
	GetOwn(ctx context.Context, clientID string) (ApplicationResponse, error)
	SaveDraft(ctx context.Context, clientID string, req SaveApplicationRequest) (ApplicationResponse, error)
	Submit(ctx context.Context, clientID string, req SaveApplicationRequest) (ApplicationResponse, error)
	RequestReopen(ctx context.Context, clientID string) error
	GetByClient(ctx context.Context, clientID string) (ApplicationResponse, error)
	ExportPDF(ctx context.Context, clientID string) ([]byte, error)
}

type service struct {
	db           *sql.DB
	repo         Repository
	gate         ProfileGate
	registration RegistrationSource
	outbox       kafka.OutboxRepository
	notifier     ProfileNotifier
	sequences    counter.Repository
	logger       *zap.Logger
}

func NewService(db *sql.DB, repo Repository, gate ProfileGate, registration RegistrationSource, logger ...*zap.Logger) Service {
	l := zap.L().Named("credit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("credit.service")
	}
	return &service{db: db, repo: repo, gate: gate, registration: registration, logger: l}
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, gate ProfileGate, registration RegistrationSource, outbox kafka.OutboxRepository, notifier ProfileNotifier, sequences counter.Repository, logger ...*zap.Logger) Service {
	s := NewService(db, repo, gate, registration, logger...).(*service)
	s.outbox = outbox
	s.notifier = notifier
	s.sequences = sequences
	return s
}

func (s *service) notifyProfileChanged(ctx context.Context, clientID string) {
	if s.notifier != nil {
		s.notifier.ProfileChanged(ctx, clientID)
	}
}

// checkAccess enforces the admin-granted gate on every client-side operation.
func (s *service) checkAccess(ctx context.Context, clientID string) (AccessInfo, error) {
	if _, err := uuid.Parse(clientID); err != nil {
		return AccessInfo{}, crediterrors.ErrInvalidClientID
	}
	access, err := s.gate.CreditAccess(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AccessInfo{}, crediterrors.ErrProfileNotFound
		}
		return AccessInfo{}, err
	}
	if !access.Granted {
		s.logger.Warn("credit access denied", zap.String("client_id", clientID))
		return AccessInfo{}, crediterrors.ErrAccessDenied
	}
	return access, nil
}

// GetOwn returns the client's application, creating a draft on first access
// prefilled from the registration form: company block, the first trade
// references and the document fallback.
func (s *service) GetOwn(ctx context.Context, clientID string) (ApplicationResponse, error) {
	if _, err := s.checkAccess(ctx, clientID); err != nil {
		return ApplicationResponse{}, err
	}

	app, err := s.repo.FindByClient(ctx, clientID)
	if err == nil {
		return mapToResponse(*app), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ApplicationResponse{}, err
	}

	defaults, err := s.registration.Defaults(ctx, clientID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return ApplicationResponse{}, err
	}

	app = &Application{
		ID:              uuid.MustParse(clientID),
		Status:          domain.CreditStatusDraft,
		Company:         defaults.Company,
		TradeReferences: defaults.TradeReferences,
		Documents:       documents.ResolveCreditDocs(nil, defaults.Uploads),
	}
	if err := s.repo.Create(ctx, app); err != nil {
		s.logger.Error("create draft application failed", zap.String("client_id", clientID), zap.Error(err))
		return ApplicationResponse{}, err
	}
	s.logger.Info("credit application draft created", zap.String("client_id", clientID))
	return mapToResponse(*app), nil
}

func (s *service) SaveDraft(ctx context.Context, clientID string, req SaveApplicationRequest) (ApplicationResponse, error) {
	if _, err := s.checkAccess(ctx, clientID); err != nil {
		return ApplicationResponse{}, err
	}

	app, err := s.loadApplication(ctx, clientID)
	if err != nil {
		return ApplicationResponse{}, err
	}
	if app.Status == domain.CreditStatusSubmitted {
		s.logger.Warn("draft save rejected on locked application", zap.String("client_id", clientID))
		return ApplicationResponse{}, crediterrors.ErrApplicationLocked
	}

	applyRequest(app, req)
	if err := s.repo.Save(ctx, app); err != nil {
		s.logger.Error("draft save persist failed", zap.String("client_id", clientID), zap.Error(err))
		return ApplicationResponse{}, err
	}
	return mapToResponse(*app), nil
}

// Submit locks the application. Documents missing from the application fall
// back to the registration uploads before the required set is checked.
func (s *service) Submit(ctx context.Context, clientID string, req SaveApplicationRequest) (ApplicationResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	if _, err := s.checkAccess(ctx, clientID); err != nil {
		return ApplicationResponse{}, err
	}

	app, err := s.loadApplication(ctx, clientID)
	if err != nil {
		return ApplicationResponse{}, err
	}
	if app.Status == domain.CreditStatusSubmitted {
		return ApplicationResponse{}, crediterrors.ErrApplicationLocked
	}

	applyRequest(app, req)
	if !app.DeclarationAgreed {
		return ApplicationResponse{}, crediterrors.ErrDeclarationRequired
	}

	defaults, err := s.registration.Defaults(ctx, clientID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return ApplicationResponse{}, err
	}
	app.Documents = documents.ResolveCreditDocs(app.Documents, defaults.Uploads)

	var missing []MissingDocument
	for _, key := range documents.CreditDocKeys() {
		if !documents.Satisfied(app.Documents[key]) {
			missing = append(missing, MissingDocument{Document: key, Message: creditDocLabels[key]})
		}
	}
	if len(missing) > 0 {
		s.logger.Warn("submit missing documents",
			zap.String("client_id", clientID),
			zap.Int("missing", len(missing)),
		)
		return ApplicationResponse{}, crediterrors.ErrMissingDocuments.WithDetails(missing)
	}

	if app.ReferenceNo == "" && s.sequences != nil {
		n, err := s.sequences.GetNextValue(ctx, "credit_application")
		if err != nil {
			s.logger.Error("reference number allocation failed", zap.String("client_id", clientID), zap.Error(err))
			return ApplicationResponse{}, err
		}
		app.ReferenceNo = fmt.Sprintf("CR-%06d", n)
	}

	now := time.Now().UTC()
	app.Status = domain.CreditStatusSubmitted
	app.SubmittedAt = &now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit begin tx failed", zap.Error(err))
		return ApplicationResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Save(ctx, app); err != nil {
		s.logger.Error("submit persist failed", zap.Error(err))
		return ApplicationResponse{}, err
	}

	if s.outbox != nil {
		event := events.CreditSubmittedEvent{
			EventType:   "credit_submitted",
			RequestID:   rid,
			ClientID:    clientID,
			SubmittedAt: now,
			OccurredAt:  now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return ApplicationResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "credit_application",
			AggregateID:   clientID,
			EventType:     event.EventType,
			Topic:         events.CreditSubmittedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("submit outbox persist failed",
				zap.String("client_id", clientID),
				zap.Error(err),
			)
			return ApplicationResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit commit failed", zap.Error(err))
		return ApplicationResponse{}, err
	}
	s.logger.Info("credit application submitted", zap.String("client_id", clientID))
	s.notifyProfileChanged(ctx, clientID)

	return mapToResponse(*app), nil
}

func (s *service) RequestReopen(ctx context.Context, clientID string) error {
	access, err := s.checkAccess(ctx, clientID)
	if err != nil {
		return err
	}

	app, err := s.loadApplication(ctx, clientID)
	if err != nil {
		return err
	}
	if app.Status != domain.CreditStatusSubmitted {
		return crediterrors.ErrNotSubmitted
	}
	if access.ReopenStatus != nil && *access.ReopenStatus == domain.CreditReopenPending {
		return crediterrors.ErrReopenAlreadyPending
	}

	pending := domain.CreditReopenPending
	if err := s.gate.SetCreditReopenStatus(ctx, clientID, &pending); err != nil {
		s.logger.Error("credit reopen request persist failed", zap.String("client_id", clientID), zap.Error(err))
		return err
	}
	if err := s.repo.SetReopenRequested(ctx, clientID, true); err != nil {
		s.logger.Error("credit reopen marker persist failed", zap.String("client_id", clientID), zap.Error(err))
		return err
	}
	s.logger.Info("credit reopen requested", zap.String("client_id", clientID))
	s.notifyProfileChanged(ctx, clientID)
	return nil
}

func (s *service) GetByClient(ctx context.Context, clientID string) (ApplicationResponse, error) {
	app, err := s.loadApplication(ctx, clientID)
	if err != nil {
		return ApplicationResponse{}, err
	}
	return mapToResponse(*app), nil
}

func (s *service) ExportPDF(ctx context.Context, clientID string) ([]byte, error) {
	app, err := s.loadApplication(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return renderCreditPDF(app)
}

func (s *service) loadApplication(ctx context.Context, clientID string) (*Application, error) {
	if _, err := uuid.Parse(clientID); err != nil {
		return nil, crediterrors.ErrInvalidClientID
	}
	app, err := s.repo.FindByClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, crediterrors.ErrApplicationNotFound
		}
		return nil, err
	}
	return app, nil
}
