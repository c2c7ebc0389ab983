package registration

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

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/domain"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/events"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/messaging/kafka"
	registrationerrors "github.com/webdevdmd-hub/eliteform-client-credit/internal/registration/errors"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/shared/contextutil"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/shared/counter"
)

// ProfileLifecycle is the slice of the client profile this module is allowed
// to read and move.
type ProfileLifecycle struct {
	Status       string
	CompanyName  string
	ReopenStatus *string
}

// ProfileStore keeps the profile's status column in step with the form. The
// client module provides the implementation.
type ProfileStore interface {
	WithTx(tx *sql.Tx) ProfileStore
	GetLifecycle(ctx context.Context, clientID string) (ProfileLifecycle, error)
	SetStatus(ctx context.Context, clientID, status string, submittedAt *time.Time) error
	SetReopenStatus(ctx context.Context, clientID string, reopenStatus *string) error
}

// ProfileNotifier fans profile changes out to live watchers. Implementations
// must not fail the calling operation.
type ProfileNotifier interface {
	ProfileChanged(ctx context.Context, clientID string)
}

//go:generate mockgen -source=registration_service.go -destination=mock/registration_service_mock.go -package=mock
type Service interface {
	GetOwn(ctx context.Context, clientID string) (FormResponse, error)
	SaveDraft(ctx context.Context, clientID string, req SaveFormRequest) (FormResponse, error)
	ValidateStep(ctx context.Context, clientID string, step int) ([]FieldError, error)
	Submit(ctx context.Context, clientID string, req SaveFormRequest) (FormResponse, error)
	RequestReopen(ctx context.Context, clientID string) error
	GetByClient(ctx context.Context, clientID string) (FormResponse, error)
	UpdateOfficeUse(ctx context.Context, clientID string, req OfficeUseRequest) (FormResponse, error)
	ExportPDF(ctx context.Context, clientID string) ([]byte, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	profiles  ProfileStore
	outbox    kafka.OutboxRepository
	notifier  ProfileNotifier
	sequences counter.Repository
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, profiles ProfileStore, logger ...*zap.Logger) Service {
	l := zap.L().Named("registration.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("registration.service")
	}
	return &service{db: db, repo: repo, profiles: profiles, logger: l}
}

func NewServiceWithOutbox(db *sql.DB, repo Repository, profiles ProfileStore, outbox kafka.OutboxRepository, notifier ProfileNotifier, sequences counter.Repository, logger ...*zap.Logger) Service {
	s := NewService(db, repo, profiles, logger...).(*service)
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

func (s *service) loadForm(ctx context.Context, clientID string) (*Form, error) {
	if _, err := uuid.Parse(clientID); err != nil {
		return nil, registrationerrors.ErrInvalidClientID
	}
	f, err := s.repo.FindByClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, registrationerrors.ErrFormNotFound
		}
		return nil, err
	}
	return f, nil
}

// GetOwn returns the client's form. The first read after credentials were
// issued moves both the profile and the form to SENT, so the admin list
// reflects that the client has actually opened the portal.
func (s *service) GetOwn(ctx context.Context, clientID string) (FormResponse, error) {
	f, err := s.loadForm(ctx, clientID)
	if err != nil {
		return FormResponse{}, err
	}

	profile, err := s.profiles.GetLifecycle(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FormResponse{}, registrationerrors.ErrProfileNotFound
		}
		return FormResponse{}, err
	}

	if profile.Status == domain.StatusCredentialsSent &&
		domain.IsAllowedStatusTransition(profile.Status, domain.StatusSent) {
		if err := s.markSent(ctx, clientID); err != nil {
			return FormResponse{}, err
		}
		f.Status = domain.StatusSent
		s.notifyProfileChanged(ctx, clientID)
	}

	return mapToResponse(*f, false), nil
}

func (s *service) markSent(ctx context.Context, clientID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark sent begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).UpdateStatus(ctx, clientID, domain.StatusSent, nil); err != nil {
		s.logger.Error("mark sent form update failed", zap.Error(err))
		return err
	}
	if err := s.profiles.WithTx(tx).SetStatus(ctx, clientID, domain.StatusSent, nil); err != nil {
		s.logger.Error("mark sent profile update failed", zap.Error(err))
		return err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("mark sent commit failed", zap.Error(err))
		return err
	}
	s.logger.Info("form opened by client", zap.String("client_id", clientID))
	return nil
}

func (s *service) SaveDraft(ctx context.Context, clientID string, req SaveFormRequest) (FormResponse, error) {
	f, err := s.loadForm(ctx, clientID)
	if err != nil {
		return FormResponse{}, err
	}
	if f.Status == domain.StatusFinished {
		s.logger.Warn("draft save rejected on locked form", zap.String("client_id", clientID))
		return FormResponse{}, registrationerrors.ErrFormLocked
	}

	applyRequest(f, req)
	if err := s.repo.Save(ctx, f); err != nil {
		s.logger.Error("draft save persist failed", zap.String("client_id", clientID), zap.Error(err))
		return FormResponse{}, err
	}
	return mapToResponse(*f, false), nil
}

func (s *service) ValidateStep(ctx context.Context, clientID string, step int) ([]FieldError, error) {
	if step < 0 || step >= StepCount {
		return nil, registrationerrors.ErrInvalidStep
	}
	f, err := s.loadForm(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return ValidateStep(f, step), nil
}

// Submit locks the form. The snapshot in the request is saved first so the
// client cannot lose edits made on the review step, then every step is
// validated against the rule table.
func (s *service) Submit(ctx context.Context, clientID string, req SaveFormRequest) (FormResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	f, err := s.loadForm(ctx, clientID)
	if err != nil {
		return FormResponse{}, err
	}
	if f.Status == domain.StatusFinished {
		return FormResponse{}, registrationerrors.ErrFormLocked
	}

	profile, err := s.profiles.GetLifecycle(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return FormResponse{}, registrationerrors.ErrProfileNotFound
		}
		return FormResponse{}, err
	}
	if !domain.IsAllowedStatusTransition(profile.Status, domain.StatusFinished) {
		s.logger.Warn("submit from disallowed status",
			zap.String("client_id", clientID),
			zap.String("status", profile.Status),
		)
		return FormResponse{}, registrationerrors.ErrInvalidStatusTransition
	}

	applyRequest(f, req)
	if !f.DeclarationAgreed {
		return FormResponse{}, registrationerrors.ErrDeclarationRequired
	}
	if fieldErrors := ValidateAll(f); len(fieldErrors) > 0 {
		s.logger.Warn("submit validation failed",
			zap.String("client_id", clientID),
			zap.Int("field_errors", len(fieldErrors)),
		)
		return FormResponse{}, registrationerrors.ErrValidationFailed.WithDetails(fieldErrors)
	}

	if f.ReferenceNo == "" && s.sequences != nil {
		n, err := s.sequences.GetNextValue(ctx, "registration")
		if err != nil {
			s.logger.Error("reference number allocation failed", zap.String("client_id", clientID), zap.Error(err))
			return FormResponse{}, err
		}
		f.ReferenceNo = fmt.Sprintf("REG-%06d", n)
	}

	now := time.Now().UTC()
	f.Status = domain.StatusFinished
	f.SubmittedAt = &now

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit begin tx failed", zap.Error(err))
		return FormResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.Save(ctx, f); err != nil {
		s.logger.Error("submit form persist failed", zap.Error(err))
		return FormResponse{}, err
	}
	if err := s.profiles.WithTx(tx).SetStatus(ctx, clientID, domain.StatusFinished, &now); err != nil {
		s.logger.Error("submit profile update failed", zap.Error(err))
		return FormResponse{}, err
	}

	if s.outbox != nil {
		event := events.RegistrationSubmittedEvent{
			EventType:   "registration_submitted",
			RequestID:   rid,
			ClientID:    clientID,
			CompanyName: f.SectionA.CompanyName,
			SubmittedAt: now,
			OccurredAt:  now,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return FormResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "registration",
			AggregateID:   clientID,
			EventType:     event.EventType,
			Topic:         events.RegistrationSubmittedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("submit outbox persist failed",
				zap.String("client_id", clientID),
				zap.Error(err),
			)
			return FormResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit commit failed", zap.Error(err))
		return FormResponse{}, err
	}
	s.logger.Info("registration submitted",
		zap.String("client_id", clientID),
		zap.String("company_name", f.SectionA.CompanyName),
	)
	s.notifyProfileChanged(ctx, clientID)

	return mapToResponse(*f, false), nil
}

// RequestReopen flags the profile for admin review. The form stays locked
// until an admin approves.
func (s *service) RequestReopen(ctx context.Context, clientID string) error {
	f, err := s.loadForm(ctx, clientID)
	if err != nil {
		return err
	}
	if f.Status != domain.StatusFinished {
		return registrationerrors.ErrNotSubmitted
	}

	profile, err := s.profiles.GetLifecycle(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return registrationerrors.ErrProfileNotFound
		}
		return err
	}
	if profile.ReopenStatus != nil && *profile.ReopenStatus == domain.RegReopenPending {
		return registrationerrors.ErrReopenAlreadyPending
	}

	pending := domain.RegReopenPending
	if err := s.profiles.SetReopenStatus(ctx, clientID, &pending); err != nil {
		s.logger.Error("reopen request persist failed", zap.String("client_id", clientID), zap.Error(err))
		return err
	}
	s.logger.Info("reopen requested", zap.String("client_id", clientID))
	s.notifyProfileChanged(ctx, clientID)
	return nil
}

func (s *service) GetByClient(ctx context.Context, clientID string) (FormResponse, error) {
	f, err := s.loadForm(ctx, clientID)
	if err != nil {
		return FormResponse{}, err
	}
	return mapToResponse(*f, true), nil
}

func (s *service) UpdateOfficeUse(ctx context.Context, clientID string, req OfficeUseRequest) (FormResponse, error) {
	f, err := s.loadForm(ctx, clientID)
	if err != nil {
		return FormResponse{}, err
	}

	officeUse := OfficeUse{
		SalesComments:           req.SalesComments,
		SalesStaffName:          req.SalesStaffName,
		SalesDate:               req.SalesDate,
		DivisionManagerComments: req.DivisionManagerComments,
		DivisionManagerName:     req.DivisionManagerName,
		DivisionManagerDate:     req.DivisionManagerDate,
		FinanceManagerComments:  req.FinanceManagerComments,
		ApprovedCreditLimit:     req.ApprovedCreditLimit,
		CreditPeriod:            req.CreditPeriod,
	}
	if err := s.repo.UpdateOfficeUse(ctx, clientID, officeUse); err != nil {
		s.logger.Error("office use update failed", zap.String("client_id", clientID), zap.Error(err))
		return FormResponse{}, err
	}
	f.OfficeUse = officeUse
	return mapToResponse(*f, true), nil
}

func (s *service) ExportPDF(ctx context.Context, clientID string) ([]byte, error) {
	f, err := s.loadForm(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return renderRegistrationPDF(f)
}
