package client

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	clienterrors "github.com/webdevdmd-hub/eliteform-client-credit/internal/client/errors"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/credit"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/domain"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/events"
	identityerrors "github.com/webdevdmd-hub/eliteform-client-credit/internal/identity/errors"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/messaging/kafka"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/registration"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/shared/contextutil"
)

// IdentityManager creates and removes login users. The identity module
// implements it.
type IdentityManager interface {
	CreateUser(ctx context.Context, email, password string) (string, error)
	DeleteUser(ctx context.Context, userID string) error
}

// BlobStore removes a client's uploaded files during the deletion cascade.
type BlobStore interface {
	DeletePrefix(ctx context.Context, prefix string) error
}

type ProfileNotifier interface {
	ProfileChanged(ctx context.Context, clientID string)
}

//go:generate mockgen -source=client_service.go -destination=mock/client_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateClientRequest) (CreateClientResponse, error)
	List(ctx context.Context) ([]ClientResponse, error)
	Get(ctx context.Context, clientID string) (ClientView, error)
	GetOwnProfile(ctx context.Context, clientID string) (ClientResponse, error)
	MarkCredentialsSent(ctx context.Context, clientID string) (ClientResponse, error)
	RequestCreditAccess(ctx context.Context, clientID string) error
	SetCreditAccess(ctx context.Context, clientID string, enable bool) (ClientResponse, error)
	ApproveReopen(ctx context.Context, clientID string) (ClientResponse, error)
	ApproveCreditReopen(ctx context.Context, clientID string) (ClientResponse, error)
	Delete(ctx context.Context, clientID string) error
}

type service struct {
	db         *sql.DB
	repo       Repository
	forms      registration.Repository
	creditApps credit.Repository
	identity   IdentityManager
	blobs      BlobStore
	outbox     kafka.OutboxRepository
	notifier   ProfileNotifier
	views      singleflight.Group
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	forms registration.Repository,
	creditApps credit.Repository,
	identity IdentityManager,
	blobs BlobStore,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("client.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("client.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		forms:      forms,
		creditApps: creditApps,
		identity:   identity,
		blobs:      blobs,
		logger:     l,
	}
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	forms registration.Repository,
	creditApps credit.Repository,
	identity IdentityManager,
	blobs BlobStore,
	outbox kafka.OutboxRepository,
	notifier ProfileNotifier,
	logger ...*zap.Logger,
) Service {
	s := NewService(db, repo, forms, creditApps, identity, blobs, logger...).(*service)
	s.outbox = outbox
	s.notifier = notifier
	return s
}

const passwordCharset = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"
const passwordLength = 12

func generatePassword() (string, error) {
	var b strings.Builder
	for i := 0; i < passwordLength; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordCharset))))
		if err != nil {
			return "", err
		}
		b.WriteByte(passwordCharset[n.Int64()])
	}
	return b.String(), nil
}

func (s *service) notifyProfileChanged(ctx context.Context, clientID string) {
	if s.notifier != nil {
		s.notifier.ProfileChanged(ctx, clientID)
	}
}

// Create provisions a client end to end: login user, profile, blank form.
// The generated password is returned once for the admin to forward.
func (s *service) Create(ctx context.Context, req CreateClientRequest) (CreateClientResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	password, err := generatePassword()
	if err != nil {
		return CreateClientResponse{}, err
	}

	userID, err := s.identity.CreateUser(ctx, email, password)
	if err != nil {
		if errors.Is(err, identityerrors.ErrEmailAlreadyRegistered) {
			return CreateClientResponse{}, clienterrors.ErrEmailAlreadyRegistered
		}
		s.logger.Error("create client user failed", zap.String("email", email), zap.Error(err))
		return CreateClientResponse{}, err
	}

	uid, err := uuid.Parse(userID)
	if err != nil {
		return CreateClientResponse{}, err
	}

	profile := &Client{
		ID:                  uid,
		Email:               email,
		CompanyName:         req.CompanyName,
		Status:              domain.StatusCreated,
		CreditRequestStatus: domain.CreditRequestNone,
	}

	if err := s.createRecords(ctx, rid, profile); err != nil {
		// The login user is orphaned if this rollback path fails too, so
		// the compensation is logged either way.
		if delErr := s.identity.DeleteUser(ctx, userID); delErr != nil {
			s.logger.Error("create client compensation failed",
				zap.String("user_id", userID),
				zap.Error(delErr),
			)
		}
		return CreateClientResponse{}, err
	}

	s.logger.Info("client created",
		zap.String("client_id", userID),
		zap.String("company_name", req.CompanyName),
	)

	return CreateClientResponse{
		Client:            mapToResponse(*profile),
		TemporaryPassword: password,
	}, nil
}

func (s *service) createRecords(ctx context.Context, rid string, profile *Client) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create client begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, profile); err != nil {
		s.logger.Error("create client profile persist failed", zap.Error(err))
		return err
	}

	// The blank form carries the company identity forward so the client
	// does not retype it.
	form := &registration.Form{
		ID:     profile.ID,
		Status: domain.StatusCreated,
		SectionA: registration.CompanyInfo{
			CompanyName: profile.CompanyName,
			Email:       profile.Email,
		},
	}
	if err := s.forms.WithTx(tx).Create(ctx, form); err != nil {
		s.logger.Error("create client form persist failed", zap.Error(err))
		return err
	}

	if s.outbox != nil {
		event := events.ClientCreatedEvent{
			EventType:   "client_created",
			RequestID:   rid,
			ClientID:    profile.ID.String(),
			Email:       profile.Email,
			CompanyName: profile.CompanyName,
			OccurredAt:  time.Now().UTC(),
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal event failed", zap.String("request_id", rid), zap.Error(err))
			return err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "client",
			AggregateID:   profile.ID.String(),
			EventType:     event.EventType,
			Topic:         events.ClientCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create client outbox persist failed", zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create client commit failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]ClientResponse, error) {
	clients, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(clients), nil
}

// Get assembles the merged admin view. Concurrent reads of the same client
// share one load.
func (s *service) Get(ctx context.Context, clientID string) (ClientView, error) {
	if _, err := uuid.Parse(clientID); err != nil {
		return ClientView{}, clienterrors.ErrInvalidClientID
	}

	v, err, _ := s.views.Do(clientID, func() (interface{}, error) {
		return s.loadView(ctx, clientID)
	})
	if err != nil {
		return ClientView{}, err
	}
	return v.(ClientView), nil
}

func (s *service) loadView(ctx context.Context, clientID string) (ClientView, error) {
	profile, err := s.repo.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ClientView{}, clienterrors.ErrClientNotFound
		}
		return ClientView{}, err
	}

	var formResp *registration.FormResponse
	if form, err := s.forms.FindByClient(ctx, clientID); err == nil {
		resp := registration.MapToAdminResponse(*form)
		formResp = &resp
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ClientView{}, err
	}

	var appResp *credit.ApplicationResponse
	if app, err := s.creditApps.FindByClient(ctx, clientID); err == nil {
		resp := credit.MapToAdminResponse(*app)
		appResp = &resp
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return ClientView{}, err
	}

	return buildView(*profile, formResp, appResp), nil
}

func (s *service) GetOwnProfile(ctx context.Context, clientID string) (ClientResponse, error) {
	c, err := s.findClient(ctx, clientID)
	if err != nil {
		return ClientResponse{}, err
	}
	return mapToResponse(*c), nil
}

// MarkCredentialsSent records that login details went out to the client.
func (s *service) MarkCredentialsSent(ctx context.Context, clientID string) (ClientResponse, error) {
	c, err := s.findClient(ctx, clientID)
	if err != nil {
		return ClientResponse{}, err
	}
	if !domain.IsAllowedStatusTransition(c.Status, domain.StatusCredentialsSent) {
		return ClientResponse{}, clienterrors.ErrCredentialsAlreadySent
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark credentials sent begin tx failed", zap.Error(err))
		return ClientResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).UpdateLifecycle(ctx, clientID, domain.StatusCredentialsSent, nil); err != nil {
		s.logger.Error("mark credentials sent profile update failed", zap.Error(err))
		return ClientResponse{}, err
	}
	if err := s.forms.WithTx(tx).UpdateStatus(ctx, clientID, domain.StatusCredentialsSent, nil); err != nil {
		s.logger.Error("mark credentials sent form update failed", zap.Error(err))
		return ClientResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("mark credentials sent commit failed", zap.Error(err))
		return ClientResponse{}, err
	}

	c.Status = domain.StatusCredentialsSent
	s.logger.Info("credentials sent", zap.String("client_id", clientID))
	s.notifyProfileChanged(ctx, clientID)
	return mapToResponse(*c), nil
}

func (s *service) RequestCreditAccess(ctx context.Context, clientID string) error {
	c, err := s.findClient(ctx, clientID)
	if err != nil {
		return err
	}
	if c.HasCreditAccess {
		return clienterrors.ErrCreditAlreadyGranted
	}
	if c.CreditRequestStatus == domain.CreditRequestRequested {
		return clienterrors.ErrCreditAlreadyRequested
	}

	if err := s.repo.UpdateCreditAccess(ctx, clientID, false, true, domain.CreditRequestRequested); err != nil {
		s.logger.Error("credit request persist failed", zap.String("client_id", clientID), zap.Error(err))
		return err
	}
	s.logger.Info("credit access requested", zap.String("client_id", clientID))
	s.notifyProfileChanged(ctx, clientID)
	return nil
}

// SetCreditAccess grants or revokes the credit surface. Revoking restores
// the request marker for clients who had asked, so their request is not
// silently lost.
func (s *service) SetCreditAccess(ctx context.Context, clientID string, enable bool) (ClientResponse, error) {
	c, err := s.findClient(ctx, clientID)
	if err != nil {
		return ClientResponse{}, err
	}

	requestStatus := domain.CreditRequestApproved
	if !enable {
		requestStatus = domain.CreditRequestNone
		if c.CreditRequested {
			requestStatus = domain.CreditRequestRequested
		}
	}

	if err := s.repo.UpdateCreditAccess(ctx, clientID, enable, c.CreditRequested, requestStatus); err != nil {
		s.logger.Error("credit access update failed", zap.String("client_id", clientID), zap.Error(err))
		return ClientResponse{}, err
	}

	c.HasCreditAccess = enable
	c.CreditRequestStatus = requestStatus
	s.logger.Info("credit access changed",
		zap.String("client_id", clientID),
		zap.Bool("enabled", enable),
	)
	s.notifyProfileChanged(ctx, clientID)
	return mapToResponse(*c), nil
}

// ApproveReopen unlocks a submitted registration: the profile and form both
// return to SENT and the pending flag clears in the same transaction.
func (s *service) ApproveReopen(ctx context.Context, clientID string) (ClientResponse, error) {
	c, err := s.findClient(ctx, clientID)
	if err != nil {
		return ClientResponse{}, err
	}
	if c.ReopenStatus == nil || *c.ReopenStatus != domain.RegReopenPending {
		return ClientResponse{}, clienterrors.ErrNoReopenPending
	}
	if !domain.IsAllowedStatusTransition(c.Status, domain.StatusSent) {
		return ClientResponse{}, clienterrors.ErrNoReopenPending
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve reopen begin tx failed", zap.Error(err))
		return ClientResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).ApproveReopen(ctx, clientID, domain.StatusSent); err != nil {
		s.logger.Error("approve reopen profile update failed", zap.Error(err))
		return ClientResponse{}, err
	}
	if err := s.forms.WithTx(tx).UpdateStatus(ctx, clientID, domain.StatusSent, nil); err != nil {
		s.logger.Error("approve reopen form update failed", zap.Error(err))
		return ClientResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("approve reopen commit failed", zap.Error(err))
		return ClientResponse{}, err
	}

	c.Status = domain.StatusSent
	c.ReopenStatus = nil
	s.logger.Info("registration reopened", zap.String("client_id", clientID))
	s.notifyProfileChanged(ctx, clientID)
	return mapToResponse(*c), nil
}

// ApproveCreditReopen unlocks a submitted credit application back to draft.
func (s *service) ApproveCreditReopen(ctx context.Context, clientID string) (ClientResponse, error) {
	c, err := s.findClient(ctx, clientID)
	if err != nil {
		return ClientResponse{}, err
	}
	if c.CreditReopenStatus == nil || *c.CreditReopenStatus != domain.CreditReopenPending {
		return ClientResponse{}, clienterrors.ErrNoCreditReopenPending
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve credit reopen begin tx failed", zap.Error(err))
		return ClientResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).ApproveCreditReopen(ctx, clientID); err != nil {
		s.logger.Error("approve credit reopen profile update failed", zap.Error(err))
		return ClientResponse{}, err
	}
	if err := s.creditApps.WithTx(tx).ReopenToDraft(ctx, clientID); err != nil {
		s.logger.Error("approve credit reopen application update failed", zap.Error(err))
		return ClientResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("approve credit reopen commit failed", zap.Error(err))
		return ClientResponse{}, err
	}

	c.CreditReopenStatus = nil
	s.logger.Info("credit application reopened", zap.String("client_id", clientID))
	s.notifyProfileChanged(ctx, clientID)
	return mapToResponse(*c), nil
}

// Delete removes everything the client owns: uploaded files, form, credit
// application, profile, then the login user. Blob removal failures are
// logged and skipped so storage hiccups cannot strand the records.
func (s *service) Delete(ctx context.Context, clientID string) error {
	if _, err := s.findClient(ctx, clientID); err != nil {
		return err
	}

	if err := s.blobs.DeletePrefix(ctx, "clients/"+clientID); err != nil {
		s.logger.Warn("delete client blobs failed",
			zap.String("client_id", clientID),
			zap.Error(err),
		)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete client begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.forms.WithTx(tx).HardDelete(ctx, clientID); err != nil {
		s.logger.Error("delete client form failed", zap.Error(err))
		return err
	}
	if err := s.creditApps.WithTx(tx).HardDelete(ctx, clientID); err != nil {
		s.logger.Error("delete client application failed", zap.Error(err))
		return err
	}
	if err := s.repo.WithTx(tx).HardDelete(ctx, clientID); err != nil {
		s.logger.Error("delete client profile failed", zap.Error(err))
		return err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("delete client commit failed", zap.Error(err))
		return err
	}

	if err := s.identity.DeleteUser(ctx, clientID); err != nil {
		s.logger.Error("delete client user failed",
			zap.String("client_id", clientID),
			zap.Error(err),
		)
		return err
	}

	s.logger.Info("client deleted", zap.String("client_id", clientID))
	return nil
}

func (s *service) findClient(ctx context.Context, clientID string) (*Client, error) {
	if _, err := uuid.Parse(clientID); err != nil {
		return nil, clienterrors.ErrInvalidClientID
	}
	c, err := s.repo.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, clienterrors.ErrClientNotFound
		}
		return nil, err
	}
	return c, nil
}
