package registration_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/documents"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/domain"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/events"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/messaging/kafka"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/registration"
	registrationerrors "github.com/webdevdmd-hub/eliteform-client-credit/internal/registration/errors"
)

type fakeFormRepository struct {
	withTxFn          func(tx *sql.Tx) registration.Repository
	createFn          func(ctx context.Context, f *registration.Form) error
	findByClientFn    func(ctx context.Context, clientID string) (*registration.Form, error)
	saveFn            func(ctx context.Context, f *registration.Form) error
	updateStatusFn    func(ctx context.Context, clientID, status string, submittedAt *time.Time) error
	updateOfficeUseFn func(ctx context.Context, clientID string, officeUse registration.OfficeUse) error
	hardDeleteFn      func(ctx context.Context, clientID string) error
}

func (f *fakeFormRepository) WithTx(tx *sql.Tx) registration.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeFormRepository) Create(ctx context.Context, form *registration.Form) error {
	if f.createFn != nil {
		return f.createFn(ctx, form)
	}
	return nil
}

func (f *fakeFormRepository) FindByClient(ctx context.Context, clientID string) (*registration.Form, error) {
	if f.findByClientFn != nil {
		return f.findByClientFn(ctx, clientID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFormRepository) Save(ctx context.Context, form *registration.Form) error {
	if f.saveFn != nil {
		return f.saveFn(ctx, form)
	}
	return nil
}

func (f *fakeFormRepository) UpdateStatus(ctx context.Context, clientID, status string, submittedAt *time.Time) error {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, clientID, status, submittedAt)
	}
	return nil
}

func (f *fakeFormRepository) UpdateOfficeUse(ctx context.Context, clientID string, officeUse registration.OfficeUse) error {
	if f.updateOfficeUseFn != nil {
		return f.updateOfficeUseFn(ctx, clientID, officeUse)
	}
	return nil
}

func (f *fakeFormRepository) HardDelete(ctx context.Context, clientID string) error {
	if f.hardDeleteFn != nil {
		return f.hardDeleteFn(ctx, clientID)
	}
	return nil
}

type fakeProfileStore struct {
	getLifecycleFn    func(ctx context.Context, clientID string) (registration.ProfileLifecycle, error)
	setStatusFn       func(ctx context.Context, clientID, status string, submittedAt *time.Time) error
	setReopenStatusFn func(ctx context.Context, clientID string, reopenStatus *string) error
}

func (f *fakeProfileStore) WithTx(tx *sql.Tx) registration.ProfileStore { return f }

func (f *fakeProfileStore) GetLifecycle(ctx context.Context, clientID string) (registration.ProfileLifecycle, error) {
	if f.getLifecycleFn != nil {
		return f.getLifecycleFn(ctx, clientID)
	}
	return registration.ProfileLifecycle{Status: domain.StatusSent}, nil
}

func (f *fakeProfileStore) SetStatus(ctx context.Context, clientID, status string, submittedAt *time.Time) error {
	if f.setStatusFn != nil {
		return f.setStatusFn(ctx, clientID, status, submittedAt)
	}
	return nil
}

func (f *fakeProfileStore) SetReopenStatus(ctx context.Context, clientID string, reopenStatus *string) error {
	if f.setReopenStatusFn != nil {
		return f.setReopenStatusFn(ctx, clientID, reopenStatus)
	}
	return nil
}

type fakeOutboxRepository struct {
	events []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error           { return nil }
func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id, reason string) error { return nil }

type fakeNotifier struct {
	changed []string
}

func (f *fakeNotifier) ProfileChanged(ctx context.Context, clientID string) {
	f.changed = append(f.changed, clientID)
}

type fakeSequenceRepository struct {
	next int64
}

func (f *fakeSequenceRepository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type registrationServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   registration.Service
	repo      *fakeFormRepository
	profiles  *fakeProfileStore
	outbox    *fakeOutboxRepository
	notifier  *fakeNotifier
	sequences *fakeSequenceRepository
}

func setupRegistrationServiceTest(t *testing.T) *registrationServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeFormRepository{}
	profiles := &fakeProfileStore{}
	outbox := &fakeOutboxRepository{}
	notifier := &fakeNotifier{}
	sequences := &fakeSequenceRepository{}
	svc := registration.NewServiceWithOutbox(db, repo, profiles, outbox, notifier, sequences)

	return &registrationServiceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		profiles:  profiles,
		outbox:    outbox,
		notifier:  notifier,
		sequences: sequences,
	}
}

func sentForm(id uuid.UUID) *registration.Form {
	f := completeForm()
	f.ID = id
	f.Status = domain.StatusSent
	return f
}

func TestRegistrationService_GetOwn(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.New()

	t.Run("invalid client id", func(t *testing.T) {
		deps := setupRegistrationServiceTest(t)

		_, err := deps.service.GetOwn(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, registrationerrors.ErrInvalidClientID)
	})

	t.Run("form not found", func(t *testing.T) {
		deps := setupRegistrationServiceTest(t)

		_, err := deps.service.GetOwn(ctx, clientID.String())

		assert.ErrorIs(t, err, registrationerrors.ErrFormNotFound)
	})

	t.Run("first open moves credentials sent to sent", func(t *testing.T) {
		deps := setupRegistrationServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		f := sentForm(clientID)
		f.Status = domain.StatusCredentialsSent
		deps.repo.findByClientFn = func(ctx context.Context, id string) (*registration.Form, error) {
			return f, nil
		}
		deps.profiles.getLifecycleFn = func(ctx context.Context, id string) (registration.ProfileLifecycle, error) {
			return registration.ProfileLifecycle{Status: domain.StatusCredentialsSent}, nil
		}

		var formStatus, profileStatus string
		deps.repo.updateStatusFn = func(ctx context.Context, id, status string, submittedAt *time.Time) error {
			formStatus = status
			assert.Nil(t, submittedAt)
			return nil
		}
		deps.profiles.setStatusFn = func(ctx context.Context, id, status string, submittedAt *time.Time) error {
			profileStatus = status
			return nil
		}

		resp, err := deps.service.GetOwn(ctx, clientID.String())

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusSent, resp.Status)
		assert.Equal(t, domain.StatusSent, formStatus)
		assert.Equal(t, domain.StatusSent, profileStatus)
		assert.Equal(t, []string{clientID.String()}, deps.notifier.changed)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("already sent stays put", func(t *testing.T) {
		deps := setupRegistrationServiceTest(t)
		deps.repo.findByClientFn = func(ctx context.Context, id string) (*registration.Form, error) {
			return sentForm(clientID), nil
		}

		resp, err := deps.service.GetOwn(ctx, clientID.String())

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusSent, resp.Status)
		assert.Empty(t, deps.notifier.changed)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestRegistrationService_SaveDraft(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.New()

	t.Run("locked after submission", func(t *testing.T) {
		deps := setupRegistrationServiceTest(t)
		deps.repo.findByClientFn = func(ctx context.Context, id string) (*registration.Form, error) {
			f := sentForm(clientID)
			f.Status = domain.StatusFinished
			return f, nil
		}

		_, err := deps.service.SaveDraft(ctx, clientID.String(), registration.SaveFormRequest{})

		assert.ErrorIs(t, err, registrationerrors.ErrFormLocked)
	})

	t.Run("drops unknown upload slots", func(t *testing.T) {
		deps := setupRegistrationServiceTest(t)
		deps.repo.findByClientFn = func(ctx context.Context, id string) (*registration.Form, error) {
			return sentForm(clientID), nil
		}
		var saved *registration.Form
		deps.repo.saveFn = func(ctx context.Context, f *registration.Form) error {
			saved = f
			return nil
		}

		resp, err := deps.service.SaveDraft(ctx, clientID.String(), registration.SaveFormRequest{
			Uploads: map[string]string{
				documents.SlotTradeLicense: "/files/clients/x/tradeLicenseUrl",
				"surpriseSlot":             "/files/clients/x/surprise",
				documents.SlotVisaOwners:   "",
			},
		})

		assert.NoError(t, err)
		assert.NotNil(t, saved)
		assert.Equal(t, map[string]string{
			documents.SlotTradeLicense: "/files/clients/x/tradeLicenseUrl",
		}, saved.Uploads)
		assert.Equal(t, domain.StatusSent, resp.Status)
	})
}

func TestRegistrationService_Submit(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.New()

	completeRequest := func() registration.SaveFormRequest {
		f := completeForm()
		return registration.SaveFormRequest{
			SectionA:                  f.SectionA,
			Uploads:                   f.Uploads,
			DeclarationAgreed:         true,
			FinalSignatoryName:        f.FinalSignatoryName,
			FinalSignatoryDesignation: f.FinalSignatoryDesignation,
			FinalSignatoryDate:        f.FinalSignatoryDate,
		}
	}

	t.Run("declaration required", func(t *testing.T) {
		deps := setupRegistrationServiceTest(t)
		deps.repo.findByClientFn = func(ctx context.Context, id string) (*registration.Form, error) {
			return sentForm(clientID), nil
		}

		req := completeRequest()
		req.DeclarationAgreed = false
		_, err := deps.service.Submit(ctx, clientID.String(), req)

		assert.ErrorIs(t, err, registrationerrors.ErrDeclarationRequired)
	})

	t.Run("missing required fields", func(t *testing.T) {
		deps := setupRegistrationServiceTest(t)
		deps.repo.findByClientFn = func(ctx context.Context, id string) (*registration.Form, error) {
			return sentForm(clientID), nil
		}

		req := completeRequest()
		req.SectionA.CompanyName = ""
		delete(req.Uploads, documents.SlotVisaOwners)
		_, err := deps.service.Submit(ctx, clientID.String(), req)

		assert.ErrorIs(t, err, registrationerrors.ErrValidationFailed)
	})

	t.Run("disallowed from created", func(t *testing.T) {
		deps := setupRegistrationServiceTest(t)
		f := sentForm(clientID)
		f.Status = domain.StatusCreated
		deps.repo.findByClientFn = func(ctx context.Context, id string) (*registration.Form, error) {
			return f, nil
		}
		deps.profiles.getLifecycleFn = func(ctx context.Context, id string) (registration.ProfileLifecycle, error) {
			return registration.ProfileLifecycle{Status: domain.StatusCreated}, nil
		}

		_, err := deps.service.Submit(ctx, clientID.String(), completeRequest())

		assert.ErrorIs(t, err, registrationerrors.ErrInvalidStatusTransition)
	})

	t.Run("already locked", func(t *testing.T) {
		deps := setupRegistrationServiceTest(t)
		f := sentForm(clientID)
		f.Status = domain.StatusFinished
		deps.repo.findByClientFn = func(ctx context.Context, id string) (*registration.Form, error) {
			return f, nil
		}

		_, err := deps.service.Submit(ctx, clientID.String(), completeRequest())

		assert.ErrorIs(t, err, registrationerrors.ErrFormLocked)
	})

	t.Run("success locks form and records event", func(t *testing.T) {
		deps := setupRegistrationServiceTest(t)
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findByClientFn = func(ctx context.Context, id string) (*registration.Form, error) {
			return sentForm(clientID), nil
		}
		var saved *registration.Form
		deps.repo.saveFn = func(ctx context.Context, f *registration.Form) error {
			saved = f
			return nil
		}
		var profileStatus string
		var profileSubmittedAt *time.Time
		deps.profiles.setStatusFn = func(ctx context.Context, id, status string, submittedAt *time.Time) error {
			profileStatus = status
			profileSubmittedAt = submittedAt
			return nil
		}

		resp, err := deps.service.Submit(ctx, clientID.String(), completeRequest())

		assert.NoError(t, err)
		assert.Equal(t, domain.StatusFinished, resp.Status)
		assert.Equal(t, "REG-000001", resp.ReferenceNo)
		assert.NotNil(t, resp.Timestamps.SubmittedAt)
		assert.NotNil(t, saved.SubmittedAt)
		assert.Equal(t, domain.StatusFinished, profileStatus)
		assert.NotNil(t, profileSubmittedAt)

		assert.Len(t, deps.outbox.events, 1)
		assert.Equal(t, events.RegistrationSubmittedTopic, deps.outbox.events[0].Topic)
		assert.Equal(t, "registration_submitted", deps.outbox.events[0].EventType)
		assert.Equal(t, clientID.String(), deps.outbox.events[0].AggregateID)
		assert.Equal(t, kafka.OutboxStatusPending, deps.outbox.events[0].Status)

		assert.Equal(t, []string{clientID.String()}, deps.notifier.changed)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestRegistrationService_RequestReopen(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.New()

	finishedForm := func() *registration.Form {
		f := sentForm(clientID)
		f.Status = domain.StatusFinished
		return f
	}

	t.Run("not submitted yet", func(t *testing.T) {
		deps := setupRegistrationServiceTest(t)
		deps.repo.findByClientFn = func(ctx context.Context, id string) (*registration.Form, error) {
			return sentForm(clientID), nil
		}

		err := deps.service.RequestReopen(ctx, clientID.String())

		assert.ErrorIs(t, err, registrationerrors.ErrNotSubmitted)
	})

	t.Run("already pending", func(t *testing.T) {
		deps := setupRegistrationServiceTest(t)
		deps.repo.findByClientFn = func(ctx context.Context, id string) (*registration.Form, error) {
			return finishedForm(), nil
		}
		pending := domain.RegReopenPending
		deps.profiles.getLifecycleFn = func(ctx context.Context, id string) (registration.ProfileLifecycle, error) {
			return registration.ProfileLifecycle{Status: domain.StatusFinished, ReopenStatus: &pending}, nil
		}

		err := deps.service.RequestReopen(ctx, clientID.String())

		assert.ErrorIs(t, err, registrationerrors.ErrReopenAlreadyPending)
	})

	t.Run("success flags profile", func(t *testing.T) {
		deps := setupRegistrationServiceTest(t)
		deps.repo.findByClientFn = func(ctx context.Context, id string) (*registration.Form, error) {
			return finishedForm(), nil
		}
		deps.profiles.getLifecycleFn = func(ctx context.Context, id string) (registration.ProfileLifecycle, error) {
			return registration.ProfileLifecycle{Status: domain.StatusFinished}, nil
		}
		var reopenSet *string
		deps.profiles.setReopenStatusFn = func(ctx context.Context, id string, reopenStatus *string) error {
			reopenSet = reopenStatus
			return nil
		}

		err := deps.service.RequestReopen(ctx, clientID.String())

		assert.NoError(t, err)
		assert.NotNil(t, reopenSet)
		assert.Equal(t, domain.RegReopenPending, *reopenSet)
		assert.Equal(t, []string{clientID.String()}, deps.notifier.changed)
	})
}

func TestRegistrationService_UpdateOfficeUse(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.New()

	deps := setupRegistrationServiceTest(t)
	deps.repo.findByClientFn = func(ctx context.Context, id string) (*registration.Form, error) {
		return sentForm(clientID), nil
	}
	var persisted registration.OfficeUse
	deps.repo.updateOfficeUseFn = func(ctx context.Context, id string, officeUse registration.OfficeUse) error {
		persisted = officeUse
		return nil
	}

	resp, err := deps.service.UpdateOfficeUse(ctx, clientID.String(), registration.OfficeUseRequest{
		SalesStaffName:      "R. D'Souza",
		ApprovedCreditLimit: "50000",
		CreditPeriod:        "30 days",
	})

	assert.NoError(t, err)
	assert.Equal(t, "R. D'Souza", persisted.SalesStaffName)
	assert.NotNil(t, resp.OfficeUse)
	assert.Equal(t, "50000", resp.OfficeUse.ApprovedCreditLimit)
}

func TestRegistrationService_ExportPDF(t *testing.T) {
	ctx := context.Background()
	clientID := uuid.New()

	deps := setupRegistrationServiceTest(t)
	deps.repo.findByClientFn = func(ctx context.Context, id string) (*registration.Form, error) {
		return sentForm(clientID), nil
	}

	data, err := deps.service.ExportPDF(ctx, clientID.String())

	assert.NoError(t, err)
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF-1.4", string(data[:8]))
}
