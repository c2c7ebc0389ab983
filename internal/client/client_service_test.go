package client_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/client"
	clienterrors "github.com/webdevdmd-hub/eliteform-client-credit/internal/client/errors"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/credit"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/documents"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/domain"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/events"
	identityerrors "github.com/webdevdmd-hub/eliteform-client-credit/internal/identity/errors"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/messaging/kafka"
	"github.com/webdevdmd-hub/eliteform-client-credit/internal/registration"
)

type fakeClientRepository struct {
	createFn                 func(ctx context.Context, c *client.Client) error
	findAllFn                func(ctx context.Context) ([]client.Client, error)
	findByIDFn               func(ctx context.Context, clientID string) (*client.Client, error)
	updateLifecycleFn        func(ctx context.Context, clientID, status string, submittedAt *time.Time) error
	updateCreditAccessFn     func(ctx context.Context, clientID string, hasAccess, requested bool, requestStatus string) error
	approveReopenFn          func(ctx context.Context, clientID, status string) error
	approveCreditReopenFn    func(ctx context.Context, clientID string) error
	updateReopenStatusFn     func(ctx context.Context, clientID string, reopenStatus *string) error
	updateCreditReopenStatFn func(ctx context.Context, clientID string, reopenStatus *string) error
	hardDeleteFn             func(ctx context.Context, clientID string) error
	profileExistsFn          func(ctx context.Context, clientID string) (bool, error)
}

func (f *fakeClientRepository) WithTx(tx *sql.Tx) client.Repository { return f }

func (f *fakeClientRepository) Create(ctx context.Context, c *client.Client) error {
	if f.createFn != nil {
		return f.createFn(ctx, c)
	}
	return nil
}

func (f *fakeClientRepository) FindAll(ctx context.Context) ([]client.Client, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeClientRepository) FindByID(ctx context.Context, clientID string) (*client.Client, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, clientID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeClientRepository) ProfileExists(ctx context.Context, clientID string) (bool, error) {
	if f.profileExistsFn != nil {
		return f.profileExistsFn(ctx, clientID)
	}
	return true, nil
}

func (f *fakeClientRepository) UpdateLifecycle(ctx context.Context, clientID, status string, submittedAt *time.Time) error {
	if f.updateLifecycleFn != nil {
		return f.updateLifecycleFn(ctx, clientID, status, submittedAt)
	}
	return nil
}

func (f *fakeClientRepository) UpdateReopenStatus(ctx context.Context, clientID string, reopenStatus *string) error {
	if f.updateReopenStatusFn != nil {
		return f.updateReopenStatusFn(ctx, clientID, reopenStatus)
	}
	return nil
}

func (f *fakeClientRepository) UpdateCreditReopenStatus(ctx context.Context, clientID string, reopenStatus *string) error {
	if f.updateCreditReopenStatFn != nil {
		return f.updateCreditReopenStatFn(ctx, clientID, reopenStatus)
	}
	return nil
}

func (f *fakeClientRepository) UpdateCreditAccess(ctx context.Context, clientID string, hasAccess, requested bool, requestStatus string) error {
	if f.updateCreditAccessFn != nil {
		return f.updateCreditAccessFn(ctx, clientID, hasAccess, requested, requestStatus)
	}
	return nil
}

func (f *fakeClientRepository) ApproveReopen(ctx context.Context, clientID, status string) error {
	if f.approveReopenFn != nil {
		return f.approveReopenFn(ctx, clientID, status)
	}
	return nil
}

func (f *fakeClientRepository) ApproveCreditReopen(ctx context.Context, clientID string) error {
	if f.approveCreditReopenFn != nil {
		return f.approveCreditReopenFn(ctx, clientID)
	}
	return nil
}

func (f *fakeClientRepository) HardDelete(ctx context.Context, clientID string) error {
	if f.hardDeleteFn != nil {
		return f.hardDeleteFn(ctx, clientID)
	}
	return nil
}

type fakeFormRepo struct {
	createFn       func(ctx context.Context, form *registration.Form) error
	findByClientFn func(ctx context.Context, clientID string) (*registration.Form, error)
	updateStatusFn func(ctx context.Context, clientID, status string, submittedAt *time.Time) error
	hardDeleteFn   func(ctx context.Context, clientID string) error
}

func (f *fakeFormRepo) WithTx(tx *sql.Tx) registration.Repository { return f }

func (f *fakeFormRepo) Create(ctx context.Context, form *registration.Form) error {
	if f.createFn != nil {
		return f.createFn(ctx, form)
	}
	return nil
}

func (f *fakeFormRepo) FindByClient(ctx context.Context, clientID string) (*registration.Form, error) {
	if f.findByClientFn != nil {
		return f.findByClientFn(ctx, clientID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeFormRepo) Save(ctx context.Context, form *registration.Form) error { return nil }

func (f *fakeFormRepo) UpdateStatus(ctx context.Context, clientID, status string, submittedAt *time.Time) error {
	if f.updateStatusFn != nil {
		return f.updateStatusFn(ctx, clientID, status, submittedAt)
	}
	return nil
}

func (f *fakeFormRepo) UpdateOfficeUse(ctx context.Context, clientID string, officeUse registration.OfficeUse) error {
	return nil
}

func (f *fakeFormRepo) HardDelete(ctx context.Context, clientID string) error {
	if f.hardDeleteFn != nil {
		return f.hardDeleteFn(ctx, clientID)
	}
	return nil
}

type fakeCreditRepo struct {
	findByClientFn  func(ctx context.Context, clientID string) (*credit.Application, error)
	reopenToDraftFn func(ctx context.Context, clientID string) error
	hardDeleteFn    func(ctx context.Context, clientID string) error
}

func (f *fakeCreditRepo) WithTx(tx *sql.Tx) credit.Repository { return f }

func (f *fakeCreditRepo) Create(ctx context.Context, app *credit.Application) error { return nil }

func (f *fakeCreditRepo) FindByClient(ctx context.Context, clientID string) (*credit.Application, error) {
	if f.findByClientFn != nil {
		return f.findByClientFn(ctx, clientID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeCreditRepo) Save(ctx context.Context, app *credit.Application) error { return nil }

func (f *fakeCreditRepo) SetReopenRequested(ctx context.Context, clientID string, requested bool) error {
	return nil
}

func (f *fakeCreditRepo) ReopenToDraft(ctx context.Context, clientID string) error {
	if f.reopenToDraftFn != nil {
		return f.reopenToDraftFn(ctx, clientID)
	}
	return nil
}

func (f *fakeCreditRepo) HardDelete(ctx context.Context, clientID string) error {
	if f.hardDeleteFn != nil {
		return f.hardDeleteFn(ctx, clientID)
	}
	return nil
}

type fakeIdentityManager struct {
	createUserFn func(ctx context.Context, email, password string) (string, error)
	deleteUserFn func(ctx context.Context, userID string) error
	deleted      []string
}

func (f *fakeIdentityManager) CreateUser(ctx context.Context, email, password string) (string, error) {
	if f.createUserFn != nil {
		return f.createUserFn(ctx, email, password)
	}
	return uuid.NewString(), nil
}

func (f *fakeIdentityManager) DeleteUser(ctx context.Context, userID string) error {
	f.deleted = append(f.deleted, userID)
	if f.deleteUserFn != nil {
		return f.deleteUserFn(ctx, userID)
	}
	return nil
}

type fakeBlobStore struct {
	deletePrefixFn func(ctx context.Context, prefix string) error
	deleted        []string
}

func (f *fakeBlobStore) DeletePrefix(ctx context.Context, prefix string) error {
	f.deleted = append(f.deleted, prefix)
	if f.deletePrefixFn != nil {
		return f.deletePrefixFn(ctx, prefix)
	}
	return nil
}

type fakeClientOutbox struct {
	events []kafka.OutboxEvent
}

func (f *fakeClientOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeClientOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}

func (f *fakeClientOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeClientOutbox) MarkSent(ctx context.Context, id string) error           { return nil }
func (f *fakeClientOutbox) MarkFailed(ctx context.Context, id, reason string) error { return nil }

type fakeProfileNotifier struct {
	changed []string
}

func (f *fakeProfileNotifier) ProfileChanged(ctx context.Context, clientID string) {
	f.changed = append(f.changed, clientID)
}

type clientServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  client.Service
	repo     *fakeClientRepository
	forms    *fakeFormRepo
	apps     *fakeCreditRepo
	identity *fakeIdentityManager
	blobs    *fakeBlobStore
	outbox   *fakeClientOutbox
	notifier *fakeProfileNotifier
}

func setupClientServiceTest(t *testing.T) *clientServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeClientRepository{}
	forms := &fakeFormRepo{}
	apps := &fakeCreditRepo{}
	idm := &fakeIdentityManager{}
	blobs := &fakeBlobStore{}
	outbox := &fakeClientOutbox{}
	notifier := &fakeProfileNotifier{}
	svc := client.NewServiceWithOutbox(db, repo, forms, apps, idm, blobs, outbox, notifier)

	return &clientServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		service:  svc,
		repo:     repo,
		forms:    forms,
		apps:     apps,
		identity: idm,
		blobs:    blobs,
		outbox:   outbox,
		notifier: notifier,
	}
}

func profileWithStatus(id, status string) *client.Client {
	return &client.Client{
		ID:                  uuid.MustParse(id),
		Email:               "owner@gulffoods.ae",
		CompanyName:         "Gulf Foods LLC",
		Status:              status,
		CreditRequestStatus: domain.CreditRequestNone,
	}
}

func TestClientService_Create(t *testing.T) {
	t.Run("provisions user, profile and blank form", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		userID := uuid.NewString()
		deps.identity.createUserFn = func(ctx context.Context, email, password string) (string, error) {
			assert.Equal(t, "owner@gulffoods.ae", email)
			assert.Len(t, password, 12)
			return userID, nil
		}
		var createdForm *registration.Form
		deps.forms.createFn = func(ctx context.Context, form *registration.Form) error {
			createdForm = form
			return nil
		}
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Create(context.Background(), client.CreateClientRequest{
			Email:       "Owner@GulfFoods.ae",
			CompanyName: "Gulf Foods LLC",
		})
		assert.NoError(t, err)
		assert.Equal(t, userID, resp.Client.ID)
		assert.Equal(t, domain.StatusCreated, resp.Client.Status)
		assert.Len(t, resp.TemporaryPassword, 12)

		assert.NotNil(t, createdForm)
		assert.Equal(t, userID, createdForm.ID.String())
		assert.Equal(t, "Gulf Foods LLC", createdForm.SectionA.CompanyName)

		assert.Len(t, deps.outbox.events, 1)
		assert.Equal(t, events.ClientCreatedTopic, deps.outbox.events[0].Topic)
		assert.Equal(t, "client_created", deps.outbox.events[0].EventType)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()
		deps.identity.createUserFn = func(ctx context.Context, email, password string) (string, error) {
			return "", identityerrors.ErrEmailAlreadyRegistered
		}

		_, err := deps.service.Create(context.Background(), client.CreateClientRequest{
			Email:       "owner@gulffoods.ae",
			CompanyName: "Gulf Foods LLC",
		})
		assert.ErrorIs(t, err, clienterrors.ErrEmailAlreadyRegistered)
	})

	t.Run("compensates the login user when the records fail", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		userID := uuid.NewString()
		deps.identity.createUserFn = func(ctx context.Context, email, password string) (string, error) {
			return userID, nil
		}
		deps.forms.createFn = func(ctx context.Context, form *registration.Form) error {
			return errors.New("db down")
		}
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Create(context.Background(), client.CreateClientRequest{
			Email:       "owner@gulffoods.ae",
			CompanyName: "Gulf Foods LLC",
		})
		assert.Error(t, err)
		assert.Equal(t, []string{userID}, deps.identity.deleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestClientService_Get(t *testing.T) {
	clientID := uuid.NewString()

	t.Run("not found", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Get(context.Background(), clientID)
		assert.ErrorIs(t, err, clienterrors.ErrClientNotFound)
	})

	t.Run("merged view resolves credit documents from uploads", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		profile := profileWithStatus(clientID, domain.StatusSent)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*client.Client, error) {
			return profile, nil
		}
		deps.forms.findByClientFn = func(ctx context.Context, id string) (*registration.Form, error) {
			return &registration.Form{
				ID:     uuid.MustParse(clientID),
				Status: domain.StatusCredentialsSent,
				Uploads: map[string]string{
					documents.SlotTradeLicense: "https://files.example.com/trade.pdf",
				},
			}, nil
		}
		deps.apps.findByClientFn = func(ctx context.Context, id string) (*credit.Application, error) {
			return &credit.Application{
				ID:     uuid.MustParse(clientID),
				Status: domain.CreditStatusDraft,
			}, nil
		}

		view, err := deps.service.Get(context.Background(), clientID)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusSent, view.Profile.Status)
		// The profile status is authoritative over the form copy.
		assert.Equal(t, domain.StatusSent, view.Registration.Status)
		assert.Equal(t, "https://files.example.com/trade.pdf", view.CreditDocuments[documents.CreditDocTradeLicense])
	})
}

func TestClientService_MarkCredentialsSent(t *testing.T) {
	clientID := uuid.NewString()

	t.Run("only from CREATED", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*client.Client, error) {
			return profileWithStatus(clientID, domain.StatusSent), nil
		}

		_, err := deps.service.MarkCredentialsSent(context.Background(), clientID)
		assert.ErrorIs(t, err, clienterrors.ErrCredentialsAlreadySent)
	})

	t.Run("moves profile and form together", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*client.Client, error) {
			return profileWithStatus(clientID, domain.StatusCreated), nil
		}
		var profileStatus, formStatus string
		deps.repo.updateLifecycleFn = func(ctx context.Context, id, status string, submittedAt *time.Time) error {
			profileStatus = status
			return nil
		}
		deps.forms.updateStatusFn = func(ctx context.Context, id, status string, submittedAt *time.Time) error {
			formStatus = status
			return nil
		}
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.MarkCredentialsSent(context.Background(), clientID)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusCredentialsSent, resp.Status)
		assert.Equal(t, domain.StatusCredentialsSent, profileStatus)
		assert.Equal(t, domain.StatusCredentialsSent, formStatus)
		assert.Equal(t, []string{clientID}, deps.notifier.changed)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestClientService_CreditAccess(t *testing.T) {
	clientID := uuid.NewString()

	t.Run("request rejected when already granted", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		profile := profileWithStatus(clientID, domain.StatusFinished)
		profile.HasCreditAccess = true
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*client.Client, error) {
			return profile, nil
		}

		err := deps.service.RequestCreditAccess(context.Background(), clientID)
		assert.ErrorIs(t, err, clienterrors.ErrCreditAlreadyGranted)
	})

	t.Run("request rejected when already pending", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		profile := profileWithStatus(clientID, domain.StatusFinished)
		profile.CreditRequestStatus = domain.CreditRequestRequested
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*client.Client, error) {
			return profile, nil
		}

		err := deps.service.RequestCreditAccess(context.Background(), clientID)
		assert.ErrorIs(t, err, clienterrors.ErrCreditAlreadyRequested)
	})

	t.Run("request marks the profile", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*client.Client, error) {
			return profileWithStatus(clientID, domain.StatusFinished), nil
		}
		var gotStatus string
		var gotRequested bool
		deps.repo.updateCreditAccessFn = func(ctx context.Context, id string, hasAccess, requested bool, requestStatus string) error {
			gotStatus = requestStatus
			gotRequested = requested
			return nil
		}

		err := deps.service.RequestCreditAccess(context.Background(), clientID)
		assert.NoError(t, err)
		assert.Equal(t, domain.CreditRequestRequested, gotStatus)
		assert.True(t, gotRequested)
	})

	t.Run("grant approves the request", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		profile := profileWithStatus(clientID, domain.StatusFinished)
		profile.CreditRequested = true
		profile.CreditRequestStatus = domain.CreditRequestRequested
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*client.Client, error) {
			return profile, nil
		}

		resp, err := deps.service.SetCreditAccess(context.Background(), clientID, true)
		assert.NoError(t, err)
		assert.True(t, resp.HasCreditAccess)
		assert.Equal(t, domain.CreditRequestApproved, resp.CreditRequestStatus)
	})

	t.Run("revoke restores the request marker for past requesters", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		profile := profileWithStatus(clientID, domain.StatusFinished)
		profile.HasCreditAccess = true
		profile.CreditRequested = true
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*client.Client, error) {
			return profile, nil
		}

		resp, err := deps.service.SetCreditAccess(context.Background(), clientID, false)
		assert.NoError(t, err)
		assert.False(t, resp.HasCreditAccess)
		assert.Equal(t, domain.CreditRequestRequested, resp.CreditRequestStatus)
	})

	t.Run("revoke clears the marker otherwise", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		profile := profileWithStatus(clientID, domain.StatusFinished)
		profile.HasCreditAccess = true
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*client.Client, error) {
			return profile, nil
		}

		resp, err := deps.service.SetCreditAccess(context.Background(), clientID, false)
		assert.NoError(t, err)
		assert.Equal(t, domain.CreditRequestNone, resp.CreditRequestStatus)
	})
}

func TestClientService_ApproveReopen(t *testing.T) {
	clientID := uuid.NewString()

	t.Run("requires a pending request", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*client.Client, error) {
			return profileWithStatus(clientID, domain.StatusFinished), nil
		}

		_, err := deps.service.ApproveReopen(context.Background(), clientID)
		assert.ErrorIs(t, err, clienterrors.ErrNoReopenPending)
	})

	t.Run("returns profile and form to SENT", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		pending := domain.RegReopenPending
		profile := profileWithStatus(clientID, domain.StatusFinished)
		profile.ReopenStatus = &pending
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*client.Client, error) {
			return profile, nil
		}
		var reopenedTo, formStatus string
		deps.repo.approveReopenFn = func(ctx context.Context, id, status string) error {
			reopenedTo = status
			return nil
		}
		deps.forms.updateStatusFn = func(ctx context.Context, id, status string, submittedAt *time.Time) error {
			formStatus = status
			return nil
		}
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.ApproveReopen(context.Background(), clientID)
		assert.NoError(t, err)
		assert.Equal(t, domain.StatusSent, resp.Status)
		assert.Nil(t, resp.ReopenStatus)
		assert.Equal(t, domain.StatusSent, reopenedTo)
		assert.Equal(t, domain.StatusSent, formStatus)
		assert.Equal(t, []string{clientID}, deps.notifier.changed)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestClientService_ApproveCreditReopen(t *testing.T) {
	clientID := uuid.NewString()

	t.Run("requires a pending request", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*client.Client, error) {
			return profileWithStatus(clientID, domain.StatusFinished), nil
		}

		_, err := deps.service.ApproveCreditReopen(context.Background(), clientID)
		assert.ErrorIs(t, err, clienterrors.ErrNoCreditReopenPending)
	})

	t.Run("returns the application to draft", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		pending := domain.CreditReopenPending
		profile := profileWithStatus(clientID, domain.StatusFinished)
		profile.CreditReopenStatus = &pending
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*client.Client, error) {
			return profile, nil
		}
		var reopened string
		deps.apps.reopenToDraftFn = func(ctx context.Context, id string) error {
			reopened = id
			return nil
		}
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.ApproveCreditReopen(context.Background(), clientID)
		assert.NoError(t, err)
		assert.Nil(t, resp.CreditReopenStatus)
		assert.Equal(t, clientID, reopened)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestClientService_Delete(t *testing.T) {
	clientID := uuid.NewString()

	t.Run("cascades records even when blob removal fails", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*client.Client, error) {
			return profileWithStatus(clientID, domain.StatusFinished), nil
		}
		deps.blobs.deletePrefixFn = func(ctx context.Context, prefix string) error {
			return errors.New("disk gone")
		}
		var formsDeleted, appsDeleted, profileDeleted bool
		deps.forms.hardDeleteFn = func(ctx context.Context, id string) error {
			formsDeleted = true
			return nil
		}
		deps.apps.hardDeleteFn = func(ctx context.Context, id string) error {
			appsDeleted = true
			return nil
		}
		deps.repo.hardDeleteFn = func(ctx context.Context, id string) error {
			profileDeleted = true
			return nil
		}
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		err := deps.service.Delete(context.Background(), clientID)
		assert.NoError(t, err)
		assert.Equal(t, []string{"clients/" + clientID}, deps.blobs.deleted)
		assert.True(t, formsDeleted)
		assert.True(t, appsDeleted)
		assert.True(t, profileDeleted)
		assert.Equal(t, []string{clientID}, deps.identity.deleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("surfaces the login user removal failure", func(t *testing.T) {
		deps := setupClientServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*client.Client, error) {
			return profileWithStatus(clientID, domain.StatusFinished), nil
		}
		deps.identity.deleteUserFn = func(ctx context.Context, userID string) error {
			return errors.New("identity unavailable")
		}
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		err := deps.service.Delete(context.Background(), clientID)
		assert.Error(t, err)
	})
}
