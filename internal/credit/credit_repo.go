package credit

import (
	"context"
	"database/sql"

	"gorm.io/gorm"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/domain"
)

//go:generate mockgen -source=credit_repo.go -destination=mock/credit_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, app *Application) error
	FindByClient(ctx context.Context, clientID string) (*Application, error)
	Save(ctx context.Context, app *Application) error
	SetReopenRequested(ctx context.Context, clientID string, requested bool) error
	ReopenToDraft(ctx context.Context, clientID string) error
	HardDelete(ctx context.Context, clientID string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, app *Application) error {
	return r.db.WithContext(ctx).Create(app).Error
}

func (r *repository) FindByClient(ctx context.Context, clientID string) (*Application, error) {
	var app Application
	err := r.db.WithContext(ctx).First(&app, "id = ?", clientID).Error
	return &app, err
}

func (r *repository) Save(ctx context.Context, app *Application) error {
	return r.db.WithContext(ctx).Save(app).Error
}

func (r *repository) SetReopenRequested(ctx context.Context, clientID string, requested bool) error {
	return r.db.WithContext(ctx).
		Model(&Application{}).
		Where("id = ?", clientID).
		Update("reopen_requested", requested).Error
}

// ReopenToDraft unlocks a submitted application in one statement: back to
// draft, submission timestamp and reopen marker cleared.
func (r *repository) ReopenToDraft(ctx context.Context, clientID string) error {
	return r.db.WithContext(ctx).
		Model(&Application{}).
		Where("id = ?", clientID).
		Updates(map[string]any{
			"status":           domain.CreditStatusDraft,
			"submitted_at":     nil,
			"reopen_requested": false,
		}).Error
}

func (r *repository) HardDelete(ctx context.Context, clientID string) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&Application{}, "id = ?", clientID).Error
}
