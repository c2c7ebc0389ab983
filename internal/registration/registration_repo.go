package registration

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=registration_repo.go -destination=mock/registration_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, f *Form) error
	FindByClient(ctx context.Context, clientID string) (*Form, error)
	Save(ctx context.Context, f *Form) error
	UpdateStatus(ctx context.Context, clientID, status string, submittedAt *time.Time) error
	UpdateOfficeUse(ctx context.Context, clientID string, officeUse OfficeUse) error
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

func (r *repository) Create(ctx context.Context, f *Form) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *repository) FindByClient(ctx context.Context, clientID string) (*Form, error) {
	var f Form
	err := r.db.WithContext(ctx).First(&f, "id = ?", clientID).Error
	return &f, err
}

func (r *repository) Save(ctx context.Context, f *Form) error {
	return r.db.WithContext(ctx).Save(f).Error
}

// UpdateStatus changes only the lifecycle columns in a single statement so a
// concurrent read never observes a half-applied transition.
func (r *repository) UpdateStatus(ctx context.Context, clientID, status string, submittedAt *time.Time) error {
	updates := map[string]any{"status": status}
	if submittedAt != nil {
		updates["submitted_at"] = *submittedAt
	}
	return r.db.WithContext(ctx).
		Model(&Form{}).
		Where("id = ?", clientID).
		Updates(updates).Error
}

func (r *repository) UpdateOfficeUse(ctx context.Context, clientID string, officeUse OfficeUse) error {
	return r.db.WithContext(ctx).
		Model(&Form{}).
		Where("id = ?", clientID).
		Update("office_use", officeUse).Error
}

func (r *repository) HardDelete(ctx context.Context, clientID string) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&Form{}, "id = ?", clientID).Error
}
