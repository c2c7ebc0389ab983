package client

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=client_repo.go -destination=mock/client_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, c *Client) error
	FindAll(ctx context.Context) ([]Client, error)
	FindByID(ctx context.Context, clientID string) (*Client, error)
	ProfileExists(ctx context.Context, clientID string) (bool, error)
	UpdateLifecycle(ctx context.Context, clientID, status string, submittedAt *time.Time) error
	UpdateReopenStatus(ctx context.Context, clientID string, reopenStatus *string) error
	UpdateCreditReopenStatus(ctx context.Context, clientID string, reopenStatus *string) error
	UpdateCreditAccess(ctx context.Context, clientID string, hasAccess, requested bool, requestStatus string) error
	ApproveReopen(ctx context.Context, clientID, status string) error
	ApproveCreditReopen(ctx context.Context, clientID string) error
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

func (r *repository) Create(ctx context.Context, c *Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Client, error) {
	var clients []Client
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&clients).Error
	return clients, err
}

func (r *repository) FindByID(ctx context.Context, clientID string) (*Client, error) {
	var c Client
	err := r.db.WithContext(ctx).First(&c, "id = ?", clientID).Error
	return &c, err
}

func (r *repository) ProfileExists(ctx context.Context, clientID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Client{}).
		Where("id = ?", clientID).
		Count(&count).Error
	return count > 0, err
}

// UpdateLifecycle moves the status column in one statement so readers never
// see a half-applied transition.
func (r *repository) UpdateLifecycle(ctx context.Context, clientID, status string, submittedAt *time.Time) error {
	updates := map[string]any{"status": status}
	if submittedAt != nil {
		updates["submitted_at"] = *submittedAt
	}
	return r.db.WithContext(ctx).
		Model(&Client{}).
		Where("id = ?", clientID).
		Updates(updates).Error
}

func (r *repository) UpdateReopenStatus(ctx context.Context, clientID string, reopenStatus *string) error {
	return r.db.WithContext(ctx).
		Model(&Client{}).
		Where("id = ?", clientID).
		Update("reopen_status", reopenStatus).Error
}

func (r *repository) UpdateCreditReopenStatus(ctx context.Context, clientID string, reopenStatus *string) error {
	return r.db.WithContext(ctx).
		Model(&Client{}).
		Where("id = ?", clientID).
		Update("credit_reopen_status", reopenStatus).Error
}

func (r *repository) UpdateCreditAccess(ctx context.Context, clientID string, hasAccess, requested bool, requestStatus string) error {
	return r.db.WithContext(ctx).
		Model(&Client{}).
		Where("id = ?", clientID).
		Updates(map[string]any{
			"has_credit_access":     hasAccess,
			"credit_requested":      requested,
			"credit_request_status": requestStatus,
		}).Error
}

// ApproveReopen clears the pending flag and moves the status in a single
// statement.
func (r *repository) ApproveReopen(ctx context.Context, clientID, status string) error {
	return r.db.WithContext(ctx).
		Model(&Client{}).
		Where("id = ?", clientID).
		Updates(map[string]any{
			"status":        status,
			"reopen_status": nil,
		}).Error
}

func (r *repository) ApproveCreditReopen(ctx context.Context, clientID string) error {
	return r.db.WithContext(ctx).
		Model(&Client{}).
		Where("id = ?", clientID).
		Update("credit_reopen_status", nil).Error
}

func (r *repository) HardDelete(ctx context.Context, clientID string) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&Client{}, "id = ?", clientID).Error
}
