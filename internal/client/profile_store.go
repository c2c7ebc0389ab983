package client

import (
	"context"
	"database/sql"
	"time"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/registration"
)

// profileStore exposes the profile lifecycle columns to the registration
// module without handing it the whole repository.
type profileStore struct {
	repo Repository
}

func NewProfileStore(repo Repository) registration.ProfileStore {
	return &profileStore{repo: repo}
}

func (p *profileStore) WithTx(tx *sql.Tx) registration.ProfileStore {
	return &profileStore{repo: p.repo.WithTx(tx)}
}

func (p *profileStore) GetLifecycle(ctx context.Context, clientID string) (registration.ProfileLifecycle, error) {
	c, err := p.repo.FindByID(ctx, clientID)
	if err != nil {
		return registration.ProfileLifecycle{}, err
	}
	return registration.ProfileLifecycle{
		Status:       c.Status,
		CompanyName:  c.CompanyName,
		ReopenStatus: c.ReopenStatus,
	}, nil
}

func (p *profileStore) SetStatus(ctx context.Context, clientID, status string, submittedAt *time.Time) error {
	return p.repo.UpdateLifecycle(ctx, clientID, status, submittedAt)
}

func (p *profileStore) SetReopenStatus(ctx context.Context, clientID string, reopenStatus *string) error {
	return p.repo.UpdateReopenStatus(ctx, clientID, reopenStatus)
}
