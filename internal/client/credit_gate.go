package client

import (
	"context"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/credit"
)

// creditGate backs the credit module's access checks with the profile table.
type creditGate struct {
	repo Repository
}

func NewCreditGate(repo Repository) credit.ProfileGate {
	return &creditGate{repo: repo}
}

func (g *creditGate) CreditAccess(ctx context.Context, clientID string) (credit.AccessInfo, error) {
	c, err := g.repo.FindByID(ctx, clientID)
	if err != nil {
		return credit.AccessInfo{}, err
	}
	return credit.AccessInfo{
		Granted:      c.HasCreditAccess,
		ReopenStatus: c.CreditReopenStatus,
	}, nil
}

func (g *creditGate) SetCreditReopenStatus(ctx context.Context, clientID string, reopenStatus *string) error {
	return g.repo.UpdateCreditReopenStatus(ctx, clientID, reopenStatus)
}
