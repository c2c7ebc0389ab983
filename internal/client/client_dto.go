package client

import "time"

type CreateClientRequest struct {
	Email       string `json:"email" binding:"required,email"`
	CompanyName string `json:"companyName" binding:"required"`
}

type ClientResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	CompanyName string `json:"companyName"`
	Status      string `json:"status"`

	ReopenStatus       *string `json:"reopenStatus,omitempty"`
	CreditReopenStatus *string `json:"creditReopenStatus,omitempty"`

	HasCreditAccess     bool   `json:"hasCreditAccess"`
	CreditRequestStatus string `json:"creditRequestStatus"`

	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
	SubmittedAt *string `json:"submittedAt,omitempty"`
}

// CreateClientResponse carries the generated password exactly once; it is
// never stored in clear and never returned again.
type CreateClientResponse struct {
	Client            ClientResponse `json:"client"`
	TemporaryPassword string         `json:"temporaryPassword"`
}

func mapToResponse(c Client) ClientResponse {
	resp := ClientResponse{
		ID:          c.ID.String(),
		Email:       c.Email,
		CompanyName: c.CompanyName,
		Status:      c.Status,

		ReopenStatus:       c.ReopenStatus,
		CreditReopenStatus: c.CreditReopenStatus,

		HasCreditAccess:     c.HasCreditAccess,
		CreditRequestStatus: c.CreditRequestStatus,

		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
	if c.SubmittedAt != nil {
		v := c.SubmittedAt.Format(time.RFC3339)
		resp.SubmittedAt = &v
	}
	return resp
}

func mapToListResponse(clients []Client) []ClientResponse {
	out := make([]ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, mapToResponse(c))
	}
	return out
}
