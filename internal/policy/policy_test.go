package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/webdevdmd-hub/eliteform-client-credit/internal/policy"
)

func TestIsAdmin(t *testing.T) {
	svc, err := policy.NewService([]string{"Admin@Example.com", " ops@example.com "})
	assert.NoError(t, err)

	// Matching is case-insensitive and whitespace-tolerant.
	assert.True(t, svc.IsAdmin("admin@example.com"))
	assert.True(t, svc.IsAdmin("ADMIN@EXAMPLE.COM"))
	assert.True(t, svc.IsAdmin("ops@example.com"))
	assert.False(t, svc.IsAdmin("client@example.com"))
	assert.False(t, svc.IsAdmin(""))
}

func TestEnforce(t *testing.T) {
	svc, err := policy.NewService(nil)
	assert.NoError(t, err)

	cases := []struct {
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{policy.RoleAdmin, "client", "create", true},
		{policy.RoleAdmin, "client", "delete", true},
		{policy.RoleAdmin, "registration", "review", true},
		{policy.RoleAdmin, "credit", "review", true},
		// Admins review; they do not fill in client forms.
		{policy.RoleAdmin, "registration", "write", false},
		{policy.RoleAdmin, "registration", "submit", false},

		{policy.RoleClient, "registration", "write", true},
		{policy.RoleClient, "registration", "submit", true},
		{policy.RoleClient, "credit", "request", true},
		{policy.RoleClient, "upload", "write", true},
		{policy.RoleClient, "profile", "read", true},
		// Clients never touch the admin surface.
		{policy.RoleClient, "client", "create", false},
		{policy.RoleClient, "client", "delete", false},
		{policy.RoleClient, "registration", "review", false},
		{policy.RoleClient, "credit", "review", false},

		{"UNKNOWN", "registration", "read", false},
	}

	for _, tc := range cases {
		allowed, err := svc.Enforce(tc.role, tc.resource, tc.action)
		assert.NoError(t, err)
		assert.Equal(t, tc.allowed, allowed, "%s %s:%s", tc.role, tc.resource, tc.action)
	}
}
