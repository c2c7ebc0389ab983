package policy

import (
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const (
	RoleAdmin  = "ADMIN"
	RoleClient = "CLIENT"
)

// The model is fixed: two roles, resource:action permissions. Policies live
// in code because the role set never changes at runtime; only the admin
// allow-list is injected.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

//go:generate mockgen -source=policy.go -destination=mock/policy_mock.go -package=mock
type Service interface {
	// IsAdmin reports whether the identity belongs to the admin allow-list.
	IsAdmin(email string) bool
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	adminEmails map[string]struct{}
	enforcer    *casbin.Enforcer
}

func NewService(adminEmails []string) (Service, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}
	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, p := range defaultPolicies() {
		if _, err := enforcer.AddPolicy(p...); err != nil {
			return nil, err
		}
	}

	allowList := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		allowList[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
	}

	return &service{adminEmails: allowList, enforcer: enforcer}, nil
}

func defaultPolicies() [][]interface{} {
	return [][]interface{}{
		// Admin surface
		{RoleAdmin, "client", "create"},
		{RoleAdmin, "client", "read"},
		{RoleAdmin, "client", "update"},
		{RoleAdmin, "client", "delete"},
		{RoleAdmin, "registration", "read"},
		{RoleAdmin, "registration", "review"},
		{RoleAdmin, "credit", "read"},
		{RoleAdmin, "credit", "review"},

		// Client surface
		{RoleClient, "registration", "read"},
		{RoleClient, "registration", "write"},
		{RoleClient, "registration", "submit"},
		{RoleClient, "credit", "read"},
		{RoleClient, "credit", "write"},
		{RoleClient, "credit", "submit"},
		{RoleClient, "credit", "request"},
		{RoleClient, "upload", "write"},
		{RoleClient, "profile", "read"},
	}
}

func (s *service) IsAdmin(email string) bool {
	_, ok := s.adminEmails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	return s.enforcer.Enforce(role, resource, action)
}
