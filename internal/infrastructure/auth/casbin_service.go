package auth

import (
	"github.com/casbin/casbin/v2"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
)

// CasbinService wraps the enforcer guarding role-specific dashboard routes.
// Policies live in process memory and are seeded at startup: the route map
// is part of the deployment, not user data.
type CasbinService struct{ E *casbin.Enforcer }

// NewCasbinService builds an enforcer from the model file and seeds the
// role→route policy.
func NewCasbinService(modelPath string) (*CasbinService, error) {
	e, err := casbin.NewEnforcer(modelPath)
	if err != nil {
		return nil, err
	}
	seedPolicies(e)
	return &CasbinService{E: e}, nil
}

func seedPolicies(e *casbin.Enforcer) {
	// Role homes per the post-auth routing table.
	e.AddPolicy(roleSubject(domain.RoleStudent), "/dashboard/drops*", "GET")
	e.AddPolicy(roleSubject(domain.RoleEducator), "/dashboard/drops*", "GET")
	e.AddPolicy(roleSubject(domain.RoleBrand), "/dashboard/profile*", "GET")
	e.AddPolicy(roleSubject(domain.RoleCreator), "/dashboard/profile*", "GET")

	// Educator drop management.
	e.AddPolicy(roleSubject(domain.RoleEducator), "/educator/*", "GET")
	e.AddPolicy(roleSubject(domain.RoleEducator), "/drops*", "(GET|POST)")

	// Routes every authenticated role may reach.
	for _, role := range []domain.Role{domain.RoleStudent, domain.RoleEducator, domain.RoleBrand, domain.RoleCreator} {
		e.AddPolicy(roleSubject(role), "/dashboard", "GET")
		e.AddPolicy(roleSubject(role), "/dashboard/profile", "GET")
	}
}

func roleSubject(role domain.Role) string {
	return "role_" + string(role)
}

// RoleSubject maps a platform role to its casbin subject.
func RoleSubject(role domain.Role) string { return roleSubject(role) }
