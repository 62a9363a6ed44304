package middleware

import (
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/domain"
	infraauth "github.com/emmg3ms1/g3ms-frontend-dropapp-sub000/internal/infrastructure/auth"
)

// CasbinMW guards the role-specific dashboard routes: a student must not
// land on the brand profile surface and vice versa. The policy set mirrors
// the post-auth routing table.
type CasbinMW struct {
	enforcer *casbin.Enforcer
}

// NewCasbinMW creates the casbin middleware wrapper.
func NewCasbinMW(enforcer *casbin.Enforcer) *CasbinMW {
	return &CasbinMW{enforcer: enforcer}
}

// Enforce returns the authorization middleware. It expects the auth
// middleware to have put user_role in the context.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return gin.HandlerFunc(func(c *gin.Context) {
		role, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Role not found in session"})
			c.Abort()
			return
		}

		casbinRole := infraauth.RoleSubject(domain.Role(role.(string)))
		allowed, err := mw.enforcer.Enforce(casbinRole, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			c.Abort()
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access Denied"})
			c.Abort()
			return
		}

		c.Next()
	})
}
