package middleware

import (
	"net/http"
	"strings"

	"hostel/internal/domain"
	"hostel/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// RequireRole lets the request through only when the token role is one of roles.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[strings.ToUpper(string(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		role := c.GetString(ctxRole)
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Role not found in token")
			c.Abort()
			return
		}

		if _, ok := allowed[strings.ToUpper(role)]; !ok {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}

// StaffOnly admits hostel staff of any seniority.
func StaffOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin, domain.RoleManager, domain.RoleStaff)
}

func ManagerOnly() gin.HandlerFunc {
	return RequireRole(domain.RoleAdmin, domain.RoleManager)
}

// IsStaff reports whether the authenticated role belongs to hostel staff.
func IsStaff(c *gin.Context) bool {
	switch domain.UserRole(strings.ToUpper(c.GetString(ctxRole))) {
	case domain.RoleAdmin, domain.RoleManager, domain.RoleStaff:
		return true
	}
	return false
}
