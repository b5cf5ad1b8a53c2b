package auth

import (
	"strings"

	apierrors "github.com/clinova/odonto-api/common/errors"
	"github.com/gin-gonic/gin"
)

// Context keys set by the middleware for downstream handlers
const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextUsername = "username"
)

// Middleware guards routes with JWT authentication and role checks
type Middleware struct {
	svc *Service
}

// NewMiddleware creates the auth middleware around the auth service
func NewMiddleware(svc *Service) *Middleware {
	return &Middleware{svc: svc}
}

// Authenticate verifies the bearer token and stores the caller's identity
// and role in the request context.
func (m *Middleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			apierrors.UnauthorizedResponse(c, "Se requiere el encabezado Authorization")
			c.Abort()
			return
		}

		claims, err := m.svc.ValidateToken(c.Request.Context(), token)
		if err != nil {
			apierrors.HandleError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Set(ContextUserRole, claims.Role)
		c.Set(ContextUsername, claims.Username)
		c.Next()
	}
}

// RequireRoles allows the request through only when the authenticated
// caller's role is one of the given roles.
func (m *Middleware) RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		if role == "" {
			apierrors.UnauthorizedResponse(c, "Se requiere autenticación")
			c.Abort()
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		apierrors.ForbiddenResponse(c, "No tiene permisos para esta operación")
		c.Abort()
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
