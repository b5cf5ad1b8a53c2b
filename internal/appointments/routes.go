package appointments

import (
	"github.com/clinova/odonto-api/internal/auth"
	"github.com/clinova/odonto-api/pkg/models"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the appointment endpoints onto an authenticated group.
// Every operation requires the creator role; the purge endpoint is admin only.
func RegisterRoutes(rg *gin.RouterGroup, svc *Service, mw *auth.Middleware) {
	h := NewHandler(svc)

	g := rg.Group("/citas")
	g.Use(mw.RequireRoles(models.RoleCreator, models.RoleAdmin))
	{
		g.POST("", h.Create)
		g.GET("", h.List)
		g.GET("/:id", h.Get)
		g.PATCH("/:id", h.Update)
		g.DELETE("/:id", h.Remove)
		g.DELETE("", mw.RequireRoles(models.RoleAdmin), h.Purge)
	}
}
