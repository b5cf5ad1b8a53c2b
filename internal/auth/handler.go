package auth

import (
	"net/http"

	apierrors "github.com/clinova/odonto-api/common/errors"
	"github.com/clinova/odonto-api/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Handler exposes the auth endpoints
type Handler struct {
	svc *Service
}

// NewHandler creates the auth handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register creates a new staff account
func (h *Handler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Cuerpo de la petición inválido")
		return
	}
	if err := validate.Struct(&req); err != nil {
		apierrors.BadRequest(c, "Datos de registro inválidos", apierrors.Fields(err)...)
		return
	}

	user, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		apierrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Login authenticates a staff account and returns a token
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Cuerpo de la petición inválido")
		return
	}
	if err := validate.Struct(&req); err != nil {
		apierrors.BadRequest(c, "Datos de acceso inválidos", apierrors.Fields(err)...)
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), &req)
	if err != nil {
		apierrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout revokes the caller's token
func (h *Handler) Logout(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		apierrors.UnauthorizedResponse(c, "Se requiere el encabezado Authorization")
		return
	}
	if err := h.svc.Logout(c.Request.Context(), token); err != nil {
		apierrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sesión cerrada"})
}

// RegisterRoutes wires the auth endpoints onto the public group
func RegisterRoutes(rg *gin.RouterGroup, svc *Service) {
	h := NewHandler(svc)
	g := rg.Group("/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/logout", h.Logout)
}
