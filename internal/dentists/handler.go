package dentists

import (
	"net/http"

	apierrors "github.com/clinova/odonto-api/common/errors"
	"github.com/clinova/odonto-api/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// CreateDentistRequest is the validated attribute set to create a dentist
type CreateDentistRequest struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	License   string `json:"license" validate:"required,max=30"`
	Specialty string `json:"specialty" validate:"omitempty,max=100"`
	Email     string `json:"email" validate:"omitempty,email,max=254"`
	Phone     string `json:"phone" validate:"omitempty,max=30"`
}

// UpdateDentistRequest is a partial attribute set; absent fields are preserved
type UpdateDentistRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string `json:"last_name" validate:"omitempty,max=100"`
	License   *string `json:"license" validate:"omitempty,max=30"`
	Specialty *string `json:"specialty" validate:"omitempty,max=100"`
	Email     *string `json:"email" validate:"omitempty,email,max=254"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
}

// Handler exposes the dentist endpoints
type Handler struct {
	svc *Service
}

// NewHandler creates the dentist handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create persists a new dentist and returns it with its assigned id
func (h *Handler) Create(c *gin.Context) {
	var req CreateDentistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Cuerpo de la petición inválido")
		return
	}
	if err := validate.Struct(&req); err != nil {
		apierrors.BadRequest(c, "Datos del dentista inválidos", apierrors.Fields(err)...)
		return
	}

	dentist := &models.Dentist{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		License:   req.License,
		Specialty: req.Specialty,
		Email:     req.Email,
		Phone:     req.Phone,
	}
	created, err := h.svc.Create(c.Request.Context(), dentist)
	if err != nil {
		apierrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// List returns the dentist collection. Soft-removed dentists are hidden
// unless include_removed=true is passed.
func (h *Handler) List(c *gin.Context) {
	includeRemoved := c.Query("include_removed") == "true"
	all, err := h.svc.List(c.Request.Context(), includeRemoved)
	if err != nil {
		apierrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, all)
}

// Get returns a single dentist by id, removed or not
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	dentist, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		apierrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dentist)
}

// Update merges the partial input onto the stored dentist
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateDentistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Cuerpo de la petición inválido")
		return
	}
	if err := validate.Struct(&req); err != nil {
		apierrors.BadRequest(c, "Datos del dentista inválidos", apierrors.Fields(err)...)
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), id, func(d *models.Dentist) {
		if req.FirstName != nil {
			d.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			d.LastName = *req.LastName
		}
		if req.License != nil {
			d.License = *req.License
		}
		if req.Specialty != nil {
			d.Specialty = *req.Specialty
		}
		if req.Email != nil {
			d.Email = *req.Email
		}
		if req.Phone != nil {
			d.Phone = *req.Phone
		}
	})
	if err != nil {
		apierrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Remove soft-deletes a dentist and returns a confirmation message
func (h *Handler) Remove(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	msg, err := h.svc.Remove(c.Request.Context(), id)
	if err != nil {
		apierrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// Purge physically deletes the whole dentist collection
func (h *Handler) Purge(c *gin.Context) {
	msg, err := h.svc.PurgeAll(c.Request.Context())
	if err != nil {
		apierrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Identificador inválido")
		return uuid.Nil, false
	}
	return id, true
}
