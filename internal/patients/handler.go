package patients

import (
	"net/http"
	"time"

	apierrors "github.com/clinova/odonto-api/common/errors"
	"github.com/clinova/odonto-api/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// CreatePatientRequest is the validated attribute set to create a patient
type CreatePatientRequest struct {
	FirstName  string     `json:"first_name" validate:"required,max=100"`
	LastName   string     `json:"last_name" validate:"required,max=100"`
	NationalID string     `json:"national_id" validate:"required,max=30"`
	Email      string     `json:"email" validate:"omitempty,email,max=254"`
	Phone      string     `json:"phone" validate:"omitempty,max=30"`
	BirthDate  *time.Time `json:"birth_date"`
}

// UpdatePatientRequest is a partial attribute set; absent fields are preserved
type UpdatePatientRequest struct {
	FirstName  *string    `json:"first_name" validate:"omitempty,max=100"`
	LastName   *string    `json:"last_name" validate:"omitempty,max=100"`
	NationalID *string    `json:"national_id" validate:"omitempty,max=30"`
	Email      *string    `json:"email" validate:"omitempty,email,max=254"`
	Phone      *string    `json:"phone" validate:"omitempty,max=30"`
	BirthDate  *time.Time `json:"birth_date"`
}

// Handler exposes the patient endpoints
type Handler struct {
	svc *Service
}

// NewHandler creates the patient handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create persists a new patient and returns it with its assigned id
func (h *Handler) Create(c *gin.Context) {
	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Cuerpo de la petición inválido")
		return
	}
	if err := validate.Struct(&req); err != nil {
		apierrors.BadRequest(c, "Datos del paciente inválidos", apierrors.Fields(err)...)
		return
	}

	patient := &models.Patient{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		NationalID: req.NationalID,
		Email:      req.Email,
		Phone:      req.Phone,
		BirthDate:  req.BirthDate,
	}
	created, err := h.svc.Create(c.Request.Context(), patient)
	if err != nil {
		apierrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// List returns the patient collection, hiding soft-removed records unless
// include_removed=true is passed.
func (h *Handler) List(c *gin.Context) {
	includeRemoved := c.Query("include_removed") == "true"
	all, err := h.svc.List(c.Request.Context(), includeRemoved)
	if err != nil {
		apierrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, all)
}

// Get returns a single patient by id, removed or not
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	patient, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		apierrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

// Update merges the partial input onto the stored patient
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Cuerpo de la petición inválido")
		return
	}
	if err := validate.Struct(&req); err != nil {
		apierrors.BadRequest(c, "Datos del paciente inválidos", apierrors.Fields(err)...)
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), id, func(p *models.Patient) {
		if req.FirstName != nil {
			p.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			p.LastName = *req.LastName
		}
		if req.NationalID != nil {
			p.NationalID = *req.NationalID
		}
		if req.Email != nil {
			p.Email = *req.Email
		}
		if req.Phone != nil {
			p.Phone = *req.Phone
		}
		if req.BirthDate != nil {
			p.BirthDate = req.BirthDate
		}
	})
	if err != nil {
		apierrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Remove soft-deletes a patient and returns a confirmation message
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

// Purge physically deletes the whole patient collection
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
