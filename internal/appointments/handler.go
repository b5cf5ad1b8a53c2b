package appointments

import (
	"net/http"
	"time"

	apierrors "github.com/clinova/odonto-api/common/errors"
	"github.com/clinova/odonto-api/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// CreateAppointmentRequest is the validated attribute set to schedule an
// appointment
type CreateAppointmentRequest struct {
	DentistID   uuid.UUID       `json:"dentist_id" validate:"required"`
	PatientID   uuid.UUID       `json:"patient_id" validate:"required"`
	ScheduledAt time.Time       `json:"scheduled_at" validate:"required"`
	Reason      string          `json:"reason" validate:"omitempty,max=500"`
	Fee         decimal.Decimal `json:"fee"`
}

// UpdateAppointmentRequest is a partial attribute set; absent fields are
// preserved
type UpdateAppointmentRequest struct {
	ScheduledAt *time.Time       `json:"scheduled_at"`
	Reason      *string          `json:"reason" validate:"omitempty,max=500"`
	Fee         *decimal.Decimal `json:"fee"`
	Status      *string          `json:"status" validate:"omitempty,oneof=programada completada cancelada"`
}

// Handler exposes the appointment endpoints
type Handler struct {
	svc *Service
}

// NewHandler creates the appointment handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Create schedules a new appointment
func (h *Handler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Cuerpo de la petición inválido")
		return
	}
	if err := validate.Struct(&req); err != nil {
		apierrors.BadRequest(c, "Datos de la cita inválidos", apierrors.Fields(err)...)
		return
	}

	appt := &models.Appointment{
		DentistID:   req.DentistID,
		PatientID:   req.PatientID,
		ScheduledAt: req.ScheduledAt,
		Reason:      req.Reason,
		Fee:         req.Fee,
		Status:      models.AppointmentScheduled,
	}
	created, err := h.svc.Schedule(c.Request.Context(), appt)
	if err != nil {
		apierrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// List returns the appointment collection, hiding soft-removed records
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

// Get returns a single appointment by id, removed or not
func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	appt, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		apierrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// Update merges the partial input onto the stored appointment
func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Cuerpo de la petición inválido")
		return
	}
	if err := validate.Struct(&req); err != nil {
		apierrors.BadRequest(c, "Datos de la cita inválidos", apierrors.Fields(err)...)
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), id, func(a *models.Appointment) {
		if req.ScheduledAt != nil {
			a.ScheduledAt = *req.ScheduledAt
		}
		if req.Reason != nil {
			a.Reason = *req.Reason
		}
		if req.Fee != nil {
			a.Fee = *req.Fee
		}
		if req.Status != nil {
			a.Status = *req.Status
		}
	})
	if err != nil {
		apierrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Remove soft-deletes an appointment and returns a confirmation message
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

// Purge physically deletes the whole appointment collection
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
